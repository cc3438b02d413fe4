// Package httpx holds the HTTP plumbing shared by every handler: the JSON
// response envelope, the API error taxonomy, bearer-token authentication
// middleware and per-key rate limiting.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the response shape for every endpoint. Exactly one of Data or
// Error is set depending on Success.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody is the client-visible error payload. Message is always a short
// human-readable string; internal details stay in server logs.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code. It sets the
// Content-Type and no-cache headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes a success envelope wrapping the given payload.
func WriteData(w http.ResponseWriter, code int, data any) {
	WriteJSON(w, code, Envelope{Success: true, Data: data})
}

// NoCache sets headers to prevent caching. Required for responses carrying
// tokens or per-user data.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
