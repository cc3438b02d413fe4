package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/taskhublabs/taskhub/internal/tasks/service"
	"github.com/taskhublabs/taskhub/pkg/httpx"
	"github.com/taskhublabs/taskhub/pkg/slogx"
)

// writeServiceError maps service-layer errors onto the API error taxonomy
// and writes the failure envelope. Anything unrecognized is an internal
// error: logged in full server-side, surfaced to the client as a generic
// message.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var ve *service.ValidationError

	switch {
	case errors.As(err, &ve):
		httpx.ErrValidation.WithMessage(ve.Msg).WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		httpx.ErrConflict.WithMessage("email is already registered").WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		httpx.ErrNotFound.WriteError(w)
	default:
		slogx.FromContext(ctx).Error("unexpected service error", "err", err)
		httpx.ErrInternal.WriteError(w)
	}
}

// decodeJSON parses a request body into v, reporting malformed bodies as
// a validation failure.
func decodeJSON(r *http.Request, v any) *httpx.APIError {
	if err := jsonDecode(r, v); err != nil {
		return httpx.ErrValidation.WithMessage("invalid JSON body")
	}
	return nil
}
