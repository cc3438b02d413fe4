package tasksdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the TaskHub service. It provides access to
// unauthenticated operations and can create authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new TaskHub client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new account and returns an authenticated session.
func (c *SDKClient) Register(ctx context.Context, name, email, password string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, nil)
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeData(resp, &auth, http.StatusCreated); err != nil {
		return nil, err
	}

	return newSession(c, auth), nil
}

// Login authenticates with email and password and returns a session.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	}, nil)
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeData(resp, &auth, http.StatusOK); err != nil {
		return nil, err
	}

	return newSession(c, auth), nil
}

// NewSessionFromToken creates a session from an existing bearer token,
// e.g. one stored by a previous login.
func (c *SDKClient) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodePlain(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}

// GetReadiness checks if the service is ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodePlain(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}
