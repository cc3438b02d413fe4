package http

import (
	"net/http"

	"github.com/taskhublabs/taskhub/internal/tasks/service"
	"github.com/taskhublabs/taskhub/pkg/httpx"
	"github.com/taskhublabs/taskhub/pkg/tasksdk"
)

// AuthHandler serves account registration, login and profile endpoints.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister creates a new account.
//
//	@Summary		Register a new account
//	@Description	Creates a user account and returns the profile together with a bearer token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tasksdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	tasksdk.AuthResponse	"Created account and access token"
//	@Failure		400		{object}	httpx.Envelope			"Validation failure"
//	@Failure		409		{object}	httpx.Envelope			"Email already registered"
//	@Failure		500		{object}	httpx.Envelope			"Internal server error"
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req tasksdk.RegisterRequest
	if apiErr := decodeJSON(r, &req); apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	result, err := h.AuthService.Register(ctx, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusCreated, tasksdk.AuthResponse{
		Token: result.Token,
		User:  toUserDTO(result.User),
	})
}

// HandleLogin exchanges credentials for a bearer token.
//
//	@Summary		Log in
//	@Description	Verifies email and password and returns the profile together with a bearer token.
//	@Description	Unknown email and wrong password produce the same error.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tasksdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	tasksdk.AuthResponse	"Account and access token"
//	@Failure		400		{object}	httpx.Envelope			"Validation failure"
//	@Failure		401		{object}	httpx.Envelope			"Invalid credentials"
//	@Failure		500		{object}	httpx.Envelope			"Internal server error"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req tasksdk.LoginRequest
	if apiErr := decodeJSON(r, &req); apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	result, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusOK, tasksdk.AuthResponse{
		Token: result.Token,
		User:  toUserDTO(result.User),
	})
}

// HandleMe returns the authenticated user's profile.
//
//	@Summary		Get current user
//	@Description	Returns the profile of the authenticated user.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	tasksdk.User	"Current profile"
//	@Failure		401	{object}	httpx.Envelope	"Invalid or missing access token"
//	@Failure		500	{object}	httpx.Envelope	"Internal server error"
//	@Router			/api/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.AuthService.GetUser(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusOK, toUserDTO(user))
}

// HandleUpdateProfile updates the authenticated user's name, email and bio.
//
//	@Summary		Update profile
//	@Description	Replaces the profile fields of the authenticated user. Password changes are not part of this endpoint.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tasksdk.UpdateProfileRequest	true	"New profile fields"
//	@Success		200		{object}	tasksdk.User					"Updated profile"
//	@Failure		400		{object}	httpx.Envelope					"Validation failure"
//	@Failure		401		{object}	httpx.Envelope					"Invalid or missing access token"
//	@Failure		409		{object}	httpx.Envelope					"Email already registered"
//	@Failure		500		{object}	httpx.Envelope					"Internal server error"
//	@Router			/api/auth/profile [put].
func (h *AuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.ErrInvalidToken.WriteError(w)
		return
	}

	var req tasksdk.UpdateProfileRequest
	if apiErr := decodeJSON(r, &req); apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	user, err := h.AuthService.UpdateProfile(ctx, userID, service.ProfileInput{
		Name:  req.Name,
		Email: req.Email,
		Bio:   req.Bio,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteData(w, http.StatusOK, toUserDTO(user))
}
