package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/taskhublabs/taskhub/internal/tasks/domain"
	"github.com/taskhublabs/taskhub/internal/tasks/store"
	"github.com/taskhublabs/taskhub/pkg/cryptox"
	"github.com/taskhublabs/taskhub/pkg/idx"
	"github.com/taskhublabs/taskhub/pkg/jwtx"
	"github.com/taskhublabs/taskhub/pkg/slogx"
)

const (
	minNameLength     = 2
	minPasswordLength = 6
)

// AuthService handles registration, login and profile updates, and issues
// access tokens. The caller identity is always an explicit parameter; the
// service keeps no ambient user state.
type AuthService struct {
	Store     store.Store
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// ProfileInput is the payload for profile updates. Password changes are a
// separate concern and deliberately absent.
type ProfileInput struct {
	Name  string
	Email string
	Bio   string
}

// AuthResult is a user plus a freshly issued bearer token.
type AuthResult struct {
	User  domain.User
	Token string
}

// Register validates the input, persists a new user with a hashed password
// and issues a token bound to the new identity. The plaintext password is
// never stored or logged.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	if err := validateName(name); err != nil {
		return AuthResult{}, err
	}
	if err := validateEmail(email); err != nil {
		return AuthResult{}, err
	}
	if len(in.Password) < minPasswordLength {
		return AuthResult{}, invalidf("password must be at least %d characters", minPasswordLength)
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, err
	}

	token, err := s.issueToken(user, now)
	if err != nil {
		return AuthResult{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID)
	return AuthResult{User: user, Token: token}, nil
}

// Login verifies the credentials and issues a token. Unknown email and
// wrong password produce the identical ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(user, time.Now().UTC())
	if err != nil {
		return AuthResult{}, err
	}

	slogx.FromContext(ctx).Info("user logged in", "user_id", user.ID)
	return AuthResult{User: user, Token: token}, nil
}

// GetUser fetches the caller's own account.
func (s *AuthService) GetUser(ctx context.Context, callerID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// UpdateProfile validates and persists new name/email/bio for the caller's
// own record. Only the caller's record is ever touched.
func (s *AuthService) UpdateProfile(ctx context.Context, callerID string, in ProfileInput) (domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	bio := strings.TrimSpace(in.Bio)

	if err := validateName(name); err != nil {
		return domain.User{}, err
	}
	if err := validateEmail(email); err != nil {
		return domain.User{}, err
	}

	if err := s.Store.Users().UpdateProfile(ctx, callerID, name, email, bio); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.User{}, ErrEmailTaken
		case errors.Is(err, store.ErrNotFound):
			return domain.User{}, ErrNotFound
		default:
			return domain.User{}, err
		}
	}

	return s.Store.Users().GetUserByID(ctx, callerID)
}

func (s *AuthService) issueToken(user domain.User, now time.Time) (string, error) {
	claims := jwtx.NewAccessClaims(user.ID, user.Email, s.Issuer, s.AccessTTL, now)
	return s.Signer.Sign(claims)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateName(name string) error {
	if len(name) < minNameLength {
		return invalidf("name must be at least %d characters", minNameLength)
	}
	return nil
}

// validateEmail applies the minimal shape check: a local part, an "@" and
// a dotted domain segment. Anything stricter is the mail server's problem.
func validateEmail(email string) error {
	local, dom, ok := strings.Cut(email, "@")
	if !ok || local == "" || dom == "" {
		return invalidf("email is not valid")
	}
	if !strings.Contains(dom, ".") || strings.HasPrefix(dom, ".") || strings.HasSuffix(dom, ".") {
		return invalidf("email is not valid")
	}
	return nil
}
