package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskhublabs/taskhub/pkg/jwtx"
	"github.com/taskhublabs/taskhub/pkg/slogx"
)

// AuthnMiddleware resolves the bearer token on each request to a user
// identity and attaches it to the request context. Requests without a valid
// token never reach the wrapped handler.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_request"`)
				ErrUnauthenticated.WriteError(w)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				ErrInvalidToken.WriteError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithAuth(ctx, claims)))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}
