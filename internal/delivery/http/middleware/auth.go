package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "trailreg/internal/delivery/http/helpers"
	"trailreg/internal/domain"
)

type contextKey string

const sessionKey contextKey = "adminSession"

// AuthCookieName is the cookie carrying the admin session token.
const AuthCookieName = "auth_token"

// SetSession returns a context with the admin session set. Used by auth middleware.
func SetSession(ctx context.Context, session *domain.AdminSession) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromContext returns the authenticated admin session from the context, if present.
func SessionFromContext(ctx context.Context) (*domain.AdminSession, bool) {
	s, ok := ctx.Value(sessionKey).(*domain.AdminSession)
	return s, ok
}

// RequireAuth returns a wrapper that validates the admin session token and sets
// the session in the request context. The token is read from the auth_token
// cookie, falling back to an Authorization Bearer header. If the token is
// missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			session, err := verifier.Verify(token)
			if err != nil {
				logger.Debug("token rejected", "error", err)
				h.WriteJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetSession(r.Context(), session))
			next(w, r)
		}
	}
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(AuthCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	const prefix = "Bearer "
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	return ""
}
