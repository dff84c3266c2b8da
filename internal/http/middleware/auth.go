package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/service"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	sessionIDKey contextKey = "sessionID"
)

// TokenValidator verifies bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*service.Claims, error)
}

// SessionChecker confirms the session was not logged out.
type SessionChecker interface {
	SessionLive(ctx context.Context, sessionID string) (bool, error)
}

// Auth validates the bearer JWT, confirms the session is still live and
// injects user and session ids into the request context.
func Auth(tokens TokenValidator, sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
			if err != nil || claims.UserID == "" {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			live, err := sessions.SessionLive(r.Context(), claims.ID)
			if err != nil || !live {
				http.Error(w, "session is no longer active", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, sessionIDKey, claims.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Chain applies middleware to a handler.
func Chain(handler http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// WithUser injects user and session ids into the context, the same way Auth
// does after validating a token.
func WithUser(ctx context.Context, userID, sessionID string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// UserIDFromContext retrieves the authenticated user id.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// SessionIDFromContext retrieves the session id of the presented token.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}
