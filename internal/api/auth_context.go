package api

import (
	"context"
	"net/http"
	"strings"

	domainerrors "github.com/secondbrain/brain-server/internal/errors"
	"github.com/secondbrain/brain-server/internal/service"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

const (
	// userIDKey is the context key for the authenticated user ID.
	userIDKey ctxKey = "userID"
	// authErrKey holds why a presented token was rejected.
	authErrKey ctxKey = "authErr"
)

// GetUserID returns the authenticated user ID from context.
// Returns a 401 error if the request carried no valid token; an expired token
// reports TOKEN_EXPIRED so clients know to sign in again.
func GetUserID(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if ok && userID != "" {
		return userID, nil
	}
	if err, ok := ctx.Value(authErrKey).(error); ok && err != nil {
		return "", err
	}
	return "", domainerrors.Unauthorized("Authentication required")
}

// setUserID stores the user ID in context.
func setUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// authMiddleware returns a middleware that validates Bearer tokens and stores user ID in context.
// If no token is present or invalid, continues without user in context.
// Handlers use GetUserID to check authentication.
func authMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := auth.VerifyToken(r.Context(), strings.TrimSpace(token))
			if err != nil {
				ctx := context.WithValue(r.Context(), authErrKey, err)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			next.ServeHTTP(w, r.WithContext(setUserID(r.Context(), userID)))
		})
	}
}
