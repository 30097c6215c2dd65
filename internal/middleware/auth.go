package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"prompt2world-server/internal/session"
	"prompt2world-server/internal/shared/errors"
	"prompt2world-server/internal/shared/response"
)

type contextKey string

const UserContextKey contextKey = "user"

// Auth returns middleware that authenticates the request's bearer token
// against the session service and stores the claims in the request context.
func Auth(sessions *session.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := slog.With(
				"middleware", "auth",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
			logger.Debug("Processing bearer token authentication")

			header := r.Header.Get("Authorization")
			if header == "" {
				response.Error(w, r, logger, errors.Unauthorized("authentication required"))
				return
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				response.Error(w, r, logger, errors.Unauthorized("invalid authorization header format"))
				return
			}

			claims, err := sessions.Validate(r.Context(), strings.TrimPrefix(header, prefix))
			if err != nil {
				response.Error(w, r, logger, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			logger.Debug("Authentication successful",
				"user_id", claims.UserID,
				"session_id", claims.SessionID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the authenticated claims, or nil.
func GetUserFromContext(r *http.Request) *session.Claims {
	if claims, ok := r.Context().Value(UserContextKey).(*session.Claims); ok {
		return claims
	}
	return nil
}
