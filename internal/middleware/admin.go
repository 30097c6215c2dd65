package middleware

import (
	"log/slog"
	"net/http"

	"prompt2world-server/internal/session"
	"prompt2world-server/internal/shared/errors"
	"prompt2world-server/internal/shared/response"
)

// Admin requires that the already-authenticated user holds the admin role.
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(
			"middleware", "admin",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		logger.Debug("Processing admin authorization")

		claims := GetUserFromContext(r)
		if claims == nil {
			response.Error(w, r, logger, errors.Unauthorized("authentication required"))
			return
		}

		if claims.Role != session.RoleAdmin {
			logger.Warn("Non-admin user attempted to access admin endpoint",
				"user_id", claims.UserID,
				"role", claims.Role)
			response.Error(w, r, logger, errors.Forbidden("admin access required"))
			return
		}

		logger.Debug("Admin authorization successful", "user_id", claims.UserID)

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin chains authentication and the admin role check.
func RequireAdmin(sessions *session.Service, next http.Handler) http.Handler {
	return Auth(sessions)(Admin(next))
}
