package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"prompt2world-server/internal/session"
	"prompt2world-server/internal/shared/errors"
	"prompt2world-server/internal/shared/response"
)

type SessionHandler struct {
	service *session.Service
}

func NewSessionHandler(service *session.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

type loginRequest struct {
	UserID string `json:"user_id"`
}

// Login issues a new session for a user id.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "session_login")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		response.Error(w, r, logger, errors.Validation("user_id is required"))
		return
	}

	sess, err := h.service.Create(ctx, userID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, sess)
}

type validateResponse struct {
	Valid     bool   `json:"valid"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
}

// Validate checks a bearer token and returns session details.
func (h *SessionHandler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "session_validate")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	token, err := BearerToken(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	claims, err := h.service.Validate(ctx, token)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, validateResponse{
		Valid:     true,
		UserID:    claims.UserID,
		SessionID: claims.SessionID,
		Role:      claims.Role,
	})
}

type logoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Logout invalidates the session behind the bearer token.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "session_logout")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	token, err := BearerToken(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if err := h.service.Invalidate(ctx, token); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, logoutResponse{
		Success: true,
		Message: "Session invalidated successfully",
	})
}

// BearerToken extracts a bearer token from the Authorization header.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.Unauthorized("authorization header is required")
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", errors.Unauthorized("invalid authorization header format")
	}

	return strings.TrimPrefix(header, prefix), nil
}
