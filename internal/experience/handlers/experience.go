package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"prompt2world-server/internal/experience"
	"prompt2world-server/internal/middleware"
	"prompt2world-server/internal/session"
	"prompt2world-server/internal/shared/errors"
	"prompt2world-server/internal/shared/response"
)

type ExperienceHandler struct {
	service *experience.Service
	logger  *slog.Logger
}

func NewExperienceHandler(service *experience.Service, logger *slog.Logger) *ExperienceHandler {
	return &ExperienceHandler{
		service: service,
		logger:  logger,
	}
}

// Publish handles POST /api/experiences.
func (h *ExperienceHandler) Publish(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		response.Error(w, r, h.logger, errors.Unauthorized("authentication required"))
		return
	}

	var req experience.PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, h.logger, errors.WrapValidation("invalid request body", err))
		return
	}

	exp, err := h.service.Publish(r.Context(), claims.UserID, &req)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.Success(w, http.StatusCreated, exp)
}

// List handles GET /api/experiences. Public, no auth.
func (h *ExperienceHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	result, err := h.service.ListPublic(r.Context(),
		r.URL.Query().Get("world_type"),
		limit, offset,
	)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.Success(w, http.StatusOK, result)
}

// Get handles GET /api/experiences/{id}. Public, no auth.
func (h *ExperienceHandler) Get(w http.ResponseWriter, r *http.Request) {
	exp, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.Success(w, http.StatusOK, exp)
}

// Unpublish handles DELETE /api/experiences/{id}.
func (h *ExperienceHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		response.Error(w, r, h.logger, errors.Unauthorized("authentication required"))
		return
	}

	isAdmin := claims.Role == session.RoleAdmin
	if err := h.service.Unpublish(r.Context(), r.PathValue("id"), claims.UserID, isAdmin); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.Success(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "experience unpublished",
	})
}
