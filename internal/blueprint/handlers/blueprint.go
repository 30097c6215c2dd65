package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"prompt2world-server/internal/blueprint"
	"prompt2world-server/internal/middleware"
	"prompt2world-server/internal/shared/errors"
	"prompt2world-server/internal/shared/response"
)

type BlueprintHandler struct {
	service *blueprint.Service
	logger  *slog.Logger
}

func NewBlueprintHandler(service *blueprint.Service, logger *slog.Logger) *BlueprintHandler {
	return &BlueprintHandler{
		service: service,
		logger:  logger,
	}
}

// Generate handles POST /api/prompt2world.
func (h *BlueprintHandler) Generate(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		response.Error(w, r, h.logger, errors.Unauthorized("authentication required"))
		return
	}

	var req blueprint.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, h.logger, errors.WrapValidation("invalid request body", err))
		return
	}

	result, err := h.service.Generate(r.Context(), claims.UserID, &req)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.Success(w, http.StatusOK, result)
}

// Get handles GET /api/worlds/{id}.
func (h *BlueprintHandler) Get(w http.ResponseWriter, r *http.Request) {
	bp, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.Success(w, http.StatusOK, bp)
}

// ListMine handles GET /api/worlds, scoped to the authenticated user.
func (h *BlueprintHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		response.Error(w, r, h.logger, errors.Unauthorized("authentication required"))
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	blueprints, err := h.service.ListByUser(r.Context(), claims.UserID, limit, offset)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.Success(w, http.StatusOK, map[string]interface{}{
		"worlds": blueprints,
		"count":  len(blueprints),
	})
}
