package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"prompt2world-server/internal/prefab"
	"prompt2world-server/internal/shared/errors"
	"prompt2world-server/internal/shared/response"
)

type PrefabHandler struct {
	service *prefab.Service
	logger  *slog.Logger
}

func NewPrefabHandler(service *prefab.Service, logger *slog.Logger) *PrefabHandler {
	return &PrefabHandler{
		service: service,
		logger:  logger,
	}
}

// List handles GET /api/prefabs with optional type, q, limit, offset params.
func (h *PrefabHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	result, err := h.service.List(r.Context(),
		r.URL.Query().Get("type"),
		r.URL.Query().Get("q"),
		limit, offset,
	)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.Success(w, http.StatusOK, result)
}

// Get handles GET /api/prefabs/{id}.
func (h *PrefabHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetItem(r.Context(), r.PathValue("id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.Success(w, http.StatusOK, item)
}

// Create handles POST /api/prefabs. Admin only.
func (h *PrefabHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req prefab.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, h.logger, errors.WrapValidation("invalid request body", err))
		return
	}

	item, err := h.service.CreateItem(r.Context(), &req)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.Success(w, http.StatusCreated, item)
}

// Update handles PUT /api/prefabs/{id}. Admin only.
func (h *PrefabHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req prefab.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, h.logger, errors.WrapValidation("invalid request body", err))
		return
	}

	item, err := h.service.UpdateItem(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.Success(w, http.StatusOK, item)
}

// Delete handles DELETE /api/prefabs/{id}. Admin only.
func (h *PrefabHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteItem(r.Context(), r.PathValue("id")); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.Success(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "prefab deleted",
	})
}
