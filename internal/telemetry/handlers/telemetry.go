package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"prompt2world-server/internal/middleware"
	"prompt2world-server/internal/shared/errors"
	"prompt2world-server/internal/shared/response"
	"prompt2world-server/internal/telemetry"
)

type TelemetryHandler struct {
	service *telemetry.Service
	logger  *slog.Logger
}

func NewTelemetryHandler(service *telemetry.Service, logger *slog.Logger) *TelemetryHandler {
	return &TelemetryHandler{
		service: service,
		logger:  logger,
	}
}

// Ingest handles POST /api/telemetry.
func (h *TelemetryHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		response.Error(w, r, h.logger, errors.Unauthorized("authentication required"))
		return
	}

	var req telemetry.IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, h.logger, errors.WrapValidation("invalid request body", err))
		return
	}

	stored, err := h.service.Ingest(r.Context(), claims.UserID, claims.SessionID, &req)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.Success(w, http.StatusAccepted, map[string]interface{}{
		"success": true,
		"stored":  stored,
	})
}

// List handles GET /api/admin/telemetry?user_id=|session_id=. Admin only.
func (h *TelemetryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	var (
		events []telemetry.Event
		err    error
	)
	switch {
	case r.URL.Query().Get("user_id") != "":
		events, err = h.service.ListByUser(r.Context(), r.URL.Query().Get("user_id"), limit, offset)
	case r.URL.Query().Get("session_id") != "":
		events, err = h.service.ListBySession(r.Context(), r.URL.Query().Get("session_id"), limit, offset)
	default:
		err = errors.Validation("either user_id or session_id is required")
	}
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	response.Success(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}
