package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"prompt2world-server/internal/shared/database"
	"prompt2world-server/internal/shared/response"
)

type HealthHandler struct {
	db      *database.DB
	started time.Time
}

func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{
		db:      db,
		started: time.Now(),
	}
}

// Health reports service liveness plus database reachability.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK

	if err := h.db.PingContext(r.Context()); err != nil {
		slog.Error("Health check database ping failed", "error", err)
		status = "degraded"
		dbStatus = "unreachable"
		code = http.StatusServiceUnavailable
	}

	response.Success(w, code, map[string]interface{}{
		"status":         status,
		"database":       dbStatus,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}
