package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"prompt2world-server/internal/shared/database"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing telemetry repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

// InsertBatch writes a batch of events in one transaction so a partial batch
// never lands.
func (r *Repository) InsertBatch(ctx context.Context, events []Event) error {
	logger := r.logger.With("component", "telemetry_repository", "operation", "insert_batch", "count", len(events))

	tx, err := r.db.BeginTxContext(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO telemetry_events (user_id, session_id, event_type, payload)
		VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		logger.Error("Failed to prepare telemetry insert", "error", err)
		return fmt.Errorf("failed to prepare telemetry insert: %w", err)
	}
	defer stmt.Close()

	for i := range events {
		e := &events[i]
		payload := e.Payload
		if len(payload) == 0 {
			payload = []byte("{}")
		}
		if _, err := stmt.ExecContext(ctx, e.UserID, e.SessionID, e.EventType, []byte(payload)); err != nil {
			logger.Error("Failed to insert telemetry event", "error", err, "event_type", e.EventType)
			return fmt.Errorf("failed to insert telemetry event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Failed to commit telemetry batch", "error", err)
		return fmt.Errorf("failed to commit telemetry batch: %w", err)
	}

	logger.Debug("Telemetry batch stored")
	return nil
}

// ListByUser returns a user's events, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Event, error) {
	return r.list(ctx, "user_id", userID, limit, offset)
}

// ListBySession returns a session's events, newest first.
func (r *Repository) ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]Event, error) {
	return r.list(ctx, "session_id", sessionID, limit, offset)
}

func (r *Repository) list(ctx context.Context, column, value string, limit, offset int) ([]Event, error) {
	logger := r.logger.With("component", "telemetry_repository", "operation", "list", "filter", column)

	query := fmt.Sprintf(`
		SELECT id, user_id, session_id, event_type, payload, created_at
		FROM telemetry_events
		WHERE %s = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, column)

	rows, err := r.db.QueryContext(ctx, query, value, limit, offset)
	if err != nil {
		logger.Error("Failed to list telemetry events", "error", err)
		return nil, fmt.Errorf("failed to list telemetry events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var payload []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.SessionID, &e.EventType, &payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan telemetry event: %w", err)
		}
		e.Payload = payload
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate telemetry events: %w", err)
	}

	return events, nil
}
