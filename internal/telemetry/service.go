package telemetry

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"prompt2world-server/internal/shared/errors"
)

const (
	// maxBatchSize caps how many events a single ingest call may carry.
	maxBatchSize = 100
	// maxPayloadBytes caps a single event payload.
	maxPayloadBytes = 4096
)

type Service struct {
	repo   *Repository
	logger *slog.Logger
}

func NewService(repo *Repository, logger *slog.Logger) *Service {
	logger.Debug("Initializing telemetry service")

	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Ingest validates and stores a batch of events for the calling session.
func (s *Service) Ingest(ctx context.Context, userID, sessionID string, req *IngestRequest) (int, error) {
	logger := s.logger.With(
		"component", "telemetry_service",
		"operation", "ingest",
		"user_id", userID,
		"session_id", sessionID,
	)

	if len(req.Events) == 0 {
		return 0, errors.Validation("at least one event is required")
	}
	if len(req.Events) > maxBatchSize {
		return 0, errors.Validationf("batch exceeds %d events", maxBatchSize)
	}

	events := make([]Event, 0, len(req.Events))
	for i, input := range req.Events {
		eventType := strings.TrimSpace(input.EventType)
		if eventType == "" {
			return 0, errors.Validationf("event %d has no event_type", i)
		}
		if len(input.Payload) > maxPayloadBytes {
			return 0, errors.Validationf("event %d payload exceeds %d bytes", i, maxPayloadBytes)
		}
		if len(input.Payload) > 0 && !json.Valid(input.Payload) {
			return 0, errors.Validationf("event %d payload is not valid JSON", i)
		}

		events = append(events, Event{
			UserID:    userID,
			SessionID: sessionID,
			EventType: eventType,
			Payload:   input.Payload,
		})
	}

	if err := s.repo.InsertBatch(ctx, events); err != nil {
		return 0, err
	}

	logger.Debug("Telemetry events ingested", "count", len(events))
	return len(events), nil
}

// ListByUser returns a user's events for admin inspection.
func (s *Service) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Event, error) {
	events, err := s.repo.ListByUser(ctx, userID, clampLimit(limit), clampOffset(offset))
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []Event{}
	}
	return events, nil
}

// ListBySession returns a session's events for admin inspection.
func (s *Service) ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]Event, error) {
	events, err := s.repo.ListBySession(ctx, sessionID, clampLimit(limit), clampOffset(offset))
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []Event{}
	}
	return events, nil
}

func clampLimit(limit int) int {
	if limit < 1 || limit > 500 {
		return 100
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
