package telemetry

import (
	"encoding/json"
	"time"
)

// Event is a single client telemetry record. Payload is schemaless; the
// server stores it verbatim for offline analysis.
type Event struct {
	ID        int64           `json:"id"`
	UserID    string          `json:"user_id"`
	SessionID string          `json:"session_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// IngestRequest accepts one or more events in a single call.
type IngestRequest struct {
	Events []EventInput `json:"events"`
}

// EventInput is the client-supplied portion of an event; identity comes from
// the session token, never from the body.
type EventInput struct {
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}
