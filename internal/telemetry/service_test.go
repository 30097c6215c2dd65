package telemetry

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"prompt2world-server/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestValidation(t *testing.T) {
	// Validation failures return before the repository is touched.
	svc := NewService(nil, slog.Default())

	oversized := json.RawMessage(`"` + strings.Repeat("x", maxPayloadBytes) + `"`)

	bigBatch := make([]EventInput, maxBatchSize+1)
	for i := range bigBatch {
		bigBatch[i] = EventInput{EventType: "world_loaded"}
	}

	cases := []struct {
		name string
		req  IngestRequest
	}{
		{"empty batch", IngestRequest{}},
		{"oversized batch", IngestRequest{Events: bigBatch}},
		{"blank event type", IngestRequest{Events: []EventInput{{EventType: "  "}}}},
		{"oversized payload", IngestRequest{Events: []EventInput{{EventType: "world_loaded", Payload: oversized}}}},
		{"malformed payload", IngestRequest{Events: []EventInput{{EventType: "world_loaded", Payload: json.RawMessage(`{"a":`)}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Ingest(context.Background(), "user-1", "session-1", &tc.req)
			require.Error(t, err)
			assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))
		})
	}
}

func TestClampLimits(t *testing.T) {
	assert.Equal(t, 100, clampLimit(0))
	assert.Equal(t, 100, clampLimit(10000))
	assert.Equal(t, 25, clampLimit(25))
	assert.Equal(t, 0, clampOffset(-5))
	assert.Equal(t, 40, clampOffset(40))
}
