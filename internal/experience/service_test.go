package experience

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"prompt2world-server/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishValidation(t *testing.T) {
	// Validation failures return before the blueprint store is touched.
	svc := NewService(nil, nil, slog.Default())

	cases := []struct {
		name string
		req  PublishRequest
	}{
		{"missing blueprint id", PublishRequest{}},
		{"blank blueprint id", PublishRequest{BlueprintID: "   "}},
		{"oversized title", PublishRequest{
			BlueprintID: "f2b1a7e0-0000-0000-0000-000000000000",
			Title:       strings.Repeat("t", maxTitleLength+1),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Publish(context.Background(), "user-1", &tc.req)
			require.Error(t, err)
			assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))
		})
	}
}
