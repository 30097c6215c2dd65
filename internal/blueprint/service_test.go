package blueprint

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"prompt2world-server/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRequestValidation(t *testing.T) {
	// Validation failures return before the generator or store is touched,
	// so a service without either is enough here.
	svc := NewService(nil, nil, slog.Default())

	cases := []struct {
		name string
		req  GenerateRequest
	}{
		{"empty prompt", GenerateRequest{Prompt: ""}},
		{"whitespace prompt", GenerateRequest{Prompt: "   \t  "}},
		{"oversized prompt", GenerateRequest{Prompt: strings.Repeat("a", maxPromptLength+1)}},
		{"unknown world type", GenerateRequest{Prompt: "a quiet village", WorldType: "underwater"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), "user-1", &tc.req)
			require.Error(t, err)
			assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))
		})
	}
}
