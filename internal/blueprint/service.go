package blueprint

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"prompt2world-server/internal/shared/errors"
	"prompt2world-server/internal/worldgen"
)

type Service struct {
	generator *worldgen.Generator
	repo      *Repository
	logger    *slog.Logger
}

func NewService(generator *worldgen.Generator, repo *Repository, logger *slog.Logger) *Service {
	logger.Debug("Initializing blueprint service")

	return &Service{
		generator: generator,
		repo:      repo,
		logger:    logger,
	}
}

// Generate runs the full prompt-to-blueprint pipeline for a user and persists
// the result. A degraded run (empty catalog) is still a success; the response
// message says so.
func (s *Service) Generate(ctx context.Context, userID string, req *GenerateRequest) (*GenerateResponse, error) {
	logger := s.logger.With("component", "blueprint_service", "operation", "generate", "user_id", userID)

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, errors.Validation("prompt is required")
	}
	if len(prompt) > maxPromptLength {
		return nil, errors.Validationf("prompt exceeds %d characters", maxPromptLength)
	}

	var hint *worldgen.WorldType
	if req.WorldType != "" {
		wt, ok := worldgen.ParseWorldType(req.WorldType)
		if !ok {
			return nil, errors.Validationf("invalid world type: %s", req.WorldType)
		}
		hint = &wt
	}

	start := time.Now()
	bp, degraded, err := s.generator.Generate(ctx, prompt, hint)
	if err != nil {
		return nil, errors.WrapInternal("world generation failed", err)
	}

	if err := s.repo.Save(ctx, bp, userID); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	message := "World generated successfully"
	if degraded {
		message = "World generated without prefabs; the catalog had no matches"
	}

	logger.Info("Blueprint generated and stored",
		"blueprint_id", bp.ID,
		"world_type", bp.WorldType,
		"degraded", degraded,
		"processing_time_ms", elapsed.Milliseconds(),
	)

	return &GenerateResponse{
		Success:          true,
		WorldBlueprint:   bp,
		Message:          message,
		ProcessingTimeMs: elapsed.Milliseconds(),
	}, nil
}

// Get returns a stored blueprint by id.
func (s *Service) Get(ctx context.Context, id string) (*worldgen.WorldBlueprint, error) {
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, errors.NotFoundf("world %s not found", id)
	}
	return stored.Blueprint, nil
}

// ListByUser returns a user's stored blueprints, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string, limit, offset int) ([]worldgen.WorldBlueprint, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	blueprints, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if blueprints == nil {
		blueprints = []worldgen.WorldBlueprint{}
	}
	return blueprints, nil
}
