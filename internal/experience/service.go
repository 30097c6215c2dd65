package experience

import (
	"context"
	"log/slog"
	"strings"

	"prompt2world-server/internal/blueprint"
	"prompt2world-server/internal/shared/errors"

	"github.com/google/uuid"
)

// maxTitleLength bounds user-supplied titles on publish.
const maxTitleLength = 120

type Service struct {
	repo       *Repository
	blueprints *blueprint.Service
	logger     *slog.Logger
}

func NewService(repo *Repository, blueprints *blueprint.Service, logger *slog.Logger) *Service {
	logger.Debug("Initializing experience service")

	return &Service{
		repo:       repo,
		blueprints: blueprints,
		logger:     logger,
	}
}

// Publish puts a generated world into the public gallery. The blueprint must
// exist and belong to the caller; title and description default to the
// blueprint's own when omitted.
func (s *Service) Publish(ctx context.Context, userID string, req *PublishRequest) (*Experience, error) {
	logger := s.logger.With(
		"component", "experience_service",
		"operation", "publish",
		"user_id", userID,
		"blueprint_id", req.BlueprintID,
	)

	if strings.TrimSpace(req.BlueprintID) == "" {
		return nil, errors.Validation("blueprint_id is required")
	}
	if len(req.Title) > maxTitleLength {
		return nil, errors.Validationf("title exceeds %d characters", maxTitleLength)
	}

	stored, err := s.blueprints.Get(ctx, req.BlueprintID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = stored.Title
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = stored.Description
	}

	exp := &Experience{
		ID:          uuid.NewString(),
		BlueprintID: req.BlueprintID,
		UserID:      userID,
		Title:       title,
		Description: description,
		WorldType:   string(stored.WorldType),
	}

	created, err := s.repo.Create(ctx, exp)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, errors.Conflictf("world %s is already published", req.BlueprintID)
	}

	logger.Info("Experience published", "experience_id", exp.ID, "world_type", exp.WorldType)
	return exp, nil
}

// Get returns a published experience and records the visit.
func (s *Service) Get(ctx context.Context, id string) (*Experience, error) {
	exp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, errors.NotFoundf("experience %s not found", id)
	}

	if err := s.repo.IncrementPlayCount(ctx, id); err != nil {
		// A lost play count is not worth failing the request
		s.logger.Warn("Failed to record experience play", "experience_id", id, "error", err)
	}

	return exp, nil
}

// ListPublic returns the public gallery, newest first.
func (s *Service) ListPublic(ctx context.Context, worldType string, limit, offset int) (*ListResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	experiences, err := s.repo.ListPublic(ctx, worldType, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, worldType)
	if err != nil {
		return nil, err
	}

	if experiences == nil {
		experiences = []Experience{}
	}

	return &ListResponse{
		Experiences: experiences,
		Total:       total,
		Limit:       limit,
		Offset:      offset,
	}, nil
}

// Unpublish removes an experience. Only the publisher or an admin may do it;
// the handler decides admin, the service enforces ownership.
func (s *Service) Unpublish(ctx context.Context, id, userID string, isAdmin bool) error {
	logger := s.logger.With("component", "experience_service", "operation", "unpublish", "experience_id", id)

	exp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if exp == nil {
		return errors.NotFoundf("experience %s not found", id)
	}
	if exp.UserID != userID && !isAdmin {
		return errors.Forbidden("only the publisher can unpublish this experience")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.NotFoundf("experience %s not found", id)
	}

	logger.Info("Experience unpublished")
	return nil
}
