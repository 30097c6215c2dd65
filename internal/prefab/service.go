package prefab

import (
	"context"
	"log/slog"
	"strings"

	"prompt2world-server/internal/shared/errors"
	"prompt2world-server/internal/worldgen"
)

// Service owns the prefab catalog. It doubles as the generator's Catalog:
// Query and Get satisfy worldgen.Catalog.
type Service struct {
	repo   *Repository
	logger *slog.Logger
}

func NewService(repo *Repository, logger *slog.Logger) *Service {
	logger.Debug("Initializing prefab service")

	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Query returns descriptors whose tags intersect the prompt keywords or the
// classified world type. Part of the worldgen.Catalog contract.
func (s *Service) Query(ctx context.Context, tags []string, worldType worldgen.WorldType) ([]worldgen.PrefabDescriptor, error) {
	lookup := make([]string, 0, len(tags)+1)
	lookup = append(lookup, tags...)
	lookup = append(lookup, string(worldType))

	items, err := s.repo.QueryByTags(ctx, lookup)
	if err != nil {
		return nil, err
	}

	descriptors := make([]worldgen.PrefabDescriptor, 0, len(items))
	for i := range items {
		descriptors = append(descriptors, items[i].Descriptor())
	}
	return descriptors, nil
}

// Get returns a single descriptor by id, or nil when absent. Part of the
// worldgen.Catalog contract.
func (s *Service) Get(ctx context.Context, prefabID string) (*worldgen.PrefabDescriptor, error) {
	item, err := s.repo.GetByID(ctx, prefabID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	descriptor := item.Descriptor()
	return &descriptor, nil
}

// List returns a paginated catalog view, optionally filtered by prefab type
// or matched against a search query.
func (s *Service) List(ctx context.Context, typeFilter, search string, limit, offset int) (*ListResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var prefabType *worldgen.PrefabType
	if typeFilter != "" {
		pt, ok := worldgen.ParsePrefabType(typeFilter)
		if !ok {
			return nil, errors.Validationf("invalid prefab type: %s", typeFilter)
		}
		prefabType = &pt
	}

	var (
		items []CatalogItem
		err   error
	)
	if search != "" {
		items, err = s.repo.Search(ctx, search, limit, offset)
	} else {
		items, err = s.repo.List(ctx, prefabType, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, prefabType)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []CatalogItem{}
	}

	return &ListResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

// GetItem returns the full catalog item for an id.
func (s *Service) GetItem(ctx context.Context, id string) (*CatalogItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.NotFoundf("prefab %s not found", id)
	}
	return item, nil
}

// CreateItem registers a new prefab in the catalog.
func (s *Service) CreateItem(ctx context.Context, req *CreateItemRequest) (*CatalogItem, error) {
	logger := s.logger.With("component", "prefab_service", "operation", "create_item", "prefab_id", req.ID)

	item, err := itemFromRequest(req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, errors.Conflictf("prefab %s already exists", req.ID)
	}

	logger.Info("Prefab registered", "type", item.Type, "tags", len(item.Tags))
	return item, nil
}

// UpdateItem applies a partial update to a catalog item.
func (s *Service) UpdateItem(ctx context.Context, id string, req *UpdateItemRequest) (*CatalogItem, error) {
	logger := s.logger.With("component", "prefab_service", "operation", "update_item", "prefab_id", id)

	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, errors.Validation("prefab name cannot be empty")
		}
		item.Name = *req.Name
	}
	if req.Type != nil {
		pt, ok := worldgen.ParsePrefabType(*req.Type)
		if !ok {
			return nil, errors.Validationf("invalid prefab type: %s", *req.Type)
		}
		item.Type = pt
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Tags != nil {
		item.Tags = normalizeTags(*req.Tags)
	}
	if req.Bounds != nil {
		if err := validateBounds(*req.Bounds); err != nil {
			return nil, err
		}
		item.Bounds = *req.Bounds
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, errors.NotFoundf("prefab %s not found", id)
	}

	logger.Info("Prefab updated")
	return item, nil
}

// DeleteItem removes a prefab from the catalog.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	logger := s.logger.With("component", "prefab_service", "operation", "delete_item", "prefab_id", id)

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.NotFoundf("prefab %s not found", id)
	}

	logger.Info("Prefab deleted")
	return nil
}

func itemFromRequest(req *CreateItemRequest) (*CatalogItem, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, errors.Validation("prefab id is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.Validation("prefab name is required")
	}

	pt, ok := worldgen.ParsePrefabType(req.Type)
	if !ok {
		return nil, errors.Validationf("invalid prefab type: %s", req.Type)
	}

	bounds := req.Bounds
	if bounds == (worldgen.Vector3{}) {
		bounds = worldgen.Vector3{X: 1, Y: 1, Z: 1}
	}
	if err := validateBounds(bounds); err != nil {
		return nil, err
	}

	return &CatalogItem{
		ID:          strings.TrimSpace(req.ID),
		Name:        strings.TrimSpace(req.Name),
		Type:        pt,
		Description: req.Description,
		Tags:        normalizeTags(req.Tags),
		Bounds:      bounds,
	}, nil
}

func validateBounds(b worldgen.Vector3) error {
	if b.X <= 0 || b.Y <= 0 || b.Z <= 0 {
		return errors.Validation("prefab bounds must be positive in every axis")
	}
	return nil
}

// normalizeTags lowercases and deduplicates tags, preserving first-seen order.
func normalizeTags(tags []string) StringList {
	seen := make(map[string]bool, len(tags))
	out := make(StringList, 0, len(tags))

	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
