package worldgen

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/cespare/xxhash/v2"
)

// Catalog is the read-only prefab catalog the generator queries. Mutating the
// catalog is an administrative concern outside this package; implementations
// must support concurrent reads and return copy-on-read snapshots.
type Catalog interface {
	Query(ctx context.Context, tags []string, worldType WorldType) ([]PrefabDescriptor, error)
	Get(ctx context.Context, prefabID string) (*PrefabDescriptor, error)
}

// Generator runs the prompt-to-blueprint pipeline. It holds no mutable state
// between requests; every call derives its own seeded random stream from the
// prompt text.
type Generator struct {
	catalog Catalog
	tables  Tables
	cfg     Config
	logger  *slog.Logger
}

func NewGenerator(catalog Catalog, tables Tables, cfg Config, logger *slog.Logger) *Generator {
	logger.Debug("Initializing world generator",
		"max_selected_prefabs", cfg.MaxSelectedPrefabs,
		"world_bound", cfg.WorldBound,
	)

	return &Generator{
		catalog: catalog,
		tables:  tables,
		cfg:     cfg,
		logger:  logger,
	}
}

// Generate runs the five pipeline stages sequentially. The degraded return is
// true when the catalog yielded nothing (unavailable or simply no matches)
// and the blueprint fell back to an empty prefab set; that case is still a
// success for the caller. An error return means an internal invariant was
// violated and the whole request must fail.
func (g *Generator) Generate(ctx context.Context, prompt string, hint *WorldType) (*WorldBlueprint, bool, error) {
	logger := g.logger.With("component", "world_generator", "operation", "generate")

	profile := Classify(prompt, hint, g.tables)
	logger.Debug("Prompt classified",
		"world_type", profile.WorldType,
		"keywords", len(profile.Keywords),
	)

	env := ComposeEnvironment(profile, g.tables)

	rng := rand.New(rand.NewSource(promptSeed(prompt)))

	candidates := g.queryCatalog(ctx, profile, logger)
	selected := SelectPrefabs(profile, candidates, rng, g.tables, g.cfg)

	instances, spawns := PlacePrefabs(selected, profile.WorldType, rng, g.cfg, logger)

	blueprint := AssembleBlueprint(prompt, profile, env, instances, spawns, rng, g.tables)

	if err := ValidateBlueprint(&blueprint, g.cfg); err != nil {
		logger.Error("Generated blueprint violates invariants", "error", err)
		return nil, false, fmt.Errorf("blueprint validation failed: %w", err)
	}

	degraded := len(instances) == 0
	logger.Info("World blueprint generated",
		"blueprint_id", blueprint.ID,
		"world_type", blueprint.WorldType,
		"instances", len(instances),
		"spawn_points", len(spawns),
		"degraded", degraded,
	)

	return &blueprint, degraded, nil
}

// queryCatalog is the pipeline's single blocking call. Failures and timeouts
// degrade to an empty candidate pool rather than failing the request.
func (g *Generator) queryCatalog(ctx context.Context, profile ThemeProfile, logger *slog.Logger) []PrefabDescriptor {
	queryCtx, cancel := context.WithTimeout(ctx, g.cfg.CatalogQueryTimeout)
	defer cancel()

	candidates, err := g.catalog.Query(queryCtx, profile.Keywords, profile.WorldType)
	if err != nil {
		logger.Warn("Prefab catalog unavailable, generating degraded blueprint", "error", err)
		return nil
	}
	return candidates
}

// promptSeed derives the deterministic per-request seed from the prompt text.
func promptSeed(prompt string) int64 {
	return int64(xxhash.Sum64String(prompt))
}
