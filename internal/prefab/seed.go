package prefab

import (
	"context"
	"fmt"
	"log/slog"

	"prompt2world-server/internal/worldgen"
)

// defaultCatalog is the starter set loaded on first boot. Ids are stable so
// reseeding an existing database is a no-op.
var defaultCatalog = []CatalogItem{
	{
		ID:          "magic_tree_01",
		Name:        "Enchanted Oak",
		Type:        worldgen.PrefabTypeEnvironment,
		Description: "A gnarled oak wrapped in softly glowing runes.",
		Tags:        StringList{"fantasy", "magical", "tree", "forest", "mystical", "ancient"},
		Bounds:      worldgen.Vector3{X: 5, Y: 12, Z: 5},
	},
	{
		ID:          "castle_tower_01",
		Name:        "Watchtower Ruin",
		Type:        worldgen.PrefabTypeBuilding,
		Description: "A crumbling stone tower from a forgotten kingdom.",
		Tags:        StringList{"fantasy", "castle", "medieval", "stone", "ancient"},
		Bounds:      worldgen.Vector3{X: 8, Y: 18, Z: 8},
	},
	{
		ID:          "dragon_statue_01",
		Name:        "Dragon Effigy",
		Type:        worldgen.PrefabTypeProp,
		Description: "A weathered statue of a coiled dragon.",
		Tags:        StringList{"fantasy", "dragon", "statue", "magical"},
		Bounds:      worldgen.Vector3{X: 4, Y: 6, Z: 4},
	},
	{
		ID:          "hover_car_01",
		Name:        "Hover Coupe",
		Type:        worldgen.PrefabTypeVehicle,
		Description: "A sleek two-seater gliding on repulsor fields.",
		Tags:        StringList{"sci_fi", "futuristic", "vehicle", "neon", "cyberpunk"},
		Bounds:      worldgen.Vector3{X: 4, Y: 2, Z: 6},
	},
	{
		ID:          "neon_sign_01",
		Name:        "Holo Billboard",
		Type:        worldgen.PrefabTypeLighting,
		Description: "A flickering holographic advertisement panel.",
		Tags:        StringList{"sci_fi", "urban", "neon", "cyberpunk", "city"},
		Bounds:      worldgen.Vector3{X: 6, Y: 4, Z: 1},
	},
	{
		ID:          "research_dome_01",
		Name:        "Research Dome",
		Type:        worldgen.PrefabTypeBuilding,
		Description: "A pressurized geodesic habitat module.",
		Tags:        StringList{"sci_fi", "space", "station", "colony", "futuristic"},
		Bounds:      worldgen.Vector3{X: 14, Y: 8, Z: 14},
	},
	{
		ID:          "asteroid_cluster_01",
		Name:        "Asteroid Cluster",
		Type:        worldgen.PrefabTypeEnvironment,
		Description: "Slow-tumbling rocks suspended against the stars.",
		Tags:        StringList{"space", "asteroid", "stars", "cosmic"},
		Bounds:      worldgen.Vector3{X: 10, Y: 10, Z: 10},
	},
	{
		ID:          "lunar_lander_01",
		Name:        "Lander Relic",
		Type:        worldgen.PrefabTypeVehicle,
		Description: "A retired descent vehicle resting on scorched struts.",
		Tags:        StringList{"space", "ship", "mars", "colony", "spaceship"},
		Bounds:      worldgen.Vector3{X: 5, Y: 7, Z: 5},
	},
	{
		ID:          "oak_tree_01",
		Name:        "Broadleaf Oak",
		Type:        worldgen.PrefabTypeEnvironment,
		Description: "A mature oak with a wide summer canopy.",
		Tags:        StringList{"nature", "tree", "forest", "green", "realistic"},
		Bounds:      worldgen.Vector3{X: 6, Y: 11, Z: 6},
	},
	{
		ID:          "boulder_01",
		Name:        "Granite Boulder",
		Type:        worldgen.PrefabTypeProp,
		Description: "A moss-speckled granite boulder.",
		Tags:        StringList{"nature", "rock", "mountain", "realistic"},
		Bounds:      worldgen.Vector3{X: 3, Y: 2, Z: 3},
	},
	{
		ID:          "park_bench_01",
		Name:        "Park Bench",
		Type:        worldgen.PrefabTypeProp,
		Description: "A cast-iron bench with wooden slats.",
		Tags:        StringList{"urban", "city", "park", "realistic", "street"},
		Bounds:      worldgen.Vector3{X: 2, Y: 1, Z: 1},
	},
	{
		ID:          "office_tower_01",
		Name:        "Glass Tower",
		Type:        worldgen.PrefabTypeBuilding,
		Description: "A mirrored high-rise office block.",
		Tags:        StringList{"urban", "city", "skyscraper", "modern", "building"},
		Bounds:      worldgen.Vector3{X: 12, Y: 40, Z: 12},
	},
	{
		ID:          "farm_house_01",
		Name:        "Farmhouse",
		Type:        worldgen.PrefabTypeBuilding,
		Description: "A timber farmhouse with a wraparound porch.",
		Tags:        StringList{"realistic", "rural", "house", "field", "village"},
		Bounds:      worldgen.Vector3{X: 9, Y: 6, Z: 7},
	},
	{
		ID:          "floating_island_01",
		Name:        "Drifting Isle",
		Type:        worldgen.PrefabTypeEnvironment,
		Description: "A chunk of meadow hanging motionless in the air.",
		Tags:        StringList{"surreal", "dream", "floating", "impossible", "strange"},
		Bounds:      worldgen.Vector3{X: 15, Y: 6, Z: 15},
	},
	{
		ID:          "melting_clock_01",
		Name:        "Melting Clock",
		Type:        worldgen.PrefabTypeProp,
		Description: "An oversized clock face drooping over its pedestal.",
		Tags:        StringList{"surreal", "dream", "strange", "abstract"},
		Bounds:      worldgen.Vector3{X: 3, Y: 3, Z: 2},
	},
	{
		ID:          "roman_column_01",
		Name:        "Marble Column",
		Type:        worldgen.PrefabTypeBuilding,
		Description: "A fluted marble column, capital half gone.",
		Tags:        StringList{"historical", "ancient", "ruins", "stone", "roman"},
		Bounds:      worldgen.Vector3{X: 2, Y: 9, Z: 2},
	},
	{
		ID:          "market_stall_01",
		Name:        "Market Stall",
		Type:        worldgen.PrefabTypeProp,
		Description: "A canvas-roofed trader's stall with empty crates.",
		Tags:        StringList{"historical", "medieval", "village", "market"},
		Bounds:      worldgen.Vector3{X: 4, Y: 3, Z: 3},
	},
	{
		ID:          "campfire_01",
		Name:        "Campfire",
		Type:        worldgen.PrefabTypeEffect,
		Description: "A ring of stones around a crackling fire.",
		Tags:        StringList{"nature", "fantasy", "camp", "fire", "warm"},
		Bounds:      worldgen.Vector3{X: 2, Y: 1, Z: 2},
	},
}

// Seed inserts the default catalog items that are not already present.
func Seed(ctx context.Context, repo *Repository, logger *slog.Logger) error {
	logger = logger.With("component", "prefab_seed", "operation", "seed")

	inserted := 0
	for i := range defaultCatalog {
		item := defaultCatalog[i]
		created, err := repo.Create(ctx, &item)
		if err != nil {
			return fmt.Errorf("failed to seed prefab %s: %w", item.ID, err)
		}
		if created {
			inserted++
		}
	}

	if inserted > 0 {
		logger.Info("Prefab catalog seeded", "inserted", inserted, "total_defaults", len(defaultCatalog))
	} else {
		logger.Debug("Prefab catalog already seeded")
	}
	return nil
}
