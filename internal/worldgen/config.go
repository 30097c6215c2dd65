package worldgen

import (
	"time"
)

// Config holds the spatial and sampling tunables of the pipeline. The source
// material does not pin exact values, so everything is a named field with a
// default rather than an inline literal.
type Config struct {
	// MaxSelectedPrefabs caps how many catalog prefabs one blueprint may use.
	MaxSelectedPrefabs int
	// WorldBound is the half-extent of the square world box on the X/Z plane.
	WorldBound float64
	// MinSeparation is the base distance enforced between any two placed
	// instances, before adding their footprint radii.
	MinSeparation float64
	// ClearanceRadius is the minimum distance between a spawn point and any
	// placed instance footprint.
	ClearanceRadius float64
	// MaxPlacementRetries bounds candidate positions tried per prefab before
	// the prefab is dropped.
	MaxPlacementRetries int
	// MaxSpawnRetries bounds spawn point candidates before falling back to
	// the safe origin offset.
	MaxSpawnRetries int
	// MaxFootprint is the largest allowed horizontal footprint; descriptors
	// exceeding it are scaled down uniformly.
	MaxFootprint float64
	// SpawnHeight is the Y coordinate of generated spawn points.
	SpawnHeight float64
	// CatalogQueryTimeout bounds the one blocking call the pipeline makes.
	CatalogQueryTimeout time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		MaxSelectedPrefabs:  8,
		WorldBound:          100,
		MinSeparation:       4,
		ClearanceRadius:     3,
		MaxPlacementRetries: 10,
		MaxSpawnRetries:     10,
		MaxFootprint:        20,
		SpawnHeight:         1,
		CatalogQueryTimeout: 2 * time.Second,
	}
}
