package worldgen

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// placementPattern is the closed set of candidate-position strategies.
type placementPattern int

const (
	patternRadial placementPattern = iota
	patternGrid
	patternSparse
)

// patternTable dispatches world types to placement strategies.
var patternTable = map[WorldType]placementPattern{
	WorldTypeFantasy:    patternRadial,
	WorldTypeNature:     patternRadial,
	WorldTypeSurreal:    patternRadial,
	WorldTypeHistorical: patternRadial,
	WorldTypeRealistic:  patternGrid,
	WorldTypeUrban:      patternGrid,
	WorldTypeSciFi:      patternSparse,
	WorldTypeSpace:      patternSparse,
}

const gridCellSize = 12.0

// PlacePrefabs assigns each selected descriptor a position, rotation and
// scale, and generates spawn points clear of every placed footprint. The rng
// must be the same stream the selector used so a whole pipeline run is
// reproducible from one seed. Prefabs that cannot be validly positioned
// within the retry budget are dropped, never fatal.
func PlacePrefabs(descriptors []PrefabDescriptor, worldType WorldType, rng *rand.Rand, cfg Config, logger *slog.Logger) ([]PrefabInstance, []Vector3) {
	pattern, ok := patternTable[worldType]
	if !ok {
		pattern = patternRadial
	}

	placed := make([]PrefabInstance, 0, len(descriptors))
	placedBounds := make([]Vector3, 0, len(descriptors))

	for _, desc := range descriptors {
		instance, ok := placeOne(desc, pattern, placed, placedBounds, rng, cfg)
		if !ok {
			logger.Debug("Dropping prefab, placement retries exhausted",
				"prefab_id", desc.ID,
				"retries", cfg.MaxPlacementRetries,
			)
			continue
		}
		placed = append(placed, instance)
		placedBounds = append(placedBounds, desc.Bounds)
	}

	spawns := spawnPoints(placed, placedBounds, rng, cfg)
	return placed, spawns
}

// placeOne walks a single prefab through candidate generation and validation
// until it is placed or the retry budget is exhausted.
func placeOne(desc PrefabDescriptor, pattern placementPattern, placed []PrefabInstance, placedBounds []Vector3, rng *rand.Rand, cfg Config) (PrefabInstance, bool) {
	for attempt := 0; attempt < cfg.MaxPlacementRetries; attempt++ {
		candidate := candidatePosition(pattern, rng, cfg)
		if !validPosition(candidate, desc.Bounds, placed, placedBounds, cfg) {
			continue
		}

		return PrefabInstance{
			ID:         uuid.NewString(),
			PrefabID:   desc.ID,
			PrefabType: desc.Type,
			Position:   candidate,
			Rotation:   sampleRotation(desc.Type, rng),
			Scale:      normalizedScale(desc.Bounds, cfg),
			Properties: map[string]interface{}{"prefab_name": desc.Name},
		}, true
	}
	return PrefabInstance{}, false
}

func candidatePosition(pattern placementPattern, rng *rand.Rand, cfg Config) Vector3 {
	switch pattern {
	case patternGrid:
		cells := int(2 * cfg.WorldBound / gridCellSize)
		if cells < 1 {
			cells = 1
		}
		ix := rng.Intn(cells) - cells/2
		iz := rng.Intn(cells) - cells/2
		jitterX := rng.Float64()*2 - 1
		jitterZ := rng.Float64()*2 - 1
		return Vector3{
			X: float64(ix)*gridCellSize + jitterX,
			Y: 0,
			Z: float64(iz)*gridCellSize + jitterZ,
		}
	case patternSparse:
		return Vector3{
			X: (rng.Float64()*2 - 1) * cfg.WorldBound,
			Y: 0,
			Z: (rng.Float64()*2 - 1) * cfg.WorldBound,
		}
	default: // patternRadial
		angle := rng.Float64() * 2 * math.Pi
		maxRadius := cfg.WorldBound - 2
		if maxRadius < 0 {
			maxRadius = cfg.WorldBound
		}
		radius := rng.Float64() * maxRadius
		return Vector3{
			X: radius * math.Cos(angle),
			Y: 0,
			Z: radius * math.Sin(angle),
		}
	}
}

func validPosition(candidate Vector3, bounds Vector3, placed []PrefabInstance, placedBounds []Vector3, cfg Config) bool {
	if math.Abs(candidate.X) > cfg.WorldBound || math.Abs(candidate.Z) > cfg.WorldBound {
		return false
	}

	for i, other := range placed {
		required := cfg.MinSeparation + footprintRadius(bounds) + footprintRadius(placedBounds[i])
		if horizontalDistance(candidate, other.Position) < required {
			return false
		}
	}
	return true
}

// footprintRadius treats the descriptor bounds as an axis-aligned box and
// returns half its larger horizontal dimension.
func footprintRadius(bounds Vector3) float64 {
	return math.Max(bounds.X, bounds.Z) / 2
}

func horizontalDistance(a, b Vector3) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dz*dz)
}

// sampleRotation gives physically oriented prefabs a random yaw about the
// vertical axis and leaves everything else at identity.
func sampleRotation(prefabType PrefabType, rng *rand.Rand) Quaternion {
	switch prefabType {
	case PrefabTypeBuilding, PrefabTypeEnvironment, PrefabTypeProp,
		PrefabTypeCharacter, PrefabTypeVehicle:
		return yawQuaternion(rng.Float64() * 2 * math.Pi)
	default:
		return IdentityQuaternion()
	}
}

func yawQuaternion(yaw float64) Quaternion {
	half := yaw / 2
	return Quaternion{X: 0, Y: math.Sin(half), Z: 0, W: math.Cos(half)}
}

// normalizedScale keeps the default unit scale unless the descriptor's
// footprint exceeds the configured maximum, in which case the instance is
// scaled down uniformly.
func normalizedScale(bounds Vector3, cfg Config) Vector3 {
	maxDim := math.Max(bounds.X, math.Max(bounds.Y, bounds.Z))
	if cfg.MaxFootprint > 0 && maxDim > cfg.MaxFootprint {
		s := cfg.MaxFootprint / maxDim
		return Vector3{X: s, Y: s, Z: s}
	}
	return Vector3{X: 1, Y: 1, Z: 1}
}

// spawnPoints produces at least one spawn location clear of every placed
// instance. With nothing placed there is exactly one safe default.
func spawnPoints(placed []PrefabInstance, placedBounds []Vector3, rng *rand.Rand, cfg Config) []Vector3 {
	if len(placed) == 0 {
		return []Vector3{{X: 0, Y: cfg.SpawnHeight, Z: 0}}
	}

	const spawnTarget = 2
	spawns := make([]Vector3, 0, spawnTarget)

	for i := 0; i < spawnTarget; i++ {
		for attempt := 0; attempt < cfg.MaxSpawnRetries; attempt++ {
			angle := rng.Float64() * 2 * math.Pi
			radius := rng.Float64() * cfg.WorldBound / 2
			candidate := Vector3{
				X: radius * math.Cos(angle),
				Y: cfg.SpawnHeight,
				Z: radius * math.Sin(angle),
			}
			if spawnClear(candidate, placed, placedBounds, cfg) {
				spawns = append(spawns, candidate)
				break
			}
		}
	}

	if len(spawns) == 0 {
		spawns = append(spawns, fallbackSpawn(placed, cfg))
	}

	return spawns
}

// fallbackSpawn picks the world-box corner farthest from the nearest placed
// instance, so the fallback stays clear even of dense layouts.
func fallbackSpawn(placed []PrefabInstance, cfg Config) Vector3 {
	offset := cfg.WorldBound - cfg.ClearanceRadius
	if offset < 0 {
		offset = 0
	}

	corners := []Vector3{
		{X: -offset, Y: cfg.SpawnHeight, Z: -offset},
		{X: offset, Y: cfg.SpawnHeight, Z: -offset},
		{X: -offset, Y: cfg.SpawnHeight, Z: offset},
		{X: offset, Y: cfg.SpawnHeight, Z: offset},
	}

	best := corners[0]
	bestClearance := math.Inf(-1)
	for _, corner := range corners {
		nearest := math.Inf(1)
		for _, inst := range placed {
			if d := horizontalDistance(corner, inst.Position); d < nearest {
				nearest = d
			}
		}
		if nearest > bestClearance {
			bestClearance = nearest
			best = corner
		}
	}
	return best
}

func spawnClear(candidate Vector3, placed []PrefabInstance, placedBounds []Vector3, cfg Config) bool {
	for i, inst := range placed {
		required := cfg.ClearanceRadius + footprintRadius(placedBounds[i])
		if horizontalDistance(candidate, inst.Position) < required {
			return false
		}
	}
	return true
}
