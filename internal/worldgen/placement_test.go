package worldgen

import (
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.Default()
}

func TestPlacePrefabsNonOverlap(t *testing.T) {
	cfg := DefaultConfig()
	descriptors := testCatalogDescriptors()

	for _, wt := range []WorldType{WorldTypeFantasy, WorldTypeUrban, WorldTypeSpace} {
		instances, _ := PlacePrefabs(descriptors, wt, rand.New(rand.NewSource(7)), cfg, testLogger())

		for i := range instances {
			for j := i + 1; j < len(instances); j++ {
				dist := horizontalDistance(instances[i].Position, instances[j].Position)
				assert.GreaterOrEqual(t, dist, cfg.MinSeparation,
					"world type %s: instances %d and %d overlap", wt, i, j)
			}
		}
	}
}

func TestPlacePrefabsWithinWorldBounds(t *testing.T) {
	cfg := DefaultConfig()

	instances, _ := PlacePrefabs(testCatalogDescriptors(), WorldTypeSpace, rand.New(rand.NewSource(3)), cfg, testLogger())
	require.NotEmpty(t, instances)

	for _, inst := range instances {
		assert.LessOrEqual(t, math.Abs(inst.Position.X), cfg.WorldBound)
		assert.LessOrEqual(t, math.Abs(inst.Position.Z), cfg.WorldBound)
	}
}

func TestPlacePrefabsRotationsAreUnitQuaternions(t *testing.T) {
	cfg := DefaultConfig()

	instances, _ := PlacePrefabs(testCatalogDescriptors(), WorldTypeFantasy, rand.New(rand.NewSource(11)), cfg, testLogger())
	require.NotEmpty(t, instances)

	for _, inst := range instances {
		q := inst.Rotation
		magnitude := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
		assert.InDelta(t, 1.0, magnitude, quaternionEpsilon)
	}
}

func TestPlacePrefabsYawOnlyRotation(t *testing.T) {
	cfg := DefaultConfig()

	instances, _ := PlacePrefabs(testCatalogDescriptors(), WorldTypeFantasy, rand.New(rand.NewSource(11)), cfg, testLogger())
	require.NotEmpty(t, instances)

	for _, inst := range instances {
		// Buildings and environment props rotate about the vertical axis only.
		assert.Zero(t, inst.Rotation.X)
		assert.Zero(t, inst.Rotation.Z)
	}
}

func TestPlacePrefabsScalePositive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFootprint = 8

	descriptors := testCatalogDescriptors()
	instances, _ := PlacePrefabs(descriptors, WorldTypeFantasy, rand.New(rand.NewSource(5)), cfg, testLogger())

	for _, inst := range instances {
		assert.Greater(t, inst.Scale.X, 0.0)
		assert.Greater(t, inst.Scale.Y, 0.0)
		assert.Greater(t, inst.Scale.Z, 0.0)
	}
}

func TestPlacePrefabsOversizedDescriptorNormalized(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFootprint = 10

	oversized := PrefabDescriptor{
		ID: "giant_01", Type: PrefabTypeBuilding, Bounds: Vector3{X: 40, Y: 30, Z: 40},
	}
	instances, _ := PlacePrefabs([]PrefabDescriptor{oversized}, WorldTypeUrban, rand.New(rand.NewSource(9)), cfg, testLogger())
	require.Len(t, instances, 1)

	assert.InDelta(t, 0.25, instances[0].Scale.X, 1e-9)
	assert.Equal(t, instances[0].Scale.X, instances[0].Scale.Y)
	assert.Equal(t, instances[0].Scale.X, instances[0].Scale.Z)
}

func TestPlacePrefabsBoundedRetries(t *testing.T) {
	// Pathological world: a tiny bounds box with many large prefabs. The
	// planner must terminate within its retry budget and drop what cannot
	// fit, never loop.
	cfg := DefaultConfig()
	cfg.WorldBound = 5
	cfg.MinSeparation = 4

	var descriptors []PrefabDescriptor
	for i := 0; i < 20; i++ {
		descriptors = append(descriptors, PrefabDescriptor{
			ID:     "huge",
			Type:   PrefabTypeBuilding,
			Bounds: Vector3{X: 8, Y: 8, Z: 8},
		})
	}

	instances, spawns := PlacePrefabs(descriptors, WorldTypeUrban, rand.New(rand.NewSource(2)), cfg, testLogger())

	assert.Less(t, len(instances), len(descriptors))
	assert.NotEmpty(t, spawns)
}

func TestSpawnPointsClearOfInstances(t *testing.T) {
	cfg := DefaultConfig()

	instances, spawns := PlacePrefabs(testCatalogDescriptors(), WorldTypeNature, rand.New(rand.NewSource(13)), cfg, testLogger())
	require.NotEmpty(t, spawns)

	for _, sp := range spawns {
		assert.Equal(t, cfg.SpawnHeight, sp.Y)
		for _, inst := range instances {
			assert.GreaterOrEqual(t, horizontalDistance(sp, inst.Position), cfg.ClearanceRadius)
		}
	}
}

func TestSpawnPointsWithoutInstances(t *testing.T) {
	cfg := DefaultConfig()

	instances, spawns := PlacePrefabs(nil, WorldTypeRealistic, rand.New(rand.NewSource(1)), cfg, testLogger())

	assert.Empty(t, instances)
	require.Len(t, spawns, 1)
	assert.Equal(t, Vector3{X: 0, Y: cfg.SpawnHeight, Z: 0}, spawns[0])
}

func TestPlacementOrderDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	descriptors := testCatalogDescriptors()

	a, aSpawns := PlacePrefabs(descriptors, WorldTypeFantasy, rand.New(rand.NewSource(21)), cfg, testLogger())
	b, bSpawns := PlacePrefabs(descriptors, WorldTypeFantasy, rand.New(rand.NewSource(21)), cfg, testLogger())

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].PrefabID, b[i].PrefabID)
		assert.Equal(t, a[i].Position, b[i].Position)
		assert.Equal(t, a[i].Rotation, b[i].Rotation)
		assert.Equal(t, a[i].Scale, b[i].Scale)
	}
	assert.Equal(t, aSpawns, bSpawns)
}
