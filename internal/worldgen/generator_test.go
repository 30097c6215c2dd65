package worldgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	descriptors []PrefabDescriptor
	err         error
}

func (f *fakeCatalog) Query(ctx context.Context, tags []string, worldType WorldType) ([]PrefabDescriptor, error) {
	if f.err != nil {
		return nil, f.err
	}
	// Copy-on-read, matching the real catalog contract.
	out := make([]PrefabDescriptor, len(f.descriptors))
	copy(out, f.descriptors)
	return out, nil
}

func (f *fakeCatalog) Get(ctx context.Context, prefabID string) (*PrefabDescriptor, error) {
	for _, d := range f.descriptors {
		if d.ID == prefabID {
			return &d, nil
		}
	}
	return nil, errors.New("not found")
}

func newTestGenerator(catalog Catalog) *Generator {
	return NewGenerator(catalog, DefaultTables(), DefaultConfig(), slog.Default())
}

func TestGenerateDeterministicForIdenticalPrompts(t *testing.T) {
	gen := newTestGenerator(&fakeCatalog{descriptors: testCatalogDescriptors()})
	prompt := "a mystical fantasy forest with an ancient castle"

	a, aDegraded, err := gen.Generate(context.Background(), prompt, nil)
	require.NoError(t, err)
	b, bDegraded, err := gen.Generate(context.Background(), prompt, nil)
	require.NoError(t, err)

	assert.Equal(t, aDegraded, bDegraded)
	assert.Equal(t, a.Title, b.Title)
	assert.Equal(t, a.Description, b.Description)
	assert.Equal(t, a.WorldType, b.WorldType)
	assert.Equal(t, a.EnvironmentSettings, b.EnvironmentSettings)
	assert.Equal(t, a.SpawnPoints, b.SpawnPoints)

	require.Equal(t, len(a.PrefabInstances), len(b.PrefabInstances))
	for i := range a.PrefabInstances {
		assert.Equal(t, a.PrefabInstances[i].PrefabID, b.PrefabInstances[i].PrefabID)
		assert.Equal(t, a.PrefabInstances[i].Position, b.PrefabInstances[i].Position)
		assert.Equal(t, a.PrefabInstances[i].Rotation, b.PrefabInstances[i].Rotation)
		assert.Equal(t, a.PrefabInstances[i].Scale, b.PrefabInstances[i].Scale)
	}
}

func TestGenerateEmptyCatalogFallback(t *testing.T) {
	gen := newTestGenerator(&fakeCatalog{})

	bp, degraded, err := gen.Generate(context.Background(), "a mystical forest", nil)
	require.NoError(t, err)

	assert.True(t, degraded)
	assert.Empty(t, bp.PrefabInstances)
	assert.Len(t, bp.SpawnPoints, 1)
}

func TestGenerateCatalogErrorIsRecoverable(t *testing.T) {
	gen := newTestGenerator(&fakeCatalog{err: errors.New("connection refused")})

	bp, degraded, err := gen.Generate(context.Background(), "a mystical forest", nil)
	require.NoError(t, err)

	assert.True(t, degraded)
	assert.Empty(t, bp.PrefabInstances)
	assert.Len(t, bp.SpawnPoints, 1)
}

func TestGenerateHonorsHint(t *testing.T) {
	gen := newTestGenerator(&fakeCatalog{descriptors: testCatalogDescriptors()})

	hint := WorldTypeSpace
	bp, _, err := gen.Generate(context.Background(), "a quiet afternoon", &hint)
	require.NoError(t, err)

	assert.Equal(t, WorldTypeSpace, bp.WorldType)
}

func TestGenerateBlueprintInvariants(t *testing.T) {
	gen := newTestGenerator(&fakeCatalog{descriptors: testCatalogDescriptors()})
	cfg := DefaultConfig()

	prompts := []string{
		"a mystical fantasy forest with an ancient castle",
		"city streets with neon buildings at night",
		"spaceship colony on mars",
		"a quiet realistic town",
	}

	for _, prompt := range prompts {
		t.Run(prompt, func(t *testing.T) {
			bp, _, err := gen.Generate(context.Background(), prompt, nil)
			require.NoError(t, err)

			assert.NoError(t, ValidateBlueprint(bp, cfg))
			assert.NotEmpty(t, bp.ID)
			assert.NotEmpty(t, bp.Title)
			assert.NotEmpty(t, bp.Description)
			assert.Equal(t, prompt, bp.Prompt)
			assert.Equal(t, bp.CreatedAt, bp.UpdatedAt)
			assert.NotEmpty(t, bp.SpawnPoints)
		})
	}
}

func TestGenerateInstanceCountBounded(t *testing.T) {
	var many []PrefabDescriptor
	for i := 0; i < 30; i++ {
		many = append(many, PrefabDescriptor{
			ID:     fmt.Sprintf("oak_tree_%02d", i),
			Type:   PrefabTypeEnvironment,
			Tags:   []string{"forest"},
			Bounds: Vector3{X: 2, Y: 5, Z: 2},
		})
	}
	gen := newTestGenerator(&fakeCatalog{descriptors: many})

	bp, degraded, err := gen.Generate(context.Background(), "a forest of trees", nil)
	require.NoError(t, err)

	assert.False(t, degraded)
	assert.LessOrEqual(t, len(bp.PrefabInstances), DefaultConfig().MaxSelectedPrefabs)
	assert.NotEmpty(t, bp.PrefabInstances)
}

func TestValidateBlueprintRejectsBadRotation(t *testing.T) {
	bp := &WorldBlueprint{
		PrefabInstances: []PrefabInstance{{
			ID:       "i1",
			Rotation: Quaternion{X: 0, Y: 0, Z: 0, W: 2},
			Scale:    Vector3{X: 1, Y: 1, Z: 1},
		}},
		SpawnPoints: []Vector3{{X: 50, Y: 1, Z: 50}},
	}

	err := ValidateBlueprint(bp, DefaultConfig())
	assert.Error(t, err)
}

func TestValidateBlueprintRejectsMissingSpawns(t *testing.T) {
	bp := &WorldBlueprint{}
	assert.Error(t, ValidateBlueprint(bp, DefaultConfig()))
}
