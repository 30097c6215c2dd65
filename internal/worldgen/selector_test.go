package worldgen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalogDescriptors() []PrefabDescriptor {
	return []PrefabDescriptor{
		{ID: "fantasy_castle_01", Type: PrefabTypeBuilding, Tags: []string{"fantasy", "castle"}, Bounds: Vector3{X: 10, Y: 12, Z: 10}},
		{ID: "magic_tree_01", Type: PrefabTypeEnvironment, Tags: []string{"fantasy", "forest"}, Bounds: Vector3{X: 3, Y: 6, Z: 3}},
		{ID: "stone_ruins_01", Type: PrefabTypeBuilding, Tags: []string{"ancient", "ruins"}, Bounds: Vector3{X: 6, Y: 4, Z: 6}},
		{ID: "space_station_01", Type: PrefabTypeBuilding, Tags: []string{"space", "station"}, Bounds: Vector3{X: 20, Y: 20, Z: 20}},
		{ID: "oak_tree_01", Type: PrefabTypeEnvironment, Tags: []string{"forest", "tree"}, Bounds: Vector3{X: 2, Y: 5, Z: 2}},
	}
}

func TestSelectPrefabsDeterministicForSameSeed(t *testing.T) {
	tables := DefaultTables()
	cfg := DefaultConfig()
	profile := Classify("a mystical fantasy forest with a castle", nil, tables)

	a := SelectPrefabs(profile, testCatalogDescriptors(), rand.New(rand.NewSource(42)), tables, cfg)
	b := SelectPrefabs(profile, testCatalogDescriptors(), rand.New(rand.NewSource(42)), tables, cfg)

	assert.Equal(t, a, b)
}

func TestSelectPrefabsBoundedByMax(t *testing.T) {
	tables := DefaultTables()
	cfg := DefaultConfig()
	cfg.MaxSelectedPrefabs = 2
	profile := Classify("a mystical fantasy forest with a castle and ancient ruins", nil, tables)

	selected := SelectPrefabs(profile, testCatalogDescriptors(), rand.New(rand.NewSource(1)), tables, cfg)
	assert.LessOrEqual(t, len(selected), 2)
	assert.NotEmpty(t, selected)
}

func TestSelectPrefabsEmptyCatalog(t *testing.T) {
	tables := DefaultTables()
	profile := Classify("a mystical forest", nil, tables)

	selected := SelectPrefabs(profile, nil, rand.New(rand.NewSource(1)), tables, DefaultConfig())
	assert.Empty(t, selected)
}

func TestSelectPrefabsSkipsUnrelatedCandidates(t *testing.T) {
	tables := DefaultTables()
	cfg := DefaultConfig()

	// Urban profile with no keywords: nothing tagged, only urban-affinity
	// types survive.
	profile := ThemeProfile{WorldType: WorldTypeUrban, Weights: map[string]float64{}}
	candidates := []PrefabDescriptor{
		{ID: "oak_tree_01", Type: PrefabTypeEnvironment, Tags: []string{"forest"}},
		{ID: "sedan_01", Type: PrefabTypeVehicle, Tags: []string{"car"}},
	}

	selected := SelectPrefabs(profile, candidates, rand.New(rand.NewSource(1)), tables, cfg)
	require.Len(t, selected, 1)
	assert.Equal(t, "sedan_01", selected[0].ID)
}

func TestScoreCandidatesRankingAndTieBreak(t *testing.T) {
	tables := DefaultTables()
	profile := ThemeProfile{
		WorldType: WorldTypeFantasy,
		Weights:   map[string]float64{"fantasy": 0.5, "forest": 0.25},
	}

	scored := scoreCandidates(profile, testCatalogDescriptors(), tables)
	require.NotEmpty(t, scored)

	// Scores must be non-increasing, equal scores ordered by id.
	for i := 1; i < len(scored); i++ {
		prev, cur := scored[i-1], scored[i]
		assert.GreaterOrEqual(t, prev.score, cur.score)
		if prev.score == cur.score {
			assert.Less(t, prev.descriptor.ID, cur.descriptor.ID)
		}
	}

	// magic_tree scores highest: fantasy + forest tags plus environment affinity.
	assert.Equal(t, "magic_tree_01", scored[0].descriptor.ID)
}
