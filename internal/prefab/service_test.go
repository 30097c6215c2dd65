package prefab

import (
	"testing"

	"prompt2world-server/internal/shared/errors"
	"prompt2world-server/internal/worldgen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemFromRequestValidation(t *testing.T) {
	valid := CreateItemRequest{
		ID:   "crystal_spire_01",
		Name: "Crystal Spire",
		Type: "environment",
		Tags: []string{"Fantasy", "crystal", "fantasy"},
	}

	t.Run("valid request", func(t *testing.T) {
		item, err := itemFromRequest(&valid)
		require.NoError(t, err)
		assert.Equal(t, "crystal_spire_01", item.ID)
		assert.Equal(t, worldgen.PrefabTypeEnvironment, item.Type)
		// Tags are lowercased and deduplicated
		assert.Equal(t, StringList{"fantasy", "crystal"}, item.Tags)
		// Zero bounds default to a unit cube
		assert.Equal(t, worldgen.Vector3{X: 1, Y: 1, Z: 1}, item.Bounds)
	})

	t.Run("missing id", func(t *testing.T) {
		req := valid
		req.ID = "  "
		_, err := itemFromRequest(&req)
		require.Error(t, err)
		assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))
	})

	t.Run("missing name", func(t *testing.T) {
		req := valid
		req.Name = ""
		_, err := itemFromRequest(&req)
		require.Error(t, err)
		assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))
	})

	t.Run("unknown type", func(t *testing.T) {
		req := valid
		req.Type = "terrain"
		_, err := itemFromRequest(&req)
		require.Error(t, err)
		assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))
	})

	t.Run("negative bounds", func(t *testing.T) {
		req := valid
		req.Bounds = worldgen.Vector3{X: 2, Y: -1, Z: 2}
		_, err := itemFromRequest(&req)
		require.Error(t, err)
		assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))
	})
}

func TestNormalizeTags(t *testing.T) {
	got := normalizeTags([]string{" Forest ", "forest", "", "TREE"})
	assert.Equal(t, StringList{"forest", "tree"}, got)
}

func TestDefaultCatalogCoversEveryWorldType(t *testing.T) {
	worldTypes := []worldgen.WorldType{
		worldgen.WorldTypeFantasy,
		worldgen.WorldTypeSciFi,
		worldgen.WorldTypeRealistic,
		worldgen.WorldTypeSurreal,
		worldgen.WorldTypeHistorical,
		worldgen.WorldTypeUrban,
		worldgen.WorldTypeNature,
		worldgen.WorldTypeSpace,
	}

	tagged := make(map[worldgen.WorldType]int)
	seen := make(map[string]bool)

	for _, item := range defaultCatalog {
		require.False(t, seen[item.ID], "duplicate seed id %s", item.ID)
		seen[item.ID] = true

		_, ok := worldgen.ParsePrefabType(string(item.Type))
		require.True(t, ok, "seed item %s has invalid type %s", item.ID, item.Type)

		require.Positive(t, item.Bounds.X, "seed item %s has non-positive bounds", item.ID)
		require.Positive(t, item.Bounds.Y, "seed item %s has non-positive bounds", item.ID)
		require.Positive(t, item.Bounds.Z, "seed item %s has non-positive bounds", item.ID)

		for _, tag := range item.Tags {
			if wt, ok := worldgen.ParseWorldType(tag); ok {
				tagged[wt]++
			}
		}
	}

	for _, wt := range worldTypes {
		assert.Positive(t, tagged[wt], "no seed prefab tagged for world type %s", wt)
	}
}

func TestDescriptorCopiesTags(t *testing.T) {
	item := CatalogItem{
		ID:   "oak_tree_01",
		Name: "Broadleaf Oak",
		Type: worldgen.PrefabTypeEnvironment,
		Tags: StringList{"nature", "tree"},
	}

	desc := item.Descriptor()
	desc.Tags[0] = "mutated"

	assert.Equal(t, StringList{"nature", "tree"}, item.Tags)
}
