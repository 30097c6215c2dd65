package worldgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeEnvironmentBaseTable(t *testing.T) {
	tables := DefaultTables()

	env := ComposeEnvironment(ThemeProfile{WorldType: WorldTypeFantasy}, tables)

	assert.Equal(t, "mystical", env.Lighting)
	assert.Equal(t, "ethereal", env.Weather)
	assert.Equal(t, "magical_forest", env.AmbientSound)
	assert.Equal(t, "fantasy_sky", env.Skybox)
}

func TestComposeEnvironmentKeywordOverride(t *testing.T) {
	tables := DefaultTables()

	profile := Classify("a mystical forest at night", nil, tables)
	env := ComposeEnvironment(profile, tables)

	assert.Equal(t, "dark", env.Lighting)
	// Unrelated fields keep their base values.
	assert.Equal(t, "magical_forest", env.AmbientSound)
}

func TestComposeEnvironmentFirstMatchPerFieldWins(t *testing.T) {
	tables := DefaultTables()

	// "storm" is mentioned twice so it outweighs "rain"; weather must be
	// overridden exactly once, by the heavier keyword.
	profile := Classify("storm storm rain forest", nil, tables)
	env := ComposeEnvironment(profile, tables)

	assert.Equal(t, "stormy", env.Weather)
}

func TestComposeEnvironmentNeverFails(t *testing.T) {
	tables := DefaultTables()

	for _, wt := range []WorldType{
		WorldTypeFantasy, WorldTypeSciFi, WorldTypeRealistic, WorldTypeSurreal,
		WorldTypeHistorical, WorldTypeUrban, WorldTypeNature, WorldTypeSpace,
	} {
		env := ComposeEnvironment(ThemeProfile{WorldType: wt}, tables)
		assert.NotEmpty(t, env.Lighting, "world type %s", wt)
		assert.NotEmpty(t, env.Weather, "world type %s", wt)
		assert.NotEmpty(t, env.AmbientSound, "world type %s", wt)
		assert.NotEmpty(t, env.Skybox, "world type %s", wt)
	}
}
