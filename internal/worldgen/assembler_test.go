package worldgen

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembleBlueprintStampsIDAndTimestamps(t *testing.T) {
	tables := DefaultTables()
	profile := Classify("a mystical forest", nil, tables)
	env := ComposeEnvironment(profile, tables)

	bp := AssembleBlueprint("a mystical forest", profile, env, nil,
		[]Vector3{{X: 0, Y: 1, Z: 0}}, rand.New(rand.NewSource(4)), tables)

	assert.NotEmpty(t, bp.ID)
	assert.Equal(t, bp.CreatedAt, bp.UpdatedAt)
	assert.Equal(t, env, bp.EnvironmentSettings)
}

func TestGenerateTitleUsesTopKeyword(t *testing.T) {
	tables := DefaultTables()
	profile := ThemeProfile{
		WorldType: WorldTypeFantasy,
		Keywords:  []string{"dragon"},
		Weights:   map[string]float64{"dragon": 0.5},
	}

	title := generateTitle(profile, rand.New(rand.NewSource(8)), tables)
	assert.True(t, strings.HasPrefix(title, "The "))
	assert.Contains(t, title, "Dragon")
}

func TestGenerateTitleWithoutKeywords(t *testing.T) {
	tables := DefaultTables()
	profile := ThemeProfile{WorldType: WorldTypeUrban, Weights: map[string]float64{}}

	title := generateTitle(profile, rand.New(rand.NewSource(8)), tables)
	assert.True(t, strings.HasPrefix(title, "The "))
	assert.NotContains(t, title, "of")
}

func TestGenerateDescriptionMentionsKeywords(t *testing.T) {
	tables := DefaultTables()
	profile := ThemeProfile{
		WorldType: WorldTypeNature,
		Keywords:  []string{"forest", "river"},
		Weights:   map[string]float64{"forest": 0.4, "river": 0.2},
	}

	desc := generateDescription(profile, tables)
	assert.Contains(t, desc, "forest and river")
	assert.Contains(t, desc, "nature")
}

func TestKeywordPhrase(t *testing.T) {
	assert.Equal(t, "untold possibilities", keywordPhrase(nil))
	assert.Equal(t, "forest", keywordPhrase([]string{"forest"}))
	assert.Equal(t, "forest and river", keywordPhrase([]string{"forest", "river"}))
	assert.Equal(t, "forest, river and lake", keywordPhrase([]string{"forest", "river", "lake"}))
}
