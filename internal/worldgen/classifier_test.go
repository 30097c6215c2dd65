package worldgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func hintOf(wt WorldType) *WorldType {
	return &wt
}

func TestClassifyKeywordInference(t *testing.T) {
	tables := DefaultTables()

	tests := []struct {
		name   string
		prompt string
		want   WorldType
	}{
		{"mystical forest", "A mystical forest with ancient trees", WorldTypeFantasy},
		{"mars colony", "spaceship colony on mars", WorldTypeSpace},
		{"city streets", "city streets with tall buildings and traffic", WorldTypeUrban},
		{"wilderness", "a forest by a mountain river in the wilderness", WorldTypeNature},
		{"medieval", "a medieval victorian settlement with roman ruins", WorldTypeHistorical},
		{"robots", "alien robots in a futuristic colony", WorldTypeSciFi},
		{"no matches", "something entirely unrecognizable", WorldTypeRealistic},
		{"empty", "", WorldTypeRealistic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := Classify(tt.prompt, nil, tables)
			assert.Equal(t, tt.want, profile.WorldType)
		})
	}
}

func TestClassifyHintIsAuthoritative(t *testing.T) {
	tables := DefaultTables()

	profile := Classify("", hintOf(WorldTypeSciFi), tables)
	assert.Equal(t, WorldTypeSciFi, profile.WorldType)

	// Hint wins even when the text clearly says something else.
	profile = Classify("a mystical dragon castle", hintOf(WorldTypeUrban), tables)
	assert.Equal(t, WorldTypeUrban, profile.WorldType)
}

func TestClassifyTieBreaksByPriority(t *testing.T) {
	tables := DefaultTables()

	// One fantasy keyword vs one nature keyword: fantasy outranks nature.
	profile := Classify("dragon forest", nil, tables)
	assert.Equal(t, WorldTypeFantasy, profile.WorldType)
}

func TestClassifyKeywordWeights(t *testing.T) {
	tables := DefaultTables()

	// "forest" appears twice in four non-stop-word tokens.
	profile := Classify("forest forest river walking", nil, tables)

	assert.Contains(t, profile.Keywords, "forest")
	assert.Contains(t, profile.Keywords, "river")
	assert.NotContains(t, profile.Keywords, "walking")
	assert.InDelta(t, 0.5, profile.Weights["forest"], 1e-9)
	assert.InDelta(t, 0.25, profile.Weights["river"], 1e-9)
}

func TestClassifyIsPure(t *testing.T) {
	tables := DefaultTables()

	a := Classify("a mystical forest with ancient trees", nil, tables)
	b := Classify("a mystical forest with ancient trees", nil, tables)

	assert.Equal(t, a.WorldType, b.WorldType)
	assert.Equal(t, a.Keywords, b.Keywords)
	assert.Equal(t, a.Weights, b.Weights)
}

func TestTopKeywordsStableOrder(t *testing.T) {
	profile := ThemeProfile{
		Keywords: []string{"castle", "dragon", "forest"},
		Weights:  map[string]float64{"castle": 0.2, "dragon": 0.2, "forest": 0.4},
	}

	top := profile.TopKeywords(3)
	assert.Equal(t, []string{"forest", "castle", "dragon"}, top)

	assert.Equal(t, []string{"forest"}, profile.TopKeywords(1))
}
