package worldgen

// Tables is the immutable lookup configuration driving classification,
// environment composition and text generation. It is passed into the
// pipeline explicitly so tests can substitute alternate tables.
type Tables struct {
	Keywords      map[WorldType][]string
	StopWords     map[string]struct{}
	Environments  map[WorldType]EnvironmentSettings
	Overrides     []OverrideRule
	TypeAffinity  map[WorldType][]PrefabType
	Adjectives    map[WorldType][]string
	Nouns         map[WorldType][]string
	BaseSentences map[WorldType]string
}

// OverrideRule maps a strong keyword to a single environment field override.
type OverrideRule struct {
	Keyword string
	Field   EnvironmentField
	Value   string
}

// EnvironmentField names one field of EnvironmentSettings.
type EnvironmentField string

const (
	FieldLighting     EnvironmentField = "lighting"
	FieldWeather      EnvironmentField = "weather"
	FieldAmbientSound EnvironmentField = "ambient_sound"
	FieldSkybox       EnvironmentField = "skybox"
)

// DefaultTables returns the built-in vocabulary and lookup tables.
func DefaultTables() Tables {
	return Tables{
		Keywords:      defaultKeywords,
		StopWords:     defaultStopWords,
		Environments:  defaultEnvironments,
		Overrides:     defaultOverrides,
		TypeAffinity:  defaultTypeAffinity,
		Adjectives:    defaultAdjectives,
		Nouns:         defaultNouns,
		BaseSentences: defaultBaseSentences,
	}
}

var defaultKeywords = map[WorldType][]string{
	WorldTypeFantasy: {
		"fantasy", "magic", "magical", "mystical", "enchanted", "dragon",
		"wizard", "castle", "fairy", "kingdom", "ancient", "quest", "sword",
		"elf", "rune", "spell",
	},
	WorldTypeSciFi: {
		"robot", "robots", "android", "cyber", "cyberpunk", "futuristic",
		"future", "laser", "hologram", "alien", "aliens", "mech",
		"dystopian", "chrome", "neon",
	},
	WorldTypeRealistic: {
		"realistic", "real", "everyday", "suburb", "office", "school",
		"house", "town", "cafe", "harbor",
	},
	WorldTypeSurreal: {
		"surreal", "dream", "dreamlike", "impossible", "floating", "melting",
		"abstract", "bizarre", "strange", "warped", "upside",
	},
	WorldTypeHistorical: {
		"historical", "medieval", "ancient", "roman", "victorian", "vintage",
		"colonial", "dynasty", "renaissance", "ruins", "temple",
	},
	WorldTypeUrban: {
		"city", "urban", "street", "streets", "building", "buildings",
		"skyline", "downtown", "metro", "alley", "rooftop", "traffic",
	},
	WorldTypeNature: {
		"nature", "forest", "tree", "trees", "mountain", "mountains",
		"river", "wilderness", "meadow", "jungle", "garden", "waterfall",
		"lake", "grove",
	},
	WorldTypeSpace: {
		"space", "spaceship", "starship", "station", "colony", "mars",
		"moon", "galaxy", "cosmic", "cosmos", "orbit", "orbital",
		"asteroid", "nebula", "planet",
	},
}

var defaultStopWords = toSet([]string{
	"a", "an", "the", "and", "or", "of", "in", "on", "at", "to", "with",
	"for", "by", "is", "are", "was", "were", "be", "this", "that", "it",
	"its", "as", "from", "into", "over", "under", "full", "my", "our",
	"their", "some", "where", "there",
})

var defaultEnvironments = map[WorldType]EnvironmentSettings{
	WorldTypeFantasy:    {Lighting: "mystical", Weather: "ethereal", AmbientSound: "magical_forest", Skybox: "fantasy_sky"},
	WorldTypeSciFi:      {Lighting: "neon", Weather: "none", AmbientSound: "space_station", Skybox: "space_stars"},
	WorldTypeRealistic:  {Lighting: "natural", Weather: "clear", AmbientSound: "city_traffic", Skybox: "realistic_sky"},
	WorldTypeSurreal:    {Lighting: "shifting", Weather: "impossible", AmbientSound: "dreamscape", Skybox: "surreal_sky"},
	WorldTypeHistorical: {Lighting: "candlelight", Weather: "clear", AmbientSound: "village_square", Skybox: "old_world_sky"},
	WorldTypeUrban:      {Lighting: "street_lights", Weather: "overcast", AmbientSound: "urban_bustle", Skybox: "city_skyline"},
	WorldTypeNature:     {Lighting: "sunlight", Weather: "sunny", AmbientSound: "birds_chirping", Skybox: "forest_canopy"},
	WorldTypeSpace:      {Lighting: "starlight", Weather: "none", AmbientSound: "deep_space_hum", Skybox: "nebula"},
}

// Override order matters only between rules on the same keyword; application
// order across keywords is keyword weight, handled by the composer.
var defaultOverrides = []OverrideRule{
	{Keyword: "night", Field: FieldLighting, Value: "dark"},
	{Keyword: "neon", Field: FieldLighting, Value: "neon"},
	{Keyword: "sunset", Field: FieldLighting, Value: "golden_hour"},
	{Keyword: "sunset", Field: FieldSkybox, Value: "sunset_sky"},
	{Keyword: "storm", Field: FieldWeather, Value: "stormy"},
	{Keyword: "rain", Field: FieldWeather, Value: "rainy"},
	{Keyword: "snow", Field: FieldWeather, Value: "snowing"},
	{Keyword: "fog", Field: FieldWeather, Value: "foggy"},
	{Keyword: "ocean", Field: FieldAmbientSound, Value: "ocean_waves"},
}

var defaultTypeAffinity = map[WorldType][]PrefabType{
	WorldTypeFantasy:    {PrefabTypeEnvironment, PrefabTypeBuilding},
	WorldTypeSciFi:      {PrefabTypeBuilding, PrefabTypeUI, PrefabTypeEffect},
	WorldTypeRealistic:  {PrefabTypeBuilding, PrefabTypeProp},
	WorldTypeSurreal:    {PrefabTypeEffect, PrefabTypeEnvironment},
	WorldTypeHistorical: {PrefabTypeBuilding, PrefabTypeProp},
	WorldTypeUrban:      {PrefabTypeBuilding, PrefabTypeVehicle, PrefabTypeLighting},
	WorldTypeNature:     {PrefabTypeEnvironment},
	WorldTypeSpace:      {PrefabTypeEnvironment, PrefabTypeEffect},
}

var defaultAdjectives = map[WorldType][]string{
	WorldTypeFantasy:    {"Enchanted", "Mystic", "Forgotten", "Radiant"},
	WorldTypeSciFi:      {"Neon", "Chrome", "Distant", "Silent"},
	WorldTypeRealistic:  {"Quiet", "Bustling", "Sunlit", "Familiar"},
	WorldTypeSurreal:    {"Impossible", "Melting", "Endless", "Shifting"},
	WorldTypeHistorical: {"Ancient", "Weathered", "Storied", "Timeworn"},
	WorldTypeUrban:      {"Restless", "Towering", "Gritty", "Electric"},
	WorldTypeNature:     {"Verdant", "Wild", "Tranquil", "Mist-Laden"},
	WorldTypeSpace:      {"Boundless", "Drifting", "Starlit", "Remote"},
}

var defaultNouns = map[WorldType][]string{
	WorldTypeFantasy:    {"Realm", "Kingdom", "Vale"},
	WorldTypeSciFi:      {"Frontier", "Sector", "Grid"},
	WorldTypeRealistic:  {"Town", "District", "Neighborhood"},
	WorldTypeSurreal:    {"Dreamscape", "Mirage", "Reverie"},
	WorldTypeHistorical: {"Era", "Settlement", "Province"},
	WorldTypeUrban:      {"Metropolis", "Sprawl", "Quarter"},
	WorldTypeNature:     {"Wilds", "Glade", "Expanse"},
	WorldTypeSpace:      {"Expanse", "Outpost", "Void"},
}

var defaultBaseSentences = map[WorldType]string{
	WorldTypeFantasy:    "A magical realm filled with wonder and enchantment.",
	WorldTypeSciFi:      "A futuristic world with advanced technology and alien landscapes.",
	WorldTypeRealistic:  "A realistic environment based on real-world locations.",
	WorldTypeSurreal:    "A dreamlike world that defies conventional reality.",
	WorldTypeHistorical: "A historical setting that captures the essence of the past.",
	WorldTypeUrban:      "A bustling urban environment with modern architecture.",
	WorldTypeNature:     "A natural environment filled with organic beauty.",
	WorldTypeSpace:      "An otherworldly space environment with cosmic wonders.",
}

// vocabulary is the union of every curated keyword set plus every override
// keyword; prompt tokens outside it are ignored by the classifier.
func (t Tables) vocabulary() map[string]struct{} {
	vocab := make(map[string]struct{})
	for _, words := range t.Keywords {
		for _, w := range words {
			vocab[w] = struct{}{}
		}
	}
	for _, rule := range t.Overrides {
		vocab[rule.Keyword] = struct{}{}
	}
	return vocab
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
