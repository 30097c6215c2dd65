package worldgen

import (
	"time"
)

// WorldType classifies the overall theme of a generated world.
type WorldType string

const (
	WorldTypeFantasy    WorldType = "fantasy"
	WorldTypeSciFi      WorldType = "sci_fi"
	WorldTypeRealistic  WorldType = "realistic"
	WorldTypeSurreal    WorldType = "surreal"
	WorldTypeHistorical WorldType = "historical"
	WorldTypeUrban      WorldType = "urban"
	WorldTypeNature     WorldType = "nature"
	WorldTypeSpace      WorldType = "space"
)

// worldTypePriority is the fixed tie-break order used by the classifier.
var worldTypePriority = []WorldType{
	WorldTypeFantasy,
	WorldTypeSciFi,
	WorldTypeRealistic,
	WorldTypeSurreal,
	WorldTypeHistorical,
	WorldTypeUrban,
	WorldTypeNature,
	WorldTypeSpace,
}

// ParseWorldType converts a string into a WorldType, reporting validity.
func ParseWorldType(s string) (WorldType, bool) {
	for _, wt := range worldTypePriority {
		if string(wt) == s {
			return wt, true
		}
	}
	return "", false
}

// PrefabType categorizes catalog assets.
type PrefabType string

const (
	PrefabTypeBuilding    PrefabType = "building"
	PrefabTypeVehicle     PrefabType = "vehicle"
	PrefabTypeCharacter   PrefabType = "character"
	PrefabTypeProp        PrefabType = "prop"
	PrefabTypeEnvironment PrefabType = "environment"
	PrefabTypeLighting    PrefabType = "lighting"
	PrefabTypeEffect      PrefabType = "effect"
	PrefabTypeUI          PrefabType = "ui"
)

// ParsePrefabType converts a string into a PrefabType, reporting validity.
func ParsePrefabType(s string) (PrefabType, bool) {
	switch PrefabType(s) {
	case PrefabTypeBuilding, PrefabTypeVehicle, PrefabTypeCharacter, PrefabTypeProp,
		PrefabTypeEnvironment, PrefabTypeLighting, PrefabTypeEffect, PrefabTypeUI:
		return PrefabType(s), true
	}
	return "", false
}

// Vector3 is a 3D coordinate in client (y-up) space.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Quaternion is a rotation in client space.
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// IdentityQuaternion returns the no-rotation quaternion.
func IdentityQuaternion() Quaternion {
	return Quaternion{X: 0, Y: 0, Z: 0, W: 1}
}

// ThemeProfile is the classifier output: the winning world type plus the
// weighted keyword set extracted from the prompt. Intermediate only, never
// persisted.
type ThemeProfile struct {
	WorldType WorldType
	Keywords  []string
	Weights   map[string]float64
}

// TopKeywords returns up to n keywords ordered by descending weight,
// ties broken alphabetically so the result is stable.
func (p ThemeProfile) TopKeywords(n int) []string {
	sorted := make([]string, len(p.Keywords))
	copy(sorted, p.Keywords)

	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0; j-- {
			a, b := sorted[j-1], sorted[j]
			if p.Weights[b] > p.Weights[a] || (p.Weights[b] == p.Weights[a] && b < a) {
				sorted[j-1], sorted[j] = b, a
			} else {
				break
			}
		}
	}

	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// EnvironmentSettings describe the ambient presentation of a world.
type EnvironmentSettings struct {
	Lighting     string `json:"lighting"`
	Weather      string `json:"weather"`
	AmbientSound string `json:"ambient_sound"`
	Skybox       string `json:"skybox"`
}

// PrefabDescriptor is the read-only view of a catalog asset the generator
// works with. Bounds is an AABB-style size hint in world units.
type PrefabDescriptor struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Type   PrefabType `json:"type"`
	Tags   []string   `json:"tags"`
	Bounds Vector3    `json:"bounds"`
}

// PrefabInstance is a placed occurrence of a catalog prefab. Instances are
// immutable once the blueprint has been assembled.
type PrefabInstance struct {
	ID         string                 `json:"id"`
	PrefabID   string                 `json:"prefab_id"`
	PrefabType PrefabType             `json:"prefab_type"`
	Position   Vector3                `json:"position"`
	Rotation   Quaternion             `json:"rotation"`
	Scale      Vector3                `json:"scale"`
	Properties map[string]interface{} `json:"properties"`
}

// WorldBlueprint is the complete generated description of a world,
// consumable by the 3D client. Instance order is placement order and is
// used for deterministic re-rendering.
type WorldBlueprint struct {
	ID                  string              `json:"id"`
	Prompt              string              `json:"prompt"`
	WorldType           WorldType           `json:"world_type"`
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	EnvironmentSettings EnvironmentSettings `json:"environment_settings"`
	PrefabInstances     []PrefabInstance    `json:"prefab_instances"`
	SpawnPoints         []Vector3           `json:"spawn_points"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}
