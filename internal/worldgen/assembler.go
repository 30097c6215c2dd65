package worldgen

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// quaternionEpsilon bounds how far a rotation magnitude may drift from 1.
const quaternionEpsilon = 1e-6

// AssembleBlueprint merges the pipeline stages into the final immutable
// blueprint record and stamps identifier and timestamps. Title and
// description come from a small templated grammar over the world type and
// the top-weighted keywords; the rng is the pipeline stream, so the text is
// reproducible per prompt.
func AssembleBlueprint(prompt string, profile ThemeProfile, env EnvironmentSettings, instances []PrefabInstance, spawns []Vector3, rng *rand.Rand, tables Tables) WorldBlueprint {
	now := time.Now().UTC()

	return WorldBlueprint{
		ID:                  uuid.NewString(),
		Prompt:              prompt,
		WorldType:           profile.WorldType,
		Title:               generateTitle(profile, rng, tables),
		Description:         generateDescription(profile, tables),
		EnvironmentSettings: env,
		PrefabInstances:     instances,
		SpawnPoints:         spawns,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func generateTitle(profile ThemeProfile, rng *rand.Rand, tables Tables) string {
	adjectives := tables.Adjectives[profile.WorldType]
	nouns := tables.Nouns[profile.WorldType]

	adjective := adjectives[rng.Intn(len(adjectives))]
	noun := nouns[rng.Intn(len(nouns))]

	if top := profile.TopKeywords(1); len(top) > 0 {
		return fmt.Sprintf("The %s %s of %s", adjective, noun, capitalize(top[0]))
	}
	return fmt.Sprintf("The %s %s", adjective, noun)
}

func generateDescription(profile ThemeProfile, tables Tables) string {
	noun := strings.ToLower(tables.Nouns[profile.WorldType][0])
	base := tables.BaseSentences[profile.WorldType]

	phrase := keywordPhrase(profile.TopKeywords(3))
	worldTypeText := strings.ReplaceAll(string(profile.WorldType), "_", "-")
	return fmt.Sprintf("A %s %s filled with %s. %s", worldTypeText, noun, phrase, base)
}

func keywordPhrase(keywords []string) string {
	switch len(keywords) {
	case 0:
		return "untold possibilities"
	case 1:
		return keywords[0]
	case 2:
		return keywords[0] + " and " + keywords[1]
	default:
		return strings.Join(keywords[:len(keywords)-1], ", ") + " and " + keywords[len(keywords)-1]
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ValidateBlueprint is the assembler's final invariant pass. A violation here
// is a defect in the pipeline, never recoverable by the caller.
func ValidateBlueprint(bp *WorldBlueprint, cfg Config) error {
	seen := make(map[string]struct{}, len(bp.PrefabInstances))
	for _, inst := range bp.PrefabInstances {
		if _, dup := seen[inst.ID]; dup {
			return fmt.Errorf("duplicate prefab instance id %s", inst.ID)
		}
		seen[inst.ID] = struct{}{}

		if err := validateRotation(inst.Rotation); err != nil {
			return fmt.Errorf("instance %s: %w", inst.ID, err)
		}
		if inst.Scale.X <= 0 || inst.Scale.Y <= 0 || inst.Scale.Z <= 0 {
			return fmt.Errorf("instance %s: non-positive scale component", inst.ID)
		}
	}

	for i := range bp.PrefabInstances {
		for j := i + 1; j < len(bp.PrefabInstances); j++ {
			a, b := bp.PrefabInstances[i], bp.PrefabInstances[j]
			if horizontalDistance(a.Position, b.Position) < cfg.MinSeparation {
				return fmt.Errorf("instances %s and %s closer than minimum separation", a.ID, b.ID)
			}
		}
	}

	if len(bp.SpawnPoints) == 0 {
		return fmt.Errorf("blueprint has no spawn points")
	}
	for _, sp := range bp.SpawnPoints {
		for _, inst := range bp.PrefabInstances {
			if horizontalDistance(sp, inst.Position) < cfg.ClearanceRadius {
				return fmt.Errorf("spawn point inside clearance radius of instance %s", inst.ID)
			}
		}
	}

	return nil
}

func validateRotation(q Quaternion) error {
	magnitude := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if math.Abs(magnitude-1) > quaternionEpsilon {
		return fmt.Errorf("rotation is not a unit quaternion (magnitude %f)", magnitude)
	}
	return nil
}
