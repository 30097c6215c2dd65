package worldgen

import (
	"math/rand"
	"sort"
)

// typeMatchBonus is added to a candidate's score when its prefab type is in
// the affinity set of the classified world type.
const typeMatchBonus = 0.25

type scoredPrefab struct {
	descriptor PrefabDescriptor
	score      float64
}

// SelectPrefabs ranks catalog candidates against a theme profile and draws a
// bounded, seeded subset. The draw is biased towards higher scores but skips
// around enough that near-identical prompts do not all produce the same
// literal top-N; identical prompts share a seed and reproduce exactly.
func SelectPrefabs(profile ThemeProfile, candidates []PrefabDescriptor, rng *rand.Rand, tables Tables, cfg Config) []PrefabDescriptor {
	scored := scoreCandidates(profile, candidates, tables)
	if len(scored) == 0 {
		return nil
	}

	limit := cfg.MaxSelectedPrefabs
	if limit > len(scored) {
		limit = len(scored)
	}

	selected := make([]PrefabDescriptor, 0, limit)
	for len(selected) < limit {
		// Squaring the uniform draw biases the pick towards the front of the
		// ranked list while still letting lower tiers through.
		idx := int(rng.Float64() * rng.Float64() * float64(len(scored)))
		if idx >= len(scored) {
			idx = len(scored) - 1
		}
		selected = append(selected, scored[idx].descriptor)
		scored = append(scored[:idx], scored[idx+1:]...)
	}

	return selected
}

func scoreCandidates(profile ThemeProfile, candidates []PrefabDescriptor, tables Tables) []scoredPrefab {
	affinity := make(map[PrefabType]bool)
	for _, pt := range tables.TypeAffinity[profile.WorldType] {
		affinity[pt] = true
	}

	scored := make([]scoredPrefab, 0, len(candidates))
	for _, c := range candidates {
		score := 0.0
		for _, tag := range c.Tags {
			if w, ok := profile.Weights[tag]; ok {
				score += w
			}
		}
		if affinity[c.Type] {
			score += typeMatchBonus
		}
		if score > 0 {
			scored = append(scored, scoredPrefab{descriptor: c, score: score})
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].descriptor.ID < scored[j].descriptor.ID
	})

	return scored
}
