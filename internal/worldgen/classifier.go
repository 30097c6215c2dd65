package worldgen

import (
	"sort"
	"strings"
	"unicode"
)

// Classify maps prompt text (plus an optional explicit world type) to a
// ThemeProfile. Pure function of its inputs: an authoritative valid hint wins,
// otherwise the curated keyword tables decide, with ties broken by the fixed
// world type priority order and zero matches defaulting to realistic.
func Classify(text string, hint *WorldType, tables Tables) ThemeProfile {
	tokens := tokenize(text, tables.StopWords)

	worldType := WorldTypeRealistic
	if hint != nil {
		if wt, ok := ParseWorldType(string(*hint)); ok {
			worldType = wt
		}
	} else {
		worldType = inferWorldType(tokens, tables)
	}

	keywords, weights := extractKeywords(tokens, tables)

	return ThemeProfile{
		WorldType: worldType,
		Keywords:  keywords,
		Weights:   weights,
	}
}

func inferWorldType(tokens []string, tables Tables) WorldType {
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = struct{}{}
	}

	best := WorldTypeRealistic
	bestHits := 0

	// Iterate in priority order so the first type holding the maximum wins.
	for _, wt := range worldTypePriority {
		hits := 0
		for _, kw := range tables.Keywords[wt] {
			if _, ok := tokenSet[kw]; ok {
				hits++
			}
		}
		if hits > bestHits {
			best = wt
			bestHits = hits
		}
	}

	return best
}

// extractKeywords intersects the token multiset with the global vocabulary
// and weights each keyword by its normalized frequency in the prompt.
func extractKeywords(tokens []string, tables Tables) ([]string, map[string]float64) {
	if len(tokens) == 0 {
		return nil, map[string]float64{}
	}

	vocab := tables.vocabulary()
	counts := make(map[string]int)
	for _, tok := range tokens {
		if _, ok := vocab[tok]; ok {
			counts[tok]++
		}
	}

	keywords := make([]string, 0, len(counts))
	weights := make(map[string]float64, len(counts))
	total := float64(len(tokens))
	for kw, n := range counts {
		keywords = append(keywords, kw)
		weights[kw] = float64(n) / total
	}
	sort.Strings(keywords)

	return keywords, weights
}

// tokenize lowercases the prompt, splits on non-alphanumeric runes and drops
// stop words.
func tokenize(text string, stopWords map[string]struct{}) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, stop := stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
