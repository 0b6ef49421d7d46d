package engine

import (
	"strings"

	"firecycle/internal/initiative"
)

// Attribute weights for the similarity blend. A pair only contributes
// when both sides have the attribute populated; skipped pairs are also
// excluded from the denominator so the result stays on a [0,1] scale.
const (
	titleWeight       = 0.4
	categoryWeight    = 0.2
	impactWeight      = 0.15
	descriptionWeight = 0.25
)

// Similarity scores how closely two initiatives describe the same work.
// Titles and descriptions compare by token-set Jaccard, category by
// case-insensitive equality, impact by equality with 0.5 partial credit
// on mismatch. Returns 0 when no attribute pair is comparable.
func Similarity(candidate, existing initiative.Initiative) float64 {
	var total, used float64

	if candidate.Title != "" && existing.Title != "" {
		total += titleWeight * jaccard(tokenSet(candidate.Title), tokenSet(existing.Title))
		used += titleWeight
	}
	if candidate.Category != "" && existing.Category != "" {
		if strings.EqualFold(candidate.Category, existing.Category) {
			total += categoryWeight
		}
		used += categoryWeight
	}
	if candidate.Impact != "" && existing.Impact != "" {
		if candidate.Impact == existing.Impact {
			total += impactWeight
		} else {
			// Impact mismatch keeps half credit; unlike category it is
			// an estimate, not an identity attribute.
			total += impactWeight * 0.5
		}
		used += impactWeight
	}
	if candidate.Description != "" && existing.Description != "" {
		total += descriptionWeight * jaccard(tokenSet(candidate.Description), tokenSet(existing.Description))
		used += descriptionWeight
	}

	if used == 0 {
		return 0
	}
	return total / used
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		set[tok] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
