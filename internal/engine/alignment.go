package engine

import (
	"strings"

	"firecycle/internal/initiative"
)

// BusinessAlignment scores how well an initiative matches the stated
// business priorities and company size. Starts at 0.5, +0.3 when a
// priority keyword appears in the title or description, +0.2 when the
// difficulty suits the company size, clamped to 1.0.
func BusinessAlignment(item initiative.Initiative, biz BusinessContext) float64 {
	score := 0.5

	haystack := strings.ToLower(item.Title + " " + item.Description)
	for _, priority := range biz.Priorities {
		keyword := strings.ToLower(strings.TrimSpace(priority))
		if keyword != "" && strings.Contains(haystack, keyword) {
			score += 0.3
			break
		}
	}

	if difficultySuitsCompany(item.Difficulty, biz.CompanySize) {
		score += 0.2
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// difficultySuitsCompany encodes the size-appropriateness rule: small
// shops take Beginner or Intermediate work, medium shops Intermediate
// only, large shops anything. Unrecognized sizes earn no bonus.
func difficultySuitsCompany(d initiative.Difficulty, companySize string) bool {
	size := strings.ToLower(companySize)
	switch {
	case strings.Contains(size, "startup") || strings.Contains(size, "small"):
		return d == initiative.DifficultyBeginner || d == initiative.DifficultyIntermediate
	case strings.Contains(size, "medium"):
		return d == initiative.DifficultyIntermediate
	case strings.Contains(size, "large") || strings.Contains(size, "enterprise"):
		return true
	}
	return false
}
