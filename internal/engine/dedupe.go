package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"firecycle/internal/initiative"
)

// CheckForDuplicates decides whether a candidate duplicates an already
// tracked initiative. Only the single most-similar existing initiative
// is considered; the recommended action is defined relative to exactly
// one match. A pool fetch failure degrades to "no existing initiatives",
// so the candidate proceeds.
func (e *Engine) CheckForDuplicates(ctx context.Context, candidate initiative.Initiative, fc Context) DeduplicationResult {
	pool := e.pool(ctx, fc)

	var best *initiative.Initiative
	bestScore := 0.0
	for i := range pool {
		score := Similarity(candidate, pool[i])
		if best == nil || score > bestScore {
			match := pool[i]
			best = &match
			bestScore = score
		}
	}

	if best == nil || bestScore <= SimilarityThreshold {
		return DeduplicationResult{
			IsDuplicate:            false,
			SimilarityScore:        bestScore,
			ExpansionOpportunities: []string{},
			RecommendedAction:      ActionProceed,
		}
	}

	expansions := expansionOpportunities(candidate, *best)
	return DeduplicationResult{
		IsDuplicate:            true,
		SimilarityScore:        bestScore,
		Existing:               best,
		ExpansionOpportunities: expansions,
		RecommendedAction:      recommendAction(*best, expansions),
	}
}

// expansionOpportunities lists the ways a near-duplicate candidate could
// enrich the matched initiative instead of being tracked separately.
// Attribute "differs" checks require both sides to be populated.
func expansionOpportunities(candidate, existing initiative.Initiative) []string {
	var out []string

	if candidate.Category != "" && existing.Category != "" &&
		!strings.EqualFold(candidate.Category, existing.Category) {
		out = append(out, fmt.Sprintf("Combine the %s and %s categories into one broader initiative", candidate.Category, existing.Category))
	}
	if candidate.EstimatedValue != "" && existing.EstimatedValue == "" {
		out = append(out, fmt.Sprintf("Carry the estimated value (%s) over to the existing initiative", candidate.EstimatedValue))
	}
	if candidate.Timeframe != "" && existing.Timeframe != "" &&
		candidate.Timeframe != existing.Timeframe {
		out = append(out, fmt.Sprintf("Reconcile the timeframes (%s vs %s)", candidate.Timeframe, existing.Timeframe))
	}
	if candidate.Difficulty != "" && existing.Difficulty != "" &&
		candidate.Difficulty != existing.Difficulty {
		out = append(out, fmt.Sprintf("Reconcile the implementation difficulty estimates (%s vs %s)", candidate.Difficulty, existing.Difficulty))
	}

	return out
}

// recommendAction applies the fixed verdict order: a completed match
// never blocks new work, expansion opportunities invite an expand, an
// early-stage match invites a combine, anything else is a skip.
func recommendAction(existing initiative.Initiative, expansions []string) Action {
	switch {
	case existing.Status == initiative.StatusComplete:
		return ActionProceed
	case len(expansions) > 0:
		return ActionExpand
	case existing.Status == initiative.StatusConcept || existing.Status == initiative.StatusPlanning:
		return ActionCombine
	default:
		return ActionSkip
	}
}

// DescriptionDiff renders a unified diff between the matched and
// candidate descriptions for dedupe reports. Empty when the texts agree.
func DescriptionDiff(candidate, existing initiative.Initiative) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        strings.Split(existing.Description, "\n"),
		B:        strings.Split(candidate.Description, "\n"),
		FromFile: "existing/" + existing.ID,
		ToFile:   "candidate",
		Context:  3,
	}
	diffText, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff descriptions: %w", err)
	}
	if strings.TrimSpace(diffText) == "" {
		return "", nil
	}
	return diffText, nil
}
