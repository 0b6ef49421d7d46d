package engine

import (
	"context"
	"sort"
	"strings"

	"firecycle/internal/initiative"
)

// Recommendations ranks the active initiative pool (concept, planning,
// implementation) into at most MaxRecommendationsPerCycle entries,
// sorted by priority descending. A pool fetch failure degrades to an
// empty list.
func (e *Engine) Recommendations(ctx context.Context, fc Context) []Recommendation {
	pool := e.pool(ctx, fc)

	var recs []Recommendation
	for _, item := range pool {
		if !item.Status.Active() {
			continue
		}
		priority := PriorityScore(item, fc)
		recs = append(recs, Recommendation{
			Initiative:         item,
			Priority:           priority,
			Reasoning:          buildReasoning(item, priority),
			ExpectedROI:        EstimateROI(item, fc),
			ImplementationPath: ImplementationPath(item.Difficulty),
			RiskFactors:        IdentifyRisks(item, fc),
			SuccessMetrics:     SuccessMetrics(item.Category),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority > recs[j].Priority
	})
	if len(recs) > MaxRecommendationsPerCycle {
		recs = recs[:MaxRecommendationsPerCycle]
	}
	return recs
}

// buildReasoning assembles advisory text from the priority band, with
// extra clauses for critical impact and high confidence.
func buildReasoning(item initiative.Initiative, priority int) string {
	var b strings.Builder
	switch {
	case priority > 80:
		b.WriteString("This initiative has critical business impact and should be prioritized.")
	case priority > 60:
		b.WriteString("This initiative shows good alignment with business priorities.")
	default:
		b.WriteString("This initiative has moderate priority; weigh it against resource constraints.")
	}
	if item.Impact == initiative.ImpactCritical {
		b.WriteString(" Its critical impact rating warrants immediate attention.")
	}
	if item.Confidence > 85 {
		b.WriteString(" Confidence in the expected outcome is high.")
	}
	return b.String()
}
