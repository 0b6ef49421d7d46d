package engine

import (
	"math"

	"firecycle/internal/initiative"
)

// Impact contribution to the priority score. Unmapped impact falls back
// to the Medium contribution.
var impactPoints = map[initiative.Impact]float64{
	initiative.ImpactLow:      10,
	initiative.ImpactMedium:   20,
	initiative.ImpactHigh:     30,
	initiative.ImpactCritical: 40,
}

const defaultImpactPoints = 20

// PriorityScore ranks an initiative on a 0-100 scale within the given
// decision context: impact points plus up to 20 points each from
// confidence, resource feasibility, and business alignment.
func PriorityScore(item initiative.Initiative, fc Context) int {
	points, ok := impactPoints[item.Impact]
	if !ok {
		points = defaultImpactPoints
	}

	score := points
	score += float64(item.Confidence) / 100 * 20
	score += ResourceFeasibility(item, fc.Resources) * 20
	score += BusinessAlignment(item, fc.Business) * 20

	return clampScore(int(math.Round(score)))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
