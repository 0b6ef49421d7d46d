package engine

import "firecycle/internal/initiative"

// Expected-return multipliers by impact. Unmapped impact falls back to
// the Medium multiplier, mirroring the priority score fallback.
var impactMultiplier = map[initiative.Impact]float64{
	initiative.ImpactLow:      1.1,
	initiative.ImpactMedium:   1.25,
	initiative.ImpactHigh:     1.5,
	initiative.ImpactCritical: 2.0,
}

const (
	defaultImpactMultiplier = 1.25
	defaultEstimateCost     = 1000
)

// EstimateROI produces an expected-return figure: the uplift over cost
// implied by the impact multiplier, discounted by confidence. A zero
// cost estimate uses a nominal default so the figure stays comparable.
func EstimateROI(item initiative.Initiative, fc Context) float64 {
	multiplier, ok := impactMultiplier[item.Impact]
	if !ok {
		multiplier = defaultImpactMultiplier
	}
	cost := item.Resources.Cost
	if cost <= 0 {
		cost = defaultEstimateCost
	}
	return (multiplier - 1) * cost * float64(item.Confidence) / 100
}
