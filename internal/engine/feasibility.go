package engine

import "firecycle/internal/initiative"

// ResourceFeasibility scores whether the available budget, staffing, and
// time horizon permit an initiative, as the mean of three sub-scores.
// Shortfall penalties are soft: a missing resource lowers the score but
// never zeroes it.
func ResourceFeasibility(item initiative.Initiative, res AvailableResources) float64 {
	budget := 0.3
	if res.Budget >= item.Resources.Cost {
		budget = 1.0
	}
	capacity := 0.5
	if res.TeamCapacity >= item.Resources.People {
		capacity = 1.0
	}
	timeline := 0.7
	if res.TimeHorizonDays >= ParseTimeframeDays(item.Timeframe) {
		timeline = 1.0
	}
	return (budget + capacity + timeline) / 3
}
