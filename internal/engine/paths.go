package engine

import (
	"strings"

	"firecycle/internal/initiative"
)

// Static advisory tables. Only the selection rule is contractual; the
// prose itself is not.

var implementationPaths = map[initiative.Difficulty][]string{
	initiative.DifficultyBeginner: {
		"Confirm the owner and define what success looks like",
		"Outline a lightweight rollout plan",
		"Execute and track progress weekly",
		"Review outcomes against the success criteria",
	},
	initiative.DifficultyIntermediate: {
		"Confirm the owner and define what success looks like",
		"Break the work into two-week milestones",
		"Line up the people and budget each milestone needs",
		"Execute and track progress weekly",
		"Review outcomes against the success criteria",
	},
	initiative.DifficultyAdvanced: {
		"Confirm the owner and define what success looks like",
		"Run a scoping spike to surface unknowns",
		"Break the work into two-week milestones",
		"Line up the people and budget each milestone needs",
		"Execute with a weekly checkpoint on open risks",
		"Review outcomes against the success criteria",
	},
}

// ImplementationPath returns the ordered rollout steps for a difficulty
// level. Unmapped difficulty falls back to the Intermediate template.
func ImplementationPath(d initiative.Difficulty) []string {
	steps, ok := implementationPaths[d]
	if !ok {
		steps = implementationPaths[initiative.DifficultyIntermediate]
	}
	return append([]string(nil), steps...)
}

// successMetricKeys is ordered so category matching stays deterministic
// when a category mentions more than one keyword.
var successMetricKeys = []string{"revenue", "efficiency", "customer"}

var successMetricsByCategory = map[string][]string{
	"revenue": {
		"Monthly recurring revenue",
		"Lead-to-customer conversion rate",
		"Average deal size",
	},
	"efficiency": {
		"Cycle time per unit of work",
		"Cost per completed task",
		"Share of process automated",
	},
	"customer": {
		"Customer satisfaction score",
		"Retention rate",
		"Support ticket volume",
	},
}

var defaultSuccessMetrics = []string{
	"Adoption of the change",
	"Time to first measurable result",
	"Stakeholder satisfaction",
}

// SuccessMetrics selects the advisory metric list whose keyword appears
// in the lower-cased category, else the generic default.
func SuccessMetrics(category string) []string {
	lowered := strings.ToLower(category)
	for _, key := range successMetricKeys {
		if strings.Contains(lowered, key) {
			return append([]string(nil), successMetricsByCategory[key]...)
		}
	}
	return append([]string(nil), defaultSuccessMetrics...)
}
