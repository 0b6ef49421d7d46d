package engine

import (
	"strings"

	"firecycle/internal/initiative"
)

// Fixed risk messages. The conditions are independent; any subset may fire.
const (
	riskCapacity   = "Advanced implementation may stretch a small team's capacity"
	riskBudget     = "Estimated cost exceeds 30% of the available budget"
	riskDependency = "Depends on other initiatives and may be delayed by them"
	riskConfidence = "Confidence below 70% increases outcome uncertainty"
)

// IdentifyRisks derives qualitative risk flags from structural
// conditions on the initiative and the decision context. Dependencies
// are not traversed; their presence alone is the signal.
func IdentifyRisks(item initiative.Initiative, fc Context) []string {
	var risks []string

	if item.Difficulty == initiative.DifficultyAdvanced &&
		strings.Contains(strings.ToLower(fc.Business.CompanySize), "small") {
		risks = append(risks, riskCapacity)
	}
	if item.Resources.Cost > 0.3*fc.Resources.Budget {
		risks = append(risks, riskBudget)
	}
	if len(item.Dependencies) > 0 {
		risks = append(risks, riskDependency)
	}
	if item.Confidence < 70 {
		risks = append(risks, riskConfidence)
	}

	return risks
}
