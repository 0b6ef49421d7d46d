package engine

import "firecycle/internal/initiative"

// Action is the resolver's verdict on how to handle a candidate that
// overlaps an existing initiative.
type Action string

const (
	ActionSkip    Action = "skip"
	ActionExpand  Action = "expand"
	ActionCombine Action = "combine"
	ActionProceed Action = "proceed"
)

// Contract constants. These are fixed, not configuration.
const (
	MaxRecommendationsPerCycle = 5
	SimilarityThreshold        = 0.7
)

// BusinessContext describes the company the decision is being made for.
type BusinessContext struct {
	Industry    string   `json:"industry,omitempty" yaml:"industry,omitempty"`
	CompanySize string   `json:"company_size,omitempty" yaml:"company_size,omitempty"`
	Maturity    float64  `json:"maturity,omitempty" yaml:"maturity,omitempty"`
	Priorities  []string `json:"priorities,omitempty" yaml:"priorities,omitempty"`
	Constraints []string `json:"constraints,omitempty" yaml:"constraints,omitempty"`
}

// AvailableResources is the budget, staffing, and time envelope a
// ranking or dedup decision operates within.
type AvailableResources struct {
	Budget          float64 `json:"budget" yaml:"budget"`
	TeamCapacity    int     `json:"team_capacity" yaml:"team_capacity"`
	TimeHorizonDays int     `json:"time_horizon_days" yaml:"time_horizon_days"`
}

// Context is the read-only snapshot a caller supplies for a single
// decision. The engine holds no state between calls.
type Context struct {
	UserID             string                  `json:"user_id"`
	CompanyID          string                  `json:"company_id,omitempty"`
	Business           BusinessContext         `json:"business_context"`
	CurrentInitiatives []initiative.Initiative `json:"current_initiatives,omitempty"`
	Resources          AvailableResources      `json:"available_resources"`
}

// DeduplicationResult reports whether a candidate duplicates existing
// work and what to do about it.
type DeduplicationResult struct {
	IsDuplicate            bool                   `json:"is_duplicate"`
	SimilarityScore        float64                `json:"similarity_score"`
	Existing               *initiative.Initiative `json:"existing_initiative,omitempty"`
	ExpansionOpportunities []string               `json:"expansion_opportunities"`
	RecommendedAction      Action                 `json:"recommended_action"`
}

// Recommendation is one ranked advisory entry.
type Recommendation struct {
	Initiative         initiative.Initiative `json:"initiative"`
	Priority           int                   `json:"priority"`
	Reasoning          string                `json:"reasoning"`
	ExpectedROI        float64               `json:"expected_roi"`
	ImplementationPath []string              `json:"implementation_path"`
	RiskFactors        []string              `json:"risk_factors"`
	SuccessMetrics     []string              `json:"success_metrics"`
}
