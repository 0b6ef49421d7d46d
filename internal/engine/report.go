package engine

import "firecycle/internal/initiative"

const (
	DedupeReportSchemaVersion         = 1
	RecommendationReportSchemaVersion = 1
)

// DedupeReport is the persisted artifact of one duplicate check.
type DedupeReport struct {
	SchemaVersion   int                   `json:"schema_version"`
	GeneratedAt     string                `json:"generated_at"`
	UserID          string                `json:"user_id"`
	Candidate       initiative.Initiative `json:"candidate"`
	Result          DeduplicationResult   `json:"result"`
	DescriptionDiff string                `json:"description_diff,omitempty"`
}

// RecommendationReport is the persisted artifact of one ranking run.
type RecommendationReport struct {
	SchemaVersion   int              `json:"schema_version"`
	GeneratedAt     string           `json:"generated_at"`
	UserID          string           `json:"user_id"`
	PoolSize        int              `json:"pool_size"`
	Recommendations []Recommendation `json:"recommendations"`
}
