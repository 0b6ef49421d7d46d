package initiative

import "time"

// Impact is the expected business impact of an initiative.
type Impact string

const (
	ImpactLow      Impact = "Low"
	ImpactMedium   Impact = "Medium"
	ImpactHigh     Impact = "High"
	ImpactCritical Impact = "Critical"
)

// Difficulty is the estimated implementation difficulty.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Status is the lifecycle state of an initiative.
type Status string

const (
	StatusConcept        Status = "concept"
	StatusPlanning       Status = "planning"
	StatusImplementation Status = "implementation"
	StatusReview         Status = "review"
	StatusComplete       Status = "complete"
	StatusPaused         Status = "paused"
	StatusCancelled      Status = "cancelled"
)

// PriorityLabel is the caller-supplied advisory priority. It is distinct
// from the numeric priority score computed at ranking time.
type PriorityLabel string

const (
	PriorityLow      PriorityLabel = "low"
	PriorityMedium   PriorityLabel = "medium"
	PriorityHigh     PriorityLabel = "high"
	PriorityCritical PriorityLabel = "critical"
)

// Resources is the estimated footprint of delivering an initiative.
type Resources struct {
	TimeHours float64 `json:"time_hours" yaml:"time_hours"`
	Cost      float64 `json:"cost" yaml:"cost"`
	People    int     `json:"people" yaml:"people"`
}

// Initiative is a proposed unit of business improvement work tracked
// through its lifecycle.
type Initiative struct {
	ID             string            `json:"id" yaml:"id"`
	Title          string            `json:"title" yaml:"title"`
	Description    string            `json:"description,omitempty" yaml:"description,omitempty"`
	Action         string            `json:"action,omitempty" yaml:"action,omitempty"`
	Reasoning      string            `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	Impact         Impact            `json:"impact,omitempty" yaml:"impact,omitempty"`
	Confidence     int               `json:"confidence" yaml:"confidence"`
	Category       string            `json:"category,omitempty" yaml:"category,omitempty"`
	EstimatedValue string            `json:"estimated_value,omitempty" yaml:"estimated_value,omitempty"`
	Timeframe      string            `json:"timeframe,omitempty" yaml:"timeframe,omitempty"`
	Difficulty     Difficulty        `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Status         Status            `json:"status" yaml:"status"`
	Priority       PriorityLabel     `json:"priority,omitempty" yaml:"priority,omitempty"`
	Progress       int               `json:"progress" yaml:"progress"`
	Dependencies   []string          `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Resources      Resources         `json:"resources" yaml:"resources"`
	Tags           []string          `json:"tags,omitempty" yaml:"tags,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	CreatedAt      time.Time         `json:"created_at" yaml:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at" yaml:"updated_at"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}
