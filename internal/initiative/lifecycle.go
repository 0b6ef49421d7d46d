package initiative

import (
	"fmt"
	"strings"
)

// forwardNext maps each lifecycle status to its forward-path successor.
var forwardNext = map[Status]Status{
	StatusConcept:        StatusPlanning,
	StatusPlanning:       StatusImplementation,
	StatusImplementation: StatusReview,
	StatusReview:         StatusComplete,
}

// Active reports whether the status makes an initiative eligible for
// ranking: concept, planning, or implementation.
func (s Status) Active() bool {
	switch s {
	case StatusConcept, StatusPlanning, StatusImplementation:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusCancelled
}

// CanTransition reports whether moving from one status to another is a
// legal lifecycle step. Forward moves follow concept, planning,
// implementation, review, complete in order. Paused and cancelled are
// reachable from any non-terminal status, and a paused initiative may
// resume to any pre-complete working status.
func CanTransition(from, to Status) bool {
	if from == to {
		return false
	}
	if from.Terminal() {
		return false
	}
	if to == StatusPaused || to == StatusCancelled {
		return true
	}
	if from == StatusPaused {
		switch to {
		case StatusConcept, StatusPlanning, StatusImplementation, StatusReview:
			return true
		}
		return false
	}
	return forwardNext[from] == to
}

// ParseStatus validates a lifecycle status value.
func ParseStatus(value string) (Status, error) {
	switch Status(strings.TrimSpace(value)) {
	case StatusConcept:
		return StatusConcept, nil
	case StatusPlanning:
		return StatusPlanning, nil
	case StatusImplementation:
		return StatusImplementation, nil
	case StatusReview:
		return StatusReview, nil
	case StatusComplete:
		return StatusComplete, nil
	case StatusPaused:
		return StatusPaused, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return Status(value), fmt.Errorf("invalid status %q (expected concept, planning, implementation, review, complete, paused, or cancelled)", value)
	}
}

// ParseImpact validates an impact value.
func ParseImpact(value string) (Impact, error) {
	switch Impact(strings.TrimSpace(value)) {
	case ImpactLow:
		return ImpactLow, nil
	case ImpactMedium:
		return ImpactMedium, nil
	case ImpactHigh:
		return ImpactHigh, nil
	case ImpactCritical:
		return ImpactCritical, nil
	default:
		return Impact(value), fmt.Errorf("invalid impact %q (expected Low, Medium, High, or Critical)", value)
	}
}

// ParseDifficulty validates an implementation difficulty value.
func ParseDifficulty(value string) (Difficulty, error) {
	switch Difficulty(strings.TrimSpace(value)) {
	case DifficultyBeginner:
		return DifficultyBeginner, nil
	case DifficultyIntermediate:
		return DifficultyIntermediate, nil
	case DifficultyAdvanced:
		return DifficultyAdvanced, nil
	default:
		return Difficulty(value), fmt.Errorf("invalid difficulty %q (expected Beginner, Intermediate, or Advanced)", value)
	}
}

// ParsePriorityLabel validates an advisory priority label.
func ParsePriorityLabel(value string) (PriorityLabel, error) {
	switch PriorityLabel(strings.TrimSpace(value)) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityCritical:
		return PriorityCritical, nil
	default:
		return PriorityLabel(value), fmt.Errorf("invalid priority %q (expected low, medium, high, or critical)", value)
	}
}

func (s Status) String() string        { return string(s) }
func (i Impact) String() string        { return string(i) }
func (d Difficulty) String() string    { return string(d) }
func (p PriorityLabel) String() string { return string(p) }
