package initiative

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type rawInitiative struct {
	ID             string            `yaml:"id"`
	Title          string            `yaml:"title"`
	Description    string            `yaml:"description"`
	Action         string            `yaml:"action"`
	Reasoning      string            `yaml:"reasoning"`
	Impact         string            `yaml:"impact"`
	Confidence     *int              `yaml:"confidence"`
	Category       string            `yaml:"category"`
	EstimatedValue string            `yaml:"estimated_value"`
	Timeframe      string            `yaml:"timeframe"`
	Difficulty     string            `yaml:"difficulty"`
	Status         string            `yaml:"status"`
	Priority       string            `yaml:"priority"`
	Progress       *int              `yaml:"progress"`
	Dependencies   []string          `yaml:"dependencies"`
	Resources      rawResources      `yaml:"resources"`
	Tags           []string          `yaml:"tags"`
	Metadata       map[string]string `yaml:"metadata"`
}

type rawResources struct {
	TimeHours *float64 `yaml:"time_hours"`
	Cost      *float64 `yaml:"cost"`
	People    *int     `yaml:"people"`
}

// ValidationError captures a single field-specific validation issue.
type ValidationError struct {
	File    string
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.File, e.Field, e.Message)
}

// ValidationErrors aggregates multiple validation problems.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "\n")
}

// ParseAndValidate unmarshals and validates a YAML initiative document.
// Attributes beyond the title may be left unset; the engine treats missing
// attributes as degraded input, not as errors.
func ParseAndValidate(data []byte, source string) (Initiative, error) {
	var raw rawInitiative
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Initiative{}, ValidationErrors{{
			File:    source,
			Field:   "yaml",
			Message: err.Error(),
		}}
	}
	return validateRaw(raw, source)
}

func validateRaw(raw rawInitiative, source string) (Initiative, error) {
	var errs ValidationErrors

	item := Initiative{
		ID:             strings.TrimSpace(raw.ID),
		Title:          strings.TrimSpace(raw.Title),
		Description:    strings.TrimSpace(raw.Description),
		Action:         strings.TrimSpace(raw.Action),
		Reasoning:      strings.TrimSpace(raw.Reasoning),
		Category:       strings.TrimSpace(raw.Category),
		EstimatedValue: strings.TrimSpace(raw.EstimatedValue),
		Timeframe:      strings.TrimSpace(raw.Timeframe),
		Dependencies:   trimmedList(raw.Dependencies),
		Tags:           trimmedList(raw.Tags),
		Metadata:       raw.Metadata,
		Status:         StatusConcept,
	}

	if item.Title == "" {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   "title",
			Message: "title is required",
		})
	}

	if raw.Impact != "" {
		impact, err := ParseImpact(raw.Impact)
		if err != nil {
			errs = append(errs, ValidationError{File: source, Field: "impact", Message: err.Error()})
		} else {
			item.Impact = impact
		}
	}
	if raw.Difficulty != "" {
		difficulty, err := ParseDifficulty(raw.Difficulty)
		if err != nil {
			errs = append(errs, ValidationError{File: source, Field: "difficulty", Message: err.Error()})
		} else {
			item.Difficulty = difficulty
		}
	}
	if raw.Status != "" {
		status, err := ParseStatus(raw.Status)
		if err != nil {
			errs = append(errs, ValidationError{File: source, Field: "status", Message: err.Error()})
		} else {
			item.Status = status
		}
	}
	if raw.Priority != "" {
		priority, err := ParsePriorityLabel(raw.Priority)
		if err != nil {
			errs = append(errs, ValidationError{File: source, Field: "priority", Message: err.Error()})
		} else {
			item.Priority = priority
		}
	}

	if raw.Confidence != nil {
		if *raw.Confidence < 0 || *raw.Confidence > 100 {
			errs = append(errs, ValidationError{
				File:    source,
				Field:   "confidence",
				Message: "must be between 0 and 100",
			})
		} else {
			item.Confidence = *raw.Confidence
		}
	}
	if raw.Progress != nil {
		if *raw.Progress < 0 || *raw.Progress > 100 {
			errs = append(errs, ValidationError{
				File:    source,
				Field:   "progress",
				Message: "must be between 0 and 100",
			})
		} else {
			item.Progress = *raw.Progress
		}
	}

	if raw.Resources.TimeHours != nil {
		if *raw.Resources.TimeHours < 0 {
			errs = append(errs, ValidationError{File: source, Field: "resources.time_hours", Message: "cannot be negative"})
		} else {
			item.Resources.TimeHours = *raw.Resources.TimeHours
		}
	}
	if raw.Resources.Cost != nil {
		if *raw.Resources.Cost < 0 {
			errs = append(errs, ValidationError{File: source, Field: "resources.cost", Message: "cannot be negative"})
		} else {
			item.Resources.Cost = *raw.Resources.Cost
		}
	}
	if raw.Resources.People != nil {
		if *raw.Resources.People < 0 {
			errs = append(errs, ValidationError{File: source, Field: "resources.people", Message: "cannot be negative"})
		} else {
			item.Resources.People = *raw.Resources.People
		}
	}

	if len(errs) > 0 {
		return Initiative{}, errs
	}
	return item, nil
}

func trimmedList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
