// Package profile loads the business context and resource envelope a
// firecycle decision runs against.
package profile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"firecycle/internal/engine"
)

// Profile is the decision context loaded from context.yml.
type Profile struct {
	UserID    string
	Business  engine.BusinessContext
	Resources engine.AvailableResources
}

type rawProfile struct {
	UserID   string `yaml:"user_id"`
	Business struct {
		Industry    string   `yaml:"industry"`
		CompanySize string   `yaml:"company_size"`
		Maturity    *float64 `yaml:"maturity"`
		Priorities  []string `yaml:"priorities"`
		Constraints []string `yaml:"constraints"`
	} `yaml:"business_context"`
	Resources struct {
		Budget          *float64 `yaml:"budget"`
		TeamCapacity    *int     `yaml:"team_capacity"`
		TimeHorizonDays *int     `yaml:"time_horizon_days"`
	} `yaml:"available_resources"`
}

// Load reads and validates a profile from the given path.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	return ParseAndValidate(data, path)
}

// ParseAndValidate unmarshals and validates a YAML profile document.
func ParseAndValidate(data []byte, source string) (Profile, error) {
	var raw rawProfile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Profile{}, fmt.Errorf("%s: parse yaml: %w", source, err)
	}

	var problems []string

	p := Profile{
		UserID: strings.TrimSpace(raw.UserID),
		Business: engine.BusinessContext{
			Industry:    strings.TrimSpace(raw.Business.Industry),
			CompanySize: strings.TrimSpace(raw.Business.CompanySize),
			Priorities:  trimmed(raw.Business.Priorities),
			Constraints: trimmed(raw.Business.Constraints),
		},
	}

	if raw.Business.Maturity != nil {
		if *raw.Business.Maturity < 0 || *raw.Business.Maturity > 100 {
			problems = append(problems, "business_context.maturity must be between 0 and 100")
		} else {
			p.Business.Maturity = *raw.Business.Maturity
		}
	}
	if raw.Resources.Budget != nil {
		if *raw.Resources.Budget < 0 {
			problems = append(problems, "available_resources.budget cannot be negative")
		} else {
			p.Resources.Budget = *raw.Resources.Budget
		}
	}
	if raw.Resources.TeamCapacity != nil {
		if *raw.Resources.TeamCapacity < 0 {
			problems = append(problems, "available_resources.team_capacity cannot be negative")
		} else {
			p.Resources.TeamCapacity = *raw.Resources.TeamCapacity
		}
	}
	if raw.Resources.TimeHorizonDays != nil {
		if *raw.Resources.TimeHorizonDays < 0 {
			problems = append(problems, "available_resources.time_horizon_days cannot be negative")
		} else {
			p.Resources.TimeHorizonDays = *raw.Resources.TimeHorizonDays
		}
	}

	if len(problems) > 0 {
		return Profile{}, fmt.Errorf("%s: %s", source, strings.Join(problems, "; "))
	}
	return p, nil
}

// Context assembles an engine context for a single decision. The userID
// argument overrides the profile's user when non-empty.
func (p Profile) Context(userID string) engine.Context {
	if userID == "" {
		userID = p.UserID
	}
	return engine.Context{
		UserID:    userID,
		Business:  p.Business,
		Resources: p.Resources,
	}
}

func trimmed(values []string) []string {
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
