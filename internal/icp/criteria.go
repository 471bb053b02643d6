// Package icp holds the Ideal Customer Profile specification and the
// deterministic scoring, review, and dispute-resolution rules the agents
// fall back to when no oracle is available.
package icp

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/anjy7/ascendo/internal/model"
)

// Weights distributes 100 points across the five scoring components.
type Weights struct {
	Industry     int `json:"industry" yaml:"industry" mapstructure:"industry"`
	Title        int `json:"title" yaml:"title" mapstructure:"title"`
	Department   int `json:"department" yaml:"department" mapstructure:"department"`
	Size         int `json:"size" yaml:"size" mapstructure:"size"`
	SpeakerBonus int `json:"speaker_bonus" yaml:"speaker_bonus" mapstructure:"speaker_bonus"`
}

// Criteria is the injected ICP specification scores are measured against.
type Criteria struct {
	TargetIndustries     []string `json:"target_industries" yaml:"target_industries" mapstructure:"target_industries"`
	TargetTitles         []string `json:"target_titles" yaml:"target_titles" mapstructure:"target_titles"`
	TargetDepartments    []string `json:"target_departments" yaml:"target_departments" mapstructure:"target_departments"`
	MinCompanySize       int      `json:"min_company_size" yaml:"min_company_size" mapstructure:"min_company_size"`
	PreferredCompanySize int      `json:"preferred_company_size" yaml:"preferred_company_size" mapstructure:"preferred_company_size"`
	Weights              Weights  `json:"weights" yaml:"weights" mapstructure:"weights"`
}

// DefaultCriteria is the field-service ICP the system ships with.
func DefaultCriteria() Criteria {
	return Criteria{
		TargetIndustries: []string{
			"Manufacturing",
			"Industrial Equipment",
			"Medical Devices",
			"Healthcare Technology",
			"Field Service",
			"HVAC",
			"Utilities",
			"Telecommunications",
			"Industrial Automation",
			"Building Automation",
			"Elevator/Escalator",
			"Energy",
			"Oil & Gas",
			"Aerospace",
			"Defense",
		},
		TargetTitles: []string{
			"VP",
			"Vice President",
			"SVP",
			"Senior Vice President",
			"EVP",
			"Executive Vice President",
			"Director",
			"Senior Director",
			"Chief",
			"C-Level",
			"COO",
			"CTO",
			"CIO",
			"Head of",
			"General Manager",
			"President",
		},
		TargetDepartments: []string{
			"Field Service",
			"Service",
			"Customer Service",
			"Customer Support",
			"Technical Support",
			"Operations",
			"Service Operations",
			"Aftermarket",
			"Service Delivery",
			"Digital",
			"Technology",
			"IT",
			"Innovation",
		},
		MinCompanySize:       500,
		PreferredCompanySize: 1000,
		Weights: Weights{
			Industry:     30,
			Title:        25,
			Department:   20,
			Size:         15,
			SpeakerBonus: 10,
		},
	}
}

// DefaultThresholds returns the shipped fit-level cut points.
func DefaultThresholds() model.Thresholds {
	return model.Thresholds{High: 75, Medium: 50}
}

// Profile bundles criteria and thresholds, the shape of a standalone ICP
// profile file.
type Profile struct {
	Criteria   Criteria         `yaml:"criteria"`
	Thresholds model.Thresholds `yaml:"thresholds"`
}

// LoadProfile reads an ICP profile from a YAML file. Zero-valued sections
// fall back to the shipped defaults so a partial profile is usable.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "icp: read profile %s", path)
	}

	var wrapper struct {
		ICP Profile `yaml:"icp"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "icp: parse profile")
	}

	p := &wrapper.ICP
	if len(p.Criteria.TargetIndustries) == 0 && len(p.Criteria.TargetTitles) == 0 {
		p.Criteria = DefaultCriteria()
	}
	if p.Thresholds.High == 0 && p.Thresholds.Medium == 0 {
		p.Thresholds = DefaultThresholds()
	}
	return p, nil
}
