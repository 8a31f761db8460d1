package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PlanFile is the top-level structure of a campaign plan import file.
// The same shape is accepted as JSON or YAML.
type PlanFile struct {
	Campaign CampaignImport `json:"campaign" yaml:"campaign"`
	Phases   []PhaseImport  `json:"phases" yaml:"phases"`
}

// CampaignImport defines the campaign-level fields in the import file.
type CampaignImport struct {
	ShortID          string `json:"short_id" yaml:"short_id"`
	Title            string `json:"title" yaml:"title"`
	TargetAmount     int64  `json:"target_amount" yaml:"target_amount"`
	FundraisingStart string `json:"fundraising_start" yaml:"fundraising_start"`
	FundraisingEnd   string `json:"fundraising_end" yaml:"fundraising_end"`
	Status           string `json:"status,omitempty" yaml:"status,omitempty"`
}

// PhaseImport defines one phase in the import file, in execution order.
type PhaseImport struct {
	Name              string `json:"name" yaml:"name"`
	Location          string `json:"location" yaml:"location"`
	ProcurementAt     string `json:"procurement_at" yaml:"procurement_at"`
	PreparationAt     string `json:"preparation_at" yaml:"preparation_at"`
	DistributionAt    string `json:"distribution_at" yaml:"distribution_at"`
	IngredientShare   Share  `json:"ingredient_share" yaml:"ingredient_share"`
	PreparationShare  Share  `json:"preparation_share" yaml:"preparation_share"`
	DistributionShare Share  `json:"distribution_share" yaml:"distribution_share"`
}

// Share is a percentage written either as a number or as a string.
// It keeps the literal text so "33.30" and 33.3 both reach validation as
// typed.
type Share string

func (s *Share) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		*s = ""
		return nil
	case strings.HasPrefix(trimmed, `"`):
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Share(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("share must be a number or string: %w", err)
	}
	*s = Share(n.String())
	return nil
}

func (s *Share) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: share must be a scalar", value.Line)
	}
	if value.Tag == "!!null" {
		*s = ""
		return nil
	}
	*s = Share(value.Value)
	return nil
}

// LoadPlan reads a plan file. Files ending in .yaml or .yml are parsed as
// YAML, everything else as JSON.
func LoadPlan(path string) (*PlanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParsePlanYAML(data)
	default:
		return ParsePlanJSON(data)
	}
}

func ParsePlanJSON(data []byte) (*PlanFile, error) {
	var plan PlanFile
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &plan, nil
}

func ParsePlanYAML(data []byte) (*PlanFile, error) {
	var plan PlanFile
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &plan, nil
}
