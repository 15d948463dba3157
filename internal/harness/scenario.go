package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/provgraph/internal/provgraph"
	"github.com/roach88/provgraph/internal/rdfload"
)

// Scenario defines one derivation test.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Format is the document serialization. Defaults to nquads.
	Format string `yaml:"format,omitempty"`

	// GraphFilter keeps only graphs whose name contains it.
	GraphFilter string `yaml:"graph_filter,omitempty"`

	// Policy overrides the default derivation policy.
	Policy *PolicySpec `yaml:"policy,omitempty"`

	// Document is the inline provenance document.
	Document string `yaml:"document"`

	// Assertions validate the derived graph.
	Assertions []Assertion `yaml:"assertions"`
}

// PolicySpec is the YAML form of provgraph.Policy.
type PolicySpec struct {
	OutputConflict string `yaml:"output_conflict,omitempty"`
	ParentTieBreak string `yaml:"parent_tie_break,omitempty"`
}

// derivePolicy returns the scenario's policy with defaults applied.
func (s *Scenario) derivePolicy() provgraph.Policy {
	if s.Policy == nil {
		return provgraph.DefaultPolicy()
	}
	return provgraph.Policy{
		OutputConflict: provgraph.OutputConflict(s.Policy.OutputConflict),
		ParentTieBreak: provgraph.ParentTieBreak(s.Policy.ParentTieBreak),
	}.WithDefaults()
}

// Assertion validates one fact about the derived graph.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Node is the node identifier the assertion is about.
	Node string `yaml:"node,omitempty"`

	// Count is the expected number (node_count, input_count).
	Count int `yaml:"count,omitempty"`

	// Label is the expected label (node_label).
	Label string `yaml:"label,omitempty"`

	// Parents is the expected parent sequence (parents).
	Parents []string `yaml:"parents,omitempty"`

	// Input is the input value id (input_linked, input_unresolved).
	Input string `yaml:"input,omitempty"`

	// Producer is the expected producing node (input_linked).
	Producer string `yaml:"producer,omitempty"`

	// Output is the output value id (output).
	Output string `yaml:"output,omitempty"`

	// Name and Value are the expected port and value (output).
	Name  string `yaml:"name,omitempty"`
	Value string `yaml:"value,omitempty"`
}

// Assertion type constants.
const (
	AssertNodeCount       = "node_count"
	AssertNodeLabel       = "node_label"
	AssertParents         = "parents"
	AssertInputCount      = "input_count"
	AssertInputLinked     = "input_linked"
	AssertInputUnresolved = "input_unresolved"
	AssertOutput          = "output"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict decoding catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Document == "" {
		return fmt.Errorf("document is required")
	}

	if s.Format != "" {
		if _, err := rdfload.ParseFormat(s.Format); err != nil {
			return err
		}
	}

	if err := s.derivePolicy().Validate(); err != nil {
		return err
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertion %d: %w", i, err)
		}
	}

	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertNodeCount:
		return nil
	case AssertNodeLabel, AssertParents, AssertInputCount:
		if a.Node == "" {
			return fmt.Errorf("%s requires node", a.Type)
		}
	case AssertInputLinked:
		if a.Node == "" || a.Input == "" || a.Producer == "" {
			return fmt.Errorf("%s requires node, input and producer", a.Type)
		}
	case AssertInputUnresolved:
		if a.Node == "" || a.Input == "" {
			return fmt.Errorf("%s requires node and input", a.Type)
		}
	case AssertOutput:
		if a.Node == "" || a.Output == "" {
			return fmt.Errorf("%s requires node and output", a.Type)
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
