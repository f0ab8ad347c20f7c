package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: a set of prior
// definitions to render and assertions on the assembled document.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden
	// file name for golden comparisons.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Priors lists the prior definitions to construct and render, in
	// declaration order.
	Priors []PriorStep `yaml:"priors"`

	// Assertions validate the assembled document.
	// Supported types: contains, not_contains, count, order
	Assertions []Assertion `yaml:"assertions"`
}

// PriorStep declares one prior by role with its configuration.
// Fields mirror the CUE model schema.
type PriorStep struct {
	// Role names the registered model role (e.g. "origin", "rho").
	Role string `yaml:"role"`

	// Distributions lists the prior's distributions; one, or one per
	// interval when sliced. Each must carry an explicit id so rendering
	// is deterministic across runs.
	Distributions []DistributionSpec `yaml:"distributions"`

	// Initial seeds the state node.
	Initial []float64 `yaml:"initial"`

	// Lower and Upper bound the state node. Omitted means unbounded.
	Lower *float64 `yaml:"lower,omitempty"`
	Upper *float64 `yaml:"upper,omitempty"`

	// Dimension is the state node's component count. Omitted means 1.
	Dimension int `yaml:"dimension,omitempty"`

	// Sliced renders per-interval fragments over Intervals.
	Sliced    bool      `yaml:"sliced,omitempty"`
	Intervals []float64 `yaml:"intervals,omitempty"`
}

// DistributionSpec declares one distribution by kind.
type DistributionSpec struct {
	// Kind is one of lognormal, exponential, gamma, beta, uniform.
	Kind string `yaml:"kind"`

	// ID is the fragment identifier. Required: generated identifiers
	// would make scenario output nondeterministic.
	ID string `yaml:"id"`

	Mean      float64 `yaml:"mean,omitempty"`
	SD        float64 `yaml:"sd,omitempty"`
	Alpha     float64 `yaml:"alpha,omitempty"`
	Beta      float64 `yaml:"beta,omitempty"`
	Lower     float64 `yaml:"lower,omitempty"`
	Upper     float64 `yaml:"upper,omitempty"`
	RealSpace bool    `yaml:"real_space,omitempty"`
}

// Assertion validates the rendered document.
type Assertion struct {
	// Type specifies the assertion type:
	// - "contains": Fragment substring appears in the document
	// - "not_contains": Fragment substring does not appear
	// - "count": Fragment substring appears exactly N times
	// - "order": Fragment substrings appear in the given order
	Type string `yaml:"type"`

	// Fragment is the substring (used by contains, not_contains, count).
	Fragment string `yaml:"fragment,omitempty"`

	// Count is the expected number of occurrences (used by count).
	Count int `yaml:"count,omitempty"`

	// Fragments is the expected substring order (used by order).
	Fragments []string `yaml:"fragments,omitempty"`
}

// Assertion type constants.
const (
	AssertContains    = "contains"
	AssertNotContains = "not_contains"
	AssertCount       = "count"
	AssertOrder       = "order"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:".
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

	if len(s.Priors) == 0 {
		return fmt.Errorf("priors list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Priors {
		if step.Role == "" {
			return fmt.Errorf("priors[%d]: role is required", i)
		}
		if len(step.Distributions) == 0 {
			return fmt.Errorf("priors[%d]: distributions list is required and must be non-empty", i)
		}
		for j, d := range step.Distributions {
			if d.Kind == "" {
				return fmt.Errorf("priors[%d].distributions[%d]: kind is required", i, j)
			}
			if d.ID == "" {
				return fmt.Errorf("priors[%d].distributions[%d]: id is required", i, j)
			}
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertContains, AssertNotContains:
		if a.Fragment == "" {
			return fmt.Errorf("assertions[%d]: fragment is required for %s", index, a.Type)
		}
	case AssertCount:
		if a.Fragment == "" {
			return fmt.Errorf("assertions[%d]: fragment is required for count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertOrder:
		if len(a.Fragments) < 2 {
			return fmt.Errorf("assertions[%d]: at least two fragments are required for order", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
