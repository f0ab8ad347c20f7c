// Package harness provides a conformance testing framework for prior
// rendering. Scenarios declare prior definitions in YAML, the harness
// constructs them through the role registry, assembles the fragment
// document, and evaluates assertions on the result. Golden comparison
// pins the assembled document byte for byte.
package harness

import (
	"fmt"
	"strings"

	"github.com/critterbio/critter/internal/beast"
	"github.com/critterbio/critter/internal/document"
	"github.com/critterbio/critter/internal/prior"
)

// Result holds the outcome of a scenario run.
type Result struct {
	Pass     bool
	Document string
	Errors   []string
}

// AddError records an assertion failure and marks the result failed.
func (r *Result) AddError(msg string) {
	r.Pass = false
	r.Errors = append(r.Errors, msg)
}

// Run executes a scenario: construct every declared prior, assemble the
// document, and evaluate the assertions. Construction errors abort the
// run; assertion failures accumulate on the result.
func Run(scenario *Scenario) (*Result, error) {
	priors := make([]*prior.Prior, 0, len(scenario.Priors))
	for i, step := range scenario.Priors {
		cfg, err := buildConfig(step)
		if err != nil {
			return nil, fmt.Errorf("priors[%d] (%s): %w", i, step.Role, err)
		}
		p, err := prior.ForRole(prior.Role(step.Role), cfg)
		if err != nil {
			return nil, fmt.Errorf("priors[%d] (%s): %w", i, step.Role, err)
		}
		priors = append(priors, p)
	}

	doc, err := document.Build(priors)
	if err != nil {
		return nil, fmt.Errorf("assembling document: %w", err)
	}

	result := &Result{Pass: true, Document: doc}
	EvaluateAssertions(result, scenario.Assertions)
	return result, nil
}

// buildConfig converts a scenario prior step into a registry config.
func buildConfig(step PriorStep) (prior.Config, error) {
	dists := make([]beast.Distribution, len(step.Distributions))
	for i, spec := range step.Distributions {
		d, err := buildDistribution(spec)
		if err != nil {
			return prior.Config{}, fmt.Errorf("distributions[%d]: %w", i, err)
		}
		dists[i] = d
	}

	return prior.Config{
		Distribution: dists,
		Initial:      step.Initial,
		Lower:        step.Lower,
		Upper:        step.Upper,
		Dimension:    step.Dimension,
		Sliced:       step.Sliced,
		Intervals:    step.Intervals,
	}, nil
}

func buildDistribution(spec DistributionSpec) (beast.Distribution, error) {
	switch spec.Kind {
	case "lognormal":
		return beast.LogNormal{ID: spec.ID, Mean: spec.Mean, SD: spec.SD, MeanInRealSpace: spec.RealSpace}, nil
	case "exponential":
		return beast.Exponential{ID: spec.ID, Mean: spec.Mean}, nil
	case "gamma":
		return beast.Gamma{ID: spec.ID, Alpha: spec.Alpha, Beta: spec.Beta}, nil
	case "beta":
		return beast.Beta{ID: spec.ID, Alpha: spec.Alpha, Beta: spec.Beta}, nil
	case "uniform":
		return beast.Uniform{ID: spec.ID, Lower: spec.Lower, Upper: spec.Upper}, nil
	default:
		return nil, fmt.Errorf("unknown distribution kind %q", spec.Kind)
	}
}

// EvaluateAssertions checks every assertion against the result's
// document, recording one error message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion) {
	for i, a := range assertions {
		switch a.Type {
		case AssertContains:
			if !strings.Contains(result.Document, a.Fragment) {
				result.AddError(fmt.Sprintf("assertions[%d]: document does not contain %q", i, a.Fragment))
			}
		case AssertNotContains:
			if strings.Contains(result.Document, a.Fragment) {
				result.AddError(fmt.Sprintf("assertions[%d]: document contains forbidden %q", i, a.Fragment))
			}
		case AssertCount:
			if got := strings.Count(result.Document, a.Fragment); got != a.Count {
				result.AddError(fmt.Sprintf("assertions[%d]: %q appears %d time(s), want %d", i, a.Fragment, got, a.Count))
			}
		case AssertOrder:
			pos := 0
			for _, frag := range a.Fragments {
				idx := strings.Index(result.Document[pos:], frag)
				if idx < 0 {
					result.AddError(fmt.Sprintf("assertions[%d]: %q not found in order", i, frag))
					break
				}
				pos += idx + len(frag)
			}
		default:
			result.AddError(fmt.Sprintf("assertions[%d]: unknown assertion type %q", i, a.Type))
		}
	}
}
