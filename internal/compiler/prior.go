// Package compiler turns CUE model definitions into validated prior
// configurations. A model file declares a top-level "prior" struct keyed
// by role name:
//
//	prior: origin: {
//		distribution: [{kind: "gamma", alpha: 2.0, beta: 40.0}]
//		initial: [60.0]
//		lower:   0.0
//	}
//
// The compiler parses using the CUE SDK's Go API directly (not a CLI
// subprocess) and leaves cross-field validation to the prior package.
package compiler

import (
	"fmt"
	"sort"

	"cuelang.org/go/cue"

	"github.com/critterbio/critter/internal/beast"
	"github.com/critterbio/critter/internal/prior"
)

// PriorDef pairs a registry role with its compiled configuration.
type PriorDef struct {
	Role   prior.Role
	Config prior.Config
}

// CompileModel parses every entry of the top-level "prior" struct.
// Definitions are returned sorted by role name so document assembly is
// deterministic regardless of declaration order across files.
func CompileModel(v cue.Value) ([]PriorDef, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	priorsVal := v.LookupPath(cue.ParsePath("prior"))
	if !priorsVal.Exists() {
		return nil, &CompileError{
			Field:   "prior",
			Message: "model must declare a top-level prior struct",
			Pos:     v.Pos(),
		}
	}

	iter, err := priorsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var defs []PriorDef
	for iter.Next() {
		role := iter.Label()
		cfg, err := CompilePrior(role, iter.Value())
		if err != nil {
			return nil, err
		}
		defs = append(defs, PriorDef{Role: prior.Role(role), Config: cfg})
	}

	sort.Slice(defs, func(i, j int) bool { return defs[i].Role < defs[j].Role })
	return defs, nil
}

// CompilePrior parses one prior definition struct into a Config. The
// role name is only used for error context; identifier pinning happens
// in the registry.
func CompilePrior(role string, v cue.Value) (prior.Config, error) {
	if err := v.Err(); err != nil {
		return prior.Config{}, formatCUEError(err)
	}

	cfg := prior.Config{}

	// distribution (required, at least one)
	distrVal := v.LookupPath(cue.ParsePath("distribution"))
	if !distrVal.Exists() {
		return prior.Config{}, &CompileError{
			Field:   fieldPath(role, "distribution"),
			Message: "at least one distribution is required",
			Pos:     v.Pos(),
		}
	}
	distrIter, err := distrVal.List()
	if err != nil {
		return prior.Config{}, formatCUEError(err)
	}
	for distrIter.Next() {
		d, err := compileDistribution(role, distrIter.Value())
		if err != nil {
			return prior.Config{}, err
		}
		cfg.Distribution = append(cfg.Distribution, d)
	}

	// initial (requiredness is enforced by prior.Validate)
	cfg.Initial, err = floatList(v, "initial")
	if err != nil {
		return prior.Config{}, err
	}

	// bounds (optional, unbounded when absent)
	if lowerVal := v.LookupPath(cue.ParsePath("lower")); lowerVal.Exists() {
		lower, err := lowerVal.Float64()
		if err != nil {
			return prior.Config{}, formatCUEError(err)
		}
		cfg.Lower = &lower
	}
	if upperVal := v.LookupPath(cue.ParsePath("upper")); upperVal.Exists() {
		upper, err := upperVal.Float64()
		if err != nil {
			return prior.Config{}, formatCUEError(err)
		}
		cfg.Upper = &upper
	}

	// dimension (optional, defaults to 1 at construction)
	if dimVal := v.LookupPath(cue.ParsePath("dimension")); dimVal.Exists() {
		dim, err := dimVal.Int64()
		if err != nil {
			return prior.Config{}, formatCUEError(err)
		}
		cfg.Dimension = int(dim)
	}

	// sliced + intervals (optional)
	if slicedVal := v.LookupPath(cue.ParsePath("sliced")); slicedVal.Exists() {
		sliced, err := slicedVal.Bool()
		if err != nil {
			return prior.Config{}, formatCUEError(err)
		}
		cfg.Sliced = sliced
	}
	if intervalsVal := v.LookupPath(cue.ParsePath("intervals")); intervalsVal.Exists() {
		cfg.Intervals, err = floatList(v, "intervals")
		if err != nil {
			return prior.Config{}, err
		}
	}

	return cfg, nil
}

// Distribution kinds accepted in model definitions.
var distributionKinds = map[string]bool{
	"lognormal":   true,
	"exponential": true,
	"gamma":       true,
	"beta":        true,
	"uniform":     true,
}

// compileDistribution parses one distribution struct. An explicit id pins
// the fragment identifier; otherwise one is generated, which makes the
// rendered document non-reproducible across runs.
func compileDistribution(role string, v cue.Value) (beast.Distribution, error) {
	kindVal := v.LookupPath(cue.ParsePath("kind"))
	if !kindVal.Exists() {
		return nil, &CompileError{
			Field:   fieldPath(role, "distribution.kind"),
			Message: "distribution kind is required",
			Pos:     v.Pos(),
		}
	}
	kind, err := kindVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	if !distributionKinds[kind] {
		return nil, &CompileError{
			Field:   fieldPath(role, "distribution.kind"),
			Message: fmt.Sprintf("unknown distribution kind %q, must be one of: beta, exponential, gamma, lognormal, uniform", kind),
			Pos:     kindVal.Pos(),
		}
	}

	id := ""
	if idVal := v.LookupPath(cue.ParsePath("id")); idVal.Exists() {
		if id, err = idVal.String(); err != nil {
			return nil, formatCUEError(err)
		}
	}

	switch kind {
	case "lognormal":
		mean, err := floatField(role, v, "mean")
		if err != nil {
			return nil, err
		}
		sd, err := floatField(role, v, "sd")
		if err != nil {
			return nil, err
		}
		d := beast.NewLogNormal(mean, sd)
		if id != "" {
			d.ID = id
		}
		if rsVal := v.LookupPath(cue.ParsePath("real_space")); rsVal.Exists() {
			if d.MeanInRealSpace, err = rsVal.Bool(); err != nil {
				return nil, formatCUEError(err)
			}
		}
		return d, nil

	case "exponential":
		mean, err := floatField(role, v, "mean")
		if err != nil {
			return nil, err
		}
		d := beast.NewExponential(mean)
		if id != "" {
			d.ID = id
		}
		return d, nil

	case "gamma":
		alpha, err := floatField(role, v, "alpha")
		if err != nil {
			return nil, err
		}
		betaParam, err := floatField(role, v, "beta")
		if err != nil {
			return nil, err
		}
		d := beast.NewGamma(alpha, betaParam)
		if id != "" {
			d.ID = id
		}
		return d, nil

	case "beta":
		alpha, err := floatField(role, v, "alpha")
		if err != nil {
			return nil, err
		}
		betaParam, err := floatField(role, v, "beta")
		if err != nil {
			return nil, err
		}
		d := beast.NewBeta(alpha, betaParam)
		if id != "" {
			d.ID = id
		}
		return d, nil

	default: // uniform
		lower, err := floatField(role, v, "lower")
		if err != nil {
			return nil, err
		}
		upper, err := floatField(role, v, "upper")
		if err != nil {
			return nil, err
		}
		d := beast.NewUniform(lower, upper)
		if id != "" {
			d.ID = id
		}
		return d, nil
	}
}

func floatField(role string, v cue.Value, name string) (float64, error) {
	fieldVal := v.LookupPath(cue.ParsePath(name))
	if !fieldVal.Exists() {
		return 0, &CompileError{
			Field:   fieldPath(role, "distribution."+name),
			Message: name + " is required",
			Pos:     v.Pos(),
		}
	}
	f, err := fieldVal.Float64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return f, nil
}

func floatList(v cue.Value, name string) ([]float64, error) {
	listVal := v.LookupPath(cue.ParsePath(name))
	if !listVal.Exists() {
		return nil, nil
	}
	iter, err := listVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var vals []float64
	for iter.Next() {
		f, err := iter.Value().Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		vals = append(vals, f)
	}
	return vals, nil
}

func fieldPath(role, field string) string {
	return fmt.Sprintf("prior.%s.%s", role, field)
}
