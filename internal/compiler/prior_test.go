package compiler

import (
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/critterbio/critter/internal/beast"
	"github.com/critterbio/critter/internal/prior"
)

func compileString(t *testing.T, src string) ([]PriorDef, error) {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	require.NoError(t, v.Err())
	return CompileModel(v)
}

func TestCompileModel(t *testing.T) {
	src := `
prior: origin: {
	distribution: [{kind: "gamma", alpha: 2.0, beta: 40.0, id: "Gamma.0"}]
	initial: [60.0]
	lower:   0.0
}
prior: clockRate: {
	distribution: [{kind: "lognormal", mean: -5.0, sd: 1.25, id: "LogNormal.0"}]
	initial: [0.0008]
	lower:   0.0
}
`
	defs, err := compileString(t, src)
	require.NoError(t, err)
	require.Len(t, defs, 2)

	// Sorted by role name for deterministic assembly.
	assert.Equal(t, prior.Role("clockRate"), defs[0].Role)
	assert.Equal(t, prior.Role("origin"), defs[1].Role)

	origin := defs[1].Config
	require.Len(t, origin.Distribution, 1)
	assert.Equal(t, beast.Gamma{ID: "Gamma.0", Alpha: 2.0, Beta: 40.0}, origin.Distribution[0])
	assert.Equal(t, []float64{60.0}, origin.Initial)
	require.NotNil(t, origin.Lower)
	assert.Equal(t, 0.0, *origin.Lower)
	assert.Nil(t, origin.Upper)
}

func TestCompileModelSliced(t *testing.T) {
	src := `
prior: samplingProportion: {
	distribution: [
		{kind: "beta", alpha: 1.0, beta: 1.0, id: "Beta.0"},
		{kind: "beta", alpha: 2.0, beta: 5.0, id: "Beta.1"},
	]
	initial:   [0.1, 0.1]
	lower:     0.0
	upper:     1.0
	dimension: 2
	sliced:    true
	intervals: [0.0, 100.0]
}
`
	defs, err := compileString(t, src)
	require.NoError(t, err)
	require.Len(t, defs, 1)

	cfg := defs[0].Config
	assert.True(t, cfg.Sliced)
	assert.Equal(t, 2, cfg.Dimension)
	assert.Equal(t, []float64{0.0, 100.0}, cfg.Intervals)
	assert.Len(t, cfg.Distribution, 2)

	// Compiled configs construct cleanly via the registry.
	p, err := prior.ForRole(defs[0].Role, cfg)
	require.NoError(t, err)
	assert.Equal(t, "samplingProportion", p.ID())
}

func TestCompileModelDistributionKinds(t *testing.T) {
	tests := []struct {
		name     string
		distr    string
		expected beast.Distribution
	}{
		{
			name:     "lognormal",
			distr:    `{kind: "lognormal", mean: 1.0, sd: 1.5, id: "LogNormal.0"}`,
			expected: beast.LogNormal{ID: "LogNormal.0", Mean: 1.0, SD: 1.5},
		},
		{
			name:     "lognormal in real space",
			distr:    `{kind: "lognormal", mean: 2.0, sd: 0.5, real_space: true, id: "LogNormal.1"}`,
			expected: beast.LogNormal{ID: "LogNormal.1", Mean: 2.0, SD: 0.5, MeanInRealSpace: true},
		},
		{
			name:     "exponential",
			distr:    `{kind: "exponential", mean: 10.0, id: "Exponential.0"}`,
			expected: beast.Exponential{ID: "Exponential.0", Mean: 10.0},
		},
		{
			name:     "uniform",
			distr:    `{kind: "uniform", lower: 0.0, upper: 1.0, id: "Uniform.0"}`,
			expected: beast.Uniform{ID: "Uniform.0", Lower: 0.0, Upper: 1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := `
prior: clockRate: {
	distribution: [` + tt.distr + `]
	initial: [1.0]
}
`
			defs, err := compileString(t, src)
			require.NoError(t, err)
			require.Len(t, defs, 1)
			require.Len(t, defs[0].Config.Distribution, 1)
			assert.Equal(t, tt.expected, defs[0].Config.Distribution[0])
		})
	}
}

func TestCompileModelErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		contains string
	}{
		{
			name:     "missing prior struct",
			src:      `model: "bdss"`,
			contains: "top-level prior struct",
		},
		{
			name: "missing distribution",
			src: `
prior: origin: {
	initial: [60.0]
}
`,
			contains: "prior.origin.distribution",
		},
		{
			name: "missing kind",
			src: `
prior: origin: {
	distribution: [{alpha: 2.0}]
	initial: [60.0]
}
`,
			contains: "kind is required",
		},
		{
			name: "unknown kind",
			src: `
prior: origin: {
	distribution: [{kind: "cauchy", scale: 1.0}]
	initial: [60.0]
}
`,
			contains: `unknown distribution kind "cauchy"`,
		},
		{
			name: "missing gamma parameter",
			src: `
prior: origin: {
	distribution: [{kind: "gamma", alpha: 2.0}]
	initial: [60.0]
}
`,
			contains: "beta is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileString(t, tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestCompileErrorFormatting(t *testing.T) {
	err := &CompileError{Field: "prior.origin.initial", Message: "initial is required"}
	assert.Equal(t, "prior.origin.initial: initial is required", err.Error())
}
