package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/basic_priors.yaml")
	require.NoError(t, err)

	assert.Equal(t, "basic_priors", scenario.Name)
	require.Len(t, scenario.Priors, 2)
	assert.Equal(t, "origin", scenario.Priors[0].Role)
	assert.Equal(t, "gamma", scenario.Priors[0].Distributions[0].Kind)
	require.NotNil(t, scenario.Priors[0].Lower)
	assert.Equal(t, 0.0, *scenario.Priors[0].Lower)
	assert.Nil(t, scenario.Priors[0].Upper)
	assert.Len(t, scenario.Assertions, 5)
}

func TestLoadScenarioSliced(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/sliced_sampling.yaml")
	require.NoError(t, err)

	require.Len(t, scenario.Priors, 1)
	step := scenario.Priors[0]
	assert.True(t, step.Sliced)
	assert.Equal(t, []float64{0.0, 100.0}, step.Intervals)
	assert.Len(t, step.Distributions, 2)
	assert.Equal(t, "Beta.1", step.Distributions[1].ID)
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/does_not_exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenarioRejectsUnknownFields(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: has a typo'd key
priors:
  - role: origin
    distributions:
      - kind: gamma
        id: Gamma.0
    initial: [60.0]
assertion:
  - type: contains
    fragment: origin
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenarioValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing name",
			content: `
description: no name
priors:
  - role: origin
    distributions: [{kind: gamma, id: Gamma.0}]
assertions:
  - {type: contains, fragment: origin}
`,
			wantErr: "name is required",
		},
		{
			name: "missing priors",
			content: `
name: empty
description: no priors
assertions:
  - {type: contains, fragment: origin}
`,
			wantErr: "priors list is required",
		},
		{
			name: "missing distribution id",
			content: `
name: noid
description: distribution without an id
priors:
  - role: origin
    distributions: [{kind: gamma}]
assertions:
  - {type: contains, fragment: origin}
`,
			wantErr: "id is required",
		},
		{
			name: "unknown assertion type",
			content: `
name: badassert
description: bogus assertion type
priors:
  - role: origin
    distributions: [{kind: gamma, id: Gamma.0}]
assertions:
  - {type: matches_regex, fragment: origin}
`,
			wantErr: `unknown assertion type "matches_regex"`,
		},
		{
			name: "order needs two fragments",
			content: `
name: shortorder
description: order with one fragment
priors:
  - role: origin
    distributions: [{kind: gamma, id: Gamma.0}]
assertions:
  - {type: order, fragments: [origin]}
`,
			wantErr: "at least two fragments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
