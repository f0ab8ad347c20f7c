package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoldenScenarios(t *testing.T) {
	for _, name := range []string{
		"testdata/scenarios/basic_priors.yaml",
		"testdata/scenarios/sliced_sampling.yaml",
	} {
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(name)
			require.NoError(t, err)
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}
