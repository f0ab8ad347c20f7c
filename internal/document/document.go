// Package document assembles rendered prior fragments into the section
// layout the inference engine's configuration template expects: prior
// declarations, state nodes, loggers, then the slicing support fragments.
package document

import (
	"strings"

	"github.com/critterbio/critter/internal/beast"
	"github.com/critterbio/critter/internal/prior"
)

// Build concatenates every fragment section for the given priors, in
// prior order within each section. Fails on the first rate-change-time
// error; no partial document is returned.
func Build(priors []*prior.Prior) (string, error) {
	var b strings.Builder

	for _, p := range priors {
		b.WriteString(p.XML())
		b.WriteByte('\n')
	}

	for _, p := range priors {
		// Integer-valued priors (coalescent group sizes) declare their
		// state node directly instead of the generic parameter fragment.
		if p.ParamSpec() == beast.ParamSpecInteger {
			b.WriteString(p.StateNodeGroupSize())
		} else {
			b.WriteString(p.RenderParam())
		}
		b.WriteByte('\n')
	}

	for _, p := range priors {
		b.WriteString(p.RenderLogger())
		b.WriteByte('\n')
	}

	for _, p := range priors {
		b.WriteString(p.RenderSliceFunction())
	}

	for _, p := range priors {
		times, err := p.RenderRateChangeTimes()
		if err != nil {
			return "", err
		}
		if times != "" {
			b.WriteString(times)
			b.WriteByte('\n')
		}
	}

	for _, p := range priors {
		b.WriteString(p.RenderSliceLogger())
	}

	return b.String(), nil
}
