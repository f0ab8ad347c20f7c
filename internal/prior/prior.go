package prior

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/critterbio/critter/internal/beast"
)

// variant selects the prior-declaration rendering strategy. Only the
// multi-type sampling proportion genuinely overrides rendering; every
// other role inherits the default shape.
type variant int

const (
	variantDefault variant = iota
	variantExcludable // multi-type excludable prior with inclusion mask
)

// Config holds the attributes of a prior before validation. Omitted
// fields take their defaults at construction: unbounded Lower/Upper,
// Dimension 1, ParamSpec parameter.RealParameter.
type Config struct {
	// ID is the identifier prefix for every generated fragment and for
	// cross-references to the state node.
	ID string

	// Distribution holds one distribution, or one per time interval when
	// Sliced is set.
	Distribution []beast.Distribution

	// Initial seeds the state node; a lone value is broadcast across
	// Dimension, a vector must match it.
	Initial []float64

	// Lower and Upper bound the state node. Nil means unbounded.
	Lower *float64
	Upper *float64

	// Dimension is the number of scalar components of the state node.
	Dimension int

	// Sliced selects the per-interval multi-fragment render path.
	Sliced bool

	// Intervals holds the slice boundary times. Rendered verbatim; the
	// engine defines how interval count relates to distribution count.
	Intervals []float64

	// ParamSpec names the state-node parameter kind.
	ParamSpec string
}

// Prior is an immutable, fully-validated prior specification. All
// renderers are pure derivations of its fields.
type Prior struct {
	id           string
	distribution []beast.Distribution
	initial      []float64
	lower        float64
	upper        float64
	dimension    int
	sliced       bool
	intervals    []float64
	paramSpec    string
	variant      variant
}

// New constructs a validated Prior from cfg, or returns the combined
// ValidationErrors describing every invalid field.
func New(cfg Config) (*Prior, error) {
	return newPrior(cfg, variantDefault)
}

func newPrior(cfg Config, v variant) (*Prior, error) {
	if errs := Validate(cfg); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	p := &Prior{
		// NFC normalization at the construction boundary keeps rendering
		// byte-stable for identifiers arriving in different Unicode forms.
		id:           norm.NFC.String(cfg.ID),
		distribution: slices.Clone(cfg.Distribution),
		initial:      slices.Clone(cfg.Initial),
		lower:        math.Inf(-1),
		upper:        math.Inf(1),
		dimension:    1,
		sliced:       cfg.Sliced,
		intervals:    slices.Clone(cfg.Intervals),
		paramSpec:    beast.ParamSpecReal,
		variant:      v,
	}
	if cfg.Lower != nil {
		p.lower = *cfg.Lower
	}
	if cfg.Upper != nil {
		p.upper = *cfg.Upper
	}
	if cfg.Dimension > 0 {
		p.dimension = cfg.Dimension
	}
	if cfg.ParamSpec != "" {
		p.paramSpec = cfg.ParamSpec
	}
	return p, nil
}

// ID returns the prior's identifier prefix.
func (p *Prior) ID() string { return p.id }

// Sliced reports whether the prior renders per-interval fragments.
func (p *Prior) Sliced() bool { return p.sliced }

// ParamSpec returns the state-node parameter kind tag.
func (p *Prior) ParamSpec() string { return p.paramSpec }

// Dimension returns the number of scalar components of the state node.
func (p *Prior) Dimension() int { return p.dimension }

// String is the human-readable conversion, equal to XML.
func (p *Prior) String() string { return p.XML() }

// XML renders the prior declaration fragment(s).
//
// Unsliced priors emit a single fragment binding the distribution to the
// state node. Sliced priors emit one fragment per distribution, indexed
// from 1, concatenated in order with no separator.
func (p *Prior) XML() string {
	if p.variant == variantExcludable {
		return p.renderExcludable()
	}
	if !p.sliced {
		return fmt.Sprintf(`<prior id="%sPrior" name="distribution" x="@%s">%s</prior>`,
			p.id, p.id, p.distribution[0].XML())
	}

	var b strings.Builder
	for i, d := range p.distribution {
		fmt.Fprintf(&b, `<prior id="%sSlice%d" name="distribution" x="@%s%d">%s</prior>`,
			p.id, i+1, p.id, i+1, d.XML())
	}
	return b.String()
}

// renderExcludable wraps the distribution in a multi-type excludable
// prior that also declares a boolean inclusion mask, one entry per
// initial value: true unless the value is exactly zero.
func (p *Prior) renderExcludable() string {
	return fmt.Sprintf(`<distribution id="%sPrior" spec="multitypetree.distributions.ExcludablePrior" x="@%s">`+
		`<xInclude id="samplingProportionXInclude" spec="parameter.BooleanParameter" dimension="%d">%s</xInclude>%s</distribution>`,
		p.id, p.id, p.dimension, p.inclusionMask(), p.distribution[0].XML())
}

func (p *Prior) inclusionMask() string {
	mask := make([]string, len(p.initial))
	for i, v := range p.initial {
		if v != 0 {
			mask[i] = "true"
		} else {
			mask[i] = "false"
		}
	}
	return strings.Join(mask, " ")
}

// RenderParam renders the state-node fragment for the parameter this
// prior constrains. Vector initial values are space-joined in order.
func (p *Prior) RenderParam() string {
	value := beast.FormatFloat(p.initial[0])
	if len(p.initial) > 1 {
		value = beast.JoinFloats(p.initial)
	}
	param := beast.RealParameter{
		ID:        p.id,
		Name:      "stateNode",
		Value:     value,
		Spec:      p.paramSpec,
		Dimension: p.dimension,
		Lower:     p.lower,
		Upper:     p.upper,
	}
	return param.XML()
}

// RenderLogger renders the trace logger reference for the state node.
func (p *Prior) RenderLogger() string {
	return fmt.Sprintf(`<log idref="%s"/>`, p.id)
}

// RenderSliceFunction renders one slicing function per distribution,
// projecting component i of the state node into the slice identifier.
// Returns the empty string for unsliced priors.
func (p *Prior) RenderSliceFunction() string {
	if !p.sliced {
		return ""
	}
	var b strings.Builder
	for i := range p.distribution {
		fmt.Fprintf(&b, "<function spec=\"beast.core.util.Slice\" id=\"%s%d\" arg=\"@%s\" index=\"%d\" count=\"1\"/>\n",
			p.id, i+1, p.id, i)
	}
	return b.String()
}

// rateChangeRoles are the identifier prefixes with a rate-change-time
// tag mapping. Note that origin may be sliced but has no mapping here;
// a sliced origin prior must not reach this renderer.
var rateChangeRoles = []struct {
	prefix string
	tag    string
}{
	{"samplingProportion", "samplingRateChangeTimes"},
	{"rho", "samplingRateChangeTimes"},
	{"reproductiveNumber", "birthRateChangeTimes"},
	{"becomeUninfectious", "deathRateChangeTimes"},
}

// RenderRateChangeTimes renders the single fragment declaring the times
// at which the sliced parameter's value may change. The tag name derives
// from the prior's identity. Returns the empty string for unsliced
// priors and a ConfigError for sliced priors whose identity maps to no
// rate-change-time tag.
func (p *Prior) RenderRateChangeTimes() (string, error) {
	if !p.sliced {
		return "", nil
	}
	for _, role := range rateChangeRoles {
		if strings.HasPrefix(p.id, role.prefix) {
			return fmt.Sprintf(`<%s spec="beast.core.parameter.RealParameter" value="%s"/>`,
				role.tag, beast.JoinFloats(p.intervals)), nil
		}
	}
	allowed := make([]string, len(rateChangeRoles))
	for i, role := range rateChangeRoles {
		allowed[i] = role.prefix
	}
	return "", &ConfigError{
		Code:    ErrCodeUnmappedRateChangeRole,
		ID:      p.id,
		Allowed: allowed,
		Message: "rate change times are only defined for sampling, birth and death rate priors",
	}
}

// RenderSliceLogger renders one logger reference per slice identifier.
// Returns the empty string for unsliced priors.
func (p *Prior) RenderSliceLogger() string {
	if !p.sliced {
		return ""
	}
	var b strings.Builder
	for i := range p.distribution {
		fmt.Fprintf(&b, "<log idref=\"%s%d\"/>\n", p.id, i+1)
	}
	return b.String()
}

// StateNodeGroupSize renders an integer-valued state node directly,
// bypassing the generic parameter fragment. Only the coalescent group
// size role emits this fragment; its values are counts, rendered without
// a decimal point.
func (p *Prior) StateNodeGroupSize() string {
	return fmt.Sprintf(`<stateNode id="%s" spec="parameter.IntegerParameter" dimension="%d">%s</stateNode>`,
		p.id, p.dimension, joinInts(p.initial))
}

func joinInts(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatInt(int64(v), 10)
	}
	return strings.Join(parts, " ")
}
