package beast

import "fmt"

// Parameter spec tags recognized by the inference engine.
const (
	ParamSpecReal    = "parameter.RealParameter"
	ParamSpecInteger = "parameter.IntegerParameter"
)

// RealParameter renders a state-node parameter fragment. Value is the
// already-formatted value text (scalar or space-joined vector); formatting
// is the caller's responsibility so the fragment stays a dumb value object.
type RealParameter struct {
	ID        string
	Name      string
	Value     string
	Spec      string
	Dimension int
	Lower     float64
	Upper     float64
	Estimate  bool
}

func (p RealParameter) XML() string {
	return fmt.Sprintf(
		`<parameter id="%s" spec="%s" estimate="%t" lower="%s" upper="%s" dimension="%d" name="%s">%s</parameter>`,
		p.ID, p.Spec, p.Estimate, FormatFloat(p.Lower), FormatFloat(p.Upper),
		p.Dimension, p.Name, p.Value,
	)
}
