package beast

import "fmt"

// Distribution is the capability a prior consumes: a value object that
// renders itself as one self-contained distribution fragment.
type Distribution interface {
	XML() string
}

// LogNormal is a log-normal distribution with mean M and standard
// deviation S in log space.
type LogNormal struct {
	ID              string
	Mean            float64
	SD              float64
	MeanInRealSpace bool
}

// NewLogNormal creates a LogNormal with a generated identifier.
func NewLogNormal(mean, sd float64) LogNormal {
	return LogNormal{ID: NewID("LogNormal"), Mean: mean, SD: sd}
}

func (d LogNormal) XML() string {
	return fmt.Sprintf(
		`<LogNormal id="%s" name="distr" meanInRealSpace="%t" M="%s" S="%s"/>`,
		d.ID, d.MeanInRealSpace, FormatFloat(d.Mean), FormatFloat(d.SD),
	)
}

// Exponential is an exponential distribution parameterized by its mean.
type Exponential struct {
	ID   string
	Mean float64
}

// NewExponential creates an Exponential with a generated identifier.
func NewExponential(mean float64) Exponential {
	return Exponential{ID: NewID("Exponential"), Mean: mean}
}

func (d Exponential) XML() string {
	return fmt.Sprintf(
		`<Exponential id="%s" name="distr" mean="%s"/>`,
		d.ID, FormatFloat(d.Mean),
	)
}

// Gamma is a gamma distribution with shape alpha and scale beta.
type Gamma struct {
	ID    string
	Alpha float64
	Beta  float64
}

// NewGamma creates a Gamma with a generated identifier.
func NewGamma(alpha, beta float64) Gamma {
	return Gamma{ID: NewID("Gamma"), Alpha: alpha, Beta: beta}
}

func (d Gamma) XML() string {
	return fmt.Sprintf(
		`<Gamma id="%s" name="distr" alpha="%s" beta="%s"/>`,
		d.ID, FormatFloat(d.Alpha), FormatFloat(d.Beta),
	)
}

// Beta is a beta distribution with shape parameters alpha and beta.
type Beta struct {
	ID    string
	Alpha float64
	Beta  float64
}

// NewBeta creates a Beta with a generated identifier.
func NewBeta(alpha, beta float64) Beta {
	return Beta{ID: NewID("Beta"), Alpha: alpha, Beta: beta}
}

func (d Beta) XML() string {
	return fmt.Sprintf(
		`<Beta id="%s" name="distr" alpha="%s" beta="%s"/>`,
		d.ID, FormatFloat(d.Alpha), FormatFloat(d.Beta),
	)
}

// Uniform is a uniform distribution over [Lower, Upper].
type Uniform struct {
	ID    string
	Lower float64
	Upper float64
}

// NewUniform creates a Uniform with a generated identifier.
func NewUniform(lower, upper float64) Uniform {
	return Uniform{ID: NewID("Uniform"), Lower: lower, Upper: upper}
}

func (d Uniform) XML() string {
	return fmt.Sprintf(
		`<Uniform id="%s" name="distr" lower="%s" upper="%s"/>`,
		d.ID, FormatFloat(d.Lower), FormatFloat(d.Upper),
	)
}
