package beast

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat renders a float the way BEAST configuration values are
// written: integral values keep a decimal point ("2.0", never "2") and
// infinite values use the Java tokens "Infinity"/"-Infinity".
func FormatFloat(v float64) string {
	if math.IsInf(v, 1) {
		return "Infinity"
	}
	if math.IsInf(v, -1) {
		return "-Infinity"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// JoinFloats renders a sequence as space-separated value text, the wire
// form BEAST expects for vector-valued parameters and interval times.
func JoinFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = FormatFloat(v)
	}
	return strings.Join(parts, " ")
}
