package prior

import (
	"fmt"
	"strings"
)

// SliceRolePrefixes is the whitelist of identifier prefixes that may be
// sliced into piecewise time intervals. Slicing is only meaningful for
// birth-death skyline model priors.
var SliceRolePrefixes = []string{
	"origin",
	"rho",
	"samplingProportion",
	"reproductiveNumber",
	"becomeUninfectious",
}

// Validate checks a prior configuration against schema rules.
// Returns all errors found (does not fail-fast) so callers can collect
// every configuration problem before aborting document assembly.
func Validate(cfg Config) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(cfg.ID) == "" {
		errs = append(errs, ValidationError{
			Field:   "id",
			Message: "id is required and must be non-empty",
			Code:    ErrPriorIDEmpty,
		})
	}

	if len(cfg.Distribution) == 0 {
		errs = append(errs, ValidationError{
			Field:   "distribution",
			Message: "at least one distribution is required",
			Code:    ErrPriorNoDistribution,
		})
	}

	if len(cfg.Initial) == 0 {
		errs = append(errs, ValidationError{
			Field:   "initial",
			Message: "at least one initial value is required",
			Code:    ErrPriorNoInitial,
		})
	}

	if cfg.Dimension < 0 {
		errs = append(errs, ValidationError{
			Field:   "dimension",
			Message: fmt.Sprintf("dimension must be positive, got %d", cfg.Dimension),
			Code:    ErrPriorDimension,
		})
	}

	// A lone initial value is broadcast across the dimension; an explicit
	// vector must match it exactly.
	if cfg.Dimension > 1 && len(cfg.Initial) > 1 && len(cfg.Initial) != cfg.Dimension {
		errs = append(errs, ValidationError{
			Field:   "initial",
			Message: fmt.Sprintf("initial has %d values but dimension is %d", len(cfg.Initial), cfg.Dimension),
			Code:    ErrPriorInitialArity,
		})
	}

	// Slicing is restricted to birth-death skyline roles.
	if cfg.Sliced && !hasSliceRole(cfg.ID) {
		errs = append(errs, ValidationError{
			Field:   "sliced",
			Message: fmt.Sprintf("cannot slice prior %q: sliced prior identifiers must start with one of: %s",
				cfg.ID, strings.Join(SliceRolePrefixes, ", ")),
			Code: ErrPriorSlicedRole,
		})
	}

	return errs
}

func hasSliceRole(id string) bool {
	for _, prefix := range SliceRolePrefixes {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}
