package prior

import (
	"errors"
	"fmt"
	"strings"
)

// Validation error codes (E200-E219).
const (
	ErrPriorIDEmpty        = "E201" // id is required
	ErrPriorNoDistribution = "E202" // at least one distribution required
	ErrPriorNoInitial      = "E203" // at least one initial value required
	ErrPriorDimension      = "E204" // dimension must be positive
	ErrPriorInitialArity   = "E205" // initial length must match dimension
	ErrPriorSlicedRole     = "E206" // sliced prior on a non-whitelisted role
)

// ValidationError represents a single malformed field on a prior
// configuration. Validation collects every error found rather than
// failing fast, so authors can fix a configuration in one pass.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors is the combined failure returned by New when a
// configuration has one or more invalid fields.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// ConfigErrorCode categorizes cross-field configuration errors.
type ConfigErrorCode string

const (
	// ErrCodeUnknownRole indicates a role name not present in the registry.
	ErrCodeUnknownRole ConfigErrorCode = "UNKNOWN_ROLE"

	// ErrCodeUnmappedRateChangeRole indicates a sliced prior whose identity
	// has no rate-change-time tag mapping.
	ErrCodeUnmappedRateChangeRole ConfigErrorCode = "UNMAPPED_RATE_CHANGE_ROLE"
)

// ConfigError represents a configuration-authoring bug: a prior identity
// used outside the set of roles the downstream engine defines. It carries
// the offending identifier and the allowed set for diagnostics.
type ConfigError struct {
	Code    ConfigErrorCode
	ID      string
	Allowed []string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if len(e.Allowed) > 0 {
		return fmt.Sprintf("%s: %s (id=%s, allowed: %s)",
			e.Code, e.Message, e.ID, strings.Join(e.Allowed, ", "))
	}
	return fmt.Sprintf("%s: %s (id=%s)", e.Code, e.Message, e.ID)
}

// IsConfigError returns true if the error is a ConfigError.
// Uses errors.As to handle wrapped errors.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
