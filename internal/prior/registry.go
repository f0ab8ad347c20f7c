package prior

import (
	"sort"

	"github.com/critterbio/critter/internal/beast"
)

// Role names a model-role configuration in the registry. Each role pins
// the identifier prefix the downstream engine expects for that role.
type Role string

// Birth-death skyline roles.
const (
	RoleOrigin                 Role = "origin"
	RoleReproductiveNumber     Role = "reproductiveNumber"
	RoleSamplingProportion     Role = "samplingProportion"
	RoleBecomeUninfectiousRate Role = "becomeUninfectiousRate"
	RoleRho                    Role = "rho"
)

// Multi-type birth-death roles.
const (
	RoleRateMatrix             Role = "rateMatrix"
	RoleSamplingProportionMTBD Role = "samplingProportionMTBD"
)

// Coalescent Bayesian skyline roles.
const (
	RolePopulationSize Role = "populationSize"
	RoleGroupSize      Role = "groupSize"
)

// Clock roles.
const (
	RoleClockRate Role = "clockRate"
	RoleUCREMean  Role = "ucreMean"
	RoleUCRLMean  Role = "ucrlMean"
	RoleUCRLSD    Role = "ucrlSD"
)

// roleSpec is a registry entry: the pinned identifier, an optional pinned
// parameter spec, and the rendering variant. Only two roles deviate from
// the default behavior (group size pins an integer parameter, the
// multi-type sampling proportion overrides prior rendering).
type roleSpec struct {
	id        string
	paramSpec string // non-empty overrides any caller-supplied ParamSpec
	variant   variant
}

var registry = map[Role]roleSpec{
	RoleOrigin:                 {id: "origin"},
	RoleReproductiveNumber:     {id: "reproductiveNumber"},
	RoleSamplingProportion:     {id: "samplingProportion"},
	RoleBecomeUninfectiousRate: {id: "becomeUninfectiousRate"},
	RoleRho:                    {id: "rho"},
	RoleRateMatrix:             {id: "rateMatrix"},
	RoleSamplingProportionMTBD: {id: "samplingProportion", variant: variantExcludable},
	RolePopulationSize:         {id: "bPopSizes"},
	RoleGroupSize:              {id: "bGroupSizes", paramSpec: beast.ParamSpecInteger},
	RoleClockRate:              {id: "clockRate"},
	RoleUCREMean:               {id: "ucreMean"},
	RoleUCRLMean:               {id: "ucrlMean"},
	RoleUCRLSD:                 {id: "ucrlSD"},
}

// Roles returns all registered role names in sorted order.
func Roles() []string {
	names := make([]string, 0, len(registry))
	for role := range registry {
		names = append(names, string(role))
	}
	sort.Strings(names)
	return names
}

// ForRole constructs a validated Prior for a registered role. The role's
// identifier always replaces cfg.ID; roles that pin a parameter spec
// replace cfg.ParamSpec regardless of what the caller supplied.
func ForRole(role Role, cfg Config) (*Prior, error) {
	spec, ok := registry[role]
	if !ok {
		return nil, &ConfigError{
			Code:    ErrCodeUnknownRole,
			ID:      string(role),
			Allowed: Roles(),
			Message: "unknown prior role",
		}
	}
	cfg.ID = spec.id
	if spec.paramSpec != "" {
		cfg.ParamSpec = spec.paramSpec
	}
	return newPrior(cfg, spec.variant)
}
