package ports

import "irrigation-plan-service/internal/domain"

// Port: the coefficient lookup contract consumed by the plan engine.
// Unknown identifiers must fail; silent defaulting is never allowed.
type CoefficientResolver interface {
	// Return the stage coefficient for a crop, with provenance.
	ResolveCrop(name string, stage domain.Stage) (domain.CoefficientChoice, error)
	// Return the single coefficient for a plant profile, with provenance.
	ResolvePlant(name string) (domain.CoefficientChoice, error)
}
