package services

import "irrigation-plan-service/internal/domain"

// Efficiency defaults keyed by irrigation method. Kept as a table so the
// policy stays auditable in one place.
var defaultEfficiencyByMethod = map[domain.Method]float64{
	domain.MethodDrip:      0.90,
	domain.MethodSprinkler: 0.75,
}

const (
	farmFallbackEfficiency  = 0.85
	plantDefaultEfficiency  = 1.00
)

// PulsePolicy is the threshold table for the pulse-count heuristic. The
// thresholds are provisional pending agronomic review, so they are data, not
// constants baked into the engine.
type PulsePolicy struct {
	// Farm mode escalates to two pulses when liters per square meter
	// strictly exceeds this ratio.
	FarmLitersPerM2Threshold float64
	FarmMaxPulses            int

	// Plant mode escalates to two pulses only for outdoor plants when the
	// day's evaporation strictly exceeds this depth in millimeters.
	PlantEvapMMThreshold float64
	PlantMaxPulses       int
}

// DefaultPulsePolicy is the current recommendation policy.
var DefaultPulsePolicy = PulsePolicy{
	FarmLitersPerM2Threshold: 10.0,
	FarmMaxPulses:            2,
	PlantEvapMMThreshold:     8.0,
	PlantMaxPulses:           2,
}
