package domain

import "time"

// Warning reason codes carried alongside the human-readable text.
const (
	WarnStageDefaulted = "stage_defaulted"
	WarnPulseHeuristic = "pulse_heuristic"
)

// Warning is a structured advisory attached to a computed plan.
type Warning struct {
	Code string
	Text string
}

// CoefficientSource records where a coefficient value came from, so every
// plan is traceable to its reference table.
type CoefficientSource struct {
	Type  string // e.g. "fao56_stage", "plant_profile"
	Title string
	URL   string
	Table string // table reference within the source, may be empty
}

// CoefficientChoice is a resolved coefficient value together with its
// provenance.
type CoefficientChoice struct {
	Value  float64
	Source CoefficientSource
}

// InputsUsed snapshots every resolved quantity that fed the water-balance
// formula. Recomputing from this snapshot reproduces the plan's output.
type InputsUsed struct {
	EvapMM     float64
	AreaM2     float64
	Kc         float64
	Efficiency float64
}

// Plan is the computed irrigation recommendation for one calendar day.
// Created fresh per computation and never mutated afterwards.
type Plan struct {
	Date time.Time
	Mode Mode

	// Farm mode output volumes.
	LitersPerDay   *float64
	LitersPerDunam *float64

	// Plant mode output volume.
	MLPerDay *float64

	PulsesPerDay int
	Coefficient  CoefficientChoice
	Inputs       InputsUsed
	Warnings     []Warning
}
