package dto

import "irrigation-plan-service/internal/domain"

// Stable serialization contract for computed plans. A transport layer
// serializing plans must preserve this field set.

type SourceResponse struct {
	SourceType     string `json:"source_type"`
	SourceTitle    string `json:"source_title"`
	SourceURL      string `json:"source_url"`
	TableReference string `json:"table_reference,omitempty"`
}

type InputsResponse struct {
	EvapMM     float64 `json:"evap_mm"`
	AreaM2     float64 `json:"area_m2"`
	Kc         float64 `json:"kc"`
	Efficiency float64 `json:"efficiency"`
}

type WarningResponse struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

type PlanResponse struct {
	Date                 string            `json:"date"`
	Mode                 string            `json:"mode"`
	LitersPerDay         *float64          `json:"liters_per_day,omitempty"`
	LitersPerDunam       *float64          `json:"liters_per_dunam,omitempty"`
	MLPerDay             *float64          `json:"ml_per_day,omitempty"`
	PulsesPerDay         int               `json:"pulses_per_day"`
	CoefficientValueUsed float64           `json:"coefficient_value_used"`
	CoefficientSource    SourceResponse    `json:"coefficient_source"`
	InputsUsed           InputsResponse    `json:"inputs_used"`
	Warnings             []WarningResponse `json:"warnings"`
}

func FromPlan(p *domain.Plan) PlanResponse {
	warnings := make([]WarningResponse, 0, len(p.Warnings))
	for _, w := range p.Warnings {
		warnings = append(warnings, WarningResponse{Code: w.Code, Text: w.Text})
	}

	return PlanResponse{
		Date:                 p.Date.Format("2006-01-02"),
		Mode:                 string(p.Mode),
		LitersPerDay:         p.LitersPerDay,
		LitersPerDunam:       p.LitersPerDunam,
		MLPerDay:             p.MLPerDay,
		PulsesPerDay:         p.PulsesPerDay,
		CoefficientValueUsed: p.Coefficient.Value,
		CoefficientSource: SourceResponse{
			SourceType:     p.Coefficient.Source.Type,
			SourceTitle:    p.Coefficient.Source.Title,
			SourceURL:      p.Coefficient.Source.URL,
			TableReference: p.Coefficient.Source.Table,
		},
		InputsUsed: InputsResponse{
			EvapMM:     p.Inputs.EvapMM,
			AreaM2:     p.Inputs.AreaM2,
			Kc:         p.Inputs.Kc,
			Efficiency: p.Inputs.Efficiency,
		},
		Warnings: warnings,
	}
}
