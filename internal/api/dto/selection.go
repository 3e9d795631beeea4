package dto

import (
	"irrigation-plan-service/internal/domain"
	"irrigation-plan-service/internal/services"
)

type SkippedPointResponse struct {
	Name string  `json:"name,omitempty"`
	Area string  `json:"area,omitempty"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type SelectionResponse struct {
	Name          string                 `json:"name,omitempty"`
	Area          string                 `json:"area,omitempty"`
	Lat           float64                `json:"lat"`
	Lon           float64                `json:"lon"`
	EvapMM        float64                `json:"evap_mm"`
	DistanceKM    float64                `json:"distance_km"`
	SkippedPoints []SkippedPointResponse `json:"skipped_points,omitempty"`
}

type DiagnosticsResponse struct {
	TotalPoints   int                    `json:"total_points"`
	ValidCount    int                    `json:"valid_count"`
	SkippedCount  int                    `json:"skipped_count"`
	SkippedPoints []SkippedPointResponse `json:"skipped_points,omitempty"`
}

func FromSelection(r *services.SelectionResult) SelectionResponse {
	return SelectionResponse{
		Name:          r.Point.Name,
		Area:          r.Point.Area,
		Lat:           r.Point.Coord.Lat,
		Lon:           r.Point.Coord.Lon,
		EvapMM:        r.Point.EvapMM,
		DistanceKM:    r.DistanceKM,
		SkippedPoints: fromSkipped(r.Skipped),
	}
}

func FromDiagnostics(d services.SelectionDiagnostics) DiagnosticsResponse {
	return DiagnosticsResponse{
		TotalPoints:   d.TotalPoints,
		ValidCount:    d.ValidCount,
		SkippedCount:  d.SkippedCount,
		SkippedPoints: fromSkipped(d.Skipped),
	}
}

func fromSkipped(skipped []domain.SkippedPoint) []SkippedPointResponse {
	if len(skipped) == 0 {
		return nil
	}
	out := make([]SkippedPointResponse, 0, len(skipped))
	for _, s := range skipped {
		out = append(out, SkippedPointResponse{Name: s.Name, Area: s.Area, Lat: s.Lat, Lon: s.Lon})
	}
	return out
}
