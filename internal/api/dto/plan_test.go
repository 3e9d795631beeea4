package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irrigation-plan-service/internal/domain"
	"irrigation-plan-service/internal/services"
)

func f64(v float64) *float64 { return &v }

func samplePlan() *domain.Plan {
	return &domain.Plan{
		Date:           time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		Mode:           domain.ModeFarm,
		LitersPerDay:   f64(39270.6),
		LitersPerDunam: f64(7854.12),
		PulsesPerDay:   1,
		Coefficient: domain.CoefficientChoice{
			Value: 1.15,
			Source: domain.CoefficientSource{
				Type:  "fao56_stage",
				Title: "FAO Irrigation and Drainage Paper 56",
				URL:   "https://www.fao.org/4/x0490e/x0490e00.htm",
				Table: "Table 12",
			},
		},
		Inputs: domain.InputsUsed{EvapMM: 6.9, AreaM2: 5000, Kc: 1.15, Efficiency: 0.9},
		Warnings: []domain.Warning{
			{Code: domain.WarnPulseHeuristic, Text: "pulse count is a heuristic"},
		},
	}
}

func TestFromPlan(t *testing.T) {
	resp := FromPlan(samplePlan())

	assert.Equal(t, "2026-08-29", resp.Date)
	assert.Equal(t, "farm", resp.Mode)
	require.NotNil(t, resp.LitersPerDay)
	assert.Equal(t, 39270.6, *resp.LitersPerDay)
	require.NotNil(t, resp.LitersPerDunam)
	assert.Nil(t, resp.MLPerDay)
	assert.Equal(t, 1, resp.PulsesPerDay)
	assert.Equal(t, 1.15, resp.CoefficientValueUsed)
	assert.Equal(t, "fao56_stage", resp.CoefficientSource.SourceType)
	assert.Equal(t, "Table 12", resp.CoefficientSource.TableReference)
	assert.Equal(t, 6.9, resp.InputsUsed.EvapMM)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, domain.WarnPulseHeuristic, resp.Warnings[0].Code)
}

func TestPlanResponseSerialization(t *testing.T) {
	t.Run("farm omits ml_per_day", func(t *testing.T) {
		raw, err := json.Marshal(FromPlan(samplePlan()))
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"liters_per_day"`)
		assert.Contains(t, string(raw), `"liters_per_dunam"`)
		assert.NotContains(t, string(raw), `"ml_per_day"`)
	})

	t.Run("plant omits farm volumes", func(t *testing.T) {
		p := samplePlan()
		p.Mode = domain.ModePlant
		p.LitersPerDay = nil
		p.LitersPerDunam = nil
		p.MLPerDay = f64(175)

		raw, err := json.Marshal(FromPlan(p))
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"ml_per_day"`)
		assert.NotContains(t, string(raw), `"liters_per_day"`)
		assert.NotContains(t, string(raw), `"liters_per_dunam"`)
	})

	t.Run("no warnings serializes as empty array", func(t *testing.T) {
		p := samplePlan()
		p.Warnings = nil

		raw, err := json.Marshal(FromPlan(p))
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"warnings":[]`)
	})
}

func TestFromSelection(t *testing.T) {
	result := &services.SelectionResult{
		Point: domain.ObservationPoint{
			Name:   "Bet Dagan",
			Area:   "Center",
			Coord:  domain.Coordinate{Lat: 32.007, Lon: 34.814},
			EvapMM: 6.9,
		},
		DistanceKM: 3.2,
		Skipped: []domain.SkippedPoint{
			{Name: "Broken", Area: "Nowhere", Lat: 95, Lon: 34},
		},
	}

	resp := FromSelection(result)
	assert.Equal(t, "Bet Dagan", resp.Name)
	assert.Equal(t, 3.2, resp.DistanceKM)
	require.Len(t, resp.SkippedPoints, 1)
	assert.Equal(t, "Broken", resp.SkippedPoints[0].Name)
	assert.Equal(t, 95.0, resp.SkippedPoints[0].Lat)
}

func TestFromDiagnostics(t *testing.T) {
	diag := services.SelectionDiagnostics{
		TotalPoints:  3,
		ValidCount:   2,
		SkippedCount: 1,
		Skipped:      []domain.SkippedPoint{{Name: "Broken", Lat: 95, Lon: 34}},
	}

	resp := FromDiagnostics(diag)
	assert.Equal(t, 3, resp.TotalPoints)
	assert.Equal(t, 2, resp.ValidCount)
	assert.Equal(t, 1, resp.SkippedCount)
	require.Len(t, resp.SkippedPoints, 1)

	t.Run("empty skip list omitted in json", func(t *testing.T) {
		raw, err := json.Marshal(FromDiagnostics(services.SelectionDiagnostics{TotalPoints: 2, ValidCount: 2}))
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "skipped_points")
	})
}
