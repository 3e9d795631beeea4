package services

import (
	"fmt"
	"math"

	"irrigation-plan-service/internal/domain"
	"irrigation-plan-service/internal/ports"
)

// ComputePlan turns a validated profile plus one observation into an
// irrigation plan.
//
// Core formula:
//
//	base_liters   = evap_mm * area_m2 * kc
//	liters_per_day = base_liters / efficiency
//
// The caller selects the observation point first (PickNearest); this step is
// pure arithmetic over its inputs plus one coefficient lookup. Every resolved
// intermediate value is recorded on the plan, and every failure propagates as
// a typed error with no silent recovery.
func ComputePlan(profile domain.Profile, obs domain.ObservationPoint, coeffs ports.CoefficientResolver, policy PulsePolicy) (*domain.Plan, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("compute plan: %w", err)
	}

	var warnings []domain.Warning

	area, err := resolveArea(profile)
	if err != nil {
		return nil, fmt.Errorf("compute plan: %w", err)
	}

	kc, err := resolveCoefficient(profile, coeffs, &warnings)
	if err != nil {
		return nil, fmt.Errorf("compute plan: %w", err)
	}

	efficiency, err := resolveEfficiency(profile)
	if err != nil {
		return nil, fmt.Errorf("compute plan: %w", err)
	}

	baseLiters, err := domain.MMToLiters(obs.EvapMM*kc.Value, area)
	if err != nil {
		return nil, fmt.Errorf("compute plan: %w", err)
	}
	litersPerDay := math.Max(0, baseLiters/efficiency)

	plan := &domain.Plan{
		Date:        obs.Date,
		Mode:        profile.Mode,
		Coefficient: kc,
		Inputs: domain.InputsUsed{
			EvapMM:     obs.EvapMM,
			AreaM2:     area,
			Kc:         kc.Value,
			Efficiency: efficiency,
		},
	}

	switch profile.Mode {
	case domain.ModeFarm:
		pulses, warning := farmPulses(litersPerDay, area, policy)
		warnings = append(warnings, warning)
		litersPerDunam := litersPerDay / area * 1000.0

		plan.LitersPerDay = &litersPerDay
		plan.LitersPerDunam = &litersPerDunam
		plan.PulsesPerDay = pulses

	case domain.ModePlant:
		mlPerDay, err := domain.LitersToML(litersPerDay)
		if err != nil {
			return nil, fmt.Errorf("compute plan: %w", err)
		}
		pulses, warning := plantPulses(profile, obs, policy)
		if warning != nil {
			warnings = append(warnings, *warning)
		}

		plan.MLPerDay = &mlPerDay
		plan.PulsesPerDay = pulses
	}

	plan.Warnings = warnings
	return plan, nil
}

func resolveArea(profile domain.Profile) (float64, error) {
	var area float64

	switch profile.Mode {
	case domain.ModeFarm:
		switch {
		case profile.AreaM2 != nil:
			area = *profile.AreaM2
		case profile.AreaDunam != nil:
			converted, err := domain.DunamToM2(*profile.AreaDunam)
			if err != nil {
				return 0, err
			}
			area = converted
		}

	case domain.ModePlant:
		switch {
		case profile.PotVolumeL != nil:
			// Heuristic: one liter of pot volume approximates 0.01 m² of
			// effective wetted area.
			area = *profile.PotVolumeL * 0.01
		case profile.PotDiameterCM != nil:
			radiusM := (*profile.PotDiameterCM / 100.0) / 2.0
			area = math.Pi * radiusM * radiusM
		}
	}

	if area <= 0 {
		return 0, &domain.ValidationError{Field: "area", Reason: fmt.Sprintf("must be positive, got %v m²", area)}
	}
	return area, nil
}

func resolveCoefficient(profile domain.Profile, coeffs ports.CoefficientResolver, warnings *[]domain.Warning) (domain.CoefficientChoice, error) {
	if profile.Mode == domain.ModePlant {
		return coeffs.ResolvePlant(profile.ProfileName)
	}

	stage := profile.Stage
	if stage == "" {
		stage = domain.StageMid
		*warnings = append(*warnings, domain.Warning{
			Code: domain.WarnStageDefaulted,
			Text: `stage not provided, defaulted to "mid"; provide stage (initial/mid/end) for more accurate results`,
		})
	}
	return coeffs.ResolveCrop(profile.CropName, stage)
}

func resolveEfficiency(profile domain.Profile) (float64, error) {
	if profile.Efficiency != nil {
		eff := *profile.Efficiency
		if eff <= 0 || eff > 1 {
			return 0, &domain.ValidationError{Field: "efficiency", Reason: fmt.Sprintf("must be in (0, 1], got %v", eff)}
		}
		return eff, nil
	}

	if eff, ok := defaultEfficiencyByMethod[profile.Method]; ok {
		return eff, nil
	}
	if profile.Mode == domain.ModeFarm {
		return farmFallbackEfficiency, nil
	}
	return plantDefaultEfficiency, nil
}

// farmPulses applies the liter-per-area threshold. The disclaimer always
// accompanies the farm pulse count, escalated or not.
func farmPulses(litersPerDay, areaM2 float64, policy PulsePolicy) (int, domain.Warning) {
	pulses := 1
	if litersPerDay/areaM2 > policy.FarmLitersPerM2Threshold {
		pulses = 2
	}
	if pulses > policy.FarmMaxPulses {
		pulses = policy.FarmMaxPulses
	}
	return pulses, domain.Warning{
		Code: domain.WarnPulseHeuristic,
		Text: "pulse count is a heuristic; verify with agronomist/soil type",
	}
}

func plantPulses(profile domain.Profile, obs domain.ObservationPoint, policy PulsePolicy) (int, *domain.Warning) {
	if profile.Placement != domain.PlacementOutdoor || obs.EvapMM <= policy.PlantEvapMMThreshold {
		return 1, nil
	}
	pulses := 2
	if pulses > policy.PlantMaxPulses {
		pulses = policy.PlantMaxPulses
	}
	return pulses, &domain.Warning{
		Code: domain.WarnPulseHeuristic,
		Text: "high evaporation for an outdoor plant; consider splitting into morning and evening watering",
	}
}
