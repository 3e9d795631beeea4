package domain

import "fmt"

// Unit conversions used by the plan engine and adapters. One millimeter of
// water over one square meter is one liter; one dunam is 1000 square meters.

// MMToLiters converts a water depth in millimeters over an area to liters.
func MMToLiters(mm, areaM2 float64) (float64, error) {
	if mm < 0 {
		return 0, &ValidationError{Field: "mm", Reason: fmt.Sprintf("must be non-negative, got %v", mm)}
	}
	if areaM2 < 0 {
		return 0, &ValidationError{Field: "area_m2", Reason: fmt.Sprintf("must be non-negative, got %v", areaM2)}
	}
	return mm * areaM2, nil
}

// DunamToM2 converts a land area in dunams to square meters.
func DunamToM2(dunam float64) (float64, error) {
	if dunam < 0 {
		return 0, &ValidationError{Field: "area_dunam", Reason: fmt.Sprintf("must be non-negative, got %v", dunam)}
	}
	return dunam * 1000.0, nil
}

// M2ToDunam converts square meters to dunams.
func M2ToDunam(m2 float64) float64 { return m2 / 1000.0 }

// LitersToML converts liters to milliliters.
func LitersToML(liters float64) (float64, error) {
	if liters < 0 {
		return 0, &ValidationError{Field: "liters", Reason: fmt.Sprintf("must be non-negative, got %v", liters)}
	}
	return liters * 1000.0, nil
}

// LitersPerDunamToMMPerDay converts an irrigation rate in liters per dunam
// to an equivalent depth in millimeters per day.
func LitersPerDunamToMMPerDay(litersPerDunam float64) (float64, error) {
	if litersPerDunam < 0 {
		return 0, &ValidationError{Field: "liters_per_dunam", Reason: fmt.Sprintf("must be non-negative, got %v", litersPerDunam)}
	}
	return litersPerDunam / 1000.0, nil
}
