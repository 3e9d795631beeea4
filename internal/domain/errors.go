package domain

import (
	"fmt"
	"strings"
)

// CoordinateRangeError reports a caller-supplied coordinate axis outside the
// valid range. It is always fatal to the selection call that raised it.
type CoordinateRangeError struct {
	Axis  string // "latitude" or "longitude"
	Value float64
}

func (e *CoordinateRangeError) Error() string {
	limit := "[-90, 90]"
	if e.Axis == "longitude" {
		limit = "[-180, 180]"
	}
	return fmt.Sprintf("%s %v out of range %s", e.Axis, e.Value, limit)
}

// SkippedPoint identifies a candidate observation point excluded from
// selection because its coordinate was out of range.
type SkippedPoint struct {
	Name string
	Area string
	Lat  float64
	Lon  float64
}

func (p SkippedPoint) String() string {
	name := p.Name
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("%s (%s) lat=%v lon=%v", name, p.Area, p.Lat, p.Lon)
}

// InvalidCoordinatesError reports that no valid candidate points remained
// after skipping malformed ones. It carries the skip diagnostics so callers
// can surface a precise message.
type InvalidCoordinatesError struct {
	TotalPoints  int
	SkippedCount int
	Skipped      []SkippedPoint
}

func (e *InvalidCoordinatesError) Error() string {
	if e.TotalPoints == 0 {
		return "no observation points provided"
	}
	return fmt.Sprintf("no valid observation points: %d of %d skipped for invalid coordinates", e.SkippedCount, e.TotalPoints)
}

// UnknownCropError reports a crop identifier missing from the coefficient
// catalog. Unknown identifiers are never silently defaulted.
type UnknownCropError struct {
	Name      string
	Available []string
}

func (e *UnknownCropError) Error() string {
	return fmt.Sprintf("crop %q not found in catalog; available crops: %s", e.Name, strings.Join(e.Available, ", "))
}

// UnknownProfileError reports a plant-profile identifier missing from the
// plant coefficient table.
type UnknownProfileError struct {
	Name      string
	Available []string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("plant profile %q not found in catalog; available profiles: %s", e.Name, strings.Join(e.Available, ", "))
}

// ValidationError reports a malformed profile field or derived quantity.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
