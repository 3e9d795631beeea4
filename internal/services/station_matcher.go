package services

import (
	"fmt"
	"math"
	"sort"

	"irrigation-plan-service/internal/domain"
)

// Mean Earth radius used by the haversine distance, in kilometers.
const earthRadiusKM = 6371.0

// EpsilonKM is the near-tie tolerance: any candidate within this distance of
// the minimum is treated as tied with it, defending the tie-break against
// floating-point noise. One meter.
const EpsilonKM = 0.001

// Sentinel substituted for absent optional fields so the tie-break ordering
// stays total. Sorts after every real name.
const absentField = "￿"

// SelectionResult is the outcome of a nearest-point selection: the chosen
// observation point, its distance from the query, and the candidates skipped
// for invalid coordinates. Ephemeral, one per call.
type SelectionResult struct {
	Point      domain.ObservationPoint
	DistanceKM float64
	Skipped    []domain.SkippedPoint
}

// SelectionDiagnostics is a structural report over a candidate set, usable
// before committing to a selection.
type SelectionDiagnostics struct {
	TotalPoints  int
	ValidCount   int
	SkippedCount int
	Skipped      []domain.SkippedPoint
}

// Haversine returns the great-circle distance between two coordinates in
// kilometers. Symmetric; distance to self is exactly zero.
func Haversine(a, b domain.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}

// PickNearest selects the nearest valid observation point to the user
// coordinate.
//
// The user coordinate is validated strictly: an out-of-range axis fails with
// domain.CoordinateRangeError. Candidate coordinates are validated leniently:
// invalid candidates are skipped and recorded, and the call fails with
// domain.InvalidCoordinatesError only when no valid candidate remains.
// Candidates within EpsilonKM of the minimum distance are tied; ties resolve
// by ascending (area, name, lat, lon), deterministically across calls.
func PickNearest(user domain.Coordinate, points []domain.ObservationPoint) (*SelectionResult, error) {
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("pick nearest: %w", err)
	}

	valid, skipped := partitionValid(points)
	if len(valid) == 0 {
		return nil, &domain.InvalidCoordinatesError{
			TotalPoints:  len(points),
			SkippedCount: len(skipped),
			Skipped:      skipped,
		}
	}

	distances := make([]float64, len(valid))
	minDistance := math.MaxFloat64
	for i, p := range valid {
		distances[i] = Haversine(user, p.Coord)
		if distances[i] < minDistance {
			minDistance = distances[i]
		}
	}

	// Select among the near-tie set by the lexicographic tuple.
	best := -1
	for i, p := range valid {
		if distances[i] > minDistance+EpsilonKM {
			continue
		}
		if best < 0 || tieBreakLess(p, valid[best]) {
			best = i
		}
	}

	return &SelectionResult{
		Point:      valid[best],
		DistanceKM: distances[best],
		Skipped:    skipped,
	}, nil
}

// KNearest returns up to k valid points ranked nearest first. Validation and
// skip semantics match PickNearest; fewer than k valid points returns all of
// them. Callers must pass k >= 1.
func KNearest(user domain.Coordinate, points []domain.ObservationPoint, k int) ([]SelectionResult, error) {
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("k nearest: %w", err)
	}

	valid, skipped := partitionValid(points)
	if len(valid) == 0 {
		return nil, &domain.InvalidCoordinatesError{
			TotalPoints:  len(points),
			SkippedCount: len(skipped),
			Skipped:      skipped,
		}
	}

	ranked := make([]SelectionResult, len(valid))
	for i, p := range valid {
		ranked[i] = SelectionResult{Point: p, DistanceKM: Haversine(user, p.Coord)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].DistanceKM != ranked[j].DistanceKM {
			return ranked[i].DistanceKM < ranked[j].DistanceKM
		}
		return tieBreakLess(ranked[i].Point, ranked[j].Point)
	})

	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked, nil
}

// Diagnose reports how many candidate points are usable without selecting
// one, for data-quality feedback.
func Diagnose(points []domain.ObservationPoint) SelectionDiagnostics {
	valid, skipped := partitionValid(points)
	return SelectionDiagnostics{
		TotalPoints:  len(points),
		ValidCount:   len(valid),
		SkippedCount: len(skipped),
		Skipped:      skipped,
	}
}

func partitionValid(points []domain.ObservationPoint) ([]domain.ObservationPoint, []domain.SkippedPoint) {
	valid := make([]domain.ObservationPoint, 0, len(points))
	var skipped []domain.SkippedPoint
	for _, p := range points {
		if !p.Coord.InRange() {
			skipped = append(skipped, p.Descriptor())
			continue
		}
		valid = append(valid, p)
	}
	return valid, skipped
}

// tieBreakLess orders points by the (area, name, lat, lon) tuple, with the
// sentinel keeping the order total when optional fields are empty.
func tieBreakLess(a, b domain.ObservationPoint) bool {
	aArea, bArea := orSentinel(a.Area), orSentinel(b.Area)
	if aArea != bArea {
		return aArea < bArea
	}
	aName, bName := orSentinel(a.Name), orSentinel(b.Name)
	if aName != bName {
		return aName < bName
	}
	if a.Coord.Lat != b.Coord.Lat {
		return a.Coord.Lat < b.Coord.Lat
	}
	return a.Coord.Lon < b.Coord.Lon
}

func orSentinel(s string) string {
	if s == "" {
		return absentField
	}
	return s
}
