package services

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irrigation-plan-service/internal/domain"
)

var testDay = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

// latOffsetForKM returns the latitude offset in degrees that places a point
// exactly km kilometers due north of the query, since haversine reduces to
// R * Δlat for a pure latitude separation.
func latOffsetForKM(km float64) float64 {
	return km / (earthRadiusKM * math.Pi / 180)
}

func point(name, area string, lat, lon float64) domain.ObservationPoint {
	return domain.ObservationPoint{
		Date:   testDay,
		Coord:  domain.Coordinate{Lat: lat, Lon: lon},
		EvapMM: 5.0,
		Name:   name,
		Area:   area,
	}
}

func TestHaversine(t *testing.T) {
	t.Run("distance to self is zero", func(t *testing.T) {
		c := domain.Coordinate{Lat: 32.0853, Lon: 34.7818}
		assert.Equal(t, 0.0, Haversine(c, c))
	})

	t.Run("symmetric", func(t *testing.T) {
		a := domain.Coordinate{Lat: 32.0853, Lon: 34.7818}
		b := domain.Coordinate{Lat: 31.7683, Lon: 35.2137}
		assert.InDelta(t, Haversine(a, b), Haversine(b, a), 1e-9)
	})

	t.Run("known distance Tel Aviv to Jerusalem", func(t *testing.T) {
		a := domain.Coordinate{Lat: 32.0853, Lon: 34.7818}
		b := domain.Coordinate{Lat: 31.7683, Lon: 35.2137}
		d := Haversine(a, b)
		assert.Greater(t, d, 50.0)
		assert.Less(t, d, 60.0)
	})

	t.Run("pure latitude separation", func(t *testing.T) {
		user := domain.Coordinate{Lat: 0, Lon: 0}
		north := domain.Coordinate{Lat: latOffsetForKM(10.0), Lon: 0}
		assert.InDelta(t, 10.0, Haversine(user, north), 1e-9)
	})
}

func TestPickNearest(t *testing.T) {
	t.Run("selects nearest valid point", func(t *testing.T) {
		user := domain.Coordinate{Lat: 32.0853, Lon: 34.7818}
		points := []domain.ObservationPoint{
			point("Point A", "South", 32.0, 34.7),
			point("Point B", "Center", 32.1, 34.8),
			point("Point C", "Jerusalem", 31.7, 35.2),
		}

		result, err := PickNearest(user, points)
		require.NoError(t, err)
		assert.Equal(t, "Point B", result.Point.Name)
		assert.Greater(t, result.DistanceKM, 0.0)
		assert.Empty(t, result.Skipped)
	})

	t.Run("out-of-range user latitude fails strictly", func(t *testing.T) {
		_, err := PickNearest(domain.Coordinate{Lat: 91, Lon: 34}, []domain.ObservationPoint{point("A", "", 32, 34)})

		var rangeErr *domain.CoordinateRangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, "latitude", rangeErr.Axis)
		assert.Equal(t, 91.0, rangeErr.Value)
	})

	t.Run("out-of-range user longitude fails strictly", func(t *testing.T) {
		_, err := PickNearest(domain.Coordinate{Lat: 32, Lon: 181}, []domain.ObservationPoint{point("A", "", 32, 34)})

		var rangeErr *domain.CoordinateRangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, "longitude", rangeErr.Axis)
	})

	t.Run("empty point list", func(t *testing.T) {
		_, err := PickNearest(domain.Coordinate{Lat: 32, Lon: 34}, nil)

		var invalidErr *domain.InvalidCoordinatesError
		require.True(t, errors.As(err, &invalidErr))
		assert.Equal(t, 0, invalidErr.TotalPoints)
		assert.Equal(t, 0, invalidErr.SkippedCount)
	})

	t.Run("all points skipped", func(t *testing.T) {
		points := []domain.ObservationPoint{
			point("Invalid Point 1", "Area A", 91.0, 34.0),
			point("Invalid Point 2", "Area B", 32.0, 181.0),
		}

		_, err := PickNearest(domain.Coordinate{Lat: 32, Lon: 34}, points)

		var invalidErr *domain.InvalidCoordinatesError
		require.True(t, errors.As(err, &invalidErr))
		assert.Equal(t, 2, invalidErr.TotalPoints)
		assert.Equal(t, 2, invalidErr.SkippedCount)
		require.Len(t, invalidErr.Skipped, 2)
		names := []string{invalidErr.Skipped[0].Name, invalidErr.Skipped[1].Name}
		assert.Contains(t, names, "Invalid Point 1")
		assert.Contains(t, names, "Invalid Point 2")
	})

	t.Run("invalid candidates are skipped with diagnostics", func(t *testing.T) {
		points := []domain.ObservationPoint{
			point("Invalid Point", "", 91.0, 34.0),
			point("Valid Point", "", 32.1, 34.1),
		}

		result, err := PickNearest(domain.Coordinate{Lat: 32, Lon: 34}, points)
		require.NoError(t, err)
		assert.Equal(t, "Valid Point", result.Point.Name)
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, "Invalid Point", result.Skipped[0].Name)
		assert.Equal(t, 91.0, result.Skipped[0].Lat)
	})
}

func TestPickNearestNearTie(t *testing.T) {
	user := domain.Coordinate{Lat: 0, Lon: 0}

	t.Run("within epsilon resolves by tuple", func(t *testing.T) {
		// 10.000 km and 10.0005 km: inside the 1 m tolerance, so the
		// tuple decides even though Farther is not strictly nearest.
		points := []domain.ObservationPoint{
			point("Nearer", "B", latOffsetForKM(10.000), 0),
			point("Farther", "A", latOffsetForKM(10.0005), 0),
		}

		result, err := PickNearest(user, points)
		require.NoError(t, err)
		assert.Equal(t, "Farther", result.Point.Name)
		assert.InDelta(t, 10.0005, result.DistanceKM, 1e-9)
	})

	t.Run("outside epsilon the strictly nearer point wins", func(t *testing.T) {
		points := []domain.ObservationPoint{
			point("Nearer", "B", latOffsetForKM(10.000), 0),
			point("Farther", "A", latOffsetForKM(10.002), 0),
		}

		result, err := PickNearest(user, points)
		require.NoError(t, err)
		assert.Equal(t, "Nearer", result.Point.Name)
	})

	t.Run("exact tie is deterministic across repeated calls", func(t *testing.T) {
		points := []domain.ObservationPoint{
			point("Point Z", "Area B", 0, 0),
			point("Point A", "Area A", 0, 0),
		}

		for i := 0; i < 10; i++ {
			result, err := PickNearest(user, points)
			require.NoError(t, err)
			assert.Equal(t, "Point A", result.Point.Name)
			assert.Equal(t, "Area A", result.Point.Area)
		}
	})

	t.Run("absent optional fields order after named points", func(t *testing.T) {
		points := []domain.ObservationPoint{
			point("", "", 0, 0),
			point("Point B", "Area B", 0, 0),
		}

		result, err := PickNearest(user, points)
		require.NoError(t, err)
		assert.Equal(t, "Point B", result.Point.Name)
	})
}

func TestKNearest(t *testing.T) {
	user := domain.Coordinate{Lat: 32.0, Lon: 34.0}
	points := []domain.ObservationPoint{
		point("Point C", "", 31.7, 35.2),
		point("Point A", "", 32.0, 34.0),
		point("Point B", "", 32.1, 34.1),
	}

	t.Run("ranked nearest first", func(t *testing.T) {
		ranked, err := KNearest(user, points, 3)
		require.NoError(t, err)
		require.Len(t, ranked, 3)

		assert.Equal(t, "Point A", ranked[0].Point.Name)
		assert.Equal(t, "Point B", ranked[1].Point.Name)
		assert.Equal(t, "Point C", ranked[2].Point.Name)
		assert.True(t, ranked[0].DistanceKM <= ranked[1].DistanceKM)
		assert.True(t, ranked[1].DistanceKM <= ranked[2].DistanceKM)
	})

	t.Run("truncates to k", func(t *testing.T) {
		ranked, err := KNearest(user, points, 2)
		require.NoError(t, err)
		require.Len(t, ranked, 2)
		assert.Equal(t, "Point A", ranked[0].Point.Name)
	})

	t.Run("k larger than available returns all", func(t *testing.T) {
		ranked, err := KNearest(user, points, 10)
		require.NoError(t, err)
		assert.Len(t, ranked, 3)
	})

	t.Run("skips invalid candidates", func(t *testing.T) {
		withInvalid := append([]domain.ObservationPoint{point("Bad", "", -95, 34)}, points...)
		ranked, err := KNearest(user, withInvalid, 10)
		require.NoError(t, err)
		assert.Len(t, ranked, 3)
	})

	t.Run("no valid candidates", func(t *testing.T) {
		_, err := KNearest(user, []domain.ObservationPoint{point("Bad", "", -95, 34)}, 3)

		var invalidErr *domain.InvalidCoordinatesError
		require.True(t, errors.As(err, &invalidErr))
		assert.Equal(t, 1, invalidErr.TotalPoints)
		assert.Equal(t, 1, invalidErr.SkippedCount)
	})
}

func TestDiagnose(t *testing.T) {
	points := []domain.ObservationPoint{
		point("Good", "Center", 32.0, 34.0),
		point("Bad lat", "North", 90.5, 34.0),
		point("Bad lon", "South", 32.0, -180.5),
	}

	report := Diagnose(points)
	assert.Equal(t, 3, report.TotalPoints)
	assert.Equal(t, 1, report.ValidCount)
	assert.Equal(t, 2, report.SkippedCount)
	require.Len(t, report.Skipped, 2)
	assert.Equal(t, "Bad lat", report.Skipped[0].Name)

	empty := Diagnose(nil)
	assert.Equal(t, 0, empty.TotalPoints)
	assert.Equal(t, 0, empty.SkippedCount)
}
