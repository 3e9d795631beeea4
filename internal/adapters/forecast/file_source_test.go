package forecast

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irrigation-plan-service/internal/domain"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func day(value string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func TestFileSourcePoints(t *testing.T) {
	path := writeFixture(t, `{
		"date": "2026-08-29",
		"points": [
			{"name": "Bet Dagan", "area": "Center", "lat": 32.007, "lon": 34.814, "evap_mm": 6.9, "temp_min": 22.5, "temp_max": 31.0},
			{"name": "Broken", "area": "Nowhere", "lat": 95.0, "lon": 34.0, "evap_mm": 5.0}
		]
	}`)

	points, err := NewFileSource(path).Points(context.Background(), day("2026-08-29"))
	require.NoError(t, err)
	require.Len(t, points, 2)

	first := points[0]
	assert.Equal(t, "Bet Dagan", first.Name)
	assert.Equal(t, "Center", first.Area)
	assert.Equal(t, 32.007, first.Coord.Lat)
	assert.Equal(t, 6.9, first.EvapMM)
	require.NotNil(t, first.TempMin)
	assert.Equal(t, 22.5, *first.TempMin)
	assert.Equal(t, day("2026-08-29"), first.Date)

	// Out-of-range coordinates pass through; selection diagnoses them.
	assert.Equal(t, 95.0, points[1].Coord.Lat)
	assert.Nil(t, points[1].TempMin)
}

func TestFileSourceDateMismatch(t *testing.T) {
	path := writeFixture(t, `{"date": "2026-08-28", "points": []}`)

	_, err := NewFileSource(path).Points(context.Background(), day("2026-08-29"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2026-08-28")
	assert.Contains(t, err.Error(), "2026-08-29")
}

func TestFileSourceErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileSource(filepath.Join(t.TempDir(), "absent.json")).Points(context.Background(), day("2026-08-29"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read")
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeFixture(t, `{"date": "2026-08-29", "points": [`)
		_, err := NewFileSource(path).Points(context.Background(), day("2026-08-29"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse")
	})

	t.Run("invalid document date", func(t *testing.T) {
		path := writeFixture(t, `{"date": "29/08/2026", "points": []}`)
		_, err := NewFileSource(path).Points(context.Background(), day("2026-08-29"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date")
	})
}

func TestStaticSourceFiltersByDay(t *testing.T) {
	points := []domain.ObservationPoint{
		{Date: day("2026-08-29"), Name: "Today A"},
		{Date: day("2026-08-28"), Name: "Yesterday"},
		{Date: day("2026-08-29"), Name: "Today B"},
	}
	source := NewStaticSource(points)

	matched, err := source.Points(context.Background(), day("2026-08-29"))
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "Today A", matched[0].Name)
	assert.Equal(t, "Today B", matched[1].Name)

	none, err := source.Points(context.Background(), day("2026-08-27"))
	require.NoError(t, err)
	assert.Empty(t, none)
}
