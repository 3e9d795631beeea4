// Package forecast provides offline ForecastSource implementations: a
// JSON-file-backed source for CLI/demo runs and a static in-memory source
// for tests and embedding callers. There is no network path; fetching live
// forecasts belongs to an external collaborator.
package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"irrigation-plan-service/internal/domain"
)

const dateLayout = "2006-01-02"

// pointDocument mirrors the observation-point JSON file layout.
type pointDocument struct {
	Date   string `json:"date"`
	Points []struct {
		Name    string   `json:"name"`
		Area    string   `json:"area"`
		Lat     float64  `json:"lat"`
		Lon     float64  `json:"lon"`
		EvapMM  float64  `json:"evap_mm"`
		TempMin *float64 `json:"temp_min"`
		TempMax *float64 `json:"temp_max"`
	} `json:"points"`
}

// FileSource reads observation points for one calendar day from a JSON file.
type FileSource struct{ Path string }

func NewFileSource(path string) *FileSource { return &FileSource{Path: path} }

// Points returns the file's observation points, verifying the document is
// for the requested day. Coordinate validity is left to the selection step;
// a malformed point is data to diagnose, not a read failure.
func (s *FileSource) Points(ctx context.Context, date time.Time) ([]domain.ObservationPoint, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("forecast file: read %q: %w", s.Path, err)
	}

	var doc pointDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("forecast file: parse %q: %w", s.Path, err)
	}

	docDate, err := time.ParseInLocation(dateLayout, doc.Date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("forecast file: %q: invalid date %q: %w", s.Path, doc.Date, err)
	}
	if !sameDay(docDate, date) {
		return nil, fmt.Errorf("forecast file: %q holds %s, requested %s", s.Path, docDate.Format(dateLayout), date.Format(dateLayout))
	}

	points := make([]domain.ObservationPoint, 0, len(doc.Points))
	for _, p := range doc.Points {
		points = append(points, domain.ObservationPoint{
			Date:    docDate,
			Coord:   domain.Coordinate{Lat: p.Lat, Lon: p.Lon},
			EvapMM:  p.EvapMM,
			TempMin: p.TempMin,
			TempMax: p.TempMax,
			Name:    p.Name,
			Area:    p.Area,
		})
	}
	return points, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
