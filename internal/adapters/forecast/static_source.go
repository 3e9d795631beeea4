package forecast

import (
	"context"
	"time"

	"irrigation-plan-service/internal/domain"
)

// StaticSource serves a fixed in-memory point set, filtered by day.
type StaticSource struct {
	points []domain.ObservationPoint
}

func NewStaticSource(points []domain.ObservationPoint) *StaticSource {
	return &StaticSource{points: points}
}

func (s *StaticSource) Points(ctx context.Context, date time.Time) ([]domain.ObservationPoint, error) {
	matched := make([]domain.ObservationPoint, 0, len(s.points))
	for _, p := range s.points {
		if sameDay(p.Date, date) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}
