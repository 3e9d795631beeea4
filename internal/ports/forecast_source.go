package ports

import (
	"context"
	"time"

	"irrigation-plan-service/internal/domain"
)

// Port: a boundary for supplying daily observation points to the selection
// step. Implementations may read files or fixed fixtures; the core accepts
// whatever finite sequence it is handed, empty or partially malformed, and
// degrades during selection.
type ForecastSource interface {
	// Return all observation points available for the given calendar day.
	Points(ctx context.Context, date time.Time) ([]domain.ObservationPoint, error)
}
