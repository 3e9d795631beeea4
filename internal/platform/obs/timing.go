package obs

import (
	"context"
	"log/slog"
	"time"
)

type ctxKey string

// RunIDKey carries an identifier for one planning run through a context.
const RunIDKey ctxKey = "run_id"

// Time starts a timer for a named operation and returns a stop function to
// defer. Pass a pointer to the operation's error so failures are logged with
// their duration.
//
//	defer obs.Time(ctx, "compute_plan")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	runID, _ := ctx.Value(RunIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		attrs := []any{"op", name, "dur_ms", dur.Milliseconds()}
		if runID != "" {
			attrs = append(attrs, "run_id", runID)
		}
		if errp != nil && *errp != nil {
			attrs = append(attrs, "err", *errp)
			slog.Warn("operation failed", attrs...)
			return
		}
		slog.Debug("operation complete", attrs...)
	}
}
