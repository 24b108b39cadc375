package util

import (
	"context"
	"log/slog"
)

// Attempt is one step of a fallback chain. It reports ok=false when it
// produced nothing usable and a non-nil error when it failed outright.
type Attempt[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, bool, error)
}

// FirstOf runs attempts in order and returns the first usable result.
// Failed attempts are logged and skipped; nothing escapes to the caller.
// It stops early once ctx is done.
func FirstOf[T any](ctx context.Context, logger *slog.Logger, attempts ...Attempt[T]) (T, bool) {
	var zero T

	for _, attempt := range attempts {
		if ctx.Err() != nil {
			return zero, false
		}

		result, ok, err := attempt.Run(ctx)
		if err != nil {
			if logger != nil {
				logger.WarnContext(ctx, "Fallback attempt failed",
					slog.String("attempt", attempt.Name),
					slog.Any("error", err),
				)
			}

			continue
		}

		if ok {
			return result, true
		}
	}

	return zero, false
}
