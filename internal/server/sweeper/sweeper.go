// Package sweeper periodically removes expired notes from the store.
package sweeper

import (
	"context"
	"time"

	"github.com/dmitrijs2005/sealnote/internal/logging"
)

type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

// Run sweeps once immediately and then on every tick until ctx is done.
// Errors are logged and the loop keeps going.
func Run(ctx context.Context, s Sweeper, interval time.Duration, logger logging.Logger) {
	logger = logger.With("module", "sweeper")
	if interval <= 0 {
		logger.Info(ctx, "sweeper disabled")
		return
	}

	sweep := func() {
		if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
			logger.Error(ctx, "sweep failed", "error", err)
		}
	}

	sweep()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep()
		}
	}
}
