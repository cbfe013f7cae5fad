package cron

import (
	"context"
	"time"

	"github.com/linskybing/formbuilder-go/internal/domain/syslog"
	"go.uber.org/zap"
)

const DefaultInterval = 24 * time.Hour

// Pruner trims the system log table down to its newest keep rows.
type Pruner interface {
	Prune(ctx context.Context, keep int) (syslog.ClearResult, error)
}

// StartRetentionTask prunes once immediately and then every interval until
// ctx is cancelled. A non-positive interval means DefaultInterval. The
// returned channel closes when the task has stopped.
func StartRetentionTask(ctx context.Context, p Pruner, keep int, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	done := make(chan struct{})

	go func() {
		defer close(done)
		logger.Info("starting system log retention task", zap.Int("keep", keep), zap.Duration("interval", interval))

		runPrune(ctx, p, keep, logger)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runPrune(ctx, p, keep, logger)
			}
		}
	}()
	return done
}

func runPrune(ctx context.Context, p Pruner, keep int, logger *zap.Logger) {
	res, err := p.Prune(ctx, keep)
	if err != nil {
		logger.Error("system log retention failed", zap.Error(err))
		return
	}
	logger.Info("system log retention completed", zap.Int64("deleted", res.DeletedCount))
}
