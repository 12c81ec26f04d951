package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// MaintenanceFacade exposes the subset of application functionality required by the janitor.
type MaintenanceFacade interface {
	PurgeExpired(ctx context.Context, olderThan time.Duration) (int64, error)
}

// RetentionJanitor periodically drops finished orders that outlived the
// retention window. Pending orders are never touched.
type RetentionJanitor struct {
	facade    MaintenanceFacade
	interval  time.Duration
	retention time.Duration
	logger    *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewRetentionJanitor constructs the janitor.
func NewRetentionJanitor(facade MaintenanceFacade, interval, retention time.Duration, logger *slog.Logger) *RetentionJanitor {
	if interval <= 0 {
		interval = time.Hour
	}
	return &RetentionJanitor{
		facade:    facade,
		interval:  interval,
		retention: retention,
		logger:    logger,
	}
}

// Start launches background purging.
func (j *RetentionJanitor) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel

	j.wg.Add(1)
	go j.run(runCtx)
}

// Stop waits for the purge loop to finish.
func (j *RetentionJanitor) Stop() {
	j.mu.Lock()
	if j.cancel != nil {
		j.cancel()
		j.cancel = nil
	}
	j.mu.Unlock()

	j.wg.Wait()
}

func (j *RetentionJanitor) run(ctx context.Context) {
	defer j.wg.Done()
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.purge(ctx)
		}
	}
}

func (j *RetentionJanitor) purge(ctx context.Context) {
	removed, err := j.facade.PurgeExpired(ctx, j.retention)
	if err != nil {
		j.logger.Error("retention purge failed", slog.String("error", err.Error()))
		return
	}
	if removed > 0 {
		j.logger.Info("retention purge", slog.Int64("removed", removed))
	}
}
