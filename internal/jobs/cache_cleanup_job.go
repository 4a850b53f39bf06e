// Package jobs runs periodic background maintenance for the service.
package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// CacheCleaner deletes expired rows from the Postgres-backed result cache.
type CacheCleaner interface {
	DeleteExpired(ctx context.Context) error
}

// CacheCleanupJob periodically purges expired CalculationCacheEntry rows.
// Redis entries expire on their own via TTL; this job only tends the
// database-backed fallback cache.
type CacheCleanupJob struct {
	repo     CacheCleaner
	logger   *logrus.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewCacheCleanupJob creates a job that runs DeleteExpired every interval.
func NewCacheCleanupJob(repo CacheCleaner, logger *logrus.Logger, interval time.Duration) *CacheCleanupJob {
	return &CacheCleanupJob{
		repo:     repo,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs the cleanup loop until ctx is cancelled or Stop is called.
func (j *CacheCleanupJob) Start(ctx context.Context) {
	j.logger.Info("cache cleanup job started")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.runCleanup(ctx)
		case <-j.stopCh:
			j.logger.Info("cache cleanup job stopped")
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop signals the cleanup loop to exit.
func (j *CacheCleanupJob) Stop() {
	close(j.stopCh)
}

func (j *CacheCleanupJob) runCleanup(ctx context.Context) {
	if err := j.repo.DeleteExpired(ctx); err != nil {
		j.logger.WithError(err).Error("cache cleanup failed")
	}
}
