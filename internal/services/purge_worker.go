package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"kanbanbox-be/internal/engine"
)

// StartPurgeWorker starts a background goroutine that periodically deletes
// boards that have been archived for longer than retention. The worker stops
// when ctx is done.
func StartPurgeWorker(ctx context.Context, interval, retention time.Duration, eng *engine.Engine) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logrus.Info("purge worker: shutting down")
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-retention)
				purged, err := eng.PurgeArchivedBoards(ctx, cutoff)
				if err != nil {
					logrus.WithError(err).Error("purge worker: failed to purge archived boards")
					continue
				}
				if purged > 0 {
					logrus.WithField("count", purged).Info("purge worker: purged archived boards")
				}
			}
		}
	}()
}
