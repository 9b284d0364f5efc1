package cmd

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SessionPurger removes expired sessions.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// PurgeSessions runs purger every interval until ctx is cancelled.
func PurgeSessions(ctx context.Context, purger SessionPurger, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := purger.PurgeExpiredSessions(ctx); err != nil {
				logger.Error("Failed to purge expired sessions", zap.Error(err))
			}
		}
	}
}
