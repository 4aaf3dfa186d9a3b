package http

import (
	"context"
	"log/slog"
	"time"
)

// StartRateLimitCleanup periodically drops client entries idle for longer than idle.
// It blocks until ctx is cancelled, so run it in its own goroutine.
func StartRateLimitCleanup(ctx context.Context, limiter *RateLimiter, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started", slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped")
			return
		case <-ticker.C:
			removed := limiter.Cleanup(idle)
			slog.Debug("rate limit cleanup completed",
				slog.Int("removed", removed),
				slog.Int("remaining", limiter.Len()))
		}
	}
}
