package keyring

import (
	"context"
	"log/slog"
	"time"
)

// RunRotationLoop periodically checks whether the active-signing key is due
// for rotation and rotates it. It blocks until ctx is cancelled; callers
// should launch it in its own goroutine at startup.
func (r *Ring) RunRotationLoop(ctx context.Context, checkInterval time.Duration) {
	if checkInterval <= 0 {
		checkInterval = time.Hour
	}
	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if !r.RotationDue(now) {
				continue
			}
			if err := r.Rotate(now); err != nil && r.logger != nil {
				r.logger.Error("keyring: scheduled rotation failed", slog.Any("error", err))
			}
		}
	}
}
