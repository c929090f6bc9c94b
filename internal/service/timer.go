package service

import (
	"context"
	"time"

	"alcyxob/workout-builder/internal/session"
)

// runTimer issues SetTimer on the store once per interval until ctx is cancelled.
// Elapsed time is measured from startedAt with the given clock.
func runTimer(ctx context.Context, store *session.Store, interval time.Duration, startedAt time.Time, clock func() time.Time) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			elapsed := int(clock().Sub(startedAt) / time.Second)
			if elapsed < 0 {
				elapsed = 0
			}
			store.Dispatch(session.SetTimer{Seconds: elapsed})
		}
	}
}
