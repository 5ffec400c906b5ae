package backend

import (
	"context"
	"time"
)

// throttle enforces a minimum spacing between successive polls so a
// burst of websocket push events cannot hammer the DevTools endpoint.
// It is only ever called from the poller goroutine, so it carries no
// lock; the context lets a cancelled watcher abandon the wait.
type throttle struct {
	interval time.Duration
	next     time.Time
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{interval: interval}
}

// wait blocks until the spacing since the previous call has elapsed or
// ctx is cancelled, and reports whether the caller may proceed.
func (t *throttle) wait(ctx context.Context) bool {
	if t == nil || t.interval <= 0 {
		return ctx.Err() == nil
	}
	if d := time.Until(t.next); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
		}
	}
	t.next = time.Now().Add(t.interval)
	return true
}
