package datasync

import (
	"sync"
	"time"
)

// throttle spaces successive gateway calls by a minimum interval. Background
// refreshes run on their own goroutines, so it is safe for concurrent use.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{}
	}
	return &throttle{interval: interval}
}

func (t *throttle) wait() {
	if t == nil || t.interval <= 0 {
		return
	}
	t.mu.Lock()
	now := time.Now()
	slot := t.next
	if slot.Before(now) {
		slot = now
	}
	t.next = slot.Add(t.interval)
	t.mu.Unlock()
	if d := time.Until(slot); d > 0 {
		time.Sleep(d)
	}
}
