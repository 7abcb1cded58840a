// internal/quota/quota.go
package quota

import (
	"sync"
	"time"
)

// Kind selects which rolling counter a permit is drawn from.
type Kind int

const (
	// KindDM covers every direct message send, hourly window.
	KindDM Kind = iota
	// KindOutreach covers agent-initiated first contacts, daily window.
	KindOutreach
)

func (k Kind) String() string {
	if k == KindOutreach {
		return "outreach"
	}
	return "dm"
}

type window struct {
	count  int
	limit  int
	length time.Duration
	start  time.Time
}

// Tracker is the process-wide rate limiter shared by all send paths.
// The check-reset-increment sequence runs under one mutex so concurrent
// loops can never overshoot a cap.
type Tracker struct {
	mu      sync.Mutex
	windows map[Kind]*window
	now     func() time.Time
}

func NewTracker(maxDMPerHour, maxOutreachPerDay int) *Tracker {
	return &Tracker{
		windows: map[Kind]*window{
			KindDM:       {limit: maxDMPerHour, length: time.Hour},
			KindOutreach: {limit: maxOutreachPerDay, length: 24 * time.Hour},
		},
		now: time.Now,
	}
}

// TryConsume takes one permit of the given kind. A false return means the
// quota is exhausted for the rest of the window; callers defer, never error.
func (t *Tracker) TryConsume(kind Kind) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, ok := t.windows[kind]
	if !ok {
		return false
	}

	now := t.now()
	if w.start.IsZero() || now.Sub(w.start) >= w.length {
		w.count = 0
		w.start = now
	}

	if w.count >= w.limit {
		return false
	}
	w.count++
	return true
}

// Remaining reports how many permits are left in the current window.
func (t *Tracker) Remaining(kind Kind) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, ok := t.windows[kind]
	if !ok {
		return 0
	}
	if w.start.IsZero() || t.now().Sub(w.start) >= w.length {
		return w.limit
	}
	left := w.limit - w.count
	if left < 0 {
		return 0
	}
	return left
}
