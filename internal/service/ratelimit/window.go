package ratelimit

import (
	"sync"
	"time"
)

// Window is a sliding-window request counter. It is advisory: callers decide
// what to do when the cap is exceeded. A single mutex is sufficient at the
// request volumes this pipeline sees.
type Window struct {
	mu     sync.Mutex
	span   time.Duration
	cap    int
	stamps []time.Time
	now    func() time.Time
}

// New creates a Window covering the trailing span with the given cap.
func New(span time.Duration, cap int) *Window {
	return &Window{span: span, cap: cap, now: time.Now}
}

// Admit records a request at the current time and reports the in-window count
// and whether the cap is exceeded. Old entries are pruned on every admission.
func (w *Window) Admit() (count int, over bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	w.prune(now)
	w.stamps = append(w.stamps, now)
	return len(w.stamps), len(w.stamps) > w.cap
}

// Count returns the in-window request count without recording anything.
func (w *Window) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.prune(w.now())
	return len(w.stamps)
}

func (w *Window) prune(now time.Time) {
	cutoff := now.Add(-w.span)
	i := 0
	for i < len(w.stamps) && !w.stamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		w.stamps = append(w.stamps[:0], w.stamps[i:]...)
	}
}
