// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package window

import (
	"sync"
	"time"
)

// State describes a poll's voting window.
type State int

const (
	// NoWindow: the poll has no start time (inactive, or active but
	// misconfigured with a non-positive duration). Nothing to count down.
	NoWindow State = iota

	// Running: the window is open and remaining seconds are counting down.
	Running

	// Expired: remaining has reached zero.
	Expired
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Expired:
		return "expired"
	}
	return "none"
}

// Remaining computes the seconds left in a voting window from wall-clock
// time alone, so independent observers converge on the same countdown
// without coordination. startMillis is the activation time in epoch
// milliseconds; nil means no window.
func Remaining(now time.Time, startMillis *int64, durationSeconds int) (int, State) {
	if startMillis == nil || durationSeconds <= 0 {
		return 0, NoWindow
	}

	elapsed := (now.UnixMilli() - *startMillis) / 1000
	remaining := durationSeconds - int(elapsed)
	if remaining <= 0 {
		return 0, Expired
	}
	return remaining, Running
}

// Latch makes window expiry edge-triggered: JustExpired reports true exactly
// once per activation, keyed by (poll ID, start time). Re-activating a poll
// changes its start time and automatically re-arms the latch.
type Latch struct {
	mu    sync.Mutex
	fired map[string]int64 // poll ID -> start time already signalled
}

// NewLatch returns an empty latch.
func NewLatch() *Latch {
	return &Latch{fired: make(map[string]int64)}
}

// JustExpired reports whether the window identified by (pollID, startMillis)
// has expired and has not been signalled yet. The first true claims the
// signal; later calls for the same activation return false.
func (l *Latch) JustExpired(now time.Time, pollID string, startMillis *int64, durationSeconds int) bool {
	_, state := Remaining(now, startMillis, durationSeconds)
	if state != Expired {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if fired, ok := l.fired[pollID]; ok && fired == *startMillis {
		return false
	}
	l.fired[pollID] = *startMillis
	return true
}

// Reset releases a claimed signal so the next evaluation can fire again.
// Used when the expiry side effect failed and must be retried.
func (l *Latch) Reset(pollID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.fired, pollID)
}

// Forget drops latch state for polls not in keep, so deleted polls do not
// accumulate entries.
func (l *Latch) Forget(keep map[string]struct{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id := range l.fired {
		if _, ok := keep[id]; !ok {
			delete(l.fired, id)
		}
	}
}
