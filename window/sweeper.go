// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package window

import (
	"context"
	"log/slog"
	"time"

	"github.com/danielhkuo/stage-rate/models"
	"github.com/danielhkuo/stage-rate/store"
)

// Stopper is the expiry side effect: stopping a poll's voting window.
// Satisfied by the registry. The sweeper only signals; the single-active
// invariant stays with the registry.
type Stopper interface {
	StopVoting(ctx context.Context, pollID string) error
}

// Sweeper watches poll state and stops polls whose voting window has
// expired. It re-evaluates on every store snapshot and at least once per
// interval, so expiry lands within a second of the deadline even when
// nothing else is writing.
type Sweeper struct {
	st       store.Store
	stopper  Stopper
	interval time.Duration
	latch    *Latch
	now      func() time.Time
}

// NewSweeper creates a sweeper. Intervals below one second are raised to
// one second; there is no benefit in polling faster than the countdown's
// resolution.
func NewSweeper(st store.Store, stopper Stopper, interval time.Duration) *Sweeper {
	if interval < time.Second {
		interval = time.Second
	}
	return &Sweeper{
		st:       st,
		stopper:  stopper,
		interval: interval,
		latch:    NewLatch(),
		now:      time.Now,
	}
}

// Run blocks until ctx is done, sweeping on every tick and on every store
// snapshot.
func (s *Sweeper) Run(ctx context.Context) {
	feed := s.st.Watch(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case polls, ok := <-feed:
			if !ok {
				return
			}
			s.Sweep(ctx, polls)
		case <-ticker.C:
			polls, err := s.st.ListPolls(ctx)
			if err != nil {
				slog.Error("sweeper failed to list polls", "error", err)
				continue
			}
			s.Sweep(ctx, polls)
		}
	}
}

// Sweep evaluates one snapshot: any active poll whose window has expired is
// stopped, exactly once per activation. A failed stop re-arms the latch so
// the next sweep retries.
func (s *Sweeper) Sweep(ctx context.Context, polls []models.Poll) {
	now := s.now()
	keep := make(map[string]struct{}, len(polls))

	for _, p := range polls {
		keep[p.ID] = struct{}{}
		if !p.IsActive {
			continue
		}

		if s.latch.JustExpired(now, p.ID, p.StartTime, p.DurationSeconds) {
			if err := s.stopper.StopVoting(ctx, p.ID); err != nil {
				slog.Error("failed to stop expired poll", "poll_id", p.ID, "error", err)
				s.latch.Reset(p.ID)
				continue
			}
			slog.Info("voting window expired", "poll_id", p.ID, "question", p.Question)
		}
	}

	s.latch.Forget(keep)
}
