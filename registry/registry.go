// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/stage-rate/auth"
	"github.com/danielhkuo/stage-rate/models"
	"github.com/danielhkuo/stage-rate/store"
	"github.com/danielhkuo/stage-rate/window"
)

var (
	// ErrInvalidRating is returned for audience ratings outside 1-5 and
	// judge ratings outside 0-5.
	ErrInvalidRating = errors.New("rating out of range")

	// ErrInvalidQuestion is returned when a poll is created with an empty
	// or whitespace-only question.
	ErrInvalidQuestion = errors.New("question must not be empty")

	// ErrInvalidCategory is returned for an unknown performance category.
	ErrInvalidCategory = errors.New("unknown category")

	// ErrInvalidJudgeSlot is returned when a judge slot does not belong to
	// the poll's category.
	ErrInvalidJudgeSlot = errors.New("judge slot does not apply to this poll")

	// ErrPollNotActive is returned when a vote or judge rating targets a
	// poll whose voting window is not open.
	ErrPollNotActive = errors.New("poll is not accepting votes")
)

// Registry owns poll lifecycle transitions and enforces the single-active
// invariant: at most one poll accepts audience votes at any moment.
type Registry struct {
	st  store.Store
	now func() time.Time
}

// New creates a registry over a store.
func New(st store.Store) *Registry {
	return &Registry{st: st, now: time.Now}
}

// Store exposes the underlying record store for read-side collaborators.
func (r *Registry) Store() store.Store {
	return r.st
}

// CreatePoll validates and inserts a new inactive poll with zeroed tallies.
// A non-positive duration falls back to the default window length.
func (r *Registry) CreatePoll(ctx context.Context, question, category string, durationSeconds int) (models.Poll, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return models.Poll{}, ErrInvalidQuestion
	}
	if !models.ValidCategory(category) {
		return models.Poll{}, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	if durationSeconds <= 0 {
		durationSeconds = models.DefaultDurationSeconds
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		return models.Poll{}, err
	}

	p := models.Poll{
		ID:              id,
		Question:        question,
		Category:        category,
		DurationSeconds: durationSeconds,
		CreatedAt:       r.now(),
	}

	if err := r.st.CreatePoll(ctx, p); err != nil {
		return models.Poll{}, err
	}
	return p, nil
}

// StartVoting opens the target poll's voting window. Every other active poll
// is deactivated first, then the target is activated with a fresh start
// time; the ordering guarantees two polls are never simultaneously active,
// at the cost of a brief window where none is. If the activation step fails
// the registry is left with everything deactivated and the caller retries.
func (r *Registry) StartVoting(ctx context.Context, pollID string) error {
	if _, err := r.st.GetPoll(ctx, pollID); err != nil {
		return err
	}

	if err := r.st.Deactivate(ctx, pollID); err != nil {
		return fmt.Errorf("deactivating other polls: %w", err)
	}

	start := r.now().UnixMilli()
	if err := r.st.SetActive(ctx, pollID, &start); err != nil {
		return fmt.Errorf("activating poll: %w", err)
	}
	return nil
}

// StopVoting closes the poll's voting window. Idempotent: stopping an
// already-inactive poll succeeds.
func (r *Registry) StopVoting(ctx context.Context, pollID string) error {
	return r.st.SetActive(ctx, pollID, nil)
}

// DeletePoll permanently removes a poll and its tallies from all future
// rankings.
func (r *Registry) DeletePoll(ctx context.Context, pollID string) error {
	return r.st.DeletePoll(ctx, pollID)
}

// RecordVote adds one audience vote. The poll must be active with a running
// window, the rating must be 1-5, and when deviceID is non-empty the
// device's vote marker is claimed first, so a device can vote at most once
// per poll. The marker claim precedes the increment: a duplicate vote fails
// before it can touch the tally.
func (r *Registry) RecordVote(ctx context.Context, pollID string, rating int, deviceID string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: %d", ErrInvalidRating, rating)
	}

	p, err := r.st.GetPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if err := r.requireRunning(p); err != nil {
		return err
	}

	if deviceID != "" {
		if err := r.st.MarkVoted(ctx, deviceID, pollID, rating); err != nil {
			return err
		}
	}

	return r.st.IncrementVote(ctx, pollID, rating)
}

// RecordJudgeRating sets one judge slot's rating. The slot must belong to
// the poll's category, the rating must be 0-5 (0 withdraws a rating), and
// the window must still be open. Judges may overwrite their rating any time
// before expiry; last write wins.
func (r *Registry) RecordJudgeRating(ctx context.Context, pollID, slot string, rating int) error {
	if rating < 0 || rating > 5 {
		return fmt.Errorf("%w: %d", ErrInvalidRating, rating)
	}

	p, err := r.st.GetPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if !models.ValidJudgeSlot(p.Category, slot) {
		return fmt.Errorf("%w: %q for category %q", ErrInvalidJudgeSlot, slot, p.Category)
	}
	if err := r.requireRunning(p); err != nil {
		return err
	}

	return r.st.SetJudgeVote(ctx, pollID, slot, rating)
}

// ActivePoll returns the currently active poll, if any. With the
// single-active invariant there is at most one; if the store ever reports
// more than one (mid-transition read), the most recently started wins.
func (r *Registry) ActivePoll(ctx context.Context) (models.Poll, bool, error) {
	polls, err := r.st.ListPolls(ctx)
	if err != nil {
		return models.Poll{}, false, err
	}

	var active models.Poll
	found := false
	for _, p := range polls {
		if !p.IsActive || p.StartTime == nil {
			continue
		}
		if !found || *p.StartTime > *active.StartTime {
			active = p
			found = true
		}
	}
	return active, found, nil
}

// ListPolls returns all polls ordered by creation time.
func (r *Registry) ListPolls(ctx context.Context) ([]models.Poll, error) {
	return r.st.ListPolls(ctx)
}

// GetPoll returns one poll snapshot.
func (r *Registry) GetPoll(ctx context.Context, pollID string) (models.Poll, error) {
	return r.st.GetPoll(ctx, pollID)
}

// requireRunning rejects writes to polls that are inactive or whose window
// has already expired but not yet been swept.
func (r *Registry) requireRunning(p models.Poll) error {
	if !p.IsActive {
		return ErrPollNotActive
	}
	if _, state := window.Remaining(r.now(), p.StartTime, p.DurationSeconds); state != window.Running {
		return ErrPollNotActive
	}
	return nil
}
