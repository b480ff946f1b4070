// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/stage-rate/models"
)

var (
	// ErrPollNotFound is returned when a poll ID does not exist.
	ErrPollNotFound = errors.New("poll not found")

	// ErrAlreadyVoted is returned by MarkVoted when the device already holds
	// a vote marker for the poll.
	ErrAlreadyVoted = errors.New("device already voted on this poll")

	// ErrDeviceNotFound is returned when a device ID does not exist.
	ErrDeviceNotFound = errors.New("device not registered")
)

// Store is the record store the core works against: per-poll records with
// atomic field updates, plus a snapshot feed. Implementations must make
// IncrementVote a true delta (concurrent voters never clobber each other) and
// SetJudgeVote last-writer-wins per slot.
type Store interface {
	// CreatePoll inserts a poll record. The caller assigns the ID.
	CreatePoll(ctx context.Context, p models.Poll) error

	// GetPoll returns a snapshot of one poll.
	GetPoll(ctx context.Context, id string) (models.Poll, error)

	// ListPolls returns a snapshot of every poll, ordered by creation time.
	ListPolls(ctx context.Context) ([]models.Poll, error)

	// DeletePoll permanently removes a poll and its vote markers.
	DeletePoll(ctx context.Context, id string) error

	// IncrementVote adds 1 to the tally for rating on the given poll.
	IncrementVote(ctx context.Context, id string, rating int) error

	// SetJudgeVote overwrites one judge slot's rating.
	SetJudgeVote(ctx context.Context, id, slot string, rating int) error

	// SetActive sets the poll's activation state. A non-nil startTime
	// (epoch millis) activates the poll; nil deactivates it. Idempotent.
	SetActive(ctx context.Context, id string, startTime *int64) error

	// Deactivate clears the activation state of every poll except the one
	// with exceptID (pass "" to deactivate all).
	Deactivate(ctx context.Context, exceptID string) error

	// Watch returns a feed of whole-list snapshots. Snapshots may be
	// coalesced; the latest one is always authoritative. The channel closes
	// when ctx is done.
	Watch(ctx context.Context) <-chan []models.Poll

	// RegisterDevice looks up or creates a device record keyed by its UUID.
	// Returns the device ID and whether it was newly created.
	RegisterDevice(ctx context.Context, deviceUUID, platform string) (string, bool, error)

	// MarkVoted records that a device voted on a poll with the given rating.
	// Returns ErrAlreadyVoted if a marker already exists.
	MarkVoted(ctx context.Context, deviceID, pollID string, rating int) error

	// DeviceVotes lists the vote markers held by a device, newest first.
	DeviceVotes(ctx context.Context, deviceID string) ([]models.DeviceVote, error)

	Close() error
}
