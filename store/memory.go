// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/danielhkuo/stage-rate/auth"
	"github.com/danielhkuo/stage-rate/models"
)

// MemStore is an in-memory Store used by tests and the -t memory mode.
// A single mutex guards all maps, so multi-record operations like Deactivate
// are atomic here.
type MemStore struct {
	mu       sync.Mutex
	polls    map[string]models.Poll
	devices  map[string]memDevice // device ID -> record
	byUUID   map[string]string    // device UUID -> device ID
	votes    map[string]map[string]models.DeviceVote
	notifier *notifier
}

type memDevice struct {
	id       string
	uuid     string
	platform string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		polls:    make(map[string]models.Poll),
		devices:  make(map[string]memDevice),
		byUUID:   make(map[string]string),
		votes:    make(map[string]map[string]models.DeviceVote),
		notifier: newNotifier(),
	}
}

func (s *MemStore) CreatePoll(ctx context.Context, p models.Poll) error {
	s.mu.Lock()
	s.polls[p.ID] = p
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notifier.broadcast(snapshot)
	return nil
}

func (s *MemStore) GetPoll(ctx context.Context, id string) (models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.polls[id]
	if !ok {
		return models.Poll{}, ErrPollNotFound
	}
	return p, nil
}

func (s *MemStore) ListPolls(ctx context.Context) ([]models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

func (s *MemStore) DeletePoll(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.polls[id]; !ok {
		s.mu.Unlock()
		return ErrPollNotFound
	}
	delete(s.polls, id)
	for _, deviceVotes := range s.votes {
		delete(deviceVotes, id)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notifier.broadcast(snapshot)
	return nil
}

func (s *MemStore) IncrementVote(ctx context.Context, id string, rating int) error {
	s.mu.Lock()
	p, ok := s.polls[id]
	if !ok {
		s.mu.Unlock()
		return ErrPollNotFound
	}

	switch rating {
	case 1:
		p.VoteCounts.Vote1++
	case 2:
		p.VoteCounts.Vote2++
	case 3:
		p.VoteCounts.Vote3++
	case 4:
		p.VoteCounts.Vote4++
	case 5:
		p.VoteCounts.Vote5++
	}
	s.polls[id] = p
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notifier.broadcast(snapshot)
	return nil
}

func (s *MemStore) SetJudgeVote(ctx context.Context, id, slot string, rating int) error {
	s.mu.Lock()
	p, ok := s.polls[id]
	if !ok {
		s.mu.Unlock()
		return ErrPollNotFound
	}

	p.JudgeVotes.SetSlot(slot, rating)
	s.polls[id] = p
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notifier.broadcast(snapshot)
	return nil
}

func (s *MemStore) SetActive(ctx context.Context, id string, startTime *int64) error {
	s.mu.Lock()
	p, ok := s.polls[id]
	if !ok {
		s.mu.Unlock()
		return ErrPollNotFound
	}

	p.StartTime = startTime
	p.IsActive = startTime != nil
	s.polls[id] = p
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notifier.broadcast(snapshot)
	return nil
}

func (s *MemStore) Deactivate(ctx context.Context, exceptID string) error {
	s.mu.Lock()
	for id, p := range s.polls {
		if id == exceptID || !p.IsActive {
			continue
		}
		p.StartTime = nil
		p.IsActive = false
		s.polls[id] = p
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notifier.broadcast(snapshot)
	return nil
}

func (s *MemStore) Watch(ctx context.Context) <-chan []models.Poll {
	return s.notifier.watch(ctx)
}

func (s *MemStore) RegisterDevice(ctx context.Context, deviceUUID, platform string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byUUID[deviceUUID]; ok {
		return id, false, nil
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		return "", false, err
	}
	s.devices[id] = memDevice{id: id, uuid: deviceUUID, platform: platform}
	s.byUUID[deviceUUID] = id
	return id, true, nil
}

func (s *MemStore) MarkVoted(ctx context.Context, deviceID, pollID string, rating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.devices[deviceID]; !ok {
		return ErrDeviceNotFound
	}

	deviceVotes := s.votes[deviceID]
	if deviceVotes == nil {
		deviceVotes = make(map[string]models.DeviceVote)
		s.votes[deviceID] = deviceVotes
	}
	if _, ok := deviceVotes[pollID]; ok {
		return ErrAlreadyVoted
	}

	question := ""
	if p, ok := s.polls[pollID]; ok {
		question = p.Question
	}
	deviceVotes[pollID] = models.DeviceVote{
		PollID:   pollID,
		Question: question,
		Rating:   rating,
		VotedAt:  time.Now(),
	}
	return nil
}

func (s *MemStore) DeviceVotes(ctx context.Context, deviceID string) ([]models.DeviceVote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.devices[deviceID]; !ok {
		return nil, ErrDeviceNotFound
	}

	votes := []models.DeviceVote{}
	for _, v := range s.votes[deviceID] {
		votes = append(votes, v)
	}
	sort.Slice(votes, func(i, j int) bool {
		return votes[i].VotedAt.After(votes[j].VotedAt)
	})
	return votes, nil
}

func (s *MemStore) Close() error {
	return nil
}

// snapshotLocked copies every poll ordered by creation time. Callers hold mu.
func (s *MemStore) snapshotLocked() []models.Poll {
	polls := make([]models.Poll, 0, len(s.polls))
	for _, p := range s.polls {
		polls = append(polls, p)
	}
	sort.Slice(polls, func(i, j int) bool {
		if polls[i].CreatedAt.Equal(polls[j].CreatedAt) {
			return polls[i].ID < polls[j].ID
		}
		return polls[i].CreatedAt.Before(polls[j].CreatedAt)
	})
	return polls
}
