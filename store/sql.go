// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/stage-rate/auth"
	"github.com/danielhkuo/stage-rate/models"
)

// SQLStore implements Store on database/sql. It works against both the
// postgres (lib/pq) and sqlite (modernc.org/sqlite) drivers; both accept
// $1-style placeholders.
//
// Change notification is in-process: every mutation broadcasts a fresh
// snapshot to watchers, mirroring the snapshot feed the memory store gives.
type SQLStore struct {
	db       *sql.DB
	notifier *notifier
}

// NewSQLStore wraps an open database handle. The schema must already exist
// (see CreateSchema).
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, notifier: newNotifier()}
}

const pollColumns = `id, question, category, duration_seconds, start_time,
       vote1, vote2, vote3, vote4, vote5,
       judge_dance1, judge_dance2, judge_music1, judge_music2, created_at`

func scanPoll(row interface{ Scan(...any) error }) (models.Poll, error) {
	var p models.Poll
	var startTime sql.NullInt64

	err := row.Scan(
		&p.ID, &p.Question, &p.Category, &p.DurationSeconds, &startTime,
		&p.VoteCounts.Vote1, &p.VoteCounts.Vote2, &p.VoteCounts.Vote3,
		&p.VoteCounts.Vote4, &p.VoteCounts.Vote5,
		&p.JudgeVotes.Dance1, &p.JudgeVotes.Dance2,
		&p.JudgeVotes.Music1, &p.JudgeVotes.Music2,
		&p.CreatedAt,
	)
	if err != nil {
		return models.Poll{}, err
	}

	if startTime.Valid {
		p.StartTime = &startTime.Int64
		p.IsActive = true
	}
	return p, nil
}

func (s *SQLStore) CreatePoll(ctx context.Context, p models.Poll) error {
	var startTime *int64
	if p.IsActive {
		startTime = p.StartTime
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO poll (id, question, category, duration_seconds, start_time,
		                  vote1, vote2, vote3, vote4, vote5,
		                  judge_dance1, judge_dance2, judge_music1, judge_music2, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, p.ID, p.Question, p.Category, p.DurationSeconds, startTime,
		p.VoteCounts.Vote1, p.VoteCounts.Vote2, p.VoteCounts.Vote3,
		p.VoteCounts.Vote4, p.VoteCounts.Vote5,
		p.JudgeVotes.Dance1, p.JudgeVotes.Dance2,
		p.JudgeVotes.Music1, p.JudgeVotes.Music2, p.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	s.broadcast(ctx)
	return nil
}

func (s *SQLStore) GetPoll(ctx context.Context, id string) (models.Poll, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+pollColumns+` FROM poll WHERE id = $1`, id)
	p, err := scanPoll(row)
	if err == sql.ErrNoRows {
		return models.Poll{}, ErrPollNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}
	return p, nil
}

func (s *SQLStore) ListPolls(ctx context.Context) ([]models.Poll, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+pollColumns+` FROM poll ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		p, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, p)
	}
	return polls, rows.Err()
}

func (s *SQLStore) DeletePoll(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin poll delete: %w", err)
	}
	defer tx.Rollback()

	// Scrub the vote markers explicitly. The schema declares ON DELETE
	// CASCADE, but the sqlite driver runs with foreign key enforcement off,
	// so the cascade cannot be relied on to fire.
	if _, err := tx.ExecContext(ctx, `DELETE FROM device_vote WHERE poll_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete vote markers: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM poll WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPollNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit poll delete: %w", err)
	}

	s.broadcast(ctx)
	return nil
}

// voteColumn maps a rating to its tally column. Ratings are validated by the
// registry before they reach the store.
func voteColumn(rating int) (string, bool) {
	if rating < 1 || rating > 5 {
		return "", false
	}
	return fmt.Sprintf("vote%d", rating), true
}

func judgeColumn(slot string) (string, bool) {
	switch slot {
	case models.JudgeDance1, models.JudgeDance2, models.JudgeMusic1, models.JudgeMusic2:
		return "judge_" + slot, true
	}
	return "", false
}

func (s *SQLStore) IncrementVote(ctx context.Context, id string, rating int) error {
	col, ok := voteColumn(rating)
	if !ok {
		return fmt.Errorf("no tally column for rating %d", rating)
	}

	// Single-column delta update: concurrent increments serialize in the
	// database and never lose a vote.
	res, err := s.db.ExecContext(ctx,
		`UPDATE poll SET `+col+` = `+col+` + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment vote: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPollNotFound
	}

	s.broadcast(ctx)
	return nil
}

func (s *SQLStore) SetJudgeVote(ctx context.Context, id, slot string, rating int) error {
	col, ok := judgeColumn(slot)
	if !ok {
		return fmt.Errorf("no judge column for slot %q", slot)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE poll SET `+col+` = $1 WHERE id = $2`, rating, id)
	if err != nil {
		return fmt.Errorf("failed to set judge vote: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPollNotFound
	}

	s.broadcast(ctx)
	return nil
}

func (s *SQLStore) SetActive(ctx context.Context, id string, startTime *int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE poll SET start_time = $1 WHERE id = $2`, startTime, id)
	if err != nil {
		return fmt.Errorf("failed to set activation state: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPollNotFound
	}

	s.broadcast(ctx)
	return nil
}

func (s *SQLStore) Deactivate(ctx context.Context, exceptID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE poll SET start_time = NULL WHERE start_time IS NOT NULL AND id <> $1`, exceptID)
	if err != nil {
		return fmt.Errorf("failed to deactivate polls: %w", err)
	}

	s.broadcast(ctx)
	return nil
}

func (s *SQLStore) Watch(ctx context.Context) <-chan []models.Poll {
	return s.notifier.watch(ctx)
}

func (s *SQLStore) RegisterDevice(ctx context.Context, deviceUUID, platform string) (string, bool, error) {
	var existingID string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM device WHERE device_uuid = $1`, deviceUUID).Scan(&existingID)

	if err == nil {
		_, err = s.db.ExecContext(ctx,
			`UPDATE device SET last_seen_at = $1 WHERE id = $2`, time.Now(), existingID)
		if err != nil {
			return "", false, fmt.Errorf("failed to update device: %w", err)
		}
		return existingID, false, nil
	}
	if err != sql.ErrNoRows {
		return "", false, fmt.Errorf("failed to query device: %w", err)
	}

	deviceID, err := auth.GenerateID(16)
	if err != nil {
		return "", false, err
	}

	now := time.Now()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO device (id, device_uuid, platform, created_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $5)
	`, deviceID, deviceUUID, platform, now, now)
	if err != nil {
		return "", false, fmt.Errorf("failed to insert device: %w", err)
	}

	return deviceID, true, nil
}

func (s *SQLStore) MarkVoted(ctx context.Context, deviceID, pollID string, rating int) error {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM device WHERE id = $1)`, deviceID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to query device: %w", err)
	}
	if !exists {
		return ErrDeviceNotFound
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO device_vote (device_id, poll_id, rating, voted_at)
		VALUES ($1, $2, $3, $4)
	`, deviceID, pollID, rating, time.Now())

	if err != nil {
		// The (device_id, poll_id) primary key enforces one vote per device.
		if isUniqueViolation(err) {
			return ErrAlreadyVoted
		}
		return fmt.Errorf("failed to insert vote marker: %w", err)
	}
	return nil
}

func (s *SQLStore) DeviceVotes(ctx context.Context, deviceID string) ([]models.DeviceVote, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM device WHERE id = $1)`, deviceID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to query device: %w", err)
	}
	if !exists {
		return nil, ErrDeviceNotFound
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT dv.poll_id, p.question, dv.rating, dv.voted_at
		FROM device_vote dv
		JOIN poll p ON dv.poll_id = p.id
		WHERE dv.device_id = $1
		ORDER BY dv.voted_at DESC
	`, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query device votes: %w", err)
	}
	defer rows.Close()

	votes := []models.DeviceVote{}
	for rows.Next() {
		var v models.DeviceVote
		if err := rows.Scan(&v.PollID, &v.Question, &v.Rating, &v.VotedAt); err != nil {
			return nil, fmt.Errorf("failed to scan device vote: %w", err)
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// broadcast pushes a fresh snapshot to watchers after a mutation. A failed
// read here only delays watchers one mutation; it never fails the write.
func (s *SQLStore) broadcast(ctx context.Context) {
	polls, err := s.ListPolls(ctx)
	if err != nil {
		return
	}
	s.notifier.broadcast(polls)
}

// isUniqueViolation matches the duplicate-key message of both supported
// drivers.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
