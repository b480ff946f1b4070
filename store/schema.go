// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// start_time is epoch milliseconds; a non-NULL value means the poll is
// active, so activation state and start time can never diverge.
const schema = `
-- Polls: one row per performance, tally and judge slots inline so a vote is
-- a single-column atomic increment and a judge rating a single-column set.
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    question TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    duration_seconds INTEGER NOT NULL DEFAULT 60,
    start_time BIGINT,
    vote1 INTEGER NOT NULL DEFAULT 0,
    vote2 INTEGER NOT NULL DEFAULT 0,
    vote3 INTEGER NOT NULL DEFAULT 0,
    vote4 INTEGER NOT NULL DEFAULT 0,
    vote5 INTEGER NOT NULL DEFAULT 0,
    judge_dance1 INTEGER NOT NULL DEFAULT 0,
    judge_dance2 INTEGER NOT NULL DEFAULT 0,
    judge_music1 INTEGER NOT NULL DEFAULT 0,
    judge_music2 INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_start_time ON poll(start_time);

-- Devices: audience clients that registered for duplicate-vote marking.
CREATE TABLE IF NOT EXISTS device (
    id TEXT PRIMARY KEY,
    device_uuid TEXT NOT NULL UNIQUE,
    platform TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    last_seen_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_device_uuid ON device(device_uuid);

-- Vote markers: at most one audience vote per device per poll.
CREATE TABLE IF NOT EXISTS device_vote (
    device_id TEXT NOT NULL REFERENCES device(id) ON DELETE CASCADE,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    rating INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
    voted_at TIMESTAMP NOT NULL,
    PRIMARY KEY (device_id, poll_id)
);

CREATE INDEX IF NOT EXISTS idx_device_vote_poll ON device_vote(poll_id);
`
