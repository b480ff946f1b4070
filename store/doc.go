// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store provides the record store the core works against.

# Interface

The Store interface is a key-value record store with atomic field updates:

  - IncrementVote: a single-column +1 delta, so concurrent voters never
    clobber each other
  - SetJudgeVote: last-writer-wins on one judge slot
  - SetActive / Deactivate: activation state changes
  - Watch: a feed of whole-list snapshots

Watch deliveries may coalesce under load; watchers always treat the latest
snapshot as authoritative and never apply diffs.

# Implementations

SQLStore runs on database/sql against either driver:

	sqlite   modernc.org/sqlite (CGO-free, the default)
	postgres github.com/lib/pq

Both accept $1 placeholders, so the SQL is shared. MemStore is a
mutex-and-maps implementation used by the test suite and -t memory.

# Activation State

Only start_time is stored; IsActive is derived from it on read. A poll can
therefore never be persisted as "active without a start time" or vice versa.

# Vote Markers

The device and device_vote tables back the duplicate-vote guard: the
(device_id, poll_id) primary key allows at most one audience vote per device
per poll, surfacing as ErrAlreadyVoted.
*/
package store
