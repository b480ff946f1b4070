// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the stage-rate API.

# Handler Types

Each handler is a struct with registry and config dependencies:

  - PollHandler: Poll lifecycle (create, start, stop, delete, list)
  - VotingHandler: Active poll lookup and audience vote submission
  - JudgeHandler: Judge poll listing and slot rating submission
  - ResultsHandler: Leaderboard retrieval and CSV export
  - DeviceHandler: Device registration and vote history

Handlers are created via constructor functions that accept *registry.Registry
and Config:

	pollHandler := handlers.NewPollHandler(reg, cfg)

# Poll Lifecycle

At most one poll accepts votes at a time; starting one closes any other:

	POST   /polls            → CreatePoll
	POST   /polls/{id}/start → StartVoting (opens the timed window)
	POST   /polls/{id}/stop  → StopVoting
	DELETE /polls/{id}       → DeletePoll
	GET    /polls            → ListPolls (management view)

Admin operations require the X-Admin-Key header.

# Voting Flow

The audience votes on the single active poll:

	GET  /polls/active      → GetActivePoll (poll + remaining seconds)
	POST /polls/{id}/votes  → SubmitVote (1-5 stars)

An optional X-Device-UUID header ties the vote to a device record and
enforces one vote per device per poll.

# Judges

Each judge slot holds its own key, derived from the slot role:

	GET /judge/{slot}/polls           → ListPolls (the slot's category)
	PUT /polls/{id}/judge-votes/{slot} → SubmitRating (overwrite allowed)

Judge operations require the X-Judge-Key header.

# Results

Scores are recomputed from the live tallies on every request; nothing
derived is ever stored:

	GET /leaderboard        → GetLeaderboard (public)
	GET /leaderboard/export → ExportCSV (admin, flat file)

# Error Mapping

Registry and store errors map onto statuses in errors.go: validation
failures are 400, missing records 404, bad keys 401, closed-window and
duplicate votes 409, anything else 500.
*/
package handlers
