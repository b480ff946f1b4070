// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Poll: one performance's voting record (tally, judge ratings, window state)
  - VoteCounts: per-rating audience tally (vote1..vote5)
  - JudgeVotes: fixed judge slots (dance1, dance2, music1, music2)
  - DeviceVote: per-device vote marker

# Categories and Judge Slots

Polls belong to one of two categories, each with a closed two-slot judge
panel:

	Dance/Drama → dance1, dance2
	Music       → music1, music2

A poll with no category has no judge panel. Slot membership is checked with
ValidJudgeSlot, so an unknown judge ID is rejected before it can touch a
record.

# Lifecycle Fields

IsActive and StartTime move together: StartTime (epoch milliseconds) is
non-nil exactly while the poll is active. The store derives IsActive from
StartTime so the two can never diverge.
*/
package models
