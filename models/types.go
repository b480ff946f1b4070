// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Performance categories. A poll without a category has no judge panel.
const (
	CategoryDance = "Dance/Drama"
	CategoryMusic = "Music"
)

// Judge slot identifiers. Two fixed slots per category.
const (
	JudgeDance1 = "dance1"
	JudgeDance2 = "dance2"
	JudgeMusic1 = "music1"
	JudgeMusic2 = "music2"
)

// DefaultDurationSeconds is the voting window length used when a poll is
// created without one.
const DefaultDurationSeconds = 60

// ValidCategory reports whether category is a known category.
// The empty string is allowed and means "no judge panel".
func ValidCategory(category string) bool {
	switch category {
	case "", CategoryDance, CategoryMusic:
		return true
	}
	return false
}

// JudgeSlots returns the judge slot IDs that apply to a category, in display
// order. Unknown or empty categories have no slots.
func JudgeSlots(category string) []string {
	switch category {
	case CategoryDance:
		return []string{JudgeDance1, JudgeDance2}
	case CategoryMusic:
		return []string{JudgeMusic1, JudgeMusic2}
	}
	return nil
}

// ValidJudgeSlot reports whether slot belongs to the panel for category.
func ValidJudgeSlot(category, slot string) bool {
	for _, s := range JudgeSlots(category) {
		if s == slot {
			return true
		}
	}
	return false
}

// AllJudgeSlots lists every judge slot across both categories.
func AllJudgeSlots() []string {
	return []string{JudgeDance1, JudgeDance2, JudgeMusic1, JudgeMusic2}
}

// JudgeCategory returns the category a judge slot belongs to, or "" for an
// unknown slot.
func JudgeCategory(slot string) string {
	switch slot {
	case JudgeDance1, JudgeDance2:
		return CategoryDance
	case JudgeMusic1, JudgeMusic2:
		return CategoryMusic
	}
	return ""
}

// VoteCounts is the per-rating audience tally for one poll. Counts only ever
// increase; each vote is a +1 on exactly one rating.
type VoteCounts struct {
	Vote1 int `json:"vote1"`
	Vote2 int `json:"vote2"`
	Vote3 int `json:"vote3"`
	Vote4 int `json:"vote4"`
	Vote5 int `json:"vote5"`
}

// Total returns the number of audience votes in the tally.
func (v VoteCounts) Total() int {
	return v.Vote1 + v.Vote2 + v.Vote3 + v.Vote4 + v.Vote5
}

// Count returns the tally for a single rating, 0 for ratings outside 1-5.
func (v VoteCounts) Count(rating int) int {
	switch rating {
	case 1:
		return v.Vote1
	case 2:
		return v.Vote2
	case 3:
		return v.Vote3
	case 4:
		return v.Vote4
	case 5:
		return v.Vote5
	}
	return 0
}

// JudgeVotes holds the rating given by each fixed judge slot. 0 means the
// judge has not rated yet; judges may overwrite their rating while the poll
// is active.
type JudgeVotes struct {
	Dance1 int `json:"dance1"`
	Dance2 int `json:"dance2"`
	Music1 int `json:"music1"`
	Music2 int `json:"music2"`
}

// Slot returns the rating stored for a judge slot ID.
func (j JudgeVotes) Slot(slot string) int {
	switch slot {
	case JudgeDance1:
		return j.Dance1
	case JudgeDance2:
		return j.Dance2
	case JudgeMusic1:
		return j.Music1
	case JudgeMusic2:
		return j.Music2
	}
	return 0
}

// SetSlot stores a rating for a judge slot ID. Unknown slots are ignored;
// callers validate with ValidJudgeSlot first.
func (j *JudgeVotes) SetSlot(slot string, rating int) {
	switch slot {
	case JudgeDance1:
		j.Dance1 = rating
	case JudgeDance2:
		j.Dance2 = rating
	case JudgeMusic1:
		j.Music1 = rating
	case JudgeMusic2:
		j.Music2 = rating
	}
}

// Poll is one performance's voting record: identity, audience tally, judge
// ratings and lifecycle state. StartTime is epoch milliseconds and is non-nil
// exactly while the poll is active.
type Poll struct {
	ID              string     `json:"id"`
	Question        string     `json:"question"`
	Category        string     `json:"category,omitempty"`
	DurationSeconds int        `json:"duration_seconds"`
	IsActive        bool       `json:"is_active"`
	StartTime       *int64     `json:"start_time,omitempty"`
	VoteCounts      VoteCounts `json:"vote_counts"`
	JudgeVotes      JudgeVotes `json:"judge_votes"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Request types

type CreatePollRequest struct {
	Question        string `json:"question"`
	Category        string `json:"category"`
	DurationSeconds int    `json:"duration_seconds"`
}

type SubmitVoteRequest struct {
	Rating int `json:"rating"`
}

type JudgeRatingRequest struct {
	Rating int `json:"rating"`
}

type RegisterDeviceRequest struct {
	Platform string `json:"platform"`
}

// Response types

type CreatePollResponse struct {
	PollID string `json:"poll_id"`
}

type ActivePollResponse struct {
	Poll             *Poll  `json:"poll,omitempty"`
	RemainingSeconds int    `json:"remaining_seconds"`
	WindowState      string `json:"window_state"`
	TotalVotes       int    `json:"total_votes"`
}

type SubmitVoteResponse struct {
	PollID  string `json:"poll_id"`
	Rating  int    `json:"rating"`
	Message string `json:"message"`
}

type JudgeRatingResponse struct {
	PollID string `json:"poll_id"`
	Slot   string `json:"slot"`
	Rating int    `json:"rating"`
}

// AdminPollSummary is one row of the management list, ordered by creation
// time. CreatedAgo is a human-readable age for display only.
type AdminPollSummary struct {
	Poll             Poll   `json:"poll"`
	TotalVotes       int    `json:"total_votes"`
	RemainingSeconds int    `json:"remaining_seconds"`
	WindowState      string `json:"window_state"`
	CreatedAgo       string `json:"created_ago"`
}

type AdminPollListResponse struct {
	Polls []AdminPollSummary `json:"polls"`
}

type RegisterDeviceResponse struct {
	DeviceID string `json:"device_id"`
	IsNew    bool   `json:"is_new"`
}

// DeviceVote records which rating a device cast on a poll, for the
// duplicate-vote guard and the "my votes" view.
type DeviceVote struct {
	PollID   string    `json:"poll_id"`
	Question string    `json:"question"`
	Rating   int       `json:"rating"`
	VotedAt  time.Time `json:"voted_at"`
}

type MyVotesResponse struct {
	Votes []DeviceVote `json:"votes"`
}

// Device platforms, carried on registration.
const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
	PlatformWeb     = "web"
)

// ValidPlatform reports whether platform is a supported device platform.
func ValidPlatform(platform string) bool {
	switch platform {
	case PlatformIOS, PlatformAndroid, PlatformWeb:
		return true
	}
	return false
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
