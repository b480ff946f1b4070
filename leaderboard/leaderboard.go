// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package leaderboard

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/danielhkuo/stage-rate/models"
	"github.com/danielhkuo/stage-rate/scoring"
)

// Entry is one ranked row: every derived score plus enough raw detail to
// render a breakdown or export a flat report.
type Entry struct {
	PollID          string            `json:"poll_id"`
	Question        string            `json:"question"`
	Category        string            `json:"category"`
	TotalVotes      int               `json:"total_votes"`
	SimpleAverage   float64           `json:"simple_average"`
	BayesianAverage float64           `json:"bayesian_average"`
	JudgeAverage    float64           `json:"judge_average"`
	FinalScore      float64           `json:"final_score"`
	VoteCounts      models.VoteCounts `json:"vote_counts"`
	Judge1Slot      string            `json:"judge1_slot,omitempty"`
	Judge1          int               `json:"judge1"`
	Judge2Slot      string            `json:"judge2_slot,omitempty"`
	Judge2          int               `json:"judge2"`
	IsActive        bool              `json:"is_active"`
	Rank            int               `json:"rank"` // 1-indexed ranking
}

// Build ranks all polls by final score, descending. The festival average is
// computed once over the whole input and shared as the Bayesian prior. The
// sort is stable, so entries with equal final scores keep their incoming
// (creation) order; that is the only tie-break.
func Build(polls []models.Poll) []Entry {
	festivalAverage := scoring.FestivalAverage(polls)

	entries := make([]Entry, len(polls))
	for i, p := range polls {
		bayesian := scoring.BayesianAverage(p.VoteCounts, festivalAverage, scoring.DefaultMinVotes)
		judgeAvg := scoring.JudgeAverage(p.JudgeVotes)

		e := Entry{
			PollID:          p.ID,
			Question:        p.Question,
			Category:        p.Category,
			TotalVotes:      p.VoteCounts.Total(),
			SimpleAverage:   scoring.SimpleAverage(p.VoteCounts),
			BayesianAverage: bayesian,
			JudgeAverage:    judgeAvg,
			FinalScore:      scoring.FinalScore(bayesian, judgeAvg),
			VoteCounts:      p.VoteCounts,
			IsActive:        p.IsActive,
		}

		if slots := models.JudgeSlots(p.Category); len(slots) == 2 {
			e.Judge1Slot, e.Judge1 = slots[0], p.JudgeVotes.Slot(slots[0])
			e.Judge2Slot, e.Judge2 = slots[1], p.JudgeVotes.Slot(slots[1])
		}

		entries[i] = e
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].FinalScore > entries[j].FinalScore
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// csvHeader matches the columns of the festival results export.
var csvHeader = []string{
	"Rank", "Performance", "Category", "Total Votes",
	"Raw Avg", "Audience Score", "Judge 1", "Judge 2", "Judge Avg", "Final Score",
	"5 Star", "4 Star", "3 Star", "2 Star", "1 Star",
}

// WriteCSV exports ranked entries as a flat report. Scores carry 4 decimal
// places; judge slots that have not rated export as "-".
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			strconv.Itoa(e.Rank),
			e.Question,
			categoryOrNA(e.Category),
			strconv.Itoa(e.TotalVotes),
			scoring.FormatScore(e.SimpleAverage, 4),
			scoring.FormatScore(e.BayesianAverage, 4),
			judgeCell(e.Judge1),
			judgeCell(e.Judge2),
			scoring.FormatScore(e.JudgeAverage, 4),
			scoring.FormatScore(e.FinalScore, 4),
			strconv.Itoa(e.VoteCounts.Vote5),
			strconv.Itoa(e.VoteCounts.Vote4),
			strconv.Itoa(e.VoteCounts.Vote3),
			strconv.Itoa(e.VoteCounts.Vote2),
			strconv.Itoa(e.VoteCounts.Vote1),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func categoryOrNA(category string) string {
	if category == "" {
		return "N/A"
	}
	return category
}

func judgeCell(rating int) string {
	if rating == 0 {
		return "-"
	}
	return strconv.Itoa(rating)
}
