// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"strconv"

	"github.com/danielhkuo/stage-rate/models"
)

// DefaultMinVotes is the Bayesian confidence pseudo-count. Larger values
// shrink low-sample performances harder toward the festival mean.
const DefaultMinVotes = 10

// DefaultFestivalAverage is the festival mean assumed before any vote has
// been cast: the midpoint of the 1-5 scale.
const DefaultFestivalAverage = 3.0

// TotalVotes returns the number of audience votes in a tally.
func TotalVotes(vc models.VoteCounts) int {
	return vc.Total()
}

// SimpleAverage computes the raw mean rating of a tally.
// Returns 0 when the tally is empty.
func SimpleAverage(vc models.VoteCounts) float64 {
	total := vc.Total()
	if total == 0 {
		return 0
	}

	score := 1*vc.Vote1 + 2*vc.Vote2 + 3*vc.Vote3 + 4*vc.Vote4 + 5*vc.Vote5
	return float64(score) / float64(total)
}

// BayesianAverage computes the IMDb-style weighted rating:
//
//	WR = v/(v+m)*R + m/(v+m)*C
//
// where v is the poll's vote count, R its simple average, C the festival
// average and m the minimum-votes pseudo-count. Low-sample tallies are pulled
// toward C so a single 5-star vote cannot outrank a well-sampled 4.8.
// Returns 0 when the tally is empty.
func BayesianAverage(vc models.VoteCounts, festivalAverage float64, minVotes int) float64 {
	v := float64(vc.Total())
	if v == 0 {
		return 0
	}

	r := SimpleAverage(vc)
	m := float64(minVotes)
	return (v/(v+m))*r + (m/(v+m))*festivalAverage
}

// FestivalAverage pools every poll's tally into one grand weighted mean.
// Returns DefaultFestivalAverage when the festival has no votes at all.
func FestivalAverage(polls []models.Poll) float64 {
	var score, total int
	for _, p := range polls {
		vc := p.VoteCounts
		score += 1*vc.Vote1 + 2*vc.Vote2 + 3*vc.Vote3 + 4*vc.Vote4 + 5*vc.Vote5
		total += vc.Total()
	}

	if total == 0 {
		return DefaultFestivalAverage
	}
	return float64(score) / float64(total)
}

// JudgeAverage computes the mean of the judge slots that have rated
// (rating > 0). Unrated slots are excluded, not averaged in as zero.
// Returns 0 if no judge has rated yet.
func JudgeAverage(j models.JudgeVotes) float64 {
	var sum, n int
	for _, slot := range models.AllJudgeSlots() {
		if r := j.Slot(slot); r > 0 {
			sum += r
			n++
		}
	}

	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// FinalScore blends the audience Bayesian average with the judge average.
// When either input is 0 (absent) the other stands alone, so a performance
// is never zeroed out by a signal that does not exist yet.
func FinalScore(bayesianAverage, judgeAverage float64) float64 {
	if judgeAverage == 0 {
		return bayesianAverage
	}
	if bayesianAverage == 0 {
		return judgeAverage
	}
	return (bayesianAverage + judgeAverage) / 2
}

// FormatScore renders a score with a fixed number of decimal places:
// 2 for default display, 4 for CSV export.
func FormatScore(score float64, decimals int) string {
	return strconv.FormatFloat(score, 'f', decimals, 64)
}
