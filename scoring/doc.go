// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scoring computes performance scores from audience tallies and judge
ratings.

All functions are pure and deterministic; nothing here is ever persisted.
Scores are recomputed from the latest tallies on every read, so a stale
cached score can never be served.

# Pipeline

	SimpleAverage    raw mean of the 1-5 tally (count-insensitive)
	FestivalAverage  pooled mean across every poll, the Bayesian prior C
	BayesianAverage  WR = v/(v+m)*R + m/(v+m)*C, shrinks small samples to C
	JudgeAverage     mean of rated judge slots (0 = abstained, excluded)
	FinalScore       (bayesian + judge)/2, degrading to whichever exists

# Edge Cases

An empty tally scores 0 (not C); a festival with no votes has average 3.0;
a poll no judge has rated has judge average 0 and ranks on audience signal
alone.
*/
package scoring
