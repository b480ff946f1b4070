// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package leaderboard joins every poll with the score calculator and produces
the ranked festival standings.

Build computes the festival average once, derives each poll's scores from
its latest tally, and sorts descending by final score with a stable sort.
Equal final scores keep their incoming order (polls arrive in creation
order from the store), which is this system's documented tie-break.

WriteCSV renders the same entries as the flat results export: one row per
performance with rank, scores to 4 decimal places, per-judge cells and the
per-star counts.
*/
package leaderboard
