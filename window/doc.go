// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package window implements the voting-window countdown and its expiry sweep.

# State Machine

A poll's window is in one of three states:

	NoWindow  no start time (inactive, or misconfigured duration)
	Running   counting down; remaining = max(0, duration - elapsed)
	Expired   remaining reached zero

Remaining is a pure function of wall-clock time, start time and duration, so
the audience page, the judge panels and the admin console all converge on
the same countdown with no coordination and no persisted counter.

# Edge-Triggered Expiry

Expiry must fire its side effect (stopping the poll) exactly once per
activation even though the window is re-evaluated at least once per second
by the sweeper. Latch keys the one-shot on (poll ID, start time):
re-activating a poll gets a fresh start time and therefore a fresh shot,
while repeated evaluations of an already-expired window stay silent.

# Sweeper

Sweeper merges the store's snapshot feed with a ticker and calls the
registry's StopVoting on each newly expired poll. A failed stop re-arms the
latch and is retried on the next sweep.
*/
package window
