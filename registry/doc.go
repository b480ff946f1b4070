// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package registry owns poll lifecycle transitions and vote recording.

# Single-Active Invariant

At most one poll accepts audience votes at any instant. StartVoting enforces
this with strict ordering: every other active poll is deactivated first,
then the target is activated with a fresh start time. The ordering means an
observer may briefly see zero active polls during a transition, but can
never see two; and if the activation step fails, the registry is left fully
deactivated for the caller to retry, never reporting a failure as success.

# Vote Recording

RecordVote validates the rating, requires a running window, claims the
device's vote marker (when a device is known) and then increments exactly
one tally counter. The marker claim comes first so a duplicate vote fails
before it can touch the tally. RecordJudgeRating checks the slot against the
poll's category (the panels are closed two-slot sets, so an unknown judge
ID is rejected outright) and overwrites the slot last-writer-wins.

Both paths reject polls whose window has expired but not yet been swept:
expiry is decided by wall-clock comparison, not by waiting for the sweeper.
*/
package registry
