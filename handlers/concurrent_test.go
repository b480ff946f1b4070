// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/stage-rate/models"
	"github.com/danielhkuo/stage-rate/testutil"
)

// TestConcurrentVoteSubmissions verifies that simultaneous audience votes
// don't lose increments or corrupt the tally
func TestConcurrentVoteSubmissions(t *testing.T) {
	cfg := testutil.GetTestConfig()
	reg, _ := testutil.SetupRegistry(t)
	handler := NewVotingHandler(reg, cfg)

	p := testutil.CreateTestPoll(t, reg, "Big Act", models.CategoryMusic, true)

	numVoters := 50

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			rating := voterIdx%5 + 1
			w := submitVote(handler, p.ID, rating, "")

			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	// All submissions should succeed
	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful submissions, got %d", numVoters, successCount.Load())
	}

	got, err := reg.GetPoll(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("GetPoll failed: %v", err)
	}
	if got.VoteCounts.Total() != numVoters {
		t.Errorf("Expected %d votes in tally, got %d", numVoters, got.VoteCounts.Total())
	}

	// 50 voters cycling 1..5 put exactly 10 votes on each rating
	for rating := 1; rating <= 5; rating++ {
		if got.VoteCounts.Count(rating) != 10 {
			t.Errorf("Expected 10 votes at rating %d, got %d", rating, got.VoteCounts.Count(rating))
		}
	}
}

// TestConcurrentDeviceVotes verifies that a stampede of devices each gets
// exactly one vote marker
func TestConcurrentDeviceVotes(t *testing.T) {
	cfg := testutil.GetTestConfig()
	reg, _ := testutil.SetupRegistry(t)
	handler := NewVotingHandler(reg, cfg)

	p := testutil.CreateTestPoll(t, reg, "Big Act", models.CategoryDance, true)

	numDevices := 20

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numDevices; i++ {
		wg.Add(1)
		go func(deviceIdx int) {
			defer wg.Done()

			deviceUUID := fmt.Sprintf("00000000-0000-4000-8000-%012d", deviceIdx)

			// Each device tries twice; only the first attempt may land.
			first := submitVote(handler, p.ID, 5, deviceUUID)
			second := submitVote(handler, p.ID, 1, deviceUUID)

			if first.Code == http.StatusOK && second.Code == http.StatusConflict {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numDevices {
		t.Errorf("Expected %d devices with exactly one accepted vote, got %d", numDevices, successCount.Load())
	}

	got, _ := reg.GetPoll(context.Background(), p.ID)
	if got.VoteCounts.Total() != numDevices || got.VoteCounts.Vote5 != numDevices {
		t.Errorf("tally after device stampede: %+v", got.VoteCounts)
	}
}
