// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/stage-rate/models"
	"github.com/danielhkuo/stage-rate/testutil"
)

func TestCreatePoll(t *testing.T) {
	cfg := testutil.GetTestConfig()
	adminKey := testutil.AdminKey(cfg)

	tests := []struct {
		name       string
		body       interface{}
		adminKey   string
		wantStatus int
	}{
		{
			name:       "valid poll",
			body:       models.CreatePollRequest{Question: "Opening Dance", Category: models.CategoryDance, DurationSeconds: 60},
			adminKey:   adminKey,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "category-less poll",
			body:       models.CreatePollRequest{Question: "Surprise Act"},
			adminKey:   adminKey,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing admin key",
			body:       models.CreatePollRequest{Question: "X"},
			adminKey:   "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong admin key",
			body:       models.CreatePollRequest{Question: "X"},
			adminKey:   "bogus",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty question",
			body:       models.CreatePollRequest{Question: "   ", Category: models.CategoryDance},
			adminKey:   adminKey,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown category",
			body:       models.CreatePollRequest{Question: "X", Category: "Opera"},
			adminKey:   adminKey,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg, _ := testutil.SetupRegistry(t)
			handler := NewPollHandler(reg, cfg)

			req := testutil.MakeRequest("POST", "/polls", tc.body, map[string]string{
				"X-Admin-Key": tc.adminKey,
			})
			w := httptest.NewRecorder()

			handler.CreatePoll(w, req)

			testutil.AssertStatus(t, w, tc.wantStatus)

			if tc.wantStatus == http.StatusCreated {
				var resp models.CreatePollResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.PollID == "" {
					t.Error("expected a poll_id in the response")
				}
			}
		})
	}
}

func TestStartAndStopVoting(t *testing.T) {
	cfg := testutil.GetTestConfig()
	reg, _ := testutil.SetupRegistry(t)
	handler := NewPollHandler(reg, cfg)
	adminKey := testutil.AdminKey(cfg)

	pA := testutil.CreateTestPoll(t, reg, "Act A", models.CategoryDance, false)
	pB := testutil.CreateTestPoll(t, reg, "Act B", models.CategoryMusic, false)

	start := func(id string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/polls/"+id+"/start", nil, map[string]string{
			"X-Admin-Key": adminKey,
		})
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.StartVoting(w, req)
		return w
	}

	w := start(pA.ID)
	testutil.AssertStatus(t, w, http.StatusOK)

	var started models.Poll
	testutil.AssertJSON(t, w, &started)
	if !started.IsActive || started.StartTime == nil {
		t.Errorf("poll not active after start: %+v", started)
	}

	// Starting B must displace A.
	testutil.AssertStatus(t, start(pB.ID), http.StatusOK)

	gotA, _ := reg.GetPoll(context.Background(), pA.ID)
	gotB, _ := reg.GetPoll(context.Background(), pB.ID)
	if gotA.IsActive {
		t.Error("starting B should have deactivated A")
	}
	if !gotB.IsActive {
		t.Error("B should be active")
	}

	// Unknown poll.
	testutil.AssertStatus(t, start("missing"), http.StatusNotFound)

	// Stop is idempotent.
	for i := 0; i < 2; i++ {
		req := testutil.MakeRequest("POST", "/polls/"+pB.ID+"/stop", nil, map[string]string{
			"X-Admin-Key": adminKey,
		})
		req.SetPathValue("id", pB.ID)
		w := httptest.NewRecorder()
		handler.StopVoting(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	gotB, _ = reg.GetPoll(context.Background(), pB.ID)
	if gotB.IsActive {
		t.Error("B still active after stop")
	}
}

func TestStartVotingRequiresAdmin(t *testing.T) {
	cfg := testutil.GetTestConfig()
	reg, _ := testutil.SetupRegistry(t)
	handler := NewPollHandler(reg, cfg)

	p := testutil.CreateTestPoll(t, reg, "Act", models.CategoryDance, false)

	req := testutil.MakeRequest("POST", "/polls/"+p.ID+"/start", nil, nil)
	req.SetPathValue("id", p.ID)
	w := httptest.NewRecorder()
	handler.StartVoting(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	got, _ := reg.GetPoll(context.Background(), p.ID)
	if got.IsActive {
		t.Error("unauthorized request must not start voting")
	}
}

func TestDeletePoll(t *testing.T) {
	cfg := testutil.GetTestConfig()
	reg, _ := testutil.SetupRegistry(t)
	handler := NewPollHandler(reg, cfg)
	adminKey := testutil.AdminKey(cfg)

	p1 := testutil.CreateTestPoll(t, reg, "Keep", models.CategoryDance, false)
	p2 := testutil.CreateTestPoll(t, reg, "Drop", models.CategoryMusic, false)

	del := func(id string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("DELETE", "/polls/"+id, nil, map[string]string{
			"X-Admin-Key": adminKey,
		})
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.DeletePoll(w, req)
		return w
	}

	testutil.AssertStatus(t, del(p2.ID), http.StatusOK)

	polls, _ := reg.ListPolls(context.Background())
	if len(polls) != 1 || polls[0].ID != p1.ID {
		t.Errorf("polls after delete: %+v", polls)
	}

	// Second delete is a 404.
	testutil.AssertStatus(t, del(p2.ID), http.StatusNotFound)
}

func TestListPolls(t *testing.T) {
	cfg := testutil.GetTestConfig()
	reg, _ := testutil.SetupRegistry(t)
	handler := NewPollHandler(reg, cfg)

	testutil.CreateTestPoll(t, reg, "First", models.CategoryDance, false)
	active := testutil.CreateTestPoll(t, reg, "Second", models.CategoryMusic, true)
	reg.RecordVote(context.Background(), active.ID, 5, "")

	req := testutil.MakeRequest("GET", "/polls", nil, map[string]string{
		"X-Admin-Key": testutil.AdminKey(cfg),
	})
	w := httptest.NewRecorder()
	handler.ListPolls(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.AdminPollListResponse
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Polls) != 2 {
		t.Fatalf("expected 2 polls, got %d", len(resp.Polls))
	}

	// Creation order.
	if resp.Polls[0].Poll.Question != "First" || resp.Polls[1].Poll.Question != "Second" {
		t.Errorf("unexpected order: %q, %q", resp.Polls[0].Poll.Question, resp.Polls[1].Poll.Question)
	}

	first, second := resp.Polls[0], resp.Polls[1]
	if first.WindowState != "none" {
		t.Errorf("inactive poll window state = %q", first.WindowState)
	}
	if second.WindowState != "running" || second.RemainingSeconds <= 0 {
		t.Errorf("active poll summary: state=%q remaining=%d", second.WindowState, second.RemainingSeconds)
	}
	if second.TotalVotes != 1 {
		t.Errorf("total votes = %d, want 1", second.TotalVotes)
	}
	if first.CreatedAgo == "" {
		t.Error("created_ago should be populated")
	}
}
