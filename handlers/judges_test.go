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

func submitRating(handler *JudgeHandler, pollID, slot string, rating int, key string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("PUT", "/polls/"+pollID+"/judge-votes/"+slot,
		models.JudgeRatingRequest{Rating: rating},
		map[string]string{"X-Judge-Key": key})
	req.SetPathValue("id", pollID)
	req.SetPathValue("slot", slot)
	w := httptest.NewRecorder()
	handler.SubmitRating(w, req)
	return w
}

func TestListJudgePolls(t *testing.T) {
	cfg := testutil.GetTestConfig()
	reg, _ := testutil.SetupRegistry(t)
	handler := NewJudgeHandler(reg, cfg)

	testutil.CreateTestPoll(t, reg, "Dance Act", models.CategoryDance, false)
	testutil.CreateTestPoll(t, reg, "Music Act", models.CategoryMusic, true)
	testutil.CreateTestPoll(t, reg, "Uncategorized", "", false)

	list := func(slot, key string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("GET", "/judge/"+slot+"/polls", nil, map[string]string{
			"X-Judge-Key": key,
		})
		req.SetPathValue("slot", slot)
		w := httptest.NewRecorder()
		handler.ListPolls(w, req)
		return w
	}

	// Unknown slot.
	testutil.AssertStatus(t, list("celebrity", "whatever"), http.StatusBadRequest)

	// Wrong key: another slot's key does not open this panel.
	testutil.AssertStatus(t, list(models.JudgeMusic1, testutil.JudgeKey(cfg, models.JudgeDance1)), http.StatusUnauthorized)

	// Correct key sees only the slot's category.
	w := list(models.JudgeMusic1, testutil.JudgeKey(cfg, models.JudgeMusic1))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.AdminPollListResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Polls) != 1 || resp.Polls[0].Poll.Question != "Music Act" {
		t.Errorf("music panel list: %+v", resp.Polls)
	}
	if resp.Polls[0].WindowState != "running" {
		t.Errorf("window state = %q, want running", resp.Polls[0].WindowState)
	}
}

func TestSubmitRating(t *testing.T) {
	cfg := testutil.GetTestConfig()
	reg, _ := testutil.SetupRegistry(t)
	handler := NewJudgeHandler(reg, cfg)

	p := testutil.CreateTestPoll(t, reg, "Dance Act", models.CategoryDance, true)

	dance1Key := testutil.JudgeKey(cfg, models.JudgeDance1)

	// Missing and wrong keys.
	testutil.AssertStatus(t, submitRating(handler, p.ID, models.JudgeDance1, 4, ""), http.StatusUnauthorized)
	testutil.AssertStatus(t, submitRating(handler, p.ID, models.JudgeDance1, 4, testutil.JudgeKey(cfg, models.JudgeDance2)), http.StatusUnauthorized)

	// Valid rating.
	w := submitRating(handler, p.ID, models.JudgeDance1, 4, dance1Key)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.JudgeRatingResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.PollID != p.ID || resp.Slot != models.JudgeDance1 || resp.Rating != 4 {
		t.Errorf("unexpected response: %+v", resp)
	}

	// Overwrite wins.
	testutil.AssertStatus(t, submitRating(handler, p.ID, models.JudgeDance1, 5, dance1Key), http.StatusOK)

	got, _ := reg.GetPoll(context.Background(), p.ID)
	if got.JudgeVotes.Dance1 != 5 {
		t.Errorf("judge slot = %d, want 5", got.JudgeVotes.Dance1)
	}

	// Slot from the wrong category, even with its own valid key.
	testutil.AssertStatus(t, submitRating(handler, p.ID, models.JudgeMusic1, 4, testutil.JudgeKey(cfg, models.JudgeMusic1)), http.StatusBadRequest)

	// Out-of-range rating.
	testutil.AssertStatus(t, submitRating(handler, p.ID, models.JudgeDance1, 6, dance1Key), http.StatusBadRequest)

	// Unknown poll.
	testutil.AssertStatus(t, submitRating(handler, "missing", models.JudgeDance1, 4, dance1Key), http.StatusNotFound)
}

func TestSubmitRatingClosedWindow(t *testing.T) {
	cfg := testutil.GetTestConfig()
	reg, _ := testutil.SetupRegistry(t)
	handler := NewJudgeHandler(reg, cfg)

	p := testutil.CreateTestPoll(t, reg, "Dance Act", models.CategoryDance, false)

	w := submitRating(handler, p.ID, models.JudgeDance1, 4, testutil.JudgeKey(cfg, models.JudgeDance1))
	testutil.AssertStatus(t, w, http.StatusConflict)

	got, _ := reg.GetPoll(context.Background(), p.ID)
	if got.JudgeVotes.Dance1 != 0 {
		t.Errorf("rejected rating was stored: %+v", got.JudgeVotes)
	}
}
