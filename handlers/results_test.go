// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/stage-rate/models"
	"github.com/danielhkuo/stage-rate/testutil"
)

func TestGetLeaderboard(t *testing.T) {
	cfg := testutil.GetTestConfig()
	reg, _ := testutil.SetupRegistry(t)
	handler := NewResultsHandler(reg, cfg)

	ctx := context.Background()

	// Weak act, then a strong one; the strong act must rank first.
	weak := testutil.CreateTestPoll(t, reg, "Weak Act", models.CategoryDance, true)
	for i := 0; i < 10; i++ {
		reg.RecordVote(ctx, weak.ID, 2, "")
	}

	strong := testutil.CreateTestPoll(t, reg, "Strong Act", models.CategoryMusic, true)
	for i := 0; i < 20; i++ {
		reg.RecordVote(ctx, strong.ID, 5, "")
	}
	reg.RecordJudgeRating(ctx, strong.ID, models.JudgeMusic1, 5)

	req := testutil.MakeRequest("GET", "/leaderboard", nil, nil)
	w := httptest.NewRecorder()
	handler.GetLeaderboard(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp LeaderboardResponse
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(resp.Entries))
	}
	if resp.Entries[0].Question != "Strong Act" || resp.Entries[0].Rank != 1 {
		t.Errorf("first entry: %+v", resp.Entries[0])
	}
	if resp.Entries[1].Question != "Weak Act" || resp.Entries[1].Rank != 2 {
		t.Errorf("second entry: %+v", resp.Entries[1])
	}
	if resp.Entries[0].FinalScore <= resp.Entries[1].FinalScore {
		t.Error("scores not descending")
	}
}

func TestGetLeaderboardEmpty(t *testing.T) {
	cfg := testutil.GetTestConfig()
	reg, _ := testutil.SetupRegistry(t)
	handler := NewResultsHandler(reg, cfg)

	w := httptest.NewRecorder()
	handler.GetLeaderboard(w, testutil.MakeRequest("GET", "/leaderboard", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp LeaderboardResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(resp.Entries))
	}
}

func TestExportCSV(t *testing.T) {
	cfg := testutil.GetTestConfig()
	reg, _ := testutil.SetupRegistry(t)
	handler := NewResultsHandler(reg, cfg)

	p := testutil.CreateTestPoll(t, reg, "Solo", models.CategoryDance, true)
	reg.RecordVote(context.Background(), p.ID, 4, "")

	// Admin-only.
	w := httptest.NewRecorder()
	handler.ExportCSV(w, testutil.MakeRequest("GET", "/leaderboard/export", nil, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	w = httptest.NewRecorder()
	handler.ExportCSV(w, testutil.MakeRequest("GET", "/leaderboard/export", nil, map[string]string{
		"X-Admin-Key": testutil.AdminKey(cfg),
	}))
	testutil.AssertStatus(t, w, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "festival-results.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}
	if records[0][0] != "Rank" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][1] != "Solo" {
		t.Errorf("unexpected row: %v", records[1])
	}
}
