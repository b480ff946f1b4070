// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/stage-rate/auth"
	"github.com/danielhkuo/stage-rate/cliparse"
	"github.com/danielhkuo/stage-rate/leaderboard"
	"github.com/danielhkuo/stage-rate/middleware"
	"github.com/danielhkuo/stage-rate/registry"
)

type ResultsHandler struct {
	reg *registry.Registry
	cfg cliparse.Config
}

func NewResultsHandler(reg *registry.Registry, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{reg: reg, cfg: cfg}
}

// LeaderboardResponse wraps the ranked entries for the JSON endpoint.
type LeaderboardResponse struct {
	Entries []leaderboard.Entry `json:"entries"`
}

// GetLeaderboard handles GET /leaderboard
// Public: scores are recomputed from the live tallies on every request, so
// the big screen can refresh as votes land.
func (h *ResultsHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	polls, err := h.reg.ListPolls(r.Context())
	if err != nil {
		writeError(w, err, "Failed to load leaderboard")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, LeaderboardResponse{
		Entries: leaderboard.Build(polls),
	})
}

// ExportCSV handles GET /leaderboard/export
// Admin-only flat file of the final standings.
func (h *ResultsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAccessKey(auth.RoleAdmin, key, h.cfg.AccessKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	polls, err := h.reg.ListPolls(r.Context())
	if err != nil {
		writeError(w, err, "Failed to load results")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="festival-results.csv"`)

	if err := leaderboard.WriteCSV(w, leaderboard.Build(polls)); err != nil {
		slog.Error("failed to write CSV export", "error", err)
	}
}
