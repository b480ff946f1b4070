// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/stage-rate/auth"
	"github.com/danielhkuo/stage-rate/cliparse"
	"github.com/danielhkuo/stage-rate/middleware"
	"github.com/danielhkuo/stage-rate/models"
	"github.com/danielhkuo/stage-rate/registry"
	"github.com/danielhkuo/stage-rate/window"
)

type JudgeHandler struct {
	reg *registry.Registry
	cfg cliparse.Config
}

func NewJudgeHandler(reg *registry.Registry, cfg cliparse.Config) *JudgeHandler {
	return &JudgeHandler{reg: reg, cfg: cfg}
}

// requireJudge validates the X-Judge-Key header against the slot's role.
// Each slot has its own key, so a dance judge's key is useless on the music
// panel. Writes the error itself and reports whether the caller may proceed.
func (h *JudgeHandler) requireJudge(w http.ResponseWriter, r *http.Request, slot string) bool {
	if models.JudgeCategory(slot) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown judge slot")
		return false
	}

	key := r.Header.Get("X-Judge-Key")
	if err := auth.ValidateAccessKey(auth.JudgeRole(slot), key, h.cfg.AccessKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid judge key")
		return false
	}
	return true
}

// ListPolls handles GET /judge/{slot}/polls
// Returns the polls in the slot's category with their window state, so a
// judge console can show what is rateable right now.
func (h *JudgeHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	slot := r.PathValue("slot")
	if !h.requireJudge(w, r, slot) {
		return
	}

	polls, err := h.reg.ListPolls(r.Context())
	if err != nil {
		writeError(w, err, "Failed to list polls")
		return
	}

	category := models.JudgeCategory(slot)
	now := time.Now()
	summaries := []models.AdminPollSummary{}
	for _, p := range polls {
		if p.Category != category {
			continue
		}
		remaining, state := window.Remaining(now, p.StartTime, p.DurationSeconds)
		summaries = append(summaries, models.AdminPollSummary{
			Poll:             p,
			TotalVotes:       p.VoteCounts.Total(),
			RemainingSeconds: remaining,
			WindowState:      state.String(),
			CreatedAgo:       humanize.Time(p.CreatedAt),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminPollListResponse{
		Polls: summaries,
	})
}

// SubmitRating handles PUT /polls/{id}/judge-votes/{slot}
// PUT because the operation is a last-writer-wins overwrite: a judge may
// revise their rating any time before the window closes.
func (h *JudgeHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	slot := r.PathValue("slot")
	if !h.requireJudge(w, r, slot) {
		return
	}

	pollID := r.PathValue("id")

	var req models.JudgeRatingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.reg.RecordJudgeRating(r.Context(), pollID, slot, req.Rating); err != nil {
		writeError(w, err, "Failed to record judge rating")
		return
	}

	slog.Info("judge rating recorded", "poll_id", pollID, "slot", slot, "rating", req.Rating)

	middleware.JSONResponse(w, http.StatusOK, models.JudgeRatingResponse{
		PollID: pollID,
		Slot:   slot,
		Rating: req.Rating,
	})
}
