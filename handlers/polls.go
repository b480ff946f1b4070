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

type PollHandler struct {
	reg *registry.Registry
	cfg cliparse.Config
}

func NewPollHandler(reg *registry.Registry, cfg cliparse.Config) *PollHandler {
	return &PollHandler{reg: reg, cfg: cfg}
}

// requireAdmin validates the X-Admin-Key header. Writes the 401 itself and
// reports whether the caller may proceed.
func (h *PollHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	key := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAccessKey(auth.RoleAdmin, key, h.cfg.AccessKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	p, err := h.reg.CreatePoll(r.Context(), req.Question, req.Category, req.DurationSeconds)
	if err != nil {
		writeError(w, err, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", p.ID, "category", p.Category)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID: p.ID,
	})
}

// StartVoting handles POST /polls/{id}/start
func (h *PollHandler) StartVoting(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	pollID := r.PathValue("id")
	if err := h.reg.StartVoting(r.Context(), pollID); err != nil {
		writeError(w, err, "Failed to start voting")
		return
	}

	p, err := h.reg.GetPoll(r.Context(), pollID)
	if err != nil {
		writeError(w, err, "Failed to load poll")
		return
	}

	slog.Info("voting started", "poll_id", pollID, "duration_seconds", p.DurationSeconds)

	middleware.JSONResponse(w, http.StatusOK, p)
}

// StopVoting handles POST /polls/{id}/stop
func (h *PollHandler) StopVoting(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	pollID := r.PathValue("id")
	if err := h.reg.StopVoting(r.Context(), pollID); err != nil {
		writeError(w, err, "Failed to stop voting")
		return
	}

	p, err := h.reg.GetPoll(r.Context(), pollID)
	if err != nil {
		writeError(w, err, "Failed to load poll")
		return
	}

	slog.Info("voting stopped", "poll_id", pollID)

	middleware.JSONResponse(w, http.StatusOK, p)
}

// DeletePoll handles DELETE /polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	pollID := r.PathValue("id")
	if err := h.reg.DeletePoll(r.Context(), pollID); err != nil {
		writeError(w, err, "Failed to delete poll")
		return
	}

	slog.Info("poll deleted", "poll_id", pollID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Poll deleted",
	})
}

// ListPolls handles GET /polls
// Returns the management list: every poll with its tally size, window state
// and a human-readable age.
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	polls, err := h.reg.ListPolls(r.Context())
	if err != nil {
		writeError(w, err, "Failed to list polls")
		return
	}

	now := time.Now()
	summaries := make([]models.AdminPollSummary, len(polls))
	for i, p := range polls {
		remaining, state := window.Remaining(now, p.StartTime, p.DurationSeconds)
		summaries[i] = models.AdminPollSummary{
			Poll:             p,
			TotalVotes:       p.VoteCounts.Total(),
			RemainingSeconds: remaining,
			WindowState:      state.String(),
			CreatedAgo:       humanize.Time(p.CreatedAt),
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminPollListResponse{
		Polls: summaries,
	})
}
