// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/stage-rate/auth"
	"github.com/danielhkuo/stage-rate/cliparse"
	"github.com/danielhkuo/stage-rate/middleware"
	"github.com/danielhkuo/stage-rate/models"
	"github.com/danielhkuo/stage-rate/registry"
	"github.com/danielhkuo/stage-rate/window"
)

type VotingHandler struct {
	reg *registry.Registry
	cfg cliparse.Config
}

func NewVotingHandler(reg *registry.Registry, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{reg: reg, cfg: cfg}
}

// GetActivePoll handles GET /polls/active
// Always 200: window_state "none" when no poll is live, so clients poll one
// endpoint without special-casing errors.
func (h *VotingHandler) GetActivePoll(w http.ResponseWriter, r *http.Request) {
	p, found, err := h.reg.ActivePoll(r.Context())
	if err != nil {
		writeError(w, err, "Failed to load active poll")
		return
	}

	if !found {
		middleware.JSONResponse(w, http.StatusOK, models.ActivePollResponse{
			WindowState: window.NoWindow.String(),
		})
		return
	}

	remaining, state := window.Remaining(time.Now(), p.StartTime, p.DurationSeconds)
	middleware.JSONResponse(w, http.StatusOK, models.ActivePollResponse{
		Poll:             &p,
		RemainingSeconds: remaining,
		WindowState:      state.String(),
		TotalVotes:       p.VoteCounts.Total(),
	})
}

// SubmitVote handles POST /polls/{id}/votes
// The X-Device-UUID header is optional; when present it must be a valid UUID
// and ties the vote to a device record, enforcing one vote per device per
// poll. Without it the vote is anonymous and unguarded.
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	deviceID := ""
	if raw := r.Header.Get("X-Device-UUID"); raw != "" {
		if _, err := uuid.Parse(raw); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid device UUID")
			return
		}
		// Lookup-or-create, so a device that skipped explicit registration
		// still gets a vote marker.
		id, _, err := h.reg.Store().RegisterDevice(r.Context(), raw, models.PlatformWeb)
		if err != nil {
			writeError(w, err, "Failed to resolve device")
			return
		}
		deviceID = id
	}

	if err := h.reg.RecordVote(r.Context(), pollID, req.Rating, deviceID); err != nil {
		writeError(w, err, "Failed to record vote")
		return
	}

	slog.Info("vote recorded",
		"poll_id", pollID,
		"rating", req.Rating,
		"ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.AccessKeySalt),
	)

	middleware.JSONResponse(w, http.StatusOK, models.SubmitVoteResponse{
		PollID:  pollID,
		Rating:  req.Rating,
		Message: "Vote recorded",
	})
}
