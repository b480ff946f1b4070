// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/danielhkuo/stage-rate/cliparse"
	"github.com/danielhkuo/stage-rate/middleware"
	"github.com/danielhkuo/stage-rate/models"
	"github.com/danielhkuo/stage-rate/registry"
)

type DeviceHandler struct {
	reg *registry.Registry
	cfg cliparse.Config
}

func NewDeviceHandler(reg *registry.Registry, cfg cliparse.Config) *DeviceHandler {
	return &DeviceHandler{reg: reg, cfg: cfg}
}

// Register handles POST /devices/register
// Idempotent: registering an already-known UUID returns the existing record
// with is_new false.
func (h *DeviceHandler) Register(w http.ResponseWriter, r *http.Request) {
	deviceUUID := r.Header.Get("X-Device-UUID")
	if _, err := uuid.Parse(deviceUUID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid device UUID")
		return
	}

	var req models.RegisterDeviceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !models.ValidPlatform(req.Platform) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "platform must be ios, android or web")
		return
	}

	deviceID, isNew, err := h.reg.Store().RegisterDevice(r.Context(), deviceUUID, req.Platform)
	if err != nil {
		writeError(w, err, "Failed to register device")
		return
	}

	if isNew {
		slog.Info("device registered", "device_id", deviceID, "platform", req.Platform)
	}

	middleware.JSONResponse(w, http.StatusOK, models.RegisterDeviceResponse{
		DeviceID: deviceID,
		IsNew:    isNew,
	})
}

// MyVotes handles GET /devices/{id}/votes
// Returns the vote markers held by a device, newest first, so a returning
// client can grey out polls it already voted on.
func (h *DeviceHandler) MyVotes(w http.ResponseWriter, r *http.Request) {
	deviceID := r.PathValue("id")

	votes, err := h.reg.Store().DeviceVotes(r.Context(), deviceID)
	if err != nil {
		writeError(w, err, "Failed to load votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MyVotesResponse{
		Votes: votes,
	})
}
