// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/stage-rate/middleware"
	"github.com/danielhkuo/stage-rate/registry"
	"github.com/danielhkuo/stage-rate/store"
)

// writeError maps registry and store errors onto HTTP status codes. Anything
// unrecognized is a store failure: logged server-side, generic to the client.
func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrPollNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	case errors.Is(err, store.ErrDeviceNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Device not found")
	case errors.Is(err, store.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "This device has already voted on this poll")
	case errors.Is(err, registry.ErrPollNotActive):
		middleware.ErrorResponse(w, http.StatusConflict, "Poll is not accepting votes")
	case errors.Is(err, registry.ErrInvalidRating),
		errors.Is(err, registry.ErrInvalidQuestion),
		errors.Is(err, registry.ErrInvalidCategory),
		errors.Is(err, registry.ErrInvalidJudgeSlot):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, fallback)
	}
}
