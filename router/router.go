// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/stage-rate/cliparse"
	"github.com/danielhkuo/stage-rate/handlers"
	"github.com/danielhkuo/stage-rate/middleware"
	"github.com/danielhkuo/stage-rate/registry"
)

func NewRouter(reg *registry.Registry, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(reg, cfg)
	votingHandler := handlers.NewVotingHandler(reg, cfg)
	judgeHandler := handlers.NewJudgeHandler(reg, cfg)
	resultsHandler := handlers.NewResultsHandler(reg, cfg)
	deviceHandler := handlers.NewDeviceHandler(reg, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll management (admin operations)
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("POST /polls/{id}/start", middleware.WithLogging(pollHandler.StartVoting))
	mux.HandleFunc("POST /polls/{id}/stop", middleware.WithLogging(pollHandler.StopVoting))
	mux.HandleFunc("DELETE /polls/{id}", middleware.WithLogging(pollHandler.DeletePoll))

	// Audience voting (public)
	mux.HandleFunc("GET /polls/active", middleware.WithLogging(votingHandler.GetActivePoll))
	mux.HandleFunc("POST /polls/{id}/votes", middleware.WithLogging(votingHandler.SubmitVote))

	// Judge panel
	mux.HandleFunc("GET /judge/{slot}/polls", middleware.WithLogging(judgeHandler.ListPolls))
	mux.HandleFunc("PUT /polls/{id}/judge-votes/{slot}", middleware.WithLogging(judgeHandler.SubmitRating))

	// Results (leaderboard public, export admin)
	mux.HandleFunc("GET /leaderboard", middleware.WithLogging(resultsHandler.GetLeaderboard))
	mux.HandleFunc("GET /leaderboard/export", middleware.WithLogging(resultsHandler.ExportCSV))

	// Device management
	mux.HandleFunc("POST /devices/register", middleware.WithLogging(deviceHandler.Register))
	mux.HandleFunc("GET /devices/{id}/votes", middleware.WithLogging(deviceHandler.MyVotes))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("stage-rate API v1"))
	})

	return mux
}
