// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the stage-rate API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(reg, cfg)

# Endpoints

Health:

	GET /health

Poll management (admin, requires X-Admin-Key):

	POST   /polls            - Create poll
	GET    /polls            - Management list
	POST   /polls/{id}/start - Open the voting window
	POST   /polls/{id}/stop  - Close the voting window
	DELETE /polls/{id}       - Delete poll

Audience voting (public):

	GET  /polls/active     - Active poll and remaining seconds
	POST /polls/{id}/votes - Submit a 1-5 star vote

Judge panel (requires X-Judge-Key for the slot):

	GET /judge/{slot}/polls            - Polls in the slot's category
	PUT /polls/{id}/judge-votes/{slot} - Submit or revise a rating

Results:

	GET /leaderboard        - Ranked standings (public)
	GET /leaderboard/export - CSV export (admin)

Device management:

	POST /devices/register   - Register device
	GET  /devices/{id}/votes - Device's vote history

# Handler Initialization

The router creates handler instances with dependency injection:

	pollHandler := handlers.NewPollHandler(reg, cfg)
	votingHandler := handlers.NewVotingHandler(reg, cfg)
	judgeHandler := handlers.NewJudgeHandler(reg, cfg)
	resultsHandler := handlers.NewResultsHandler(reg, cfg)
	deviceHandler := handlers.NewDeviceHandler(reg, cfg)

All handlers receive the registry and configuration.
*/
package router
