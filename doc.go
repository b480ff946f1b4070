// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the stage-rate API server.

stage-rate is a festival performance rating service: the audience rates the
single live act with 1-5 stars during a timed voting window, fixed judge
panels score it 0-5, and a Bayesian-adjusted leaderboard ranks every act.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:festival.db ACCESS_KEY_SALT=... go run .

Or with flags:

	go run . -p 3318 -d "file:festival.db" -salt "..."

# Configuration

Required settings:

  - ACCESS_KEY_SALT (-salt): Secret for admin and judge key HMAC
  - DATABASE_URL (-d): Connection string (unless -t memory)

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - STORE_TYPE (-t): sqlite (default), postgres or memory
  - SWEEP_INTERVAL_SECONDS (-sweep): Expiry sweep cadence (default: 1)

A .env file in the working directory is loaded on startup.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, voting, judges, results, devices)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Domain and request/response types
  - registry: Poll lifecycle and the single-active invariant
  - window: Voting window countdown, expiry latch and sweeper
  - scoring: Bayesian audience score, judge average, final score
  - leaderboard: Ranking and CSV export
  - store: Record storage (sqlite, postgres, in-memory)
  - auth: Access key generation and validation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
