// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

A .env file in the working directory is loaded first (via godotenv); real
environment variables take precedence over it, and CLI flags take precedence
over both.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required unless -t memory)
  - StoreType: sqlite (default), postgres or memory
  - AccessKeySalt: Secret for admin and judge key HMAC (required)
  - SweepInterval: Expiry sweep cadence (default: 1s)

# CLI Flags

	-p     Server port
	-d     Database URL
	-t     Store type
	-sweep Sweep interval in seconds
	-salt  Access key salt

# Environment Variables

Flags fall back to environment variables:

	PORT                   → -p
	DATABASE_URL           → -d
	STORE_TYPE             → -t
	SWEEP_INTERVAL_SECONDS → -sweep
	ACCESS_KEY_SALT        → -salt

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided for the sqlite and postgres stores
  - ACCESS_KEY_SALT must be provided

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("sqlite", cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(reg, cfg)
*/
package cliparse
