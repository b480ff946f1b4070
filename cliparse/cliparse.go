package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store types selectable with -t.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Port          int
	DatabaseURL   string
	StoreType     string
	AccessKeySalt string
	SweepInterval time.Duration
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	// Load .env if present; real environment variables win
	godotenv.Load()

	var cfg Config
	var sweepSeconds int

	fs := flag.NewFlagSet("stage-rate", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.StoreType, "t", "", "Store type (sqlite, postgres or memory)")
	fs.IntVar(&sweepSeconds, "sweep", 0, "Expiry sweep interval in seconds")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AccessKeySalt, "salt", "", "Access key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.StoreType == "" {
		cfg.StoreType = os.Getenv("STORE_TYPE")
		if cfg.StoreType == "" {
			cfg.StoreType = StoreSQLite
		}
	}
	switch cfg.StoreType {
	case StoreSQLite, StorePostgres, StoreMemory:
	default:
		return Config{}, errors.New("store type must be sqlite, postgres or memory")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.StoreType != StoreMemory {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if sweepSeconds == 0 {
		if sweepStr := os.Getenv("SWEEP_INTERVAL_SECONDS"); sweepStr != "" {
			s, err := strconv.Atoi(sweepStr)
			if err != nil {
				return Config{}, errors.New("invalid SWEEP_INTERVAL_SECONDS env variable")
			}
			sweepSeconds = s
		} else {
			sweepSeconds = 1 // default
		}
	}
	cfg.SweepInterval = time.Duration(sweepSeconds) * time.Second

	// Secrets - MUST be provided
	if cfg.AccessKeySalt == "" {
		cfg.AccessKeySalt = os.Getenv("ACCESS_KEY_SALT")
	}
	if cfg.AccessKeySalt == "" {
		return Config{}, errors.New("ACCESS_KEY_SALT required")
	}

	return cfg, nil
}
