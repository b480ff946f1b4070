package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/stage-rate/cliparse"
	"github.com/danielhkuo/stage-rate/registry"
	"github.com/danielhkuo/stage-rate/router"
	"github.com/danielhkuo/stage-rate/store"
	"github.com/danielhkuo/stage-rate/window"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the record store
	st, err := openStore(cfg)
	if err != nil {
		slog.Error("store setup failed", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	reg := registry.New(st)

	// Sweep expired voting windows until shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := window.NewSweeper(st, reg, cfg.SweepInterval)
	go sweeper.Run(ctx)

	// Create router
	mux := router.NewRouter(reg, cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "store", cfg.StoreType)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// openStore builds the configured store implementation. SQL-backed stores
// get their schema created on startup.
func openStore(cfg cliparse.Config) (store.Store, error) {
	if cfg.StoreType == cliparse.StoreMemory {
		return store.NewMemStore(), nil
	}

	driver := "sqlite"
	if cfg.StoreType == cliparse.StorePostgres {
		driver = "postgres"
	}

	db, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if err := store.CreateSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	slog.Info("Database schema ready", "driver", driver)

	return store.NewSQLStore(db), nil
}
