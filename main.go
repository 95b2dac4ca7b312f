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
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/pollbox/pollbox/cliparse"
	"github.com/pollbox/pollbox/middleware"
	"github.com/pollbox/pollbox/router"
	"github.com/pollbox/pollbox/store"
	"github.com/pollbox/pollbox/store/memory"
	"github.com/pollbox/pollbox/store/mongostore"
	"github.com/pollbox/pollbox/store/sqlstore"
)

func main() {
	// Load .env if present; real env vars take precedence
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	st, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("store initialization failed", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("Store ready", "driver", cfg.StoreDriver)

	// Create router
	mux := router.NewRouter(st, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// openStore builds the store named by the configuration. The returned close
// function is safe to call once, after the server has stopped.
func openStore(cfg cliparse.Config) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case cliparse.DriverMemory:
		return memory.New(), func() {}, nil

	case cliparse.DriverPostgres, cliparse.DriverSQLite:
		db, err := sql.Open(cfg.StoreDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, err
		}
		st := sqlstore.New(db)
		if err := st.CreateSchema(); err != nil {
			db.Close()
			return nil, nil, err
		}
		return st, func() { db.Close() }, nil

	case cliparse.DriverMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		st, err := mongostore.Dial(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { st.Close(context.Background()) }, nil
	}
	panic("unreachable: driver validated by cliparse")
}
