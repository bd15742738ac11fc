// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/givewise/cliparse"
	"github.com/danielhkuo/givewise/db"
	"github.com/danielhkuo/givewise/governance"
	"github.com/danielhkuo/givewise/notify"
	"github.com/danielhkuo/givewise/router"
)

func main() {
	var err error

	// Load .env if present (secrets for development)
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	driver := "postgres"
	if cfg.DatabaseType == "sqlite" {
		driver = "sqlite"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// SQLite allows a single writer; serialize connections instead of
	// surfacing SQLITE_BUSY to the vote path.
	if cfg.DatabaseType == "sqlite" {
		dbConn.SetMaxOpenConns(1)
	}

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Metrics registry
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector())

	// Notification fan-out (fire-and-forget)
	bus := notify.NewBus()
	defer bus.Stop()
	if cfg.WebhookURL != "" {
		webhook := notify.NewWebhookSubscriber(cfg.WebhookURL)
		bus.Subscribe(notify.EventType(governance.EventVoteAccepted), webhook)
		bus.Subscribe(notify.EventType(governance.EventCampaignFinalized), webhook)
		bus.Subscribe(notify.EventType(governance.EventAdminDecision), webhook)
		slog.Info("notification webhook registered", "url", cfg.WebhookURL)
	}

	// Voting coordinator
	coord := governance.NewCoordinator(dbConn, bus, promRegistry)

	// Create router
	mux := router.NewRouter(dbConn, cfg, coord, promRegistry)

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
