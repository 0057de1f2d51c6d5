// Cartkeeper is a voice shopping-list daemon that interprets free-form
// sentences into structured add/remove/search commands and applies them to a
// persisted shopping list and product catalog.
//
// Usage:
//
//	cartkeeper [flags]
//	cartkeeper --config /path/to/cartkeeper.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/cartkeeper/cartkeeper/internal/annotate"
	"github.com/cartkeeper/cartkeeper/internal/annotate/spacy"
	"github.com/cartkeeper/cartkeeper/internal/config"
	"github.com/cartkeeper/cartkeeper/internal/health"
	"github.com/cartkeeper/cartkeeper/internal/interpret"
	"github.com/cartkeeper/cartkeeper/internal/language"
	"github.com/cartkeeper/cartkeeper/internal/server"
	"github.com/cartkeeper/cartkeeper/internal/store"
	"github.com/cartkeeper/cartkeeper/internal/suggest"
)

// version is set at build time via ldflags.
var version = "dev"

// @title        cartkeeper API
// @version      1.0
// @description  Voice shopping-list command API: interprets free-form utterances into structured add/remove/search commands.
// @BasePath     /

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "path to config file (e.g. configs/cartkeeper.yaml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("cartkeeper %s\n", version)
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging.
	config.SetupLogging(cfg.Logging)
	slog.Info("cartkeeper starting", "version", version)

	// Create root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize the annotator backend.
	var annotator annotate.Annotator
	switch cfg.Annotator.Backend {
	case "spacy":
		annotator = spacy.New(cfg.Annotator.SpaCy)
		slog.Info("using spaCy annotator",
			"endpoint", cfg.Annotator.SpaCy.Endpoint,
			"per_language_endpoints", len(cfg.Annotator.SpaCy.Endpoints))
	default:
		slog.Error("unknown annotator backend", "backend", cfg.Annotator.Backend)
		os.Exit(1)
	}
	defer annotator.Close()

	// Open the store and seed the product catalog on first run.
	st, err := store.New(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to open store", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.SeedCatalog(ctx); err != nil {
		slog.Error("failed to seed product catalog", "error", err)
		os.Exit(1)
	}

	// Build the interpretation engine and the classification tables.
	registry := language.NewRegistry(cfg.Languages)
	engine := interpret.New(registry, annotator)
	tables := suggest.NewTables(cfg.Tables)
	slog.Info("interpretation engine ready", "languages", registry.Codes())

	// Start health check server.
	healthServer := health.New(cfg.Server.HealthPort)
	go func() {
		if err := healthServer.ListenAndServe(ctx); err != nil {
			slog.Error("health server failed", "error", err)
		}
	}()

	// Start the API server.
	apiServer := server.New(cfg.Server.Port, engine, st, tables)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := apiServer.Listen(ctx); err != nil {
			slog.Error("api server failed", "error", err)
			cancel()
		}
	}()

	healthServer.SetReady(true)
	slog.Info("cartkeeper ready",
		"port", cfg.Server.Port,
		"health_port", cfg.Server.HealthPort)

	// Block until shutdown signal.
	<-ctx.Done()
	slog.Info("shutdown signal received, draining...")

	if err := apiServer.Close(); err != nil {
		slog.Error("api server close error", "error", err)
	}

	wg.Wait()
	slog.Info("cartkeeper stopped")
}
