/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the venture simulation server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load YAML configuration
  3. Build the zap logger
  4. Open the SQLite submission archive
  5. Register scenarios (presets + optional JSON document)
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  Configuration file path (default: config.yml)
  -port    Override the configured HTTP port (0 = use config)
  -db      Override the configured database path
           Use ":memory:" for an in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (configurable timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with a config file
  ./server -config=./config.yml

  # Run with an in-memory archive on another port
  ./server -config=./config.yml -db=":memory:" -port=3000

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Configuration schema
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kopi/venture-engine/api"
	"github.com/kopi/venture-engine/config"
	"github.com/kopi/venture-engine/engine"
	"github.com/kopi/venture-engine/notify"
	"github.com/kopi/venture-engine/scenario"
	"github.com/kopi/venture-engine/store/sqlite"
)

func main() {
	configPath := flag.String("config", "config.yml", "configuration file path")
	port := flag.Int("port", 0, "override configured HTTP port")
	dbPath := flag.String("db", "", "override configured SQLite database path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	logger, err := buildLogger(cfg.Logging.Level, cfg.Logging.Encoding)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to open submission archive", zap.Error(err))
	}
	defer store.Close()

	scenarios, err := loadScenarios(cfg)
	if err != nil {
		logger.Fatal("failed to load scenarios", zap.Error(err))
	}

	var notifier notify.Notifier = notify.Discard{}
	if cfg.SMTP.Enabled {
		notifier = notify.NewMailer(notify.SMTPConfig{
			Host:          cfg.SMTP.Host,
			Port:          cfg.SMTP.Port,
			Username:      cfg.SMTP.Username,
			Password:      cfg.SMTP.Password,
			From:          cfg.SMTP.From,
			OperatorEmail: cfg.SMTP.OperatorEmail,
		})
	}

	handler := api.NewHandler(store, notifier, logger, scenarios)
	if !handler.SetDefaultScenario(cfg.Scenario.Default) {
		logger.Fatal("default scenario is not registered",
			zap.String("scenario", cfg.Scenario.Default))
	}

	router := api.NewRouter(handler, cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			zap.Int("port", cfg.Server.Port),
			zap.String("scenario", cfg.Scenario.Default),
			zap.Bool("smtp", cfg.SMTP.Enabled))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownSeconds)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

func buildLogger(level, encoding string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if err := zc.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	switch encoding {
	case "json", "console":
		zc.Encoding = encoding
	default:
		return nil, fmt.Errorf("invalid log encoding %q", encoding)
	}
	return zc.Build()
}

// loadScenarios registers the built-in presets plus, when configured, a
// JSON scenario document.
func loadScenarios(cfg *config.Configuration) ([]engine.Parameters, error) {
	scenarios := scenario.All()
	if cfg.Scenario.File == "" {
		return scenarios, nil
	}

	doc, err := os.ReadFile(cfg.Scenario.File)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}
	extra, err := scenario.ParseParameters(string(doc))
	if err != nil {
		return nil, fmt.Errorf("parse scenario file %s: %w", cfg.Scenario.File, err)
	}
	return append(scenarios, extra), nil
}
