/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Preventia indicator engine server.
  Handles configuration, engine wiring, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment configuration (.env honored)
  2. Parse command-line flags (flags win over env)
  3. Initialize structured logging
  4. Parse the optional engine tuning document
  5. Create API handler with both engines and the workspace
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -addr     Listen address (default: from LISTEN_ADDR or ":8080")
  -target   Proactive compliance target in percent
  -config   Path to a JSON engine tuning document

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Exit

EXAMPLES:
  # Run with defaults
  ./server

  # Run with a tighter compliance target
  ./server -target=90

  # Run with custom K constants and weights
  ./server -config=./tuning.json

ENVIRONMENT:
  LISTEN_ADDR, CORS_ORIGINS, COMPLIANCE_TARGET, LOG_LEVEL, LOG_FORMAT,
  ENGINE_CONFIG_PATH. A .env file in the working directory is loaded
  first; real environment variables take precedence.

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - factory/config.go: Engine tuning document
*/
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/preventia/indicator-engine/api"
	"github.com/preventia/indicator-engine/config"
	"github.com/preventia/indicator-engine/factory"
	"github.com/preventia/indicator-engine/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags override the environment when set explicitly.
	addr := flag.String("addr", cfg.Addr, "listen address")
	target := flag.Float64("target", cfg.ComplianceTarget, "proactive compliance target in percent")
	configPath := flag.String("config", cfg.EngineConfigPath, "path to a JSON engine tuning document")
	flag.Parse()

	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	logging.Init(cfg.LogLevel, cfg.LogFormat)

	engineCfg := factory.DefaultEngineConfig()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			logging.Log.Fatalf("Failed to read engine config %s: %v", *configPath, err)
		}
		engineCfg, err = factory.ParseEngineConfig(data)
		if err != nil {
			logging.Log.Fatalf("Failed to parse engine config %s: %v", *configPath, err)
		}
		logging.Log.WithField("path", *configPath).Info("Engine tuning loaded")
	} else {
		engineCfg.Target = cfg.ComplianceTarget
	}

	// An explicit -target outranks both the environment and the tuning
	// document; an unset flag must not clobber either.
	if setFlags["target"] {
		if *target <= 0 || *target > 100 {
			logging.Log.Fatalf("-target must be in (0, 100], got %v", *target)
		}
		engineCfg.Target = *target
	}

	handler := api.NewHandler(engineCfg)
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:         *addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Log.WithField("addr", *addr).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logging.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logging.Log.Info("Server stopped")
}
