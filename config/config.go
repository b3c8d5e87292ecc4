// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all runtime configuration for the server. Engine
// tuning (K constants, weights) lives in the factory config document,
// not here; this is the process-level surface only.
type AppConfig struct {
	Addr             string   // listen address, e.g. ":8080"
	AllowedOrigins   []string // CORS origins for browser dashboards
	ComplianceTarget float64  // proactive IG_TOTAL target
	LogLevel         string   // logrus level name
	LogFormat        string   // "text" or "json"
	EngineConfigPath string   // optional JSON tuning document
}

// Load reads configuration from environment variables and a .env file
// if present. Every variable has a default; Load only fails on values
// that are present but unparseable.
func Load() (*AppConfig, error) {
	// godotenv never overrides variables already set in the env.
	_ = godotenv.Load()

	cfg := &AppConfig{
		Addr:             ":8080",
		AllowedOrigins:   []string{"*"},
		ComplianceTarget: 80.0,
		LogLevel:         "info",
		LogFormat:        "text",
	}

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.AllowedOrigins = origins
	}
	if v := os.Getenv("COMPLIANCE_TARGET"); v != "" {
		target, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid COMPLIANCE_TARGET: %w", err)
		}
		if target <= 0 || target > 100 {
			return nil, fmt.Errorf("COMPLIANCE_TARGET must be in (0, 100], got %v", target)
		}
		cfg.ComplianceTarget = target
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	cfg.EngineConfigPath = os.Getenv("ENGINE_CONFIG_PATH")

	return cfg, nil
}
