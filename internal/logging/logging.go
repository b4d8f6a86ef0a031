// Package logging builds the zap loggers used by the CLI and the HTTP server.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// New returns a logger for env: "production" logs JSON, "quiet" discards
// everything, anything else gets the human-readable development encoder.
// level is one of debug, info, warn, error; empty means info.
func New(env, level string) (*zap.Logger, error) {
	if env == "quiet" {
		return zap.NewNop(), nil
	}

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	switch strings.ToLower(level) {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "", "info":
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	// Diagnostics go to stderr so stdout stays clean for exported data.
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
