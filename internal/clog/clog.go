// Package clog wraps zap for chronex's CLI layer. Library packages (cronx,
// validate, scheduler) never import this; only the CLI (internal/cmd) builds
// and uses a *zap.Logger. The scheduler's diagnostic-sink fallback is a
// plain func(Event) hook and takes no logger.
package clog

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Bootstrap returns a development-friendly logger for use before config is
// loaded. Safe to call with no arguments at process startup.
func Bootstrap() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// ValidLevels lists the zap levels accepted by Build.
var ValidLevels = []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"}

// IsValidLevel reports whether level names a recognized zap level,
// case-insensitively.
func IsValidLevel(level string) bool {
	level = strings.ToLower(level)
	for _, valid := range ValidLevels {
		if level == valid {
			return true
		}
	}
	return false
}

// Build constructs the CLI's logger. env == "prod" selects a JSON encoder;
// anything else uses the development console encoder. An invalid level
// warns to stderr and falls back to info.
func Build(level, env string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "prod" {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "json"
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if err := cfg.Level.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		_, _ = os.Stderr.WriteString("WARNING: invalid log level \"" + level +
			"\"; valid levels are: debug, info, warn, error, dpanic, panic, fatal. Defaulting to \"info\".\n")
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}

// MustBuild is a convenience for main() that wants to fatal on build
// failure.
func MustBuild(level, env string) *zap.Logger {
	logger, err := Build(level, env)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	return logger
}
