// Package cmd implements chronex's cobra CLI: validate, next, timeline,
// diff, and stats over expression strings, grounded in the teacher's
// cmd/cronic + internal/cmd cobra layout.
package cmd

import (
	"fmt"
	"strings"

	"github.com/chronex/chronex/internal/cliconfig"
	"github.com/chronex/chronex/internal/clog"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	timezone string // global --tz flag, default locale for expressions lacking TZ=
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "chronex",
	Short: "chronex - cron-expression superset parser and trigger engine",
	Long: `chronex parses a cron-expression superset (Vixie-Cron fields with
L/W/# specials, @every/@once interval forms, TZ= prefixes and {option}
suffixes) and exposes the computed occurrences for inspection from the
command line.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute loads CLI-wide defaults via cliconfig, builds the logger from
// them, and runs the root command, logging any returned error at Warn
// level before cobra prints it, per the teacher's error-handling
// convention. cliconfig.Load runs before cobra parses flags, so an
// explicit --tz on the command line still overrides a configured
// default_timezone: cobra's flag parsing only assigns to timezone when
// --tz is actually present in argv.
func Execute() error {
	cfg, cfgErr := cliconfig.Load()
	if cfgErr != nil {
		logger = clog.Bootstrap()
		logger.Warn("failed to load CLI config, falling back to defaults", zap.Error(cfgErr))
	} else {
		var buildErr error
		logger, buildErr = clog.Build(cfg.LogLevel, cfg.Env)
		if buildErr != nil {
			logger = clog.Bootstrap()
			logger.Warn("failed to build configured logger, falling back to defaults", zap.Error(buildErr))
		}
		if cfg.DefaultTimezone != "" {
			timezone = cfg.DefaultTimezone
		}
	}
	defer func() { _ = logger.Sync() }()

	err := rootCmd.Execute()
	if err != nil {
		logger.Warn("command failed", zap.Error(err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&timezone, "tz", "", "Default IANA timezone for expressions without a TZ= prefix")
}

// DefaultTimezone returns the --tz value, or "" if unset.
func DefaultTimezone() string { return timezone }

// withDefaultTimezone prepends "TZ=<default> " to raw when the caller set
// --tz and raw has no TZ= prefix of its own; an explicit TZ= in raw always
// wins.
func withDefaultTimezone(raw string) string {
	if timezone == "" || strings.HasPrefix(strings.TrimSpace(raw), "TZ=") {
		return raw
	}
	return fmt.Sprintf("TZ=%s %s", timezone, raw)
}

// SetOutput sets the output and error writers for the root command.
func SetOutput(out, err interface{ Write([]byte) (int, error) }) {
	rootCmd.SetOut(out)
	rootCmd.SetErr(err)
}

