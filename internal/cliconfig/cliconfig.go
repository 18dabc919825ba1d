// Package cliconfig loads cmd/chronex's CLI-wide defaults: viper merges
// built-in defaults, an optional .chronexrc file, and environment
// variables, in that precedence order, following the teacher's
// config-loading convention. root.go calls Load once at startup and lets
// an explicit --tz flag override the result.
package cliconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds CLI-wide defaults read once at startup.
type Config struct {
	Env      string `mapstructure:"env"`       // "dev" | "prod"
	LogLevel string `mapstructure:"log_level"` // debug, info, warn, error, ...

	DefaultTimezone string `mapstructure:"default_timezone"` // IANA zone used when an expression omits TZ=
	OutputFormat    string `mapstructure:"output_format"`    // "table" | "json"
}

func allKeys() []string {
	return []string{"env", "log_level", "default_timezone", "output_format"}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("log_level", "info")
	v.SetDefault("default_timezone", "") // empty means: don't override an expression's own zone
	v.SetDefault("output_format", "table")
}

// Load merges defaults -> .chronexrc.* -> environment, in ascending
// precedence. Command-line flags take precedence over all of it; the
// caller applies that override itself since cobra owns flag parsing.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("cliconfig: loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("CHRONEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for _, k := range allKeys() {
		_ = v.BindEnv(k)
	}

	v.SetConfigName(".chronexrc")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("cliconfig: reading config file: %w", err)
		}
	}

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cliconfig: decoding config: %w", err)
	}
	return &cfg, nil
}
