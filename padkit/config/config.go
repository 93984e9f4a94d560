// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/valerio/go-padkit/padkit/source"
)

// Config is the environment-driven runtime configuration used by the
// entrypoints.
type Config struct {
	BindingDir        string `env:"PADKIT_BINDING_DIR" envDefault:"bindings"`
	DataDir           string `env:"PADKIT_DATA_DIR" envDefault:"."`
	Platform          string `env:"PADKIT_PLATFORM" envDefault:"desktop"`
	PurgeOnDisconnect bool   `env:"PADKIT_PURGE_ON_DISCONNECT" envDefault:"false"`
	LogLevel          string `env:"PADKIT_LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from the process environment.
func Load() (Config, error) {
	return env.ParseAs[Config]()
}

// PlatformValue resolves the platform string into its capability
// profile.
func (c Config) PlatformValue() (source.Platform, error) {
	switch c.Platform {
	case "desktop":
		return source.PlatformDesktop, nil
	case "mobile":
		return source.PlatformMobile, nil
	case "tv":
		return source.PlatformTV, nil
	case "console":
		return source.PlatformConsole, nil
	}
	return source.PlatformDesktop, fmt.Errorf("unknown platform %q", c.Platform)
}

// SlogLevel maps the configured log level onto slog's levels, falling
// back to Info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
