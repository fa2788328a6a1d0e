package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/steveyegge/issueview/internal/deduplication"
)

// DefaultCapabilityLevel is the capability level assumed when none is configured.
const DefaultCapabilityLevel = deduplication.LevelDeduplication

// Config holds runtime configuration for the issue view service
type Config struct {
	// CapabilityLevel is the platform capability level the service runs at
	// Optional capabilities (deduplication) are gated on it when the
	// repository is built
	// Default: 34
	CapabilityLevel int

	// Dedup configures issue deduplication
	Dedup deduplication.Config

	// SourcesFile is the YAML file describing source groups and sources
	SourcesFile string

	// DataFile is the YAML snapshot of last-reported source data
	DataFile string

	// UsersFile is the YAML file describing users and managed profiles
	UsersFile string

	// LogLevel is one of debug, info, warn, error
	// Default: info
	LogLevel string
}

// DefaultConfig returns the default runtime configuration
func DefaultConfig() Config {
	return Config{
		CapabilityLevel: DefaultCapabilityLevel,
		Dedup:           deduplication.DefaultConfig(),
		LogLevel:        "info",
	}
}

// Validate checks if the configuration has valid values
func (c Config) Validate() error {
	if c.CapabilityLevel < 1 || c.CapabilityLevel > 1000 {
		return fmt.Errorf("capability_level must be between 1 and 1000 (got %d)", c.CapabilityLevel)
	}
	if err := c.Dedup.Validate(); err != nil {
		return fmt.Errorf("dedup: %w", err)
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// String returns a human-readable representation of the config
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{CapabilityLevel: %d, Dedup: %s, SourcesFile: %q, DataFile: %q, UsersFile: %q, LogLevel: %s}",
		c.CapabilityLevel, c.Dedup, c.SourcesFile, c.DataFile, c.UsersFile, c.LogLevel,
	)
}

// SlogLevel returns the configured log level. Invalid levels map to info.
func (c Config) SlogLevel() slog.Level {
	level, err := parseLogLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// DeduplicationAvailable reports whether deduplication runs at the configured level.
func (c Config) DeduplicationAvailable() bool {
	return c.Dedup.Available(c.CapabilityLevel)
}

// ConfigFromEnv creates a Config from environment variables, falling back to defaults
//
// Environment variables:
//   - ISSUEVIEW_CAPABILITY_LEVEL: Platform capability level (default: 34)
//   - ISSUEVIEW_DEDUP_ENABLED: Enable deduplication where supported (default: true)
//   - ISSUEVIEW_DEDUP_MIN_LEVEL: Lowest capability level with deduplication (default: 34)
//   - ISSUEVIEW_SOURCES_FILE: Source configuration file (default: none)
//   - ISSUEVIEW_DATA_FILE: Source data snapshot file (default: none)
//   - ISSUEVIEW_USERS_FILE: Users and profiles file (default: none)
//   - ISSUEVIEW_LOG_LEVEL: debug, info, warn or error (default: info)
//
// Returns an error if any environment variable has an invalid value.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	dedup, err := deduplication.ConfigFromEnv()
	if err != nil {
		return cfg, err
	}
	cfg.Dedup = dedup

	if err := parseEnvInt("ISSUEVIEW_CAPABILITY_LEVEL", &cfg.CapabilityLevel); err != nil {
		return cfg, err
	}
	if err := parseEnvString("ISSUEVIEW_SOURCES_FILE", &cfg.SourcesFile); err != nil {
		return cfg, err
	}
	if err := parseEnvString("ISSUEVIEW_DATA_FILE", &cfg.DataFile); err != nil {
		return cfg, err
	}
	if err := parseEnvString("ISSUEVIEW_USERS_FILE", &cfg.UsersFile); err != nil {
		return cfg, err
	}
	if err := parseEnvString("ISSUEVIEW_LOG_LEVEL", &cfg.LogLevel); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration from environment: %w", err)
	}

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log_level must be debug, info, warn or error (got %q)", s)
}

// parseEnvInt parses an int from an environment variable
func parseEnvInt(key string, dest *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

// parseEnvString parses a string from an environment variable
func parseEnvString(key string, dest *string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	*dest = value
	return nil
}
