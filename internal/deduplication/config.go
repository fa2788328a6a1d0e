package deduplication

import (
	"fmt"
	"os"
	"strconv"
)

// LevelDeduplication is the first platform capability level that ships
// issue deduplication.
const LevelDeduplication = 34

// Config holds configuration for issue deduplication
type Config struct {
	// Enabled turns deduplication on where the platform supports it
	// Default: true
	Enabled bool

	// MinCapabilityLevel is the lowest capability level that has deduplication
	// Below this level issues are only sorted
	// Default: LevelDeduplication
	MinCapabilityLevel int
}

// DefaultConfig returns the default deduplication configuration
func DefaultConfig() Config {
	return Config{
		Enabled:            true,
		MinCapabilityLevel: LevelDeduplication,
	}
}

// Validate checks if the configuration has valid values
func (c Config) Validate() error {
	if c.MinCapabilityLevel < 1 {
		return fmt.Errorf("min_capability_level must be positive (got %d)", c.MinCapabilityLevel)
	}
	if c.MinCapabilityLevel > 1000 {
		return fmt.Errorf("min_capability_level too large (got %d, max 1000)", c.MinCapabilityLevel)
	}
	return nil
}

// String returns a human-readable representation of the config
func (c Config) String() string {
	return fmt.Sprintf("Config{Enabled: %t, MinCapabilityLevel: %d}", c.Enabled, c.MinCapabilityLevel)
}

// Available reports whether deduplication exists at the given capability level.
func (c Config) Available(level int) bool {
	return c.Enabled && level >= c.MinCapabilityLevel
}

// ForCapabilityLevel returns the deduplicator to inject into the issue
// repository, or nil when the capability is absent at level.
func ForCapabilityLevel(level int, cfg Config) Deduplicator {
	if !cfg.Available(level) {
		return nil
	}
	return NewKeyDeduplicator()
}

// ConfigFromEnv creates a Config from environment variables, falling back to defaults
//
// Environment variables:
//   - ISSUEVIEW_DEDUP_ENABLED: Enable deduplication where supported (default: true)
//   - ISSUEVIEW_DEDUP_MIN_LEVEL: Lowest capability level with deduplication (default: 34)
//
// Returns an error if any environment variable has an invalid value.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if err := parseEnvBool("ISSUEVIEW_DEDUP_ENABLED", &cfg.Enabled); err != nil {
		return cfg, err
	}
	if err := parseEnvInt("ISSUEVIEW_DEDUP_MIN_LEVEL", &cfg.MinCapabilityLevel); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration from environment: %w", err)
	}

	return cfg, nil
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

// parseEnvBool parses a bool from an environment variable
func parseEnvBool(key string, dest *bool) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}
