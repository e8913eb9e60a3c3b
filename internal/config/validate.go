package config

import (
	"errors"
	"fmt"
	"time"
)

// Validation constants define acceptable bounds for configuration values
const (
	minPort = 1
	maxPort = 65535

	// RequestTimeout bounds: the game client enforces its own delivery
	// timeout, so a merge must resolve well inside a heartbeat.
	minRequestTimeout = 50 * time.Millisecond
	maxRequestTimeout = 10 * time.Second

	// SnapshotInterval bounds
	minSnapshotInterval = time.Second
	maxSnapshotInterval = time.Hour
)

// Validate checks if the configuration values are valid and within
// acceptable ranges. It returns all validation errors at once using
// errors.Join for better user experience.
func (c *Config) Validate() error {
	var errs []error

	if c.Host == "" {
		errs = append(errs, fmt.Errorf("GSI_HOST must not be empty"))
	}

	if c.Port < minPort || c.Port > maxPort {
		errs = append(errs, fmt.Errorf(
			"GSI_PORT must be between %d and %d, got %d",
			minPort, maxPort, c.Port,
		))
	}

	if c.StateFile == "" {
		errs = append(errs, fmt.Errorf("STATE_FILE must not be empty"))
	}

	if c.RequestTimeout < minRequestTimeout || c.RequestTimeout > maxRequestTimeout {
		errs = append(errs, fmt.Errorf(
			"REQUEST_TIMEOUT must be between %v and %v, got %v (hint: a few hundred milliseconds keeps merges inside the GSI heartbeat)",
			minRequestTimeout, maxRequestTimeout, c.RequestTimeout,
		))
	}

	if c.SnapshotDB != "" {
		if c.SnapshotInterval < minSnapshotInterval || c.SnapshotInterval > maxSnapshotInterval {
			errs = append(errs, fmt.Errorf(
				"SNAPSHOT_INTERVAL must be between %v and %v, got %v",
				minSnapshotInterval, maxSnapshotInterval, c.SnapshotInterval,
			))
		}
	}

	if err := validateLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %w", errors.Join(errs...))
	}

	return nil
}

func validateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", level)
}
