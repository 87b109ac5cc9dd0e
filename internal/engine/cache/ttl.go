package cache

import (
	"fmt"
	"strconv"
	"time"
)

// TTL configuration constants and defaults.
const (
	// DefaultTTLSeconds is the default snapshot TTL (5 minutes).
	DefaultTTLSeconds = 300

	// MinTTLSeconds is the minimum allowed TTL.
	MinTTLSeconds = 10

	// MaxTTLSeconds is the maximum allowed TTL (1 day).
	MaxTTLSeconds = 86400

	// DefaultMaxEntries is the default number of snapshots kept.
	DefaultMaxEntries = 16

	// minutesPerHour is used for duration formatting calculations.
	minutesPerHour = 60

	// hoursPerDay is used for duration formatting calculations.
	hoursPerDay = 24

	// EnvTTLSeconds is the environment variable for overriding TTL.
	EnvTTLSeconds = "USERDIR_CACHE_TTL_SECONDS"

	// EnvCacheEnabled is the environment variable for enabling/disabling cache.
	EnvCacheEnabled = "USERDIR_CACHE_ENABLED"

	// EnvMaxEntries is the environment variable for the entry bound.
	EnvMaxEntries = "USERDIR_CACHE_MAX_ENTRIES"
)

// TTL validation errors.
var (
	ErrInvalidTTL = fmt.Errorf("TTL must be between %d and %d seconds", MinTTLSeconds, MaxTTLSeconds)
)

// TTLConfig holds cache TTL configuration with validation.
type TTLConfig struct {
	// Seconds is the TTL duration in seconds.
	Seconds int

	// Duration is the TTL as a time.Duration.
	Duration time.Duration
}

// NewTTLConfig creates a TTL configuration with validation.
func NewTTLConfig(seconds int) (*TTLConfig, error) {
	if err := ValidateTTL(seconds); err != nil {
		return nil, err
	}

	return &TTLConfig{
		Seconds:  seconds,
		Duration: time.Duration(seconds) * time.Second,
	}, nil
}

// DefaultTTLConfig returns the default TTL configuration.
func DefaultTTLConfig() *TTLConfig {
	return &TTLConfig{
		Seconds:  DefaultTTLSeconds,
		Duration: time.Duration(DefaultTTLSeconds) * time.Second,
	}
}

// ValidateTTL returns ErrInvalidTTL when seconds is outside the allowed range.
func ValidateTTL(seconds int) error {
	if seconds < MinTTLSeconds || seconds > MaxTTLSeconds {
		return fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
	}
	return nil
}

// FormatDuration formats a duration in a human-readable way.
// Examples: "45s", "5m", "2h30m", "1d".
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	if d < hoursPerDay*time.Hour {
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % minutesPerHour
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	if hours == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd%dh", days, hours)
}

// ParseTTL parses a TTL given as integer seconds ("300") or a duration ("5m").
func ParseTTL(s string) (int, error) {
	if seconds, err := strconv.Atoi(s); err == nil {
		if validateErr := ValidateTTL(seconds); validateErr != nil {
			return 0, validateErr
		}
		return seconds, nil
	}

	duration, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid TTL format: %w", err)
	}

	seconds := int(duration.Seconds())
	if validateErr := ValidateTTL(seconds); validateErr != nil {
		return 0, validateErr
	}

	return seconds, nil
}
