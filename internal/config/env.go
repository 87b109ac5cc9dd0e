package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rshade/userdir/internal/engine/cache"
)

// Environment variables read by ApplyEnv.
const (
	EnvHome          = "USERDIR_HOME"
	EnvSourceURL     = "USERDIR_SOURCE_URL"
	EnvSourceTimeout = "USERDIR_SOURCE_TIMEOUT"
	EnvPageSize      = "USERDIR_PAGE_SIZE"
	EnvLocale        = "USERDIR_LOCALE"
	EnvLogLevel      = "USERDIR_LOG_LEVEL"
	EnvLogFormat     = "USERDIR_LOG_FORMAT"
	EnvLogFile       = "USERDIR_LOG_FILE"
)

// ApplyEnv overrides config values from the environment. Malformed numeric or
// boolean values are reported and leave the field unchanged.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSourceURL); ok && v != "" {
		c.Source.URL = v
	}
	if v, ok := lookup(EnvSourceTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSourceTimeout, err)
		}
		c.Source.Timeout = d
	}
	if v, ok := lookup(EnvPageSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPageSize, err)
		}
		c.View.PageSize = n
	}
	if v, ok := lookup(EnvLocale); ok && v != "" {
		c.View.Locale = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookup(EnvLogFile); ok && v != "" {
		c.Logging.File = v
	}

	if v, ok := lookup(cache.EnvTTLSeconds); ok && v != "" {
		n, err := cache.ParseTTL(v)
		if err != nil {
			return fmt.Errorf("%s: %w", cache.EnvTTLSeconds, err)
		}
		c.Cache.TTLSeconds = n
	}
	if v, ok := lookup(cache.EnvCacheEnabled); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", cache.EnvCacheEnabled, err)
		}
		c.Cache.Enabled = b
	}
	if v, ok := lookup(cache.EnvMaxEntries); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", cache.EnvMaxEntries, err)
		}
		c.Cache.MaxEntries = n
	}
	return nil
}
