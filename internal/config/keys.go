package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ErrUnknownKey is returned by Get and Set for keys outside Keys().
var ErrUnknownKey = errors.New("unknown config key")

type keyAccessor struct {
	get func(*Config) string
	set func(*Config, string) error
}

//nolint:gochecknoglobals // static lookup table
var accessors = map[string]keyAccessor{
	"schema_version": {
		get: func(c *Config) string { return c.SchemaVersion },
		set: func(c *Config, v string) error { c.SchemaVersion = v; return nil },
	},
	"source.url": {
		get: func(c *Config) string { return c.Source.URL },
		set: func(c *Config, v string) error { c.Source.URL = v; return nil },
	},
	"source.timeout": {
		get: func(c *Config) string { return c.Source.Timeout.String() },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return err
			}
			c.Source.Timeout = d
			return nil
		},
	},
	"view.page_size": {
		get: func(c *Config) string { return strconv.Itoa(c.View.PageSize) },
		set: intSetter(func(c *Config, n int) { c.View.PageSize = n }),
	},
	"view.sort_order": {
		get: func(c *Config) string { return c.View.SortOrder },
		set: func(c *Config, v string) error { c.View.SortOrder = v; return nil },
	},
	"view.locale": {
		get: func(c *Config) string { return c.View.Locale },
		set: func(c *Config, v string) error { c.View.Locale = v; return nil },
	},
	"output.default_format": {
		get: func(c *Config) string { return c.Output.DefaultFormat },
		set: func(c *Config, v string) error { c.Output.DefaultFormat = v; return nil },
	},
	"cache.enabled": {
		get: func(c *Config) string { return strconv.FormatBool(c.Cache.Enabled) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			c.Cache.Enabled = b
			return nil
		},
	},
	"cache.ttl_seconds": {
		get: func(c *Config) string { return strconv.Itoa(c.Cache.TTLSeconds) },
		set: intSetter(func(c *Config, n int) { c.Cache.TTLSeconds = n }),
	},
	"cache.max_entries": {
		get: func(c *Config) string { return strconv.Itoa(c.Cache.MaxEntries) },
		set: intSetter(func(c *Config, n int) { c.Cache.MaxEntries = n }),
	},
	"logging.level": {
		get: func(c *Config) string { return c.Logging.Level },
		set: func(c *Config, v string) error { c.Logging.Level = v; return nil },
	},
	"logging.format": {
		get: func(c *Config) string { return c.Logging.Format },
		set: func(c *Config, v string) error { c.Logging.Format = v; return nil },
	},
	"logging.file": {
		get: func(c *Config) string { return c.Logging.File },
		set: func(c *Config, v string) error { c.Logging.File = v; return nil },
	},
}

func intSetter(apply func(*Config, int)) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		apply(c, n)
		return nil
	}
}

// Keys returns every dotted key accepted by Get and Set, sorted.
func Keys() []string {
	keys := make([]string, 0, len(accessors))
	for k := range accessors {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Get returns the value at a dotted key such as "view.page_size".
func (c *Config) Get(key string) (string, error) {
	acc, ok := accessors[strings.ToLower(key)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return acc.get(c), nil
}

// Set parses value into the dotted key and validates the result. On a
// validation failure the previous value is restored.
func (c *Config) Set(key, value string) error {
	acc, ok := accessors[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	previous := acc.get(c)
	if err := acc.set(c, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	if err := c.Validate(); err != nil {
		_ = acc.set(c, previous)
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}
