package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/userdir/internal/config"
	"github.com/rshade/userdir/internal/engine/cache"
	"github.com/rshade/userdir/internal/source"
	"github.com/rshade/userdir/internal/users"
)

// loadConfig resolves the effective configuration and installs it as the
// global config. Precedence, lowest first: defaults, ~/.userdir/config.yaml,
// the --config overlay, USERDIR_* environment variables, CLI flags.
// Validation is left to the commands that consume the values.
func loadConfig(cmd *cobra.Command, lookupEnv func(string) (string, bool)) (*config.Config, error) {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if overlay, _ := cmd.Flags().GetString("config"); overlay != "" {
		if err = config.ShallowMergeYAML(cfg, overlay); err != nil {
			return nil, err
		}
	}

	if err = cfg.ApplyEnv(lookupEnv); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if url, _ := cmd.Flags().GetString("source-url"); url != "" {
		cfg.Source.URL = url
	}
	if ttl, _ := cmd.Flags().GetInt("cache-ttl"); ttl > 0 {
		cfg.Cache.TTLSeconds = ttl
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}

	config.SetGlobalConfig(cfg)
	return cfg, nil
}

// newFetcher builds the HTTP client for cfg wrapped in the snapshot cache.
func newFetcher(cfg *config.Config, log *zerolog.Logger) (*source.CachedFetcher, error) {
	client, err := source.NewClient(source.Options{
		URL:     cfg.Source.URL,
		Timeout: cfg.Source.Timeout,
		Logger:  log,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring user source: %w", err)
	}

	ttl := cache.DefaultTTLSeconds
	if cfg.Cache.TTLSeconds > 0 {
		ttl = cfg.Cache.TTLSeconds
	}
	store := cache.NewSnapshotCache(cfg.Cache.Enabled, ttl, cfg.Cache.MaxEntries)

	return source.NewCachedFetcher(client, cache.GenerateKey(client.URL()), store, log), nil
}

// newPipeline returns the collation pipeline for cfg's locale.
func newPipeline(cfg *config.Config) (*users.Pipeline, error) {
	tag, err := cfg.LocaleTag()
	if err != nil {
		return nil, err
	}
	return users.NewPipeline(tag), nil
}

// activeConfig returns the validated global config.
func activeConfig() (*config.Config, error) {
	cfg := config.GetGlobalConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
