package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/userdir/internal/config"
	"github.com/rshade/userdir/internal/engine/cache"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Long: `Validates the effective configuration: the config file, the --config overlay,
USERDIR_* environment variables and flags.`,
		Example: `  # Validate current configuration
  userdir config validate

  # Validate and show detailed information
  userdir config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Schema version: %s\n", cfg.SchemaVersion)
	cmd.Printf("  Source: %s (timeout %s)\n", cfg.Source.URL, cfg.Source.Timeout)
	cmd.Printf("  Page size: %d\n", cfg.View.PageSize)
	cmd.Printf("  Sort order: %s\n", cfg.SortOrder().Label())
	cmd.Printf("  Locale: %s\n", cfg.View.Locale)
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	if cfg.Cache.Enabled {
		ttl := cache.FormatDuration(cache.DefaultTTLConfig().Duration)
		if cfg.Cache.TTLSeconds > 0 {
			if tc, err := cache.NewTTLConfig(cfg.Cache.TTLSeconds); err == nil {
				ttl = cache.FormatDuration(tc.Duration)
			}
		}
		cmd.Printf("  Cache: enabled (ttl %s, max %d entries)\n", ttl, cfg.Cache.MaxEntries)
	} else {
		cmd.Printf("  Cache: disabled\n")
	}
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
}
