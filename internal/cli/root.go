package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/userdir/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the userdir CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit environment
// lookup for testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "userdir",
		Short:         "Browse a remote user directory",
		Long:          "userdir fetches a user directory once, then searches, sorts and pages through it locally.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cacheTTL, _ := cmd.Flags().GetInt("cache-ttl")
			if cacheTTL < 0 {
				return fmt.Errorf("cache-ttl must be >= 0, got %d", cacheTTL)
			}

			if _, err := loadConfig(cmd, lookupEnv); err != nil {
				return err
			}

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file to overlay on ~/.userdir/config.yaml")
	cmd.PersistentFlags().String("source-url", "", "user directory URL (overrides config and USERDIR_SOURCE_URL)")
	cmd.PersistentFlags().
		Int("cache-ttl", 0, "snapshot cache TTL in seconds (0 = use config default)")
	cmd.PersistentFlags().Bool("no-cache", false, "disable the in-memory snapshot cache")

	cmd.AddCommand(NewBrowseCmd(), NewListCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Browse users interactively
  userdir browse

  # Print the second page of users whose name contains "an"
  userdir list --search an --page 2

  # Print every user, Z to A, as JSON
  userdir list --sort name:desc --all --output json

  # Read users from another endpoint
  userdir list --source-url https://example.com/api/users

  # Initialize configuration
  userdir config init

  # Change the default page size
  userdir config set view.page_size 10`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
