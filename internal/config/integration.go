package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	globalConfig     *Config      //nolint:gochecknoglobals // process-wide configuration
	globalConfigMu   sync.RWMutex //nolint:gochecknoglobals // guards globalConfig
	globalConfigInit bool         //nolint:gochecknoglobals // tracks lazy initialization
)

// InitGlobalConfig loads the default config file into the global instance.
// A file that cannot be read or parsed leaves the defaults in place.
func InitGlobalConfig() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	if globalConfigInit {
		return
	}

	cfg := New()
	if path, err := DefaultConfigPath(); err == nil {
		if loaded, loadErr := Load(path); loadErr == nil {
			cfg = loaded
		}
	}
	globalConfig = cfg
	globalConfigInit = true
}

// SetGlobalConfig replaces the global instance.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	globalConfig = cfg
	globalConfigInit = cfg != nil
}

// ResetGlobalConfigForTest resets the global config for testing purposes.
func ResetGlobalConfigForTest() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	globalConfig = nil
	globalConfigInit = false
}

// GetGlobalConfig returns the global configuration, initializing it if needed.
func GetGlobalConfig() *Config {
	InitGlobalConfig()

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// GetConfigDir returns the userdir configuration directory: $USERDIR_HOME or ~/.userdir.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, defaultConfigDirName), nil
}

// DefaultConfigPath returns the config file inside GetConfigDir.
func DefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// DefaultLogPath returns the log file used when the TUI forces file logging.
func DefaultLogPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, logFileName), nil
}

// EnsureConfigDir creates the configuration directory.
func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

// EnsureLogDir creates the parent directory of the configured log file.
func EnsureLogDir(path string) error {
	if path == "" {
		return nil
	}
	logDir := filepath.Dir(path)
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}
	return nil
}
