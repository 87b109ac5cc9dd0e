package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalConfig(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := GetGlobalConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
	assert.Same(t, cfg, GetGlobalConfig())

	ResetGlobalConfigForTest()
	assert.NotSame(t, cfg, GetGlobalConfig())
}

func TestGlobalConfig_LoadsFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	saved := New()
	saved.View.PageSize = 12
	require.NoError(t, saved.Save(filepath.Join(home, "config.yaml")))

	assert.Equal(t, 12, GetGlobalConfig().View.PageSize)
}

func TestSetGlobalConfig(t *testing.T) {
	t.Cleanup(ResetGlobalConfigForTest)

	custom := New()
	custom.Logging.Level = "warn"
	SetGlobalConfig(custom)

	assert.Same(t, custom, GetGlobalConfig())
	assert.Equal(t, "warn", GetLoggingConfig().Level)
}

func TestConfigPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, home, dir)

	path, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.yaml"), path)

	logPath, err := DefaultLogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "userdir.log"), logPath)

	require.NoError(t, EnsureConfigDir())
	require.NoError(t, EnsureLogDir(filepath.Join(home, "logs", "x.log")))
	assert.DirExists(t, filepath.Join(home, "logs"))
	assert.NoError(t, EnsureLogDir(""))
}

func TestToLoggingConfig(t *testing.T) {
	lc := LoggingConfig{Level: "debug", Format: "json"}
	out := lc.ToLoggingConfig()
	assert.Equal(t, "stderr", out.Output)
	assert.Equal(t, "debug", out.Level)

	lc.File = "/tmp/userdir.log"
	out = lc.ToLoggingConfig()
	assert.Equal(t, "file", out.Output)
	assert.Equal(t, "/tmp/userdir.log", out.File)
}
