package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/rshade/userdir/internal/source"
	"github.com/rshade/userdir/internal/users"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, CurrentSchemaVersion, cfg.SchemaVersion)
	assert.Equal(t, source.DefaultURL, cfg.Source.URL)
	assert.Equal(t, source.DefaultTimeout, cfg.Source.Timeout)
	assert.Equal(t, 5, cfg.View.PageSize)
	assert.Equal(t, "asc", cfg.View.SortOrder)
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, DefaultCacheTTL, cfg.Cache.TTLSeconds)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, New().View, cfg.View)
	assert.Equal(t, path, cfg.Path())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
view:
  page_size: 10
source:
  timeout: 3s
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.View.PageSize)
	assert.Equal(t, "asc", cfg.View.SortOrder)
	assert.Equal(t, 3*time.Second, cfg.Source.Timeout)
	assert.Equal(t, source.DefaultURL, cfg.Source.URL)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view: [unterminated"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := New()
	cfg.View.SortOrder = "desc"
	cfg.Source.Timeout = 2500 * time.Millisecond
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "desc", loaded.View.SortOrder)
	assert.Equal(t, 2500*time.Millisecond, loaded.Source.Timeout)
	assert.Equal(t, users.Descending, loaded.SortOrder())
}

func TestSave_NoPath(t *testing.T) {
	require.Error(t, New().Save(""))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"empty schema", func(c *Config) { c.SchemaVersion = "" }, ErrUnsupportedSchema},
		{"future schema", func(c *Config) { c.SchemaVersion = "2.0.0" }, ErrUnsupportedSchema},
		{"garbage schema", func(c *Config) { c.SchemaVersion = "one" }, ErrUnsupportedSchema},
		{"relative url", func(c *Config) { c.Source.URL = "users.json" }, ErrInvalidSourceURL},
		{"zero timeout", func(c *Config) { c.Source.Timeout = 0 }, ErrInvalidTimeout},
		{"zero page size", func(c *Config) { c.View.PageSize = 0 }, ErrInvalidPageSize},
		{"huge page size", func(c *Config) { c.View.PageSize = 1000 }, ErrInvalidPageSize},
		{"bad sort", func(c *Config) { c.View.SortOrder = "sideways" }, ErrInvalidSortOrder},
		{"bad locale", func(c *Config) { c.View.Locale = "not a locale!" }, ErrInvalidLocale},
		{"bad output", func(c *Config) { c.Output.DefaultFormat = "xml" }, ErrInvalidOutput},
		{"negative ttl", func(c *Config) { c.Cache.TTLSeconds = -1 }, ErrInvalidCacheTTL},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, ErrInvalidLogLevel},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}

	t.Run("minor schema bump", func(t *testing.T) {
		cfg := New()
		cfg.SchemaVersion = "1.3.0"
		assert.NoError(t, cfg.Validate())
	})
}

func TestLocaleTag(t *testing.T) {
	cfg := New()
	cfg.View.Locale = "sv-SE"
	tag, err := cfg.LocaleTag()
	require.NoError(t, err)
	assert.Equal(t, language.MustParse("sv-SE"), tag)

	cfg.View.Locale = ""
	tag, err = cfg.LocaleTag()
	require.NoError(t, err)
	assert.Equal(t, language.English, tag)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvSourceURL:                "https://example.com/people",
		EnvSourceTimeout:            "4s",
		EnvPageSize:                 "8",
		EnvLocale:                   "de",
		EnvLogLevel:                 "debug",
		"USERDIR_CACHE_TTL_SECONDS": "2m",
		"USERDIR_CACHE_ENABLED":     "false",
		"USERDIR_CACHE_MAX_ENTRIES": "3",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := New()
	require.NoError(t, cfg.ApplyEnv(lookup))

	assert.Equal(t, "https://example.com/people", cfg.Source.URL)
	assert.Equal(t, 4*time.Second, cfg.Source.Timeout)
	assert.Equal(t, 8, cfg.View.PageSize)
	assert.Equal(t, "de", cfg.View.Locale)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 120, cfg.Cache.TTLSeconds)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 3, cfg.Cache.MaxEntries)
}

func TestApplyEnv_Malformed(t *testing.T) {
	tests := map[string]string{
		EnvSourceTimeout:        "soon",
		EnvPageSize:             "five",
		"USERDIR_CACHE_ENABLED": "maybe",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			cfg := New()
			err := cfg.ApplyEnv(func(k string) (string, bool) {
				if k == key {
					return value, true
				}
				return "", false
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestGetSet(t *testing.T) {
	cfg := New()

	v, err := cfg.Get("view.page_size")
	require.NoError(t, err)
	assert.Equal(t, "5", v)

	require.NoError(t, cfg.Set("view.page_size", "7"))
	assert.Equal(t, 7, cfg.View.PageSize)

	require.NoError(t, cfg.Set("source.timeout", "1m"))
	v, err = cfg.Get("source.timeout")
	require.NoError(t, err)
	assert.Equal(t, "1m0s", v)

	require.NoError(t, cfg.Set("cache.enabled", "false"))
	assert.False(t, cfg.Cache.Enabled)
}

func TestSet_Rejects(t *testing.T) {
	cfg := New()

	require.ErrorIs(t, cfg.Set("view.colour", "blue"), ErrUnknownKey)
	_, err := cfg.Get("nope")
	require.ErrorIs(t, err, ErrUnknownKey)

	require.Error(t, cfg.Set("view.page_size", "many"))
	assert.Equal(t, 5, cfg.View.PageSize)

	require.ErrorIs(t, cfg.Set("view.page_size", "0"), ErrInvalidPageSize)
	assert.Equal(t, 5, cfg.View.PageSize, "invalid value is rolled back")
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "view.page_size")
	assert.Contains(t, keys, "source.url")
	assert.IsIncreasing(t, keys)

	cfg := New()
	for _, k := range keys {
		_, err := cfg.Get(k)
		assert.NoError(t, err, k)
	}
}
