package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/rshade/userdir/internal/engine/cache"
	"github.com/rshade/userdir/internal/pagination"
	"github.com/rshade/userdir/internal/source"
	"github.com/rshade/userdir/internal/users"
)

// Defaults written by New and `config init`.
const (
	CurrentSchemaVersion = "1.0.0"
	supportedSchema      = "^1"

	DefaultLocale        = "en"
	DefaultOutputFormat  = "table"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultCacheTTL      = cache.DefaultTTLSeconds
	DefaultCacheEntries  = cache.DefaultMaxEntries
	configFileName       = "config.yaml"
	logFileName          = "userdir.log"
	outputTypeFile       = "file"
	defaultConfigDirName = ".userdir"
)

// Validation errors returned by Validate.
var (
	ErrInvalidPageSize   = errors.New("view.page_size must be between 1 and 100")
	ErrInvalidSortOrder  = errors.New("view.sort_order must be asc or desc")
	ErrInvalidLocale     = errors.New("view.locale is not a valid BCP 47 tag")
	ErrInvalidSourceURL  = errors.New("source.url must be an absolute http or https URL")
	ErrInvalidTimeout    = errors.New("source.timeout must be positive")
	ErrInvalidCacheTTL   = errors.New("cache.ttl_seconds must be non-negative")
	ErrInvalidOutput     = errors.New("output.default_format must be table, json or ndjson")
	ErrUnsupportedSchema = errors.New("unsupported config schema version")
	ErrInvalidLogLevel   = errors.New("logging.level is not a valid level")
	ErrInvalidLogFormat  = errors.New("logging.format must be json or console")
)

// Config is the userdir configuration file.
type Config struct {
	SchemaVersion string        `yaml:"schema_version" json:"schema_version"`
	Source        SourceConfig  `yaml:"source"         json:"source"`
	View          ViewConfig    `yaml:"view"           json:"view"`
	Output        OutputConfig  `yaml:"output"         json:"output"`
	Cache         CacheConfig   `yaml:"cache"          json:"cache"`
	Logging       LoggingConfig `yaml:"logging"        json:"logging"`

	configPath string
}

// SourceConfig configures the user directory endpoint.
type SourceConfig struct {
	URL     string        `yaml:"url"     json:"url"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// ViewConfig holds the initial query state.
type ViewConfig struct {
	PageSize  int    `yaml:"page_size"  json:"page_size"`
	SortOrder string `yaml:"sort_order" json:"sort_order"`
	Locale    string `yaml:"locale"     json:"locale"`
}

// OutputConfig controls non-interactive output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
}

// CacheConfig controls the in-memory snapshot cache.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"     json:"enabled"`
	TTLSeconds int  `yaml:"ttl_seconds" json:"ttl_seconds"`
	MaxEntries int  `yaml:"max_entries" json:"max_entries"`
}

// LoggingConfig controls log level, encoding and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		SchemaVersion: CurrentSchemaVersion,
		Source: SourceConfig{
			URL:     source.DefaultURL,
			Timeout: source.DefaultTimeout,
		},
		View: ViewConfig{
			PageSize:  pagination.DefaultPageSize,
			SortOrder: users.Ascending.String(),
			Locale:    DefaultLocale,
		},
		Output: OutputConfig{DefaultFormat: DefaultOutputFormat},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: DefaultCacheTTL,
			MaxEntries: DefaultCacheEntries,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load reads path over the defaults. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := New()
	cfg.configPath = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if path == "" {
		path = c.configPath
	}
	if path == "" {
		return errors.New("no config path to save to")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	c.configPath = path
	return nil
}

// Path returns the file the config was loaded from or saved to.
func (c *Config) Path() string {
	return c.configPath
}

// Validate checks every section and returns the first problem.
func (c *Config) Validate() error {
	if err := validateSchema(c.SchemaVersion); err != nil {
		return err
	}
	if err := source.ValidateURL(c.Source.URL); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSourceURL, err)
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidTimeout, c.Source.Timeout)
	}
	if c.View.PageSize < pagination.MinPageSize || c.View.PageSize > pagination.MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.View.PageSize)
	}
	if _, err := users.ParseSortOrder(c.View.SortOrder); err != nil {
		return fmt.Errorf("%w: got %q", ErrInvalidSortOrder, c.View.SortOrder)
	}
	if _, err := c.LocaleTag(); err != nil {
		return err
	}
	switch c.Output.DefaultFormat {
	case "table", "json", "ndjson":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidOutput, c.Output.DefaultFormat)
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCacheTTL, c.Cache.TTLSeconds)
	}
	return c.Logging.Validate()
}

// Validate checks the logging section.
func (lc LoggingConfig) Validate() error {
	switch strings.ToLower(lc.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled", "":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogLevel, lc.Level)
	}
	switch lc.Format {
	case "json", "console", "":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, lc.Format)
	}
	return nil
}

// LocaleTag parses View.Locale.
func (c *Config) LocaleTag() (language.Tag, error) {
	if c.View.Locale == "" {
		return language.English, nil
	}
	tag, err := language.Parse(c.View.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q", ErrInvalidLocale, c.View.Locale)
	}
	return tag, nil
}

// SortOrder parses View.SortOrder, defaulting to ascending.
func (c *Config) SortOrder() users.SortOrder {
	order, err := users.ParseSortOrder(c.View.SortOrder)
	if err != nil {
		return users.Ascending
	}
	return order
}

func validateSchema(version string) error {
	if version == "" {
		return fmt.Errorf("%w: schema_version is empty", ErrUnsupportedSchema)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedSchema, version, err)
	}
	constraint, err := semver.NewConstraint(supportedSchema)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedSchema, version, supportedSchema)
	}
	return nil
}
