// Package config provides layered configuration loading.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/praxable/praxable-cli/internal/constants"
	"github.com/praxable/praxable-cli/internal/logger"
	"github.com/praxable/praxable-cli/internal/utils"
)

// Config holds the resolved configuration.
type Config struct {
	// Backend settings
	BaseURL string        `yaml:"api_base_url"`
	Timeout time.Duration `yaml:"request_timeout"`

	// Client policies
	IncludeUndated      bool                          `yaml:"include_undated"`
	SummaryEmoji        bool                          `yaml:"summary_emoji"`
	TimePreference      constants.TimePreferenceMode  `yaml:"time_preference"`
	RecommendationOrder constants.RecommendationOrder `yaml:"recommendation_order"`
	AgendaOrder         constants.AgendaOrder         `yaml:"agenda_order"`
	Timezone            string                        `yaml:"timezone"`

	// Local state
	Journal string `yaml:"journal"` // sqlite path or postgres:// DSN
	Debug   bool   `yaml:"debug"`

	// ConfigDir holds the config file, logs and the default journal.
	ConfigDir string `yaml:"-"`

	// Sources tracks where each value came from (for debugging).
	Sources map[string]Source `yaml:"-"`
}

// fileConfig mirrors Config with optional fields so unset keys keep the
// lower layer's value.
type fileConfig struct {
	BaseURL             *string `yaml:"api_base_url"`
	Timeout             *string `yaml:"request_timeout"`
	IncludeUndated      *bool   `yaml:"include_undated"`
	SummaryEmoji        *bool   `yaml:"summary_emoji"`
	TimePreference      *string `yaml:"time_preference"`
	RecommendationOrder *string `yaml:"recommendation_order"`
	AgendaOrder         *string `yaml:"agenda_order"`
	Timezone            *string `yaml:"timezone"`
	Journal             *string `yaml:"journal"`
	Debug               *bool   `yaml:"debug"`
}

// Source indicates where a config value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceFile    Source = "file"
	SourceEnv     Source = "env"
	SourceFlag    Source = "flag"
)

// Environment variables read by LoadFromEnv.
const (
	EnvBaseURL             = "PRAXABLE_API_BASE_URL"
	EnvTimeout             = "PRAXABLE_REQUEST_TIMEOUT"
	EnvIncludeUndated      = "PRAXABLE_INCLUDE_UNDATED"
	EnvSummaryEmoji        = "PRAXABLE_SUMMARY_EMOJI"
	EnvTimePreference      = "PRAXABLE_TIME_PREFERENCE"
	EnvRecommendationOrder = "PRAXABLE_RECOMMENDATION_ORDER"
	EnvAgendaOrder         = "PRAXABLE_AGENDA_ORDER"
	EnvTimezone            = "PRAXABLE_TIMEZONE"
	EnvJournal             = "PRAXABLE_JOURNAL"
	EnvDebug               = "PRAXABLE_DEBUG"
	EnvLLMAPIKey           = "PRAXABLE_LLM_API_KEY"
)

// Keys lists the settable keys in display order.
var Keys = []string{
	"api_base_url",
	"request_timeout",
	"include_undated",
	"summary_emoji",
	"time_preference",
	"recommendation_order",
	"agenda_order",
	"timezone",
	"journal",
	"debug",
}

// FlagOverrides holds command-line flag values. Nil means not given.
type FlagOverrides struct {
	BaseURL  *string
	Timezone *string
	Journal  *string
	Debug    *bool
}

// Default returns the default configuration rooted at configDir.
func Default(configDir string) *Config {
	cfg := &Config{
		BaseURL:             constants.DefaultBaseURL,
		Timeout:             constants.DefaultRequestTimeout,
		IncludeUndated:      false,
		SummaryEmoji:        true,
		TimePreference:      constants.TimePreferenceAuto,
		RecommendationOrder: constants.RecommendationOrderBackend,
		AgendaOrder:         constants.AgendaSectioned,
		Timezone:            "Local",
		Journal:             filepath.Join(configDir, constants.DefaultJournalFile),
		ConfigDir:           configDir,
		Sources:             make(map[string]Source),
	}
	for _, k := range Keys {
		cfg.Sources[k] = SourceDefault
	}
	return cfg
}

// DefaultConfigDir returns the expanded default config directory.
func DefaultConfigDir() string {
	return ExpandHome(constants.DefaultConfigDir)
}

// Path returns the config file path inside configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, constants.ConfigFileName)
}

// Load loads configuration from all sources with proper precedence.
// Precedence: flags > env > file > defaults
func Load(configDir string, overrides FlagOverrides) (*Config, error) {
	configDir = ExpandHome(configDir)
	cfg := Default(configDir)

	if err := LoadFromFile(cfg, Path(configDir)); err != nil {
		return nil, err
	}
	if err := LoadFromEnv(cfg); err != nil {
		return nil, err
	}
	ApplyOverrides(cfg, overrides)

	cfg.Journal = ExpandHome(cfg.Journal)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile merges a YAML config file into cfg. A missing file is not an error.
func LoadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config location
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No config file found", "path", path)
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	if fc.BaseURL != nil {
		cfg.set("api_base_url", *fc.BaseURL, SourceFile)
	}
	if fc.Timeout != nil {
		if err := cfg.Set("request_timeout", *fc.Timeout); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
		cfg.Sources["request_timeout"] = SourceFile
	}
	if fc.IncludeUndated != nil {
		cfg.IncludeUndated = *fc.IncludeUndated
		cfg.Sources["include_undated"] = SourceFile
	}
	if fc.SummaryEmoji != nil {
		cfg.SummaryEmoji = *fc.SummaryEmoji
		cfg.Sources["summary_emoji"] = SourceFile
	}
	if fc.TimePreference != nil {
		cfg.set("time_preference", *fc.TimePreference, SourceFile)
	}
	if fc.RecommendationOrder != nil {
		cfg.set("recommendation_order", *fc.RecommendationOrder, SourceFile)
	}
	if fc.AgendaOrder != nil {
		cfg.set("agenda_order", *fc.AgendaOrder, SourceFile)
	}
	if fc.Timezone != nil {
		cfg.set("timezone", *fc.Timezone, SourceFile)
	}
	if fc.Journal != nil {
		cfg.set("journal", *fc.Journal, SourceFile)
	}
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
		cfg.Sources["debug"] = SourceFile
	}
	return nil
}

// LoadFromEnv loads configuration from PRAXABLE_* environment variables.
func LoadFromEnv(cfg *Config) error {
	envs := []struct {
		key string
		env string
	}{
		{"api_base_url", EnvBaseURL},
		{"request_timeout", EnvTimeout},
		{"include_undated", EnvIncludeUndated},
		{"summary_emoji", EnvSummaryEmoji},
		{"time_preference", EnvTimePreference},
		{"recommendation_order", EnvRecommendationOrder},
		{"agenda_order", EnvAgendaOrder},
		{"timezone", EnvTimezone},
		{"journal", EnvJournal},
		{"debug", EnvDebug},
	}
	for _, e := range envs {
		v := os.Getenv(e.env)
		if v == "" {
			continue
		}
		if err := cfg.Set(e.key, v); err != nil {
			return fmt.Errorf("%s: %w", e.env, err)
		}
		cfg.Sources[e.key] = SourceEnv
	}
	return nil
}

// ApplyOverrides applies command-line flag overrides.
func ApplyOverrides(cfg *Config, o FlagOverrides) {
	if o.BaseURL != nil && *o.BaseURL != "" {
		cfg.set("api_base_url", *o.BaseURL, SourceFlag)
	}
	if o.Timezone != nil && *o.Timezone != "" {
		cfg.set("timezone", *o.Timezone, SourceFlag)
	}
	if o.Journal != nil && *o.Journal != "" {
		cfg.set("journal", *o.Journal, SourceFlag)
	}
	if o.Debug != nil && *o.Debug {
		cfg.Debug = true
		cfg.Sources["debug"] = SourceFlag
	}
}

// set assigns a string-typed key and records its source.
func (c *Config) set(key, value string, source Source) {
	_ = c.Set(key, value)
	c.Sources[key] = source
}

// Set assigns key from its string form. Enum and URL values are checked by Validate.
func (c *Config) Set(key, value string) error {
	switch key {
	case "api_base_url":
		c.BaseURL = strings.TrimRight(value, "/")
	case "request_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid request_timeout %q: %w", value, err)
		}
		c.Timeout = d
	case "include_undated":
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		c.IncludeUndated = b
	case "summary_emoji":
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		c.SummaryEmoji = b
	case "time_preference":
		c.TimePreference = constants.TimePreferenceMode(value)
	case "recommendation_order":
		c.RecommendationOrder = constants.RecommendationOrder(value)
	case "agenda_order":
		c.AgendaOrder = constants.AgendaOrder(value)
	case "timezone":
		c.Timezone = value
	case "journal":
		c.Journal = value
	case "debug":
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		c.Debug = b
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

// Get returns the string form of key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_base_url":
		return c.BaseURL, nil
	case "request_timeout":
		return c.Timeout.String(), nil
	case "include_undated":
		return strconv.FormatBool(c.IncludeUndated), nil
	case "summary_emoji":
		return strconv.FormatBool(c.SummaryEmoji), nil
	case "time_preference":
		return string(c.TimePreference), nil
	case "recommendation_order":
		return string(c.RecommendationOrder), nil
	case "agenda_order":
		return string(c.AgendaOrder), nil
	case "timezone":
		return c.Timezone, nil
	case "journal":
		return RedactDSN(c.Journal), nil
	case "debug":
		return strconv.FormatBool(c.Debug), nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// Validate checks enum values, the base URL and the timezone.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api_base_url %q: must be an http(s) URL", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid request_timeout %s: must be positive", c.Timeout)
	}
	switch c.TimePreference {
	case constants.TimePreferenceAuto, constants.TimePreferenceSingle, constants.TimePreferenceRange:
	default:
		return fmt.Errorf("invalid time_preference %q (must be 'auto', 'single', or 'range')", c.TimePreference)
	}
	switch c.RecommendationOrder {
	case constants.RecommendationOrderBackend, constants.RecommendationOrderScore:
	default:
		return fmt.Errorf("invalid recommendation_order %q (must be 'backend' or 'score')", c.RecommendationOrder)
	}
	switch c.AgendaOrder {
	case constants.AgendaSectioned, constants.AgendaInterleaved:
	default:
		return fmt.Errorf("invalid agenda_order %q (must be 'sectioned' or 'interleaved')", c.AgendaOrder)
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return utils.LoadLocation(c.Timezone)
}

// SummaryStyle maps the emoji flag to a summary style.
func (c *Config) SummaryStyle() constants.SummaryStyle {
	if c.SummaryEmoji {
		return constants.SummaryWithEmoji
	}
	return constants.SummaryPlain
}

// Save writes the persistable fields of cfg to path as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(c.fileView())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) fileView() fileConfig {
	timeout := c.Timeout.String()
	tp := string(c.TimePreference)
	ro := string(c.RecommendationOrder)
	ao := string(c.AgendaOrder)
	return fileConfig{
		BaseURL:             &c.BaseURL,
		Timeout:             &timeout,
		IncludeUndated:      &c.IncludeUndated,
		SummaryEmoji:        &c.SummaryEmoji,
		TimePreference:      &tp,
		RecommendationOrder: &ro,
		AgendaOrder:         &ao,
		Timezone:            &c.Timezone,
		Journal:             &c.Journal,
		Debug:               &c.Debug,
	}
}

// IsPostgresDSN reports whether the journal setting points at PostgreSQL.
func IsPostgresDSN(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// RedactDSN hides a password embedded in a postgres DSN.
func RedactDSN(s string) string {
	if !IsPostgresDSN(s) {
		return s
	}
	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	return u.Redacted()
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", v)
}
