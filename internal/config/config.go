// Package config manages application configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvAPIKey         = "YT_API_KEY"
	EnvChannelID      = "YT_CHANNEL_ID"
	EnvOutput         = "YTEXPORT_OUTPUT"
	EnvLanguage       = "YTEXPORT_LANG"
	EnvLogLevel       = "YTEXPORT_LOG_LEVEL"
	EnvEndpoint       = "YTEXPORT_ENDPOINT"
	EnvRequestTimeout = "YTEXPORT_REQUEST_TIMEOUT"
	EnvRPS            = "YTEXPORT_RPS"
	EnvMaxRetries     = "YTEXPORT_MAX_RETRIES"
	EnvInitialBackoff = "YTEXPORT_INITIAL_BACKOFF"
	EnvMaxBackoff     = "YTEXPORT_MAX_BACKOFF"
)

// DefaultOutputPath is the file written when no output path is configured.
const DefaultOutputPath = "channel_data.json"

// Sentinel errors for missing required settings.
var (
	ErrConfigurationMissing = errors.New("config: required setting missing")
	ErrMissingAPIKey        = fmt.Errorf("%w: api key (%s)", ErrConfigurationMissing, EnvAPIKey)
	ErrMissingChannelID     = fmt.Errorf("%w: channel id (%s)", ErrConfigurationMissing, EnvChannelID)
)

// Config holds all application configuration.
type Config struct {
	// Required
	APIKey    string
	ChannelID string

	// Output settings
	OutputPath string
	Language   string
	LogLevel   string

	// API client settings
	Endpoint          string
	RequestTimeout    time.Duration
	RequestsPerSecond float64

	// Retry settings
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// fileConfig is the on-disk shape. Durations are strings like "30s".
type fileConfig struct {
	APIKey            string   `json:"api_key" yaml:"api_key"`
	ChannelID         string   `json:"channel_id" yaml:"channel_id"`
	OutputPath        string   `json:"output" yaml:"output"`
	Language          string   `json:"language" yaml:"language"`
	LogLevel          string   `json:"log_level" yaml:"log_level"`
	Endpoint          string   `json:"endpoint" yaml:"endpoint"`
	RequestTimeout    string   `json:"request_timeout" yaml:"request_timeout"`
	RequestsPerSecond *float64 `json:"requests_per_second" yaml:"requests_per_second"`
	MaxRetries        *int     `json:"max_retries" yaml:"max_retries"`
	InitialBackoff    string   `json:"initial_backoff" yaml:"initial_backoff"`
	MaxBackoff        string   `json:"max_backoff" yaml:"max_backoff"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputPath:     DefaultOutputPath,
		Language:       "ja",
		LogLevel:       "warn",
		RequestTimeout: 30 * time.Second,
		MaxRetries:     3,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     30 * time.Second,
	}
}

// DefaultFiles are probed in order when no explicit config path is given.
var DefaultFiles = []string{"ytexport.yaml", "ytexport.yml", "ytexport.json"}

// Load builds a Config from defaults, an optional config file and the
// environment looked up through getenv.
// Priority: env vars > config file > defaults.
// An empty path probes DefaultFiles; a missing default file is not an error,
// a missing explicit path is. Load does not validate required settings.
func Load(getenv func(string) string, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.loadFromFile(path); err != nil {
		return nil, err
	}
	if err := cfg.loadFromEnv(getenv); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	paths := DefaultFiles
	explicit := path != ""
	if explicit {
		paths = []string{path}
	}

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && !explicit {
				continue
			}
			return fmt.Errorf("load config file: %w", err)
		}

		var fc fileConfig
		switch strings.ToLower(filepath.Ext(p)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &fc)
		default:
			err = json.Unmarshal(data, &fc)
		}
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		if err := c.apply(fc); err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		return nil
	}

	return nil
}

func (c *Config) apply(fc fileConfig) error {
	setString(&c.APIKey, fc.APIKey)
	setString(&c.ChannelID, fc.ChannelID)
	setString(&c.OutputPath, fc.OutputPath)
	setString(&c.Language, fc.Language)
	setString(&c.LogLevel, fc.LogLevel)
	setString(&c.Endpoint, fc.Endpoint)
	if fc.RequestsPerSecond != nil {
		c.RequestsPerSecond = *fc.RequestsPerSecond
	}
	if fc.MaxRetries != nil {
		c.MaxRetries = *fc.MaxRetries
	}
	if err := setDuration(&c.RequestTimeout, "request_timeout", fc.RequestTimeout); err != nil {
		return err
	}
	if err := setDuration(&c.InitialBackoff, "initial_backoff", fc.InitialBackoff); err != nil {
		return err
	}
	return setDuration(&c.MaxBackoff, "max_backoff", fc.MaxBackoff)
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv(getenv func(string) string) error {
	if getenv == nil {
		return nil
	}
	setString(&c.APIKey, strings.TrimSpace(getenv(EnvAPIKey)))
	setString(&c.ChannelID, strings.TrimSpace(getenv(EnvChannelID)))
	setString(&c.OutputPath, getenv(EnvOutput))
	setString(&c.Language, getenv(EnvLanguage))
	setString(&c.LogLevel, getenv(EnvLogLevel))
	setString(&c.Endpoint, getenv(EnvEndpoint))

	if v := getenv(EnvRPS); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRPS, err)
		}
		c.RequestsPerSecond = f
	}
	if v := getenv(EnvMaxRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxRetries, err)
		}
		c.MaxRetries = n
	}
	if err := setDuration(&c.RequestTimeout, EnvRequestTimeout, getenv(EnvRequestTimeout)); err != nil {
		return err
	}
	if err := setDuration(&c.InitialBackoff, EnvInitialBackoff, getenv(EnvInitialBackoff)); err != nil {
		return err
	}
	return setDuration(&c.MaxBackoff, EnvMaxBackoff, getenv(EnvMaxBackoff))
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, name, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = d
	return nil
}

// Validate checks configuration validity. Missing credentials are reported
// first and wrap ErrConfigurationMissing.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.ChannelID == "" {
		return ErrMissingChannelID
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be non-negative")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative")
	}
	if c.InitialBackoff <= 0 {
		return fmt.Errorf("initial_backoff must be positive")
	}
	if c.MaxBackoff < c.InitialBackoff {
		return fmt.Errorf("max_backoff must be >= initial_backoff")
	}
	return nil
}
