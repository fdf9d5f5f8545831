package config

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"time"

	"github.com/amoylab/tidio-mcp/internal/common/cnst"
	"github.com/amoylab/tidio-mcp/pkg/helper"
	"github.com/amoylab/tidio-mcp/pkg/trace"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type (
	// TidioMCPConfig represents the tidio-mcp configuration
	TidioMCPConfig struct {
		Tidio   TidioConfig   `yaml:"tidio"`
		Server  ServerConfig  `yaml:"server"`
		Logger  LoggerConfig  `yaml:"logger"`
		Metrics MetricsConfig `yaml:"metrics"`
		Tracing trace.Config  `yaml:"tracing"`
	}

	// TidioConfig holds the upstream API credentials and endpoint
	TidioConfig struct {
		ClientID     string        `yaml:"client_id"`
		ClientSecret string        `yaml:"client_secret"`
		BaseURL      string        `yaml:"base_url"`
		Timeout      time.Duration `yaml:"timeout"` // 0 keeps the http client default (no timeout)
	}

	// ServerConfig controls the stdio request loop
	ServerConfig struct {
		MaxConcurrency int `yaml:"max_concurrency"` // requests served in parallel
	}

	// LoggerConfig represents the logger configuration
	LoggerConfig struct {
		Level      string `yaml:"level"`       // debug, info, warn, error
		Format     string `yaml:"format"`      // json, console
		Output     string `yaml:"output"`      // stderr, file
		FilePath   string `yaml:"file_path"`   // path to log file when output is file
		MaxSize    int    `yaml:"max_size"`    // max size of log file in MB
		MaxBackups int    `yaml:"max_backups"` // max number of backup files
		MaxAge     int    `yaml:"max_age"`     // max age of backup files in days
		Compress   bool   `yaml:"compress"`    // whether to compress backup files
		Color      bool   `yaml:"color"`       // whether to use color in console output
		Stacktrace bool   `yaml:"stacktrace"`  // whether to include stacktrace in error logs
		TimeZone   string `yaml:"time_zone"`   // time zone for log timestamps, e.g., "UTC", default is local
		TimeFormat string `yaml:"time_format"` // time format for log timestamps, default is "2006-01-02 15:04:05"
	}

	// MetricsConfig represents the prometheus metrics configuration
	MetricsConfig struct {
		Enabled   bool      `yaml:"enabled"`
		Addr      string    `yaml:"addr"` // listen address of the /metrics endpoint
		Namespace string    `yaml:"namespace"`
		Buckets   []float64 `yaml:"buckets"`
	}
)

const defaultMaxConcurrency = 16

// LoadConfig loads configuration from a YAML file with environment variable support.
// A missing file is not an error: defaults are returned together with an empty path.
func LoadConfig(filename string) (*TidioMCPConfig, string, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	var cfg TidioMCPConfig

	cfgPath := helper.GetCfgPath(filename)
	data, err := os.ReadFile(cfgPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfgPath = ""
	case err != nil:
		return nil, cfgPath, err
	default:
		// Resolve environment variables
		data = resolveEnv(data)
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, cfgPath, err
		}
	}

	SetDefaults(&cfg)
	return &cfg, cfgPath, nil
}

// LoadConfigOrDefaults is LoadConfig for serving: a file that cannot be read or
// parsed yields the defaults (placeholder credentials included) and the load
// error is returned alongside them for reporting only.
func LoadConfigOrDefaults(filename string) (*TidioMCPConfig, string, error) {
	cfg, cfgPath, err := LoadConfig(filename)
	if err == nil {
		return cfg, cfgPath, nil
	}
	cfg = &TidioMCPConfig{}
	SetDefaults(cfg)
	return cfg, cfgPath, err
}

// SetDefaults fills every unset field with its default value
func SetDefaults(cfg *TidioMCPConfig) {
	if cfg.Tidio.BaseURL == "" {
		cfg.Tidio.BaseURL = cnst.TidioBaseURL
	}
	if cfg.Tidio.ClientID == "" {
		cfg.Tidio.ClientID = cnst.PlaceholderClientID
	}
	if cfg.Tidio.ClientSecret == "" {
		cfg.Tidio.ClientSecret = cnst.PlaceholderClientSecret
	}
	if cfg.Server.MaxConcurrency == 0 {
		cfg.Server.MaxConcurrency = defaultMaxConcurrency
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9090"
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "tidio_mcp"
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = cnst.AppName
	}
}

// UsesPlaceholderCredentials reports whether no real credentials were configured
func (c *TidioConfig) UsesPlaceholderCredentials() bool {
	return c.ClientID == cnst.PlaceholderClientID || c.ClientSecret == cnst.PlaceholderClientSecret
}

// resolveEnv replaces environment variable placeholders in YAML content
func resolveEnv(content []byte) []byte {
	regex := regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

	return regex.ReplaceAllFunc(content, func(match []byte) []byte {
		matches := regex.FindSubmatch(match)
		envKey := string(matches[1])
		var defaultValue string

		if len(matches) > 2 {
			defaultValue = string(matches[2])
		}

		if value, exists := os.LookupEnv(envKey); exists {
			return []byte(value)
		}
		return []byte(defaultValue)
	})
}
