// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	apperrors "website-audit/internal/errors"
	"website-audit/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Cost contains the hourly rate used for cost projections
	Cost CostConfig `json:"cost"`

	// Batch controls concurrent estimation of several inventories
	Batch BatchConfig `json:"batch"`

	// Site contains documentation site scaffolding settings
	Site SiteConfig `json:"site"`

	// Server contains HTTP API settings
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is what the CLI prints to stdout (cli, markdown, json)
	DefaultFormat string `json:"default_format"`

	// ReportFile is the markdown report written next to the inventory
	ReportFile string `json:"report_file"`

	// ResultFile is the machine-readable export written next to the inventory
	ResultFile string `json:"result_file"`

	// PrettyJSON indents the export
	PrettyJSON bool `json:"pretty_json"`
}

// CostConfig contains cost projection settings
type CostConfig struct {
	// HourlyRate is a decimal string, e.g. "100"
	HourlyRate string `json:"hourly_rate"`

	// CurrencySymbol is prefixed to projected costs
	CurrencySymbol string `json:"currency_symbol"`
}

// BatchConfig contains batch settings
type BatchConfig struct {
	// Workers bounds the number of inventories estimated at once
	Workers int `json:"workers"`
}

// SiteConfig contains site generator settings
type SiteConfig struct {
	// ThemeDir holds theme files copied into docs/.vitepress/theme
	ThemeDir string `json:"theme_dir,omitempty"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Output: OutputConfig{
			DefaultFormat: "cli",
			ReportFile:    "estimation_report.md",
			ResultFile:    "estimation_result.json",
			PrettyJSON:    true,
		},
		Cost: CostConfig{
			HourlyRate:     "100",
			CurrencySymbol: "€",
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.website-audit.json
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".website-audit.json"
	}
	return filepath.Join(homeDir, ".website-audit.json")
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, apperrors.Config("failed to read config", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, apperrors.Config("failed to parse config", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if _, err := c.HourlyRate(); err != nil {
		return err
	}
	if c.Batch.Workers < 1 {
		return apperrors.Newf(apperrors.TypeConfig, "batch.workers must be at least 1, got %d", c.Batch.Workers)
	}
	switch c.Output.DefaultFormat {
	case "cli", "markdown", "json":
	default:
		return apperrors.Newf(apperrors.TypeConfig, "unsupported output.default_format: %q", c.Output.DefaultFormat)
	}
	return nil
}

// HourlyRate parses Cost.HourlyRate
func (c *Config) HourlyRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.Cost.HourlyRate)
	if err != nil {
		return decimal.Zero, apperrors.Config("invalid cost.hourly_rate", err)
	}
	if rate.IsNegative() {
		return decimal.Zero, apperrors.Newf(apperrors.TypeConfig, "cost.hourly_rate must not be negative: %s", rate)
	}
	return rate, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
