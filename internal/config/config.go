// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"ingredient-pricing/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Parser contains quantity parsing configuration
	Parser ParserConfig `json:"parser"`

	// Precision contains rounding precision per output unit
	Precision Precision `json:"precision"`

	// Currency contains currency presentation settings
	Currency CurrencyConfig `json:"currency"`

	// Bulk contains bulk processing configuration
	Bulk BulkConfig `json:"bulk"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ParserConfig contains quantity parser settings
type ParserConfig struct {
	// StrictUnitRequired rejects multiplication expressions without a
	// unit suffix. When false, a bare amount defaults to grams; meant
	// for trusted batch inputs only.
	StrictUnitRequired bool `json:"strict_unit_required"`
}

// Precision is the number of decimal places per output unit
type Precision struct {
	KG int32 `json:"kg"`
	G  int32 `json:"g"`
	MG int32 `json:"mg"`
}

// CurrencyConfig contains currency presentation settings
type CurrencyConfig struct {
	// Symbol is the currency symbol prefixed to formatted prices
	Symbol string `json:"symbol"`
}

// BulkConfig contains bulk processing settings
type BulkConfig struct {
	// MaxRows is the maximum rows accepted per batch
	MaxRows int `json:"max_rows"`

	// Workers is the number of concurrent row workers
	Workers int `json:"workers"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// AllowedOrigins is the CORS origin allow-list ("*" for all)
	AllowedOrigins []string `json:"allowed_origins"`

	// MaxUploadMB is the maximum upload size in megabytes
	MaxUploadMB int64 `json:"max_upload_mb"`

	// UIPath is the directory served at /
	UIPath string `json:"ui_path"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Parser: ParserConfig{
			StrictUnitRequired: true,
		},
		Precision: Precision{
			KG: 2,
			G:  4,
			MG: 6,
		},
		Currency: CurrencyConfig{
			Symbol: "₹",
		},
		Bulk: BulkConfig{
			MaxRows: 1000,
			Workers: 4,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			MaxUploadMB:    16,
			UIPath:         "./ui",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
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
