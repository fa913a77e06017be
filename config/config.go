// Package config provides configuration loading for physq tools.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete physq configuration
type Config struct {
	Registry RegistryConfig `yaml:"registry"`
	Defs     DefsConfig     `yaml:"defs"`
	Currency CurrencyConfig `yaml:"currency"`
	Docs     DocsConfig     `yaml:"docs"`
}

// RegistryConfig selects the unit catalogs a registry starts with
type RegistryConfig struct {
	// Prefixes is the SI prefix range to expand: "engineering" or "full"
	Prefixes string `yaml:"prefixes"`
	// Catalogs lists optional catalogs installed on top of the SI and
	// common units: "imperial", "binary"
	Catalogs []string `yaml:"catalogs"`
}

// DefsConfig configures YAML unit definition loading
type DefsConfig struct {
	// Paths are the roots searched for definition documents
	Paths []string `yaml:"paths"`
	// Patterns are the glob patterns applied under each root
	// (empty = package defaults)
	Patterns []string `yaml:"patterns"`
}

// CurrencyConfig configures exchange-rate fetching
type CurrencyConfig struct {
	// Enabled turns on currency units (requires network access at startup)
	Enabled bool `yaml:"enabled"`
	// BaseURL overrides the rate service endpoint (empty = package default)
	BaseURL string `yaml:"base_url"`
	// Timeout is the maximum time to wait for the rate snapshot
	Timeout time.Duration `yaml:"timeout"`
}

// DocsConfig configures reference documentation fetching
type DocsConfig struct {
	// Timeout is the maximum time to wait for a reference page
	Timeout time.Duration `yaml:"timeout"`
	// MaxBodySize caps the fetched page size in bytes
	MaxBodySize int64 `yaml:"max_body_size"`
}

// Prefix range names accepted by RegistryConfig.
const (
	PrefixesEngineering = "engineering"
	PrefixesFull        = "full"
)

// knownCatalogs are the optional catalog names Validate accepts.
var knownCatalogs = map[string]bool{
	"imperial": true,
	"binary":   true,
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Registry: RegistryConfig{
			Prefixes: PrefixesEngineering,
			Catalogs: nil, // SI and common units only
		},
		Defs: DefsConfig{
			Paths:    nil,
			Patterns: nil, // Package defaults
		},
		Currency: CurrencyConfig{
			Enabled: false,
			BaseURL: "",
			Timeout: 30 * time.Second,
		},
		Docs: DocsConfig{
			Timeout:     30 * time.Second,
			MaxBodySize: 10 << 20,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	switch c.Registry.Prefixes {
	case "", PrefixesEngineering, PrefixesFull:
	default:
		return fmt.Errorf("registry.prefixes must be %q or %q", PrefixesEngineering, PrefixesFull)
	}
	for _, catalog := range c.Registry.Catalogs {
		if !knownCatalogs[catalog] {
			return fmt.Errorf("registry.catalogs: unknown catalog %q", catalog)
		}
	}
	if c.Currency.Timeout < 0 {
		return fmt.Errorf("currency.timeout must not be negative")
	}
	if c.Docs.Timeout < 0 {
		return fmt.Errorf("docs.timeout must not be negative")
	}
	if c.Docs.MaxBodySize < 0 {
		return fmt.Errorf("docs.max_body_size must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Registry
	if other.Registry.Prefixes != "" {
		c.Registry.Prefixes = other.Registry.Prefixes
	}
	if len(other.Registry.Catalogs) > 0 {
		c.Registry.Catalogs = other.Registry.Catalogs
	}

	// Defs
	if len(other.Defs.Paths) > 0 {
		c.Defs.Paths = other.Defs.Paths
	}
	if len(other.Defs.Patterns) > 0 {
		c.Defs.Patterns = other.Defs.Patterns
	}

	// Currency
	if other.Currency.Enabled {
		c.Currency.Enabled = true
	}
	if other.Currency.BaseURL != "" {
		c.Currency.BaseURL = other.Currency.BaseURL
	}
	if other.Currency.Timeout != 0 {
		c.Currency.Timeout = other.Currency.Timeout
	}

	// Docs
	if other.Docs.Timeout != 0 {
		c.Docs.Timeout = other.Docs.Timeout
	}
	if other.Docs.MaxBodySize != 0 {
		c.Docs.MaxBodySize = other.Docs.MaxBodySize
	}
}
