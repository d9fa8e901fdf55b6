// Package config loads and validates repolens tool configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete repolens configuration
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RootPath string `json:"rootPath" mapstructure:"rootPath"`

	Scan    ScanConfig    `json:"scan" mapstructure:"scan"`
	Parse   ParseConfig   `json:"parse" mapstructure:"parse"`
	Tiers   TiersConfig   `json:"tiers" mapstructure:"tiers"`
	History HistoryConfig `json:"history" mapstructure:"history"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ScanConfig controls file discovery
type ScanConfig struct {
	Include          []string `json:"include" mapstructure:"include"`
	Exclude          []string `json:"exclude" mapstructure:"exclude"`
	MaxFileSizeBytes int64    `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
}

// ParseConfig controls the grammar parsers
type ParseConfig struct {
	Workers       int `json:"workers" mapstructure:"workers"`
	MaxDepth      int `json:"maxDepth" mapstructure:"maxDepth"`
	MaxErrorNodes int `json:"maxErrorNodes" mapstructure:"maxErrorNodes"`
}

// TiersConfig holds the complexity-tier thresholds.
// A module with at most LowMax exports is "low", at most MediumMax is
// "medium", anything above is "high".
type TiersConfig struct {
	LowMax    int `json:"lowMax" mapstructure:"lowMax"`
	MediumMax int `json:"mediumMax" mapstructure:"mediumMax"`
}

// HistoryConfig controls version-control mining
type HistoryConfig struct {
	RecentCommits       int `json:"recentCommits" mapstructure:"recentCommits"`
	HotFiles            int `json:"hotFiles" mapstructure:"hotFiles"`
	ContributorsPerFile int `json:"contributorsPerFile" mapstructure:"contributorsPerFile"`
	TimeoutMs           int `json:"timeoutMs" mapstructure:"timeoutMs"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RootPath: ".",
		Scan: ScanConfig{
			Include:          []string{},
			Exclude:          []string{},
			MaxFileSizeBytes: 1_000_000,
		},
		Parse: ParseConfig{
			Workers:       4,
			MaxDepth:      200,
			MaxErrorNodes: 10,
		},
		Tiers: TiersConfig{
			LowMax:    5,
			MediumMax: 15,
		},
		History: HistoryConfig{
			RecentCommits:       20,
			HotFiles:            25,
			ContributorsPerFile: 5,
			TimeoutMs:           5000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from .repolens/config.json under root.
// A missing config file yields the defaults, not an error.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".repolens"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to .repolens/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".repolens")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Tiers.LowMax <= 0 || c.Tiers.MediumMax <= c.Tiers.LowMax {
		return &ConfigError{Field: "tiers", Message: "thresholds must satisfy 0 < lowMax < mediumMax"}
	}
	if c.Parse.Workers < 1 {
		return &ConfigError{Field: "parse.workers", Message: "must be at least 1"}
	}
	if c.Parse.MaxDepth < 1 {
		return &ConfigError{Field: "parse.maxDepth", Message: "must be at least 1"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
