package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config represents the complete tracker configuration
type Config struct {
	Strategy Settings      `json:"strategy" yaml:"strategy" toml:"strategy"`
	Journal  JournalConfig `json:"journal" yaml:"journal" toml:"journal"`
	Coach    CoachConfig   `json:"coach" yaml:"coach" toml:"coach"`
	Display  DisplayConfig `json:"display" yaml:"display" toml:"display"`
	Logging  LoggingConfig `json:"logging" yaml:"logging" toml:"logging"`
	Metrics  MetricsConfig `json:"metrics" yaml:"metrics" toml:"metrics"`
}

// JournalConfig contains persistence parameters
type JournalConfig struct {
	Type   string `json:"type" yaml:"type" toml:"type"` // "sqlite" or "memory"
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty" toml:"db_path,omitempty"`
}

// CoachConfig selects the feedback rule set
type CoachConfig struct {
	Profile string `json:"profile" yaml:"profile" toml:"profile"` // "standard" or "multi_close"
}

// DisplayConfig contains presentation parameters
type DisplayConfig struct {
	Locale   string `json:"locale" yaml:"locale" toml:"locale"`
	Currency string `json:"currency" yaml:"currency" toml:"currency"`
	PageSize int    `json:"page_size" yaml:"page_size" toml:"page_size"`
}

// LoggingConfig contains log output parameters
type LoggingConfig struct {
	Level string `json:"level" yaml:"level" toml:"level"`
}

// MetricsConfig contains the prometheus endpoint address
type MetricsConfig struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr"`
}

const (
	ProfileStandard   = "standard"
	ProfileMultiClose = "multi_close"
)

// LoadFromFile loads configuration from a file. TOML is chosen by extension,
// otherwise YAML is tried first with a JSON fallback.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	if isTOML(path) {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (toml): %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML, TOML or JSON based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch {
	case isYAML(path):
		data, err = yaml.Marshal(c)
	case isTOML(path):
		data, err = toml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Strategy.Validate(); err != nil {
		return err
	}
	if c.Journal.Type != "sqlite" && c.Journal.Type != "memory" {
		return fmt.Errorf("journal.type must be 'sqlite' or 'memory'")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	if c.Coach.Profile != ProfileStandard && c.Coach.Profile != ProfileMultiClose {
		return fmt.Errorf("coach.profile must be %q or %q", ProfileStandard, ProfileMultiClose)
	}
	if c.Display.PageSize <= 0 {
		return fmt.Errorf("display.page_size must be positive")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Strategy: DefaultSettings(),
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./rtracker.sqlite",
		},
		Coach: CoachConfig{
			Profile: ProfileMultiClose,
		},
		Display: DisplayConfig{
			Locale:   "en-US",
			Currency: "TRY",
			PageSize: 5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Addr: ":9464",
		},
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isTOML(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".toml"
}
