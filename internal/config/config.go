package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = "awesomegic.yaml"

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "AWESOMEGIC_CONFIG"

// Config represents awesomegic.yaml.
type Config struct {
	Bank     BankConfig     `yaml:"bank"`
	Interest InterestConfig `yaml:"interest"`
	Log      LogConfig      `yaml:"log"`
	Export   ExportConfig   `yaml:"export"`
}

// BankConfig holds display settings.
type BankConfig struct {
	Name string `yaml:"name"`
}

// InterestConfig controls interest accrual.
type InterestConfig struct {
	DayCount int `yaml:"day_count"` // divisor for annual rates
}

// LogConfig controls logrus output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// ExportConfig controls statement CSV export.
type ExportConfig struct {
	Dir string `yaml:"dir,omitempty"` // empty disables export
}

// Load reads a config file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Interest.DayCount <= 0 {
		return fmt.Errorf("interest.day_count must be positive, got %d", c.Interest.DayCount)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Bank: BankConfig{
			Name: "AwesomeGIC Bank",
		},
		Interest: InterestConfig{
			DayCount: 365,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}
