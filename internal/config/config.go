package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level cardledger.yaml configuration.
type Config struct {
	Business  BusinessConfig  `yaml:"business"`
	Interest  InterestConfig  `yaml:"interest"`
	Statement StatementConfig `yaml:"statement"`
	Export    ExportConfig    `yaml:"export"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// BusinessConfig identifies the card issuer.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// InterestConfig controls the daily accrual engine.
type InterestConfig struct {
	AnnualRate float64 `yaml:"annual_rate"` // APR, e.g. 0.1999
}

// StatementConfig controls minimum payment and due date policy.
type StatementConfig struct {
	MinimumPaymentRate  float64 `yaml:"minimum_payment_rate"`  // fraction of new balance
	MinimumPaymentFloor float64 `yaml:"minimum_payment_floor"` // absolute floor
	DueGraceDays        int     `yaml:"due_grace_days"`        // days past period end
}

// ExportConfig controls where snapshot and statement artifacts go.
type ExportConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads a cardledger.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
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

// Default returns a Config with sensible defaults for a new ledger.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name: businessName,
		},
		Interest: InterestConfig{
			AnnualRate: 0.1999,
		},
		Statement: StatementConfig{
			MinimumPaymentRate:  0.02,
			MinimumPaymentFloor: 25,
			DueGraceDays:        25,
		},
		Export: ExportConfig{
			OutputDir: "exports",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
