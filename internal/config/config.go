package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level moneyman.yaml configuration.
type Config struct {
	Detector DetectorConfig `yaml:"detector"`
	Debt     DebtConfig     `yaml:"debt"`
	Wants    WantsConfig    `yaml:"wants"`
	Restock  RestockConfig  `yaml:"restock"`
}

// DetectorConfig tunes the recurring-charge detector.
type DetectorConfig struct {
	MinOccurrences          int     `yaml:"min_occurrences"`
	IntervalStddevThreshold float64 `yaml:"interval_stddev_threshold"`
	AmountVarianceThreshold float64 `yaml:"amount_variance_threshold"`
}

// DebtConfig holds the monthly payoff budget and default strategy.
type DebtConfig struct {
	MonthlyBudget decimal.Decimal `yaml:"monthly_budget"`
	Strategy      string          `yaml:"strategy"` // "avalanche" or "snowball"
}

// WantsConfig controls the cooling-off state machine defaults.
type WantsConfig struct {
	CoolingOffDays int `yaml:"cooling_off_days"`
	GracePeriod    int `yaml:"grace_period"` // days past eligibility before expiry
}

// RestockConfig controls the expiration tracker.
type RestockConfig struct {
	HorizonDays int `yaml:"expiration_horizon_days"`
}

// Load reads a moneyman.yaml file from disk.
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

// Default returns a Config with the stock policy values.
func Default() *Config {
	return &Config{
		Detector: DetectorConfig{
			MinOccurrences:          3,
			IntervalStddevThreshold: 0.25,
			AmountVarianceThreshold: 0.10,
		},
		Debt: DebtConfig{
			MonthlyBudget: decimal.Zero,
			Strategy:      "avalanche",
		},
		Wants: WantsConfig{
			CoolingOffDays: 30,
			GracePeriod:    14,
		},
		Restock: RestockConfig{
			HorizonDays: 14,
		},
	}
}
