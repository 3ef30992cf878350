// Package config loads and validates the bot configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/fxbot/market"
	"github.com/rustyeddy/fxbot/strategy"
)

// Config is the complete bot configuration. Credentials are deliberately
// not here; they come from the environment (see broker/oanda).
type Config struct {
	Trading TradingConfig `yaml:"trading"`
	Risk    RiskConfig    `yaml:"risk"`
	Journal JournalConfig `yaml:"journal"`
	Logging LoggingConfig `yaml:"logging"`
}

// TradingConfig selects what to trade and how often to scan.
type TradingConfig struct {
	Instruments []string `yaml:"instruments"`
	Granularity string   `yaml:"granularity"`  // e.g. "M5"
	Strategy    string   `yaml:"strategy"`     // variant name, immutable per run
	CandleCount int      `yaml:"candle_count"` // bars fetched per cycle
	Interval    string   `yaml:"interval"`     // sleep between cycles, e.g. "60s"
	StateFile   string   `yaml:"state_file"`
}

// RiskConfig holds the account-level sizing constants. Stop and reward
// multiples come from the strategy variant, not from here.
type RiskConfig struct {
	RiskFraction float64 `yaml:"risk_fraction"` // e.g. 0.01
	Leverage     float64 `yaml:"leverage"`      // e.g. 50
}

// JournalConfig locates the SQLite journal.
type JournalConfig struct {
	DBPath string `yaml:"db_path"`
}

// LoggingConfig controls the zerolog output.
type LoggingConfig struct {
	Level    string `yaml:"level"`
	File     bool   `yaml:"file"`
	FilePath string `yaml:"file_path"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Trading: TradingConfig{
			Instruments: []string{"EUR_USD", "GBP_USD", "USD_JPY", "AUD_USD", "USD_CAD"},
			Granularity: "M5",
			Strategy:    "trend-pullback",
			CandleCount: 250,
			Interval:    "60s",
			StateFile:   "./bot_state.json",
		},
		Risk: RiskConfig{
			RiskFraction: 0.01,
			Leverage:     50,
		},
		Journal: JournalConfig{
			DBPath: "./fxbot.sqlite",
		},
		Logging: LoggingConfig{
			Level:    "info",
			File:     true,
			FilePath: "./fxbot.log",
		},
	}
}

// LoadFromFile loads a YAML configuration, applying defaults for omitted
// sections before validation.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ParseInterval converts the cycle interval to a duration.
func (c *Config) ParseInterval() (time.Duration, error) {
	return time.ParseDuration(c.Trading.Interval)
}

// Validate checks the configuration. Errors here are fatal at construction;
// there is no retry.
func (c *Config) Validate() error {
	if len(c.Trading.Instruments) == 0 {
		return fmt.Errorf("trading.instruments is required")
	}
	for _, inst := range c.Trading.Instruments {
		if _, ok := market.Instruments[inst]; !ok {
			return fmt.Errorf("unknown instrument: %s", inst)
		}
	}
	if c.Trading.Granularity == "" {
		return fmt.Errorf("trading.granularity is required")
	}
	if _, err := strategy.ParseVariant(c.Trading.Strategy); err != nil {
		return fmt.Errorf("trading.strategy: %w", err)
	}
	if c.Trading.CandleCount < 200 {
		return fmt.Errorf("trading.candle_count must be at least 200 (longest indicator lookback)")
	}
	if d, err := c.ParseInterval(); err != nil {
		return fmt.Errorf("trading.interval: %w", err)
	} else if d < time.Second {
		return fmt.Errorf("trading.interval must be at least 1s")
	}
	if c.Trading.StateFile == "" {
		return fmt.Errorf("trading.state_file is required")
	}
	if c.Risk.RiskFraction <= 0 || c.Risk.RiskFraction > 1 {
		return fmt.Errorf("risk.risk_fraction must be between 0 and 1")
	}
	if c.Risk.Leverage <= 0 {
		return fmt.Errorf("risk.leverage must be positive")
	}
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	return nil
}

// Variant resolves the configured strategy name. Validate must have passed.
func (c *Config) Variant() strategy.Variant {
	v, _ := strategy.ParseVariant(c.Trading.Strategy)
	return v
}
