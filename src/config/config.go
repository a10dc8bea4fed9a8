package config

import (
	"fmt"
	"os"

	"stock-dashboard/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.applyDefaults()

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// applyDefaults fills in optional fields not present in the YAML file.
func (c *Config) applyDefaults() {
	if c.MarketData.ChartBaseURL == "" {
		c.MarketData.ChartBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	}
	if c.MarketData.SearchBaseURL == "" {
		c.MarketData.SearchBaseURL = "https://finnhub.io/api/v1"
	}
	if c.MarketData.DefaultRange == "" {
		c.MarketData.DefaultRange = "60d"
	}
	if c.News.BaseURL == "" {
		c.News.BaseURL = "https://newsapi.org/v2"
	}
	if c.News.PageSize == 0 {
		c.News.PageSize = 10
	}
	if c.Analytics.MAShortWindow == 0 {
		c.Analytics.MAShortWindow = 5
	}
	if c.Analytics.MALongWindow == 0 {
		c.Analytics.MALongWindow = 20
	}
	if c.Analytics.TradingDaysPerYear == 0 {
		c.Analytics.TradingDaysPerYear = 252
	}
	if c.Analytics.VarConfidence == 0 {
		c.Analytics.VarConfidence = 0.95
	}
	if c.Analytics.VarMinPoints == 0 {
		c.Analytics.VarMinPoints = 20
	}
	if c.Analytics.MinPoints == 0 {
		c.Analytics.MinPoints = c.Analytics.MAShortWindow
	}
	if c.Stream.PollIntervalSeconds == 0 {
		c.Stream.PollIntervalSeconds = 5
	}
	if c.Stream.LookbackBars == 0 {
		c.Stream.LookbackBars = 120
	}
	if c.Stream.SendBufferSize == 0 {
		c.Stream.SendBufferSize = 256
	}
	if c.Network.RequestTimeout == 0 {
		c.Network.RequestTimeout = 10
	}
	if c.Network.MaxRetries == 0 {
		c.Network.MaxRetries = 3
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	// Validate App configuration (Flattened)
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Validate Server configuration (Flattened)
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	// Validate Storage configuration
	if c.Storage.DBType == "" {
		return fmt.Errorf("database type cannot be empty")
	}
	if c.Storage.DBType == "sqlite" && c.Storage.DBPath == "" {
		return fmt.Errorf("database path cannot be empty for sqlite")
	}
	if c.Storage.DBType == "postgres" && c.Storage.DBConnectionString == "" {
		return fmt.Errorf("connection string cannot be empty for postgres")
	}

	// Validate Network configuration
	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}
	if c.Network.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}

	// Validate Stream configuration
	if c.Stream.PollIntervalSeconds <= 0 {
		return fmt.Errorf("poll interval must be greater than 0")
	}
	if c.Stream.LookbackBars <= 0 {
		return fmt.Errorf("lookback bars must be greater than 0")
	}

	// Validate Analytics configuration
	if c.Analytics.MAShortWindow <= 0 || c.Analytics.MALongWindow <= 0 {
		return fmt.Errorf("moving average windows must be greater than 0")
	}
	if c.Analytics.MAShortWindow > c.Analytics.MALongWindow {
		return fmt.Errorf("short moving average window (%d) cannot exceed long window (%d)",
			c.Analytics.MAShortWindow, c.Analytics.MALongWindow)
	}
	if c.Analytics.VarConfidence <= 0 || c.Analytics.VarConfidence >= 1 {
		return fmt.Errorf("VaR confidence must be in (0, 1), got %f", c.Analytics.VarConfidence)
	}
	if c.Analytics.TradingDaysPerYear <= 0 {
		return fmt.Errorf("trading days per year must be greater than 0")
	}
	if c.Analytics.MinPoints <= 0 {
		return fmt.Errorf("minimum points must be greater than 0")
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
