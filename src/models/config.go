package models

// MConfig Structure
type MConfig struct {
	Name       string            `yaml:"name"`
	Host       string            `yaml:"host"`
	Port       int               `yaml:"port"`
	LogLevel   string            `yaml:"log_level"`
	MarketData MMarketDataConfig `yaml:"market_data"`
	News       MNewsConfig       `yaml:"news"`
	Analytics  MAnalyticsConfig  `yaml:"analytics"`
	Stream     MStreamConfig     `yaml:"stream"`
	Storage    MStorageConfig    `yaml:"storage"`
	Network    MNetworkConfig    `yaml:"network"`
	Curated    map[string]string `yaml:"curated"`
}

type MMarketDataConfig struct {
	ChartBaseURL  string `yaml:"chart_base_url"`
	SearchBaseURL string `yaml:"search_base_url"`
	SearchAPIKey  string `yaml:"search_api_key"`
	DefaultRange  string `yaml:"default_range"` // e.g. "60d"
}

type MNewsConfig struct {
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	PageSize int    `yaml:"page_size"`
}

type MAnalyticsConfig struct {
	MAShortWindow      int     `yaml:"ma_short_window"`
	MALongWindow       int     `yaml:"ma_long_window"`
	TradingDaysPerYear int     `yaml:"trading_days_per_year"`
	RiskFreeRateAnnual float64 `yaml:"risk_free_rate_annual"`
	VarConfidence      float64 `yaml:"var_confidence"`
	VarMinPoints       int     `yaml:"var_min_points"`
	MinPoints          int     `yaml:"min_points"`
}

type MStreamConfig struct {
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
	LookbackBars        int `yaml:"lookback_bars"`
	SendBufferSize      int `yaml:"send_buffer_size"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

type MNetworkConfig struct {
	RequestTimeout int    `yaml:"timeout"`
	MaxRetries     int    `yaml:"retries"`
	UserAgent      string `yaml:"user_agent"`
}
