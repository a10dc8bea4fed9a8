package models

// -----------------------------------------------------------------------------
// MAnalyticsSnapshot is the immutable per-tick output of the analytics engine.
// Metrics that cannot be computed for the current window are nil and
// serialize as JSON null, never as NaN or a numeric placeholder.
// -----------------------------------------------------------------------------

type MAnalyticsSnapshot struct {
	Symbol        string   `json:"symbol"`
	Timestamp     int64    `json:"timestamp"`
	LastPrice     float64  `json:"last_price"`
	PercentChange *float64 `json:"percent_change_period"`
	MAShort       *float64 `json:"ma_short"`
	MALong        *float64 `json:"ma_long"`
	Volatility    *float64 `json:"volatility_annualized"`
	SharpeRatio   *float64 `json:"sharpe_ratio"`
	ValueAtRisk   *float64 `json:"value_at_risk"`
	DataPoints    int      `json:"data_points"`
	MarketOpen    bool     `json:"market_open"`
}
