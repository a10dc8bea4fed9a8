package analytics

import (
	"math"
	"time"

	"stock-dashboard/src/analytics/core"
	"stock-dashboard/src/helpers"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// Engine computes descriptive risk metrics over a price series.
//
// Series shorter than the configured minimum yield a typed
// InsufficientDataError. Metrics that need more history than the series
// provides (long moving average, VaR) stay nil in the snapshot rather
// than degrading into NaN.
// -----------------------------------------------------------------------------

type Engine struct {
	Config *models.MAnalyticsConfig
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewEngine(cfg *models.MAnalyticsConfig, log *logger.Logger) *Engine {
	return &Engine{
		Config: cfg,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

// Compute derives a fresh immutable snapshot from the series.
func (e *Engine) Compute(series models.MPriceSeries) (models.MAnalyticsSnapshot, error) {
	closes := series.Closes()

	if len(closes) < e.Config.MinPoints {
		e.Logger.Debug("Series too short for %s: %d of %d points", series.Symbol, len(closes), e.Config.MinPoints)
		return models.MAnalyticsSnapshot{}, &helpers.InsufficientDataError{
			Symbol:   series.Symbol,
			Required: e.Config.MinPoints,
			Got:      len(closes),
		}
	}

	last := closes[len(closes)-1]
	snapshot := models.MAnalyticsSnapshot{
		Symbol:     series.Symbol,
		Timestamp:  time.Now().UTC().Unix(),
		LastPrice:  last,
		DataPoints: len(closes),
	}

	// Percent change over the full lookback
	if first := closes[0]; first != 0 {
		pct := core.CalculateChangePercent(last, first) * 100
		snapshot.PercentChange = &pct
	}

	// Moving averages over trailing short/long windows
	if ma, ok := core.MovingAverage(closes, e.Config.MAShortWindow); ok {
		snapshot.MAShort = &ma
	}
	if ma, ok := core.MovingAverage(closes, e.Config.MALongWindow); ok {
		snapshot.MALong = &ma
	}

	annualization := math.Sqrt(float64(e.Config.TradingDaysPerYear))

	// Annualized volatility from daily log returns
	logReturns := core.LogReturns(closes)
	if len(logReturns) >= 2 {
		_, std := core.CalculateMeanStd(logReturns)
		vol := std * annualization
		snapshot.Volatility = &vol
	}

	// Sharpe ratio from daily simple returns; undefined at zero variance
	simpleReturns := core.SimpleReturns(closes)
	if len(simpleReturns) >= 2 {
		mean, std := core.CalculateMeanStd(simpleReturns)
		if std > 0 {
			dailyRiskFree := e.Config.RiskFreeRateAnnual / float64(e.Config.TradingDaysPerYear)
			sharpe := (mean - dailyRiskFree) / std * annualization
			snapshot.SharpeRatio = &sharpe
		}
	}

	// Historical VaR at the configured confidence, scaled to the last price.
	// Requires the documented sample floor.
	if len(simpleReturns) >= e.Config.VarMinPoints {
		quantile := core.Percentile(simpleReturns, 1-e.Config.VarConfidence)
		loss := -quantile
		if loss < 0 {
			loss = 0
		}
		valueAtRisk := loss * last
		snapshot.ValueAtRisk = &valueAtRisk
	}

	return snapshot, nil
}
