package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"stock-dashboard/src/helpers"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// YahooMarketData implements IMarketData on top of the Yahoo v8 chart API.
// History uses daily bars so the analytics engine works on daily returns;
// GetLatest uses the intraday 5m series and returns the most recent bar.
// -----------------------------------------------------------------------------

type YahooMarketData struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

var _ interfaces.IMarketData = (*YahooMarketData)(nil)

// -----------------------------------------------------------------------------

func NewYahooMarketData(cfg *models.MConfig, netMgr interfaces.INetworkManager) *YahooMarketData {
	return &YahooMarketData{
		Config:  cfg,
		Network: netMgr,
		Logger:  logger.NewLogger(cfg.LogLevel, "YahooMarketData"),
	}
}

// -----------------------------------------------------------------------------

// GetHistory fetches the daily OHLC series for a symbol over a range
// expression such as "60d".
func (y *YahooMarketData) GetHistory(ctx context.Context, symbol, rangeStr string) (models.MPriceSeries, error) {
	if rangeStr == "" {
		rangeStr = y.Config.MarketData.DefaultRange
	}

	points, err := y.fetchChart(ctx, symbol, rangeStr, "1d")
	if err != nil {
		return models.MPriceSeries{}, err
	}

	return models.MPriceSeries{
		Symbol: symbol,
		Range:  rangeStr,
		Points: points,
	}, nil
}

// -----------------------------------------------------------------------------

// GetLatest fetches the most recent intraday price point for a symbol.
func (y *YahooMarketData) GetLatest(ctx context.Context, symbol string) (models.MPricePoint, error) {
	points, err := y.fetchChart(ctx, symbol, "1d", "5m")
	if err != nil {
		return models.MPricePoint{}, err
	}

	// fetchChart guarantees at least one valid point
	return points[len(points)-1], nil
}

// -----------------------------------------------------------------------------

func (y *YahooMarketData) fetchChart(ctx context.Context, symbol, rangeStr, interval string) ([]models.MPricePoint, error) {
	params := map[string]string{
		"interval":       interval,
		"range":          rangeStr,
		"includePrePost": "false",
	}

	url := fmt.Sprintf("%s/%s", strings.TrimRight(y.Config.MarketData.ChartBaseURL, "/"), symbol)

	respBytes, err := y.Network.Get(ctx, url, params)
	if err != nil {
		var statusErr *helpers.HTTPStatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == 404 {
			return nil, &helpers.NotFoundError{Symbol: symbol}
		}
		return nil, &helpers.UpstreamError{Provider: "yahoo", Cause: err}
	}

	return y.parseChartResponse(symbol, respBytes)
}

// -----------------------------------------------------------------------------

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`   // Use pointers to handle null
					High   []*float64 `json:"high"`   // Use pointers to handle null
					Low    []*float64 `json:"low"`    // Use pointers to handle null
					Close  []*float64 `json:"close"`  // Use pointers to handle null
					Volume []*float64 `json:"volume"` // Use pointers to handle null
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// -----------------------------------------------------------------------------

func (y *YahooMarketData) parseChartResponse(symbol string, data []byte) ([]models.MPricePoint, error) {
	var resp chartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &helpers.UpstreamError{Provider: "yahoo", Cause: fmt.Errorf("json unmarshal failed: %w", err)}
	}

	if resp.Chart.Error != nil {
		if strings.EqualFold(resp.Chart.Error.Code, "Not Found") {
			return nil, &helpers.NotFoundError{Symbol: symbol}
		}
		return nil, &helpers.UpstreamError{
			Provider: "yahoo",
			Cause:    fmt.Errorf("api error: %s - %s", resp.Chart.Error.Code, resp.Chart.Error.Description),
		}
	}

	if len(resp.Chart.Result) == 0 {
		return nil, &helpers.NotFoundError{Symbol: symbol}
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 || len(result.Timestamp) == 0 {
		return nil, &helpers.UpstreamError{Provider: "yahoo", Cause: fmt.Errorf("no quote data for %s", symbol)}
	}

	quote := result.Indicators.Quote[0]

	// Alignment check before indexing the parallel arrays
	n := len(result.Timestamp)
	if len(quote.Open) != n || len(quote.High) != n || len(quote.Low) != n ||
		len(quote.Close) != n || len(quote.Volume) != n {
		return nil, &helpers.UpstreamError{Provider: "yahoo", Cause: fmt.Errorf("data alignment error for %s", symbol)}
	}

	now := time.Now().UTC()
	points := make([]models.MPricePoint, 0, n)

	for i := 0; i < n; i++ {
		// Drop bars with null fields
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil ||
			quote.Close[i] == nil || quote.Volume[i] == nil {
			continue
		}

		closeVal := *quote.Close[i]
		volume := *quote.Volume[i]
		if closeVal <= 0 || volume < 0 {
			y.Logger.Debug("Skipping invalid point for %s: close=%f, volume=%f", symbol, closeVal, volume)
			continue
		}

		points = append(points, models.MPricePoint{
			Symbol:    symbol,
			Timestamp: result.Timestamp[i],
			Open:      *quote.Open[i],
			High:      *quote.High[i],
			Low:       *quote.Low[i],
			Close:     closeVal,
			Volume:    volume,
			FetchedAt: now,
		})
	}

	if len(points) == 0 {
		return nil, &helpers.UpstreamError{Provider: "yahoo", Cause: fmt.Errorf("no valid data points for %s", symbol)}
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp < points[j].Timestamp
	})

	return points, nil
}
