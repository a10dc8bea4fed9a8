package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"stock-dashboard/src/analytics"
	"stock-dashboard/src/helpers"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
	"stock-dashboard/src/sentiment"
	"stock-dashboard/src/stream"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// -----------------------------------------------------------------------------
// Fakes
// -----------------------------------------------------------------------------

type fakeMarket struct {
	series models.MPriceSeries
	err    error
}

func (f *fakeMarket) GetHistory(ctx context.Context, symbol, rangeStr string) (models.MPriceSeries, error) {
	if f.err != nil {
		return models.MPriceSeries{}, f.err
	}
	series := f.series
	series.Symbol = symbol
	series.Range = rangeStr
	return series, nil
}

func (f *fakeMarket) GetLatest(ctx context.Context, symbol string) (models.MPricePoint, error) {
	if f.err != nil {
		return models.MPricePoint{}, f.err
	}
	return f.series.Points[len(f.series.Points)-1], nil
}

type fakeSearch struct {
	matches []models.MSymbolMatch
	err     error
}

func (f *fakeSearch) Search(ctx context.Context, query string) ([]models.MSymbolMatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.matches, nil
}

type fakeNews struct {
	headlines []models.MHeadline
	err       error
}

func (f *fakeNews) GetHeadlines(ctx context.Context, symbol string, limit int) ([]models.MHeadline, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.headlines) {
		return f.headlines[:limit], nil
	}
	return f.headlines, nil
}

// -----------------------------------------------------------------------------

func seriesOf(closes ...float64) models.MPriceSeries {
	points := make([]models.MPricePoint, len(closes))
	for i, c := range closes {
		points[i] = models.MPricePoint{
			Symbol:    "AAPL",
			Timestamp: int64(1700000000 + i*86400),
			Close:     c,
			Volume:    1000,
		}
	}
	return models.MPriceSeries{Points: points}
}

func testServer(market *fakeMarket, search *fakeSearch, newsClient *fakeNews) *Server {
	cfg := &models.MConfig{
		Name:     "test",
		Host:     "127.0.0.1",
		Port:     8000,
		LogLevel: "ERROR",
		MarketData: models.MMarketDataConfig{
			DefaultRange: "60d",
		},
		News: models.MNewsConfig{PageSize: 10},
		Analytics: models.MAnalyticsConfig{
			MAShortWindow:      5,
			MALongWindow:       20,
			TradingDaysPerYear: 252,
			VarConfidence:      0.95,
			VarMinPoints:       20,
			MinPoints:          5,
		},
		Stream: models.MStreamConfig{
			PollIntervalSeconds: 5,
			LookbackBars:        120,
			SendBufferSize:      64,
		},
		Curated: map[string]string{"AAPL": "Apple Inc.", "TSLA": "Tesla, Inc."},
	}

	log := logger.NewLogger("ERROR", "test")
	engine := analytics.NewEngine(&cfg.Analytics, log)
	publisher := stream.NewPublisher(cfg, market, engine, nil, log)

	return NewServer(cfg, log, market, search, newsClient, sentiment.NewLexiconScorer(), engine, publisher)
}

func doRequest(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	s.Handler().ServeHTTP(w, req)
	return w
}

// -----------------------------------------------------------------------------
// Health / Curated / Config
// -----------------------------------------------------------------------------

func TestGetHealth(t *testing.T) {
	s := testServer(&fakeMarket{}, &fakeSearch{}, &fakeNews{})

	w := doRequest(t, s, http.MethodGet, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(0), body["subscriptions"])
}

func TestGetCurated(t *testing.T) {
	s := testServer(&fakeMarket{}, &fakeSearch{}, &fakeNews{})

	w := doRequest(t, s, http.MethodGet, "/api/curated")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Apple Inc.", body["AAPL"])
	assert.Len(t, body, 2)
}

func TestGetConfig(t *testing.T) {
	s := testServer(&fakeMarket{}, &fakeSearch{}, &fakeNews{})

	w := doRequest(t, s, http.MethodGet, "/api/config")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(5), body["poll_interval_seconds"])
	assert.Equal(t, float64(120), body["lookback_bars"])
	assert.Equal(t, 0.95, body["var_confidence"])
}

// -----------------------------------------------------------------------------
// Search
// -----------------------------------------------------------------------------

func TestGetSearchRequiresQuery(t *testing.T) {
	s := testServer(&fakeMarket{}, &fakeSearch{}, &fakeNews{})

	w := doRequest(t, s, http.MethodGet, "/api/search")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSearchReturnsMatches(t *testing.T) {
	search := &fakeSearch{matches: []models.MSymbolMatch{
		{Symbol: "AAPL", Description: "APPLE INC"},
	}}
	s := testServer(&fakeMarket{}, search, &fakeNews{})

	w := doRequest(t, s, http.MethodGet, "/api/search?q=apple")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count   int                   `json:"count"`
		Results []models.MSymbolMatch `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "AAPL", body.Results[0].Symbol)
}

func TestGetSearchUpstreamFailure(t *testing.T) {
	search := &fakeSearch{err: &helpers.UpstreamError{Provider: "finnhub"}}
	s := testServer(&fakeMarket{}, search, &fakeNews{})

	w := doRequest(t, s, http.MethodGet, "/api/search?q=apple")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

// -----------------------------------------------------------------------------
// History
// -----------------------------------------------------------------------------

func TestGetHistoryWithAnalytics(t *testing.T) {
	market := &fakeMarket{series: seriesOf(100, 102, 101, 105, 99)}
	s := testServer(market, &fakeSearch{}, &fakeNews{})

	w := doRequest(t, s, http.MethodGet, "/api/history/AAPL")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Symbol    string                     `json:"symbol"`
		Range     string                     `json:"range"`
		Points    []models.MPricePoint       `json:"points"`
		Analytics *models.MAnalyticsSnapshot `json:"analytics"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "AAPL", body.Symbol)
	assert.Equal(t, "60d", body.Range)
	assert.Len(t, body.Points, 5)

	require.NotNil(t, body.Analytics)
	require.NotNil(t, body.Analytics.MAShort)
	assert.InDelta(t, 101.4, *body.Analytics.MAShort, 1e-9)
	assert.Nil(t, body.Analytics.MALong)
}

func TestGetHistoryInsufficientDataIsPartial(t *testing.T) {
	market := &fakeMarket{series: seriesOf(100, 101)}
	s := testServer(market, &fakeSearch{}, &fakeNews{})

	w := doRequest(t, s, http.MethodGet, "/api/history/NEW")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Nil(t, body["analytics"])
	assert.Len(t, body["points"], 2)
}

func TestGetHistoryUnknownSymbol(t *testing.T) {
	market := &fakeMarket{err: &helpers.NotFoundError{Symbol: "NOPE"}}
	s := testServer(market, &fakeSearch{}, &fakeNews{})

	w := doRequest(t, s, http.MethodGet, "/api/history/NOPE")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "NOPE")
}

func TestGetHistoryUpstreamFailure(t *testing.T) {
	market := &fakeMarket{err: &helpers.UpstreamError{Provider: "yahoo"}}
	s := testServer(market, &fakeSearch{}, &fakeNews{})

	w := doRequest(t, s, http.MethodGet, "/api/history/AAPL")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetHistoryCustomRange(t *testing.T) {
	market := &fakeMarket{series: seriesOf(100, 102, 101, 105, 99)}
	s := testServer(market, &fakeSearch{}, &fakeNews{})

	w := doRequest(t, s, http.MethodGet, "/api/history/AAPL?range=5d")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "5d", body["range"])
}

// -----------------------------------------------------------------------------
// News sentiment
// -----------------------------------------------------------------------------

func TestGetNewsSentiment(t *testing.T) {
	newsClient := &fakeNews{headlines: []models.MHeadline{
		{Title: "Shares surge on strong earnings beat", Source: "A"},
		{Title: "Stock plunges amid fraud lawsuit", Source: "B"},
		{Title: "Company schedules annual meeting", Source: "C"},
	}}
	s := testServer(&fakeMarket{}, &fakeSearch{}, newsClient)

	w := doRequest(t, s, http.MethodGet, "/api/news-sentiment/AAPL")
	require.Equal(t, http.StatusOK, w.Code)

	var body models.MNewsSentimentSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "AAPL", body.Symbol)
	assert.Equal(t, 3, body.Count)
	assert.Equal(t, "Shares surge on strong earnings beat", body.MostPositive)
	assert.Equal(t, "Stock plunges amid fraud lawsuit", body.MostNegative)
	assert.Len(t, body.Results, 3)
}

func TestGetNewsSentimentNoHeadlines(t *testing.T) {
	s := testServer(&fakeMarket{}, &fakeSearch{}, &fakeNews{})

	w := doRequest(t, s, http.MethodGet, "/api/news-sentiment/OBSCURE")
	require.Equal(t, http.StatusOK, w.Code)

	var body models.MNewsSentimentSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Count)
	assert.Equal(t, "neutral", body.Summary)
}

func TestGetNewsSentimentBadLimit(t *testing.T) {
	s := testServer(&fakeMarket{}, &fakeSearch{}, &fakeNews{})

	w := doRequest(t, s, http.MethodGet, "/api/news-sentiment/AAPL?limit=zero")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, s, http.MethodGet, "/api/news-sentiment/AAPL?limit=-3")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetNewsSentimentUpstreamFailure(t *testing.T) {
	newsClient := &fakeNews{err: &helpers.UpstreamError{Provider: "newsapi"}}
	s := testServer(&fakeMarket{}, &fakeSearch{}, newsClient)

	w := doRequest(t, s, http.MethodGet, "/api/news-sentiment/AAPL")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
