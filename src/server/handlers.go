package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"stock-dashboard/src/helpers"
	"stock-dashboard/src/models"
	"stock-dashboard/src/sentiment"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"subscriptions":  s.Publisher.ActiveSubscriptions(),
		"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
	})
}

// -----------------------------------------------------------------------------

// getCurated returns the small curated symbol list for quick UI choices.
func (s *Server) getCurated(c *gin.Context) {
	c.JSON(http.StatusOK, s.Config.Curated)
}

// -----------------------------------------------------------------------------

// getConfig returns streaming/analytics parameters the UI needs to label
// charts correctly.
func (s *Server) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"poll_interval_seconds": s.Config.Stream.PollIntervalSeconds,
		"lookback_bars":         s.Config.Stream.LookbackBars,
		"ma_short_window":       s.Config.Analytics.MAShortWindow,
		"ma_long_window":        s.Config.Analytics.MALongWindow,
		"var_confidence":        s.Config.Analytics.VarConfidence,
		"risk_free_rate_annual": s.Config.Analytics.RiskFreeRateAnnual,
	})
}

// -----------------------------------------------------------------------------

func (s *Server) getSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	matches, err := s.Search.Search(c.Request.Context(), query)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(matches),
		"results": matches,
	})
}

// -----------------------------------------------------------------------------

// getHistory returns the price series plus analytics. Insufficient history
// is a partial result: the series is returned and analytics is null.
func (s *Server) getHistory(c *gin.Context) {
	symbol := c.Param("symbol")
	rangeStr := c.DefaultQuery("range", s.Config.MarketData.DefaultRange)

	series, err := s.Market.GetHistory(c.Request.Context(), symbol, rangeStr)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	response := gin.H{
		"symbol":    symbol,
		"range":     rangeStr,
		"points":    series.Points,
		"analytics": nil,
	}

	snapshot, err := s.Engine.Compute(series)
	if err != nil {
		var insufficientErr *helpers.InsufficientDataError
		if !errors.As(err, &insufficientErr) {
			s.abortWithError(c, err)
			return
		}
		s.Logger.Debug("Analytics unavailable for %s: %v", symbol, err)
	} else {
		response["analytics"] = snapshot
	}

	c.JSON(http.StatusOK, response)
}

// -----------------------------------------------------------------------------

func (s *Server) getNewsSentiment(c *gin.Context) {
	symbol := c.Param("symbol")

	limit := s.Config.News.PageSize
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	headlines, err := s.News.GetHeadlines(c.Request.Context(), symbol, limit)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	results := make([]models.MSentimentResult, 0, len(headlines))
	for _, h := range headlines {
		results = append(results, s.Sentiment.Score(h))
	}

	c.JSON(http.StatusOK, sentiment.Summarize(symbol, results))
}

// -----------------------------------------------------------------------------
// Error Mapping
// -----------------------------------------------------------------------------

// abortWithError converts the error taxonomy into structured HTTP responses.
func (s *Server) abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var notFoundErr *helpers.NotFoundError
	var upstreamErr *helpers.UpstreamError
	var insufficientErr *helpers.InsufficientDataError

	switch {
	case errors.As(err, &notFoundErr):
		status = http.StatusNotFound
	case errors.As(err, &upstreamErr):
		status = http.StatusBadGateway
	case errors.As(err, &insufficientErr):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.Logger.Error("Unclassified handler error: %v", err)
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
