package news

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"stock-dashboard/src/helpers"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// NewsAPIClient implements INews against the NewsAPI "everything" endpoint,
// sorted by publish time, English only.
// -----------------------------------------------------------------------------

type NewsAPIClient struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

var _ interfaces.INews = (*NewsAPIClient)(nil)

// -----------------------------------------------------------------------------

func NewNewsAPIClient(cfg *models.MConfig, netMgr interfaces.INetworkManager) *NewsAPIClient {
	return &NewsAPIClient{
		Config:  cfg,
		Network: netMgr,
		Logger:  logger.NewLogger(cfg.LogLevel, "NewsAPIClient"),
	}
}

// -----------------------------------------------------------------------------

type everythingResponse struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// -----------------------------------------------------------------------------

// GetHeadlines returns up to limit recent headlines mentioning the symbol.
// No matching articles yields an empty slice, not an error.
func (n *NewsAPIClient) GetHeadlines(ctx context.Context, symbol string, limit int) ([]models.MHeadline, error) {
	if limit <= 0 {
		limit = n.Config.News.PageSize
	}

	params := map[string]string{
		"q":        symbol,
		"sortBy":   "publishedAt",
		"language": "en",
		"pageSize": strconv.Itoa(limit),
		"apiKey":   n.Config.News.APIKey,
	}

	url := fmt.Sprintf("%s/everything", strings.TrimRight(n.Config.News.BaseURL, "/"))

	respBytes, err := n.Network.Get(ctx, url, params)
	if err != nil {
		return nil, &helpers.UpstreamError{Provider: "newsapi", Cause: err}
	}

	var resp everythingResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, &helpers.UpstreamError{Provider: "newsapi", Cause: fmt.Errorf("json unmarshal failed: %w", err)}
	}
	if resp.Status != "ok" {
		return nil, &helpers.UpstreamError{Provider: "newsapi", Cause: fmt.Errorf("status %q", resp.Status)}
	}

	headlines := make([]models.MHeadline, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if a.Title == "" {
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, a.PublishedAt)
		if err != nil {
			n.Logger.Debug("Unparseable publishedAt %q for %s", a.PublishedAt, symbol)
			publishedAt = time.Time{}
		}

		headlines = append(headlines, models.MHeadline{
			Title:       a.Title,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: publishedAt,
		})
	}

	return headlines, nil
}
