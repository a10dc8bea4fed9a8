package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"stock-dashboard/src/helpers"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// FinnhubSearch implements ISymbolSearch against the Finnhub symbol lookup
// endpoint. Pure passthrough: no caching, no retry beyond the network layer.
// -----------------------------------------------------------------------------

type FinnhubSearch struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

var _ interfaces.ISymbolSearch = (*FinnhubSearch)(nil)

// -----------------------------------------------------------------------------

func NewFinnhubSearch(cfg *models.MConfig, netMgr interfaces.INetworkManager) *FinnhubSearch {
	return &FinnhubSearch{
		Config:  cfg,
		Network: netMgr,
		Logger:  logger.NewLogger(cfg.LogLevel, "FinnhubSearch"),
	}
}

// -----------------------------------------------------------------------------

type searchResponse struct {
	Count  int `json:"count"`
	Result []struct {
		Symbol      string `json:"symbol"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Currency    string `json:"currency"`
	} `json:"result"`
}

// -----------------------------------------------------------------------------

// Search returns symbols matching the query with display names.
func (f *FinnhubSearch) Search(ctx context.Context, query string) ([]models.MSymbolMatch, error) {
	params := map[string]string{
		"q":     query,
		"token": f.Config.MarketData.SearchAPIKey,
	}

	url := fmt.Sprintf("%s/search", strings.TrimRight(f.Config.MarketData.SearchBaseURL, "/"))

	respBytes, err := f.Network.Get(ctx, url, params)
	if err != nil {
		return nil, &helpers.UpstreamError{Provider: "finnhub", Cause: err}
	}

	var resp searchResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, &helpers.UpstreamError{Provider: "finnhub", Cause: fmt.Errorf("json unmarshal failed: %w", err)}
	}

	matches := make([]models.MSymbolMatch, 0, len(resp.Result))
	for _, item := range resp.Result {
		matches = append(matches, models.MSymbolMatch{
			Symbol:      item.Symbol,
			Description: item.Description,
			Type:        item.Type,
			Currency:    item.Currency,
		})
	}

	return matches, nil
}
