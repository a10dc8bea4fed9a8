package interfaces

import (
	"context"

	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// IMarketData defines the contract for fetching price data from the
// market-data provider. Failures are terminal per call: unknown symbols
// yield *helpers.NotFoundError, provider failures *helpers.UpstreamError.
// -----------------------------------------------------------------------------

type IMarketData interface {

	// GetHistory retrieves the historical OHLC series for a symbol over a
	// range expression such as "60d".
	GetHistory(ctx context.Context, symbol, rangeStr string) (models.MPriceSeries, error)

	// -----------------------------------------------------------------------------

	// GetLatest retrieves the most recent price point for a symbol.
	GetLatest(ctx context.Context, symbol string) (models.MPricePoint, error)
}

// -----------------------------------------------------------------------------
// ISymbolSearch defines the symbol lookup passthrough.
// -----------------------------------------------------------------------------

type ISymbolSearch interface {

	// Search returns symbols matching the query with display names.
	Search(ctx context.Context, query string) ([]models.MSymbolMatch, error)
}
