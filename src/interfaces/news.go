package interfaces

import (
	"context"

	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// INews defines the contract for fetching recent headlines.
// -----------------------------------------------------------------------------

type INews interface {

	// GetHeadlines returns up to limit recent headlines for a symbol.
	// No headlines is an empty slice, not an error.
	GetHeadlines(ctx context.Context, symbol string, limit int) ([]models.MHeadline, error)
}
