package interfaces

import "stock-dashboard/src/models"

// -----------------------------------------------------------------------------
// IDatabase defines the contract for the write-only history recorder.
// Recording is best effort: the streaming pipeline never fails a tick
// because of a storage error.
// -----------------------------------------------------------------------------

type IDatabase interface {

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SavePricePoint records one fetched price point.
	SavePricePoint(point models.MPricePoint) error

	// -----------------------------------------------------------------------------

	// SaveSnapshot records one computed analytics snapshot.
	SaveSnapshot(snapshot models.MAnalyticsSnapshot) error

	// -----------------------------------------------------------------------------

	// CleanupOldData removes data older than the retention policy.
	CleanupOldData(retentionDays int) error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
