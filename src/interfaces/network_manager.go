package interfaces

import "context"

// -----------------------------------------------------------------------------
// INetworkManager defines the contract for HTTP requests with retry logic.
// -----------------------------------------------------------------------------

type INetworkManager interface {

	// Get performs a GET request to the specified URL with query parameters.
	// Non-2xx responses yield *helpers.HTTPStatusError.
	Get(ctx context.Context, url string, params map[string]string) ([]byte, error)
}
