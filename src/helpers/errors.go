package helpers

import "fmt"

// -----------------------------------------------------------------------------
// Error Taxonomy
//
// NotFoundError      - unknown symbol, user-correctable (HTTP 404)
// UpstreamError      - provider unavailable or timed out (HTTP 502)
// InsufficientDataError - not enough history for a metric; surfaced as a
//                      partial result or an in-band stream notification
// -----------------------------------------------------------------------------

// NotFoundError indicates the requested symbol is unknown to the provider.
type NotFoundError struct {
	Symbol string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("symbol not found: %s", e.Symbol)
}

// -----------------------------------------------------------------------------

// UpstreamError indicates a provider failure or timeout. Callers treat the
// call as terminal; it is never fatal to the process.
type UpstreamError struct {
	Provider string
	Cause    error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upstream %s failed: %v", e.Provider, e.Cause)
	}
	return fmt.Sprintf("upstream %s failed", e.Provider)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// -----------------------------------------------------------------------------

// InsufficientDataError indicates a series is shorter than the minimum
// window required by the analytics engine. Typed outcome, never a NaN.
type InsufficientDataError struct {
	Symbol   string
	Required int
	Got      int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: need %d points, got %d", e.Symbol, e.Required, e.Got)
}

// -----------------------------------------------------------------------------

// HTTPStatusError carries a non-2xx response status from the network layer
// so clients can map it onto the taxonomy above (e.g. 404 -> NotFoundError).
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("http %d from %s", e.StatusCode, e.URL)
}
