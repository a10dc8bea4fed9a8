package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"stock-dashboard/src/helpers"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// NetworkManager performs outbound HTTP requests for the upstream clients.
// Timeout, retry count and user agent come from the network config section.
// -----------------------------------------------------------------------------

type NetworkManager struct {
	Config *models.MConfig
	Client *http.Client
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewNetworkManager(cfg *models.MConfig, log *logger.Logger) *NetworkManager {
	return &NetworkManager{
		Config: cfg,
		Logger: log,
		Client: &http.Client{
			Timeout: time.Duration(cfg.Network.RequestTimeout) * time.Second,
		},
	}
}

// -----------------------------------------------------------------------------

// Get performs a GET request with query parameters and configured retries.
// Non-2xx responses return *helpers.HTTPStatusError; 4xx are not retried.
func (nm *NetworkManager) Get(ctx context.Context, rawURL string, params map[string]string) ([]byte, error) {
	fullURL, err := buildURL(rawURL, params)
	if err != nil {
		return nil, err
	}

	return helpers.RetryWithBackoff(ctx, nm.Config.Network.MaxRetries, 500*time.Millisecond, func() ([]byte, error) {
		return nm.doGet(ctx, fullURL)
	})
}

// -----------------------------------------------------------------------------

func (nm *NetworkManager) doGet(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	if nm.Config.Network.UserAgent != "" {
		req.Header.Set("User-Agent", nm.Config.Network.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := nm.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		nm.Logger.Debug("GET %s -> %d", fullURL, resp.StatusCode)
		return nil, &helpers.HTTPStatusError{URL: fullURL, StatusCode: resp.StatusCode}
	}

	return body, nil
}

// -----------------------------------------------------------------------------

func buildURL(rawURL string, params map[string]string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url '%s': %w", rawURL, err)
	}

	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
