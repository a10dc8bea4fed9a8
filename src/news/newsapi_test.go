package news

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stock-dashboard/src/helpers"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
	"stock-dashboard/src/network"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

type fakeNetwork struct {
	response []byte
	err      error
	params   map[string]string
}

func (f *fakeNetwork) Get(ctx context.Context, url string, params map[string]string) ([]byte, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func testConfig() *models.MConfig {
	return &models.MConfig{
		LogLevel: "ERROR",
		News: models.MNewsConfig{
			BaseURL:  "https://news.example.com/v2",
			APIKey:   "test-key",
			PageSize: 10,
		},
	}
}

const validNewsJSON = `{
  "status": "ok",
  "totalResults": 2,
  "articles": [
    {
      "source": {"name": "Reuters"},
      "title": "Apple shares surge on earnings beat",
      "url": "https://example.com/1",
      "publishedAt": "2025-11-14T15:30:00Z"
    },
    {
      "source": {"name": "Bloomberg"},
      "title": "Analysts upgrade Apple",
      "url": "https://example.com/2",
      "publishedAt": "not-a-date"
    }
  ]
}`

// -----------------------------------------------------------------------------

func TestGetHeadlinesParsesArticles(t *testing.T) {
	net := &fakeNetwork{response: []byte(validNewsJSON)}
	client := NewNewsAPIClient(testConfig(), net)

	headlines, err := client.GetHeadlines(context.Background(), "AAPL", 5)
	require.NoError(t, err)
	require.Len(t, headlines, 2)

	assert.Equal(t, "Apple shares surge on earnings beat", headlines[0].Title)
	assert.Equal(t, "Reuters", headlines[0].Source)
	assert.Equal(t, time.Date(2025, 11, 14, 15, 30, 0, 0, time.UTC), headlines[0].PublishedAt)

	// Unparseable timestamps keep the headline with a zero time
	assert.True(t, headlines[1].PublishedAt.IsZero())

	assert.Equal(t, "AAPL", net.params["q"])
	assert.Equal(t, "5", net.params["pageSize"])
	assert.Equal(t, "publishedAt", net.params["sortBy"])
	assert.Equal(t, "test-key", net.params["apiKey"])
}

func TestGetHeadlinesDefaultLimit(t *testing.T) {
	net := &fakeNetwork{response: []byte(validNewsJSON)}
	client := NewNewsAPIClient(testConfig(), net)

	_, err := client.GetHeadlines(context.Background(), "AAPL", 0)
	require.NoError(t, err)
	assert.Equal(t, "10", net.params["pageSize"])
}

func TestGetHeadlinesEmptyIsNotAnError(t *testing.T) {
	empty := `{"status": "ok", "totalResults": 0, "articles": []}`
	client := NewNewsAPIClient(testConfig(), &fakeNetwork{response: []byte(empty)})

	headlines, err := client.GetHeadlines(context.Background(), "OBSCURE", 5)
	require.NoError(t, err)
	assert.Empty(t, headlines)
	assert.NotNil(t, headlines)
}

func TestGetHeadlinesSkipsUntitledArticles(t *testing.T) {
	payload := `{"status": "ok", "articles": [
	  {"source": {"name": "X"}, "title": "", "publishedAt": "2025-11-14T15:30:00Z"},
	  {"source": {"name": "Y"}, "title": "Real story", "publishedAt": "2025-11-14T15:30:00Z"}
	]}`
	client := NewNewsAPIClient(testConfig(), &fakeNetwork{response: []byte(payload)})

	headlines, err := client.GetHeadlines(context.Background(), "AAPL", 5)
	require.NoError(t, err)
	require.Len(t, headlines, 1)
	assert.Equal(t, "Real story", headlines[0].Title)
}

func TestGetHeadlinesUpstreamErrorOnBadStatus(t *testing.T) {
	payload := `{"status": "error", "code": "apiKeyInvalid"}`
	client := NewNewsAPIClient(testConfig(), &fakeNetwork{response: []byte(payload)})

	_, err := client.GetHeadlines(context.Background(), "AAPL", 5)

	var upstreamErr *helpers.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, "newsapi", upstreamErr.Provider)
}

func TestGetHeadlinesUpstreamErrorOnTransportFailure(t *testing.T) {
	client := NewNewsAPIClient(testConfig(), &fakeNetwork{err: errors.New("timeout")})

	_, err := client.GetHeadlines(context.Background(), "AAPL", 5)

	var upstreamErr *helpers.UpstreamError
	assert.True(t, errors.As(err, &upstreamErr))
}

// -----------------------------------------------------------------------------

func TestGetHeadlinesThroughNetworkManager(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/everything", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(validNewsJSON))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.News.BaseURL = srv.URL
	cfg.Network = models.MNetworkConfig{RequestTimeout: 5, MaxRetries: 1}

	netMgr := network.NewNetworkManager(cfg, logger.NewLogger("ERROR", "test"))
	client := NewNewsAPIClient(cfg, netMgr)

	headlines, err := client.GetHeadlines(context.Background(), "AAPL", 5)
	require.NoError(t, err)
	assert.Len(t, headlines, 2)
}
