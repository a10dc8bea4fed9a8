package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

const minimalYAML = `
name: "stock-dashboard"
host: "127.0.0.1"
port: 8000
log_level: "INFO"
storage:
  db_type: "sqlite"
  db_path: "test.db"
curated:
  AAPL: "Apple Inc."
`

// -----------------------------------------------------------------------------

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// -----------------------------------------------------------------------------

func TestNewConfigAppliesDefaults(t *testing.T) {
	conf, err := NewConfig(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "stock-dashboard", conf.Name)
	assert.Equal(t, 8000, conf.Port)

	// Defaults filled in for every omitted section
	assert.Equal(t, "60d", conf.MarketData.DefaultRange)
	assert.Equal(t, 5, conf.Analytics.MAShortWindow)
	assert.Equal(t, 20, conf.Analytics.MALongWindow)
	assert.Equal(t, 252, conf.Analytics.TradingDaysPerYear)
	assert.Equal(t, 0.95, conf.Analytics.VarConfidence)
	assert.Equal(t, 20, conf.Analytics.VarMinPoints)
	assert.Equal(t, conf.Analytics.MAShortWindow, conf.Analytics.MinPoints)
	assert.Equal(t, 5, conf.Stream.PollIntervalSeconds)
	assert.Equal(t, 120, conf.Stream.LookbackBars)
	assert.Equal(t, 10, conf.Network.RequestTimeout)
	assert.Equal(t, 3, conf.Network.MaxRetries)

	assert.Equal(t, "Apple Inc.", conf.Curated["AAPL"])
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNewConfigInvalidYAML(t *testing.T) {
	_, err := NewConfig(writeConfig(t, "name: [unterminated"))
	assert.Error(t, err)
}

// -----------------------------------------------------------------------------

func TestValidateRejectsBadPort(t *testing.T) {
	_, err := NewConfig(writeConfig(t, `
name: "app"
host: "127.0.0.1"
port: 80
storage:
  db_type: "sqlite"
  db_path: "test.db"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestValidateRejectsInvertedWindows(t *testing.T) {
	_, err := NewConfig(writeConfig(t, `
name: "app"
host: "127.0.0.1"
port: 8000
storage:
  db_type: "sqlite"
  db_path: "test.db"
analytics:
  ma_short_window: 50
  ma_long_window: 10
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window")
}

func TestValidateRejectsBadVarConfidence(t *testing.T) {
	_, err := NewConfig(writeConfig(t, `
name: "app"
host: "127.0.0.1"
port: 8000
storage:
  db_type: "sqlite"
  db_path: "test.db"
analytics:
  var_confidence: 1.5
`))
	assert.Error(t, err)
}

func TestValidateRequiresPostgresConnectionString(t *testing.T) {
	_, err := NewConfig(writeConfig(t, `
name: "app"
host: "127.0.0.1"
port: 8000
storage:
  db_type: "postgres"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection string")
}

// -----------------------------------------------------------------------------

func TestSaveRoundTrip(t *testing.T) {
	conf, err := NewConfig(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, conf.Save(path))

	reloaded, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, conf.Name, reloaded.Name)
	assert.Equal(t, conf.Analytics, reloaded.Analytics)
	assert.Equal(t, conf.Curated, reloaded.Curated)
}
