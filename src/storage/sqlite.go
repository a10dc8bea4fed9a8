package storage

import (
	"database/sql"
	"fmt"
	"time"

	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------
// SQLiteDB records fetched price points and computed snapshots for offline
// inspection. Write-only history: the streaming pipeline never reads it back.
// -----------------------------------------------------------------------------

type SQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteDB(cfg *models.MConfig, log *logger.Logger) (*SQLiteDB, error) {
	return &SQLiteDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Initialize() error {
	db, err := sql.Open("sqlite", d.Config.Storage.DBPath)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) createTables() error {
	// SQLite types: INTEGER for int64, REAL for float64, TEXT for string
	query := `
		CREATE TABLE IF NOT EXISTS price_points (
			symbol TEXT,
			timestamp INTEGER,
			open REAL,
			high REAL,
			low REAL,
			close REAL,
			volume REAL,
			PRIMARY KEY (symbol, timestamp)
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create price_points: %w", err)
	}

	query = `
		CREATE TABLE IF NOT EXISTS snapshots (
			symbol TEXT,
			timestamp INTEGER,
			last_price REAL,
			percent_change REAL,
			ma_short REAL,
			ma_long REAL,
			volatility REAL,
			sharpe_ratio REAL,
			value_at_risk REAL,
			data_points INTEGER,
			market_open INTEGER,
			PRIMARY KEY (symbol, timestamp)
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create snapshots: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) SavePricePoint(point models.MPricePoint) error {
	query := `
		INSERT OR REPLACE INTO price_points
			(symbol, timestamp, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	_, err := d.DB.Exec(query,
		point.Symbol, point.Timestamp,
		point.Open, point.High, point.Low, point.Close, point.Volume)
	if err != nil {
		return fmt.Errorf("failed to save price point: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) SaveSnapshot(snapshot models.MAnalyticsSnapshot) error {
	query := `
		INSERT OR REPLACE INTO snapshots
			(symbol, timestamp, last_price, percent_change, ma_short, ma_long,
			 volatility, sharpe_ratio, value_at_risk, data_points, market_open)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := d.DB.Exec(query,
		snapshot.Symbol, snapshot.Timestamp, snapshot.LastPrice,
		nullable(snapshot.PercentChange), nullable(snapshot.MAShort), nullable(snapshot.MALong),
		nullable(snapshot.Volatility), nullable(snapshot.SharpeRatio), nullable(snapshot.ValueAtRisk),
		snapshot.DataPoints, snapshot.MarketOpen)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) CleanupOldData(retentionDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Unix()

	if _, err := d.DB.Exec("DELETE FROM price_points WHERE timestamp < ?", cutoff); err != nil {
		return fmt.Errorf("failed to cleanup price_points: %w", err)
	}
	if _, err := d.DB.Exec("DELETE FROM snapshots WHERE timestamp < ?", cutoff); err != nil {
		return fmt.Errorf("failed to cleanup snapshots: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// -----------------------------------------------------------------------------

// nullable maps an optional metric onto a SQL NULL.
func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
