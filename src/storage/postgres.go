package storage

import (
	"database/sql"
	"fmt"
	"time"

	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------
// PostgresDB is the Postgres flavor of the history recorder, selected via
// storage.db_type in the config.
// -----------------------------------------------------------------------------

type PostgresDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresDB(cfg *models.MConfig, log *logger.Logger) (*PostgresDB, error) {
	return &PostgresDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Initialize() error {
	db, err := sql.Open("postgres", d.Config.Storage.DBConnectionString)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db
	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) createTables() error {
	query := `
		CREATE TABLE IF NOT EXISTS price_points (
			symbol TEXT,
			timestamp BIGINT,
			open DOUBLE PRECISION,
			high DOUBLE PRECISION,
			low DOUBLE PRECISION,
			close DOUBLE PRECISION,
			volume DOUBLE PRECISION,
			PRIMARY KEY (symbol, timestamp)
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create price_points: %w", err)
	}

	query = `
		CREATE TABLE IF NOT EXISTS snapshots (
			symbol TEXT,
			timestamp BIGINT,
			last_price DOUBLE PRECISION,
			percent_change DOUBLE PRECISION,
			ma_short DOUBLE PRECISION,
			ma_long DOUBLE PRECISION,
			volatility DOUBLE PRECISION,
			sharpe_ratio DOUBLE PRECISION,
			value_at_risk DOUBLE PRECISION,
			data_points INTEGER,
			market_open BOOLEAN,
			PRIMARY KEY (symbol, timestamp)
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create snapshots: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) SavePricePoint(point models.MPricePoint) error {
	query := `
		INSERT INTO price_points (symbol, timestamp, open, high, low, close, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (symbol, timestamp) DO UPDATE SET
			open = EXCLUDED.open, high = EXCLUDED.high, low = EXCLUDED.low,
			close = EXCLUDED.close, volume = EXCLUDED.volume;
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

func (d *PostgresDB) SaveSnapshot(snapshot models.MAnalyticsSnapshot) error {
	query := `
		INSERT INTO snapshots
			(symbol, timestamp, last_price, percent_change, ma_short, ma_long,
			 volatility, sharpe_ratio, value_at_risk, data_points, market_open)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (symbol, timestamp) DO NOTHING;
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

func (d *PostgresDB) CleanupOldData(retentionDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Unix()

	if _, err := d.DB.Exec("DELETE FROM price_points WHERE timestamp < $1", cutoff); err != nil {
		return fmt.Errorf("failed to cleanup price_points: %w", err)
	}
	if _, err := d.DB.Exec("DELETE FROM snapshots WHERE timestamp < $1", cutoff); err != nil {
		return fmt.Errorf("failed to cleanup snapshots: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}
