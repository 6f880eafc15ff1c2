package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection and runs the schema bootstrap.
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=tradedesk sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	wrapped := &DB{DB: db}
	if err := wrapped.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return wrapped, nil
}

func (db *DB) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS positions (
			id            UUID PRIMARY KEY,
			ticker        TEXT NOT NULL,
			shares        DOUBLE PRECISION NOT NULL,
			avg_cost      DOUBLE PRECISION NOT NULL,
			current_price DOUBLE PRECISION NOT NULL,
			sector        TEXT NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS watchlist_entries (
			id           UUID PRIMARY KEY,
			ticker       TEXT NOT NULL,
			entry_target DOUBLE PRECISION NOT NULL,
			stop_loss    DOUBLE PRECISION NOT NULL,
			take_profit  DOUBLE PRECISION NOT NULL,
			signal       TEXT NOT NULL,
			sector       TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS trades (
			id         UUID PRIMARY KEY,
			type       TEXT NOT NULL,
			ticker     TEXT NOT NULL,
			shares     DOUBLE PRECISION NOT NULL,
			price      DOUBLE PRECISION NOT NULL,
			fees       DOUBLE PRECISION NOT NULL,
			trade_date TEXT NOT NULL,
			notes      TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS alerts (
			id         UUID PRIMARY KEY,
			ticker     TEXT NOT NULL,
			condition  TEXT NOT NULL,
			threshold  DOUBLE PRECISION NOT NULL,
			triggered  BOOLEAN NOT NULL DEFAULT FALSE,
			message    TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS risk_settings (
			id                 BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (id),
			account_size       DOUBLE PRECISION NOT NULL,
			risk_percentage    DOUBLE PRECISION NOT NULL,
			flat_fee_per_trade DOUBLE PRECISION NOT NULL,
			updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_date ON trades (trade_date)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
