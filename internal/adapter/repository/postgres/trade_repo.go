package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tradedesk/tradedesk-backend/internal/domain"
)

// tradeRepository implements domain.TradeRepository
type tradeRepository struct {
	db *DB
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(db *DB) domain.TradeRepository {
	return &tradeRepository{db: db}
}

// List retrieves all trades ordered by date, then creation time.
// trade_date is a YYYY-MM-DD string, so text ordering is date ordering.
func (r *tradeRepository) List(ctx context.Context) ([]*domain.TradeRecord, error) {
	query := `
		SELECT id, type, ticker, shares, price, fees, trade_date, notes, created_at
		FROM trades
		ORDER BY trade_date, created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	defer rows.Close()

	var trades []*domain.TradeRecord
	for rows.Next() {
		var t domain.TradeRecord
		if err := rows.Scan(&t.ID, &t.Type, &t.Ticker, &t.Shares, &t.Price, &t.Fees, &t.Date, &t.Notes, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, &t)
	}
	return trades, rows.Err()
}

// Create creates a new trade record
func (r *tradeRepository) Create(ctx context.Context, t *domain.TradeRecord) error {
	query := `
		INSERT INTO trades (id, type, ticker, shares, price, fees, trade_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, string(t.Type), t.Ticker, t.Shares, t.Price, t.Fees, t.Date, t.Notes, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create trade: %w", err)
	}
	return nil
}

// Delete removes a trade record
func (r *tradeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	return requireRow(result)
}
