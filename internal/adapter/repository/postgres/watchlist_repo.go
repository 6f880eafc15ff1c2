package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tradedesk/tradedesk-backend/internal/domain"
)

// watchlistRepository implements domain.WatchlistRepository
type watchlistRepository struct {
	db *DB
}

// NewWatchlistRepository creates a new watchlist repository
func NewWatchlistRepository(db *DB) domain.WatchlistRepository {
	return &watchlistRepository{db: db}
}

// List retrieves all watchlist entries ordered by ticker
func (r *watchlistRepository) List(ctx context.Context) ([]*domain.WatchlistEntry, error) {
	query := `
		SELECT id, ticker, entry_target, stop_loss, take_profit, signal, sector, created_at
		FROM watchlist_entries
		ORDER BY ticker
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.WatchlistEntry
	for rows.Next() {
		var w domain.WatchlistEntry
		if err := rows.Scan(&w.ID, &w.Ticker, &w.EntryTarget, &w.StopLoss, &w.TakeProfit, &w.Signal, &w.Sector, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist entry: %w", err)
		}
		entries = append(entries, &w)
	}
	return entries, rows.Err()
}

// GetByID retrieves a watchlist entry by its ID
func (r *watchlistRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WatchlistEntry, error) {
	query := `
		SELECT id, ticker, entry_target, stop_loss, take_profit, signal, sector, created_at
		FROM watchlist_entries
		WHERE id = $1
	`

	var w domain.WatchlistEntry
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&w.ID, &w.Ticker, &w.EntryTarget, &w.StopLoss, &w.TakeProfit, &w.Signal, &w.Sector, &w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get watchlist entry by ID: %w", err)
	}
	return &w, nil
}

// Create creates a new watchlist entry
func (r *watchlistRepository) Create(ctx context.Context, w *domain.WatchlistEntry) error {
	query := `
		INSERT INTO watchlist_entries (id, ticker, entry_target, stop_loss, take_profit, signal, sector, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		w.ID, w.Ticker, w.EntryTarget, w.StopLoss, w.TakeProfit, string(w.Signal), w.Sector, w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create watchlist entry: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an existing entry
func (r *watchlistRepository) Update(ctx context.Context, w *domain.WatchlistEntry) error {
	query := `
		UPDATE watchlist_entries
		SET ticker = $2, entry_target = $3, stop_loss = $4, take_profit = $5, signal = $6, sector = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		w.ID, w.Ticker, w.EntryTarget, w.StopLoss, w.TakeProfit, string(w.Signal), w.Sector,
	)
	if err != nil {
		return fmt.Errorf("failed to update watchlist entry: %w", err)
	}
	return requireRow(result)
}

// Delete removes a watchlist entry
func (r *watchlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM watchlist_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete watchlist entry: %w", err)
	}
	return requireRow(result)
}
