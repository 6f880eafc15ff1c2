package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tradedesk/tradedesk-backend/internal/domain"
)

// positionRepository implements domain.PositionRepository
type positionRepository struct {
	db *DB
}

// NewPositionRepository creates a new position repository
func NewPositionRepository(db *DB) domain.PositionRepository {
	return &positionRepository{db: db}
}

// List retrieves all positions ordered by ticker
func (r *positionRepository) List(ctx context.Context) ([]*domain.Position, error) {
	query := `
		SELECT id, ticker, shares, avg_cost, current_price, sector, created_at
		FROM positions
		ORDER BY ticker
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var positions []*domain.Position
	for rows.Next() {
		var p domain.Position
		if err := rows.Scan(&p.ID, &p.Ticker, &p.Shares, &p.AvgCost, &p.CurrentPrice, &p.Sector, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, &p)
	}
	return positions, rows.Err()
}

// GetByID retrieves a position by its ID
func (r *positionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Position, error) {
	query := `
		SELECT id, ticker, shares, avg_cost, current_price, sector, created_at
		FROM positions
		WHERE id = $1
	`

	var p domain.Position
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Ticker, &p.Shares, &p.AvgCost, &p.CurrentPrice, &p.Sector, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get position by ID: %w", err)
	}
	return &p, nil
}

// Create creates a new position
func (r *positionRepository) Create(ctx context.Context, p *domain.Position) error {
	query := `
		INSERT INTO positions (id, ticker, shares, avg_cost, current_price, sector, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Ticker, p.Shares, p.AvgCost, p.CurrentPrice, p.Sector, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create position: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an existing position
func (r *positionRepository) Update(ctx context.Context, p *domain.Position) error {
	query := `
		UPDATE positions
		SET ticker = $2, shares = $3, avg_cost = $4, current_price = $5, sector = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		p.ID, p.Ticker, p.Shares, p.AvgCost, p.CurrentPrice, p.Sector,
	)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}
	return requireRow(result)
}

// Delete removes a position
func (r *positionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM positions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	return requireRow(result)
}

// requireRow maps a zero-row write to domain.ErrNotFound.
func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
