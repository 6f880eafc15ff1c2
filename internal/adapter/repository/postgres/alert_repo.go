package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tradedesk/tradedesk-backend/internal/domain"
)

// alertRepository implements domain.AlertRepository
type alertRepository struct {
	db *DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *DB) domain.AlertRepository {
	return &alertRepository{db: db}
}

// List retrieves all alerts ordered by creation time descending
func (r *alertRepository) List(ctx context.Context) ([]*domain.Alert, error) {
	query := `
		SELECT id, ticker, condition, threshold, triggered, message, created_at
		FROM alerts
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*domain.Alert
	for rows.Next() {
		var a domain.Alert
		if err := rows.Scan(&a.ID, &a.Ticker, &a.Condition, &a.Threshold, &a.Triggered, &a.Message, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, &a)
	}
	return alerts, rows.Err()
}

// Create creates a new alert
func (r *alertRepository) Create(ctx context.Context, a *domain.Alert) error {
	query := `
		INSERT INTO alerts (id, ticker, condition, threshold, triggered, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Ticker, string(a.Condition), a.Threshold, a.Triggered, a.Message, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

// MarkTriggered sets the triggered flag and message on an alert
func (r *alertRepository) MarkTriggered(ctx context.Context, id uuid.UUID, message string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE alerts SET triggered = TRUE, message = $2 WHERE id = $1`, id, message)
	if err != nil {
		return fmt.Errorf("failed to mark alert triggered: %w", err)
	}
	return requireRow(result)
}

// Delete removes an alert
func (r *alertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	return requireRow(result)
}
