package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tradedesk/tradedesk-backend/internal/domain"
)

// settingsRepository implements domain.SettingsRepository. The table
// holds a single row keyed by a constant TRUE id.
type settingsRepository struct {
	db *DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *DB) domain.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get retrieves the settings row, or domain.ErrNotFound if never saved
func (r *settingsRepository) Get(ctx context.Context) (*domain.RiskSettings, error) {
	query := `
		SELECT account_size, risk_percentage, flat_fee_per_trade, updated_at
		FROM risk_settings
		WHERE id
	`

	var s domain.RiskSettings
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.AccountSize, &s.RiskPercentage, &s.FlatFeePerTrade, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get risk settings: %w", err)
	}
	return &s, nil
}

// Save upserts the settings row
func (r *settingsRepository) Save(ctx context.Context, s *domain.RiskSettings) error {
	query := `
		INSERT INTO risk_settings (id, account_size, risk_percentage, flat_fee_per_trade, updated_at)
		VALUES (TRUE, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET account_size = $1, risk_percentage = $2, flat_fee_per_trade = $3, updated_at = $4
	`

	_, err := r.db.ExecContext(ctx, query,
		s.AccountSize, s.RiskPercentage, s.FlatFeePerTrade, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save risk settings: %w", err)
	}
	return nil
}
