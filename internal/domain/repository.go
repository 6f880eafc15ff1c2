package domain

import (
	"context"

	"github.com/google/uuid"
)

// PositionRepository defines the interface for position persistence operations
type PositionRepository interface {
	// List retrieves all positions ordered by ticker
	List(ctx context.Context) ([]*Position, error)

	// GetByID retrieves a position by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Position, error)

	// Create creates a new position
	Create(ctx context.Context, p *Position) error

	// Update replaces the mutable fields of an existing position
	Update(ctx context.Context, p *Position) error

	// Delete removes a position
	Delete(ctx context.Context, id uuid.UUID) error
}

// WatchlistRepository defines the interface for watchlist persistence operations
type WatchlistRepository interface {
	// List retrieves all watchlist entries ordered by ticker
	List(ctx context.Context) ([]*WatchlistEntry, error)

	// GetByID retrieves a watchlist entry by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*WatchlistEntry, error)

	// Create creates a new watchlist entry
	Create(ctx context.Context, w *WatchlistEntry) error

	// Update replaces the mutable fields of an existing entry
	Update(ctx context.Context, w *WatchlistEntry) error

	// Delete removes a watchlist entry
	Delete(ctx context.Context, id uuid.UUID) error
}

// TradeRepository defines the interface for trade persistence operations.
// Trades are immutable: there is no Update.
type TradeRepository interface {
	// List retrieves all trades ordered by date ascending, then creation time
	List(ctx context.Context) ([]*TradeRecord, error)

	// Create creates a new trade record
	Create(ctx context.Context, t *TradeRecord) error

	// Delete removes a trade record
	Delete(ctx context.Context, id uuid.UUID) error
}

// AlertRepository defines the interface for alert persistence operations
type AlertRepository interface {
	// List retrieves all alerts ordered by creation time descending
	List(ctx context.Context) ([]*Alert, error)

	// Create creates a new alert
	Create(ctx context.Context, a *Alert) error

	// MarkTriggered sets the triggered flag and message on an alert
	MarkTriggered(ctx context.Context, id uuid.UUID, message string) error

	// Delete removes an alert
	Delete(ctx context.Context, id uuid.UUID) error
}

// SettingsRepository defines the interface for risk settings persistence.
// The dashboard is single-user, so there is exactly one settings row.
type SettingsRepository interface {
	// Get retrieves the settings row, or ErrNotFound if never saved
	Get(ctx context.Context) (*RiskSettings, error)

	// Save upserts the settings row
	Save(ctx context.Context, s *RiskSettings) error
}
