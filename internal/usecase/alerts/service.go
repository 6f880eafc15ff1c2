package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradedesk/tradedesk-backend/internal/domain"
)

// AlertService handles price alert operations and evaluation
type AlertService struct {
	AlertRepo domain.AlertRepository
	Quotes    domain.QuoteProvider
	Logger    *zap.Logger
}

// NewAlertService creates a new AlertService instance
func NewAlertService(alertRepo domain.AlertRepository, quotes domain.QuoteProvider, logger *zap.Logger) *AlertService {
	return &AlertService{
		AlertRepo: alertRepo,
		Quotes:    quotes,
		Logger:    logger,
	}
}

// CreateAlertInput carries the fields for a new alert
type CreateAlertInput struct {
	Ticker    string
	Condition domain.AlertCondition
	Threshold float64
	Message   string
}

// Create validates and stores a new alert
func (s *AlertService) Create(ctx context.Context, input CreateAlertInput) (*domain.Alert, error) {
	alert := &domain.Alert{
		ID:        uuid.New(),
		Ticker:    input.Ticker,
		Condition: input.Condition,
		Threshold: input.Threshold,
		Message:   input.Message,
		CreatedAt: time.Now(),
	}
	if err := alert.Validate(); err != nil {
		return nil, err
	}
	if err := s.AlertRepo.Create(ctx, alert); err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}
	return alert, nil
}

// List returns all alerts
func (s *AlertService) List(ctx context.Context) ([]*domain.Alert, error) {
	return s.AlertRepo.List(ctx)
}

// Delete removes an alert
func (s *AlertService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.AlertRepo.Delete(ctx, id)
}

// Evaluate checks every untriggered alert against a live quote and marks
// the ones whose threshold was crossed. Quote failures skip the alert
// until the next run; Evaluate itself only fails on storage errors.
func (s *AlertService) Evaluate(ctx context.Context) error {
	alerts, err := s.AlertRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list alerts: %w", err)
	}

	for _, alert := range alerts {
		if alert.Triggered {
			continue
		}

		quote, err := s.Quotes.GetLiveQuote(ctx, alert.Ticker)
		if err != nil {
			s.Logger.Warn("alert quote fetch failed",
				zap.String("ticker", alert.Ticker), zap.Error(err))
			continue
		}
		if quote == nil {
			continue
		}

		price := quote.LastTradePrice
		if price <= 0 {
			price = quote.DayClose
		}
		if price <= 0 {
			continue
		}

		if crossed(alert, price) {
			message := fmt.Sprintf("%s crossed %s %.2f (last %.2f)",
				alert.Ticker, alert.Condition, alert.Threshold, price)
			if err := s.AlertRepo.MarkTriggered(ctx, alert.ID, message); err != nil {
				return fmt.Errorf("mark alert triggered: %w", err)
			}
			s.Logger.Info("alert triggered",
				zap.String("ticker", alert.Ticker),
				zap.Float64("threshold", alert.Threshold),
				zap.Float64("price", price))
		}
	}
	return nil
}

func crossed(alert *domain.Alert, price float64) bool {
	switch alert.Condition {
	case domain.AlertAbove:
		return price >= alert.Threshold
	case domain.AlertBelow:
		return price <= alert.Threshold
	default:
		return false
	}
}
