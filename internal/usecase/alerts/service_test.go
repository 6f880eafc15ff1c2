package alerts

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tradedesk/tradedesk-backend/internal/domain"
)

// MockAlertRepository is a mock implementation of AlertRepository for testing
type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) List(ctx context.Context) ([]*domain.Alert, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Alert), args.Error(1)
}

func (m *MockAlertRepository) Create(ctx context.Context, a *domain.Alert) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAlertRepository) MarkTriggered(ctx context.Context, id uuid.UUID, message string) error {
	args := m.Called(ctx, id, message)
	return args.Error(0)
}

func (m *MockAlertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockQuoteProvider is a mock implementation of QuoteProvider for testing
type MockQuoteProvider struct {
	mock.Mock
}

func (m *MockQuoteProvider) GetLiveQuote(ctx context.Context, ticker string) (*domain.Quote, error) {
	args := m.Called(ctx, ticker)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func TestEvaluate_TriggersAboveCrossing(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAlertRepository)
	quotes := new(MockQuoteProvider)
	service := NewAlertService(repo, quotes, zap.NewNop())

	alertID := uuid.New()
	repo.On("List", ctx).Return([]*domain.Alert{
		{ID: alertID, Ticker: "NVDA", Condition: domain.AlertAbove, Threshold: 500},
	}, nil)
	quotes.On("GetLiveQuote", ctx, "NVDA").
		Return(&domain.Quote{Ticker: "NVDA", LastTradePrice: 512.30}, nil)
	repo.On("MarkTriggered", ctx, alertID, mock.AnythingOfType("string")).Return(nil)

	require.NoError(t, service.Evaluate(ctx))
	repo.AssertCalled(t, "MarkTriggered", ctx, alertID, mock.AnythingOfType("string"))
}

func TestEvaluate_BelowNotCrossed(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAlertRepository)
	quotes := new(MockQuoteProvider)
	service := NewAlertService(repo, quotes, zap.NewNop())

	repo.On("List", ctx).Return([]*domain.Alert{
		{ID: uuid.New(), Ticker: "NVDA", Condition: domain.AlertBelow, Threshold: 400},
	}, nil)
	quotes.On("GetLiveQuote", ctx, "NVDA").
		Return(&domain.Quote{Ticker: "NVDA", LastTradePrice: 512.30}, nil)

	require.NoError(t, service.Evaluate(ctx))
	repo.AssertNotCalled(t, "MarkTriggered", mock.Anything, mock.Anything, mock.Anything)
}

func TestEvaluate_SkipsTriggeredAlerts(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAlertRepository)
	quotes := new(MockQuoteProvider)
	service := NewAlertService(repo, quotes, zap.NewNop())

	repo.On("List", ctx).Return([]*domain.Alert{
		{ID: uuid.New(), Ticker: "NVDA", Condition: domain.AlertAbove, Threshold: 500, Triggered: true},
	}, nil)

	require.NoError(t, service.Evaluate(ctx))
	quotes.AssertNotCalled(t, "GetLiveQuote", mock.Anything, mock.Anything)
}

func TestEvaluate_QuoteFailureSkipsAlert(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAlertRepository)
	quotes := new(MockQuoteProvider)
	service := NewAlertService(repo, quotes, zap.NewNop())

	repo.On("List", ctx).Return([]*domain.Alert{
		{ID: uuid.New(), Ticker: "NVDA", Condition: domain.AlertAbove, Threshold: 500},
	}, nil)
	quotes.On("GetLiveQuote", ctx, "NVDA").Return(nil, errors.New("timeout"))

	// The run itself succeeds; the alert waits for the next evaluation.
	require.NoError(t, service.Evaluate(ctx))
	repo.AssertNotCalled(t, "MarkTriggered", mock.Anything, mock.Anything, mock.Anything)
}

func TestEvaluate_FallsBackToDayClose(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAlertRepository)
	quotes := new(MockQuoteProvider)
	service := NewAlertService(repo, quotes, zap.NewNop())

	alertID := uuid.New()
	repo.On("List", ctx).Return([]*domain.Alert{
		{ID: alertID, Ticker: "XOM", Condition: domain.AlertBelow, Threshold: 100},
	}, nil)
	quotes.On("GetLiveQuote", ctx, "XOM").
		Return(&domain.Quote{Ticker: "XOM", DayClose: 95.00}, nil)
	repo.On("MarkTriggered", ctx, alertID, mock.AnythingOfType("string")).Return(nil)

	require.NoError(t, service.Evaluate(ctx))
	repo.AssertExpectations(t)
}

func TestCreate_Validation(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAlertRepository)
	service := NewAlertService(repo, new(MockQuoteProvider), zap.NewNop())

	_, err := service.Create(ctx, CreateAlertInput{Ticker: "NVDA", Condition: "CROSSES", Threshold: 500})
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create")
}
