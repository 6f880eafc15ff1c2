// Package httpapi implements the REST adapter consumed by the
// dashboard single-page app.
package httpapi

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/tradedesk/tradedesk-backend/internal/domain"
	"github.com/tradedesk/tradedesk-backend/internal/usecase/alerts"
	"github.com/tradedesk/tradedesk-backend/internal/usecase/portfolio"
	"github.com/tradedesk/tradedesk-backend/internal/usecase/settings"
	"github.com/tradedesk/tradedesk-backend/internal/usecase/trades"
	"github.com/tradedesk/tradedesk-backend/internal/usecase/watchlist"
)

// Assistant is the chat collaborator behind POST /assistant/chat.
type Assistant interface {
	Chat(ctx context.Context, message, portfolioContext string) (string, error)
}

// Server wires the usecase services to HTTP routes
type Server struct {
	PortfolioService *portfolio.PortfolioService
	WatchlistService *watchlist.WatchlistService
	TradeService     *trades.TradeService
	AlertService     *alerts.AlertService
	SettingsService  *settings.SettingsService
	Quotes           domain.QuoteProvider
	Assistant        Assistant
	Logger           *zap.Logger
}

// NewServer creates a new HTTP adapter instance
func NewServer(
	portfolioService *portfolio.PortfolioService,
	watchlistService *watchlist.WatchlistService,
	tradeService *trades.TradeService,
	alertService *alerts.AlertService,
	settingsService *settings.SettingsService,
	quotes domain.QuoteProvider,
	assistant Assistant,
	logger *zap.Logger,
) *Server {
	return &Server{
		PortfolioService: portfolioService,
		WatchlistService: watchlistService,
		TradeService:     tradeService,
		AlertService:     alertService,
		SettingsService:  settingsService,
		Quotes:           quotes,
		Assistant:        assistant,
		Logger:           logger,
	}
}

// Handler builds the route table. Every /api/v1 route goes through the
// auth and request-logging middleware; /healthz stays open for probes.
func (s *Server) Handler(apiToken string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/positions", s.handleListPositions)
	mux.HandleFunc("POST /api/v1/positions", s.handleCreatePosition)
	mux.HandleFunc("PUT /api/v1/positions/{id}", s.handleUpdatePosition)
	mux.HandleFunc("DELETE /api/v1/positions/{id}", s.handleDeletePosition)
	mux.HandleFunc("GET /api/v1/portfolio/overview", s.handlePortfolioOverview)

	mux.HandleFunc("GET /api/v1/watchlist", s.handleListWatchlist)
	mux.HandleFunc("POST /api/v1/watchlist", s.handleCreateWatchlistEntry)
	mux.HandleFunc("PUT /api/v1/watchlist/{id}", s.handleUpdateWatchlistEntry)
	mux.HandleFunc("DELETE /api/v1/watchlist/{id}", s.handleDeleteWatchlistEntry)
	mux.HandleFunc("GET /api/v1/watchlist/{id}/sizing", s.handleWatchlistSizing)

	mux.HandleFunc("GET /api/v1/trades", s.handleListTrades)
	mux.HandleFunc("POST /api/v1/trades", s.handleCreateTrade)
	mux.HandleFunc("DELETE /api/v1/trades/{id}", s.handleDeleteTrade)
	mux.HandleFunc("GET /api/v1/trades/summary", s.handleTradeSummary)
	mux.HandleFunc("GET /api/v1/trades/export", s.handleTradeExport)

	mux.HandleFunc("GET /api/v1/alerts", s.handleListAlerts)
	mux.HandleFunc("POST /api/v1/alerts", s.handleCreateAlert)
	mux.HandleFunc("DELETE /api/v1/alerts/{id}", s.handleDeleteAlert)

	mux.HandleFunc("GET /api/v1/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/v1/settings", s.handleUpdateSettings)

	mux.HandleFunc("GET /api/v1/quotes/{ticker}", s.handleGetQuote)
	mux.HandleFunc("POST /api/v1/assistant/chat", s.handleAssistantChat)

	protected := AuthMiddleware(apiToken)(RequestLogger(s.Logger)(mux))

	root := http.NewServeMux()
	root.Handle("/api/v1/", protected)
	root.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return root
}
