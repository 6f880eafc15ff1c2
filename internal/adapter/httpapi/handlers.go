package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tradedesk/tradedesk-backend/internal/analytics"
	"github.com/tradedesk/tradedesk-backend/internal/domain"
	"github.com/tradedesk/tradedesk-backend/internal/usecase/alerts"
	"github.com/tradedesk/tradedesk-backend/internal/usecase/portfolio"
	"github.com/tradedesk/tradedesk-backend/internal/usecase/settings"
	"github.com/tradedesk/tradedesk-backend/internal/usecase/trades"
	"github.com/tradedesk/tradedesk-backend/internal/usecase/watchlist"
)

// ---- positions ----

type positionRequest struct {
	Ticker       string  `json:"ticker"`
	Shares       float64 `json:"shares"`
	AvgCost      float64 `json:"avgCost"`
	CurrentPrice float64 `json:"currentPrice"`
	Sector       string  `json:"sector"`
}

type positionResponse struct {
	ID           string    `json:"id"`
	Ticker       string    `json:"ticker"`
	Shares       float64   `json:"shares"`
	AvgCost      float64   `json:"avgCost"`
	CurrentPrice float64   `json:"currentPrice"`
	Sector       string    `json:"sector"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toPositionResponse(p *domain.Position) positionResponse {
	return positionResponse{
		ID:           p.ID.String(),
		Ticker:       p.Ticker,
		Shares:       p.Shares,
		AvgCost:      p.AvgCost,
		CurrentPrice: p.CurrentPrice,
		Sector:       p.Sector,
		CreatedAt:    p.CreatedAt,
	}
}

func (s *Server) handleListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := s.PortfolioService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]positionResponse, 0, len(positions))
	for _, p := range positions {
		resp = append(resp, toPositionResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	p, err := s.PortfolioService.Create(r.Context(), portfolio.CreatePositionInput{
		Ticker:       req.Ticker,
		Shares:       req.Shares,
		AvgCost:      req.AvgCost,
		CurrentPrice: req.CurrentPrice,
		Sector:       req.Sector,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPositionResponse(p))
}

func (s *Server) handleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	var req positionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	p, err := s.PortfolioService.Update(r.Context(), id, portfolio.CreatePositionInput{
		Ticker:       req.Ticker,
		Shares:       req.Shares,
		AvgCost:      req.AvgCost,
		CurrentPrice: req.CurrentPrice,
		Sector:       req.Sector,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPositionResponse(p))
}

func (s *Server) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if err := s.PortfolioService.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePortfolioOverview(w http.ResponseWriter, r *http.Request) {
	view, err := s.PortfolioService.Overview(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ---- watchlist ----

type watchlistRequest struct {
	Ticker      string  `json:"ticker"`
	EntryTarget float64 `json:"entryTarget"`
	StopLoss    float64 `json:"stopLoss"`
	TakeProfit  float64 `json:"takeProfit"`
	Signal      string  `json:"signal"`
	Sector      string  `json:"sector"`
}

type sizingResponse struct {
	Shares           int64   `json:"shares"`
	RiskAmount       float64 `json:"riskAmount"`
	RiskPerShare     float64 `json:"riskPerShare"`
	TotalCost        float64 `json:"totalCost"`
	PotentialProfit  float64 `json:"potentialProfit"`
	RiskRewardRatio  float64 `json:"riskRewardRatio"`
	TargetBelowEntry bool    `json:"targetBelowEntry"`
}

type watchlistResponse struct {
	ID          string          `json:"id"`
	Ticker      string          `json:"ticker"`
	EntryTarget float64         `json:"entryTarget"`
	StopLoss    float64         `json:"stopLoss"`
	TakeProfit  float64         `json:"takeProfit"`
	Signal      string          `json:"signal"`
	Sector      string          `json:"sector"`
	CreatedAt   time.Time       `json:"createdAt"`
	Sizing      *sizingResponse `json:"sizing,omitempty"`
	InvalidStop bool            `json:"invalidStop"`
}

func toWatchlistResponse(entry *domain.WatchlistEntry, sizing *analytics.Sizing, invalidStop bool) watchlistResponse {
	resp := watchlistResponse{
		ID:          entry.ID.String(),
		Ticker:      entry.Ticker,
		EntryTarget: entry.EntryTarget,
		StopLoss:    entry.StopLoss,
		TakeProfit:  entry.TakeProfit,
		Signal:      string(entry.Signal),
		Sector:      entry.Sector,
		CreatedAt:   entry.CreatedAt,
		InvalidStop: invalidStop,
	}
	if sizing != nil {
		resp.Sizing = &sizingResponse{
			Shares:           sizing.Shares,
			RiskAmount:       sizing.RiskAmount,
			RiskPerShare:     sizing.RiskPerShare,
			TotalCost:        sizing.TotalCost,
			PotentialProfit:  sizing.PotentialProfit,
			RiskRewardRatio:  sizing.RiskRewardRatio,
			TargetBelowEntry: sizing.TargetBelowEntry,
		}
	}
	return resp
}

func (s *Server) handleListWatchlist(w http.ResponseWriter, r *http.Request) {
	sized, err := s.WatchlistService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]watchlistResponse, 0, len(sized))
	for _, se := range sized {
		resp = append(resp, toWatchlistResponse(se.Entry, se.Sizing, se.InvalidStop))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateWatchlistEntry(w http.ResponseWriter, r *http.Request) {
	var req watchlistRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	entry, err := s.WatchlistService.Create(r.Context(), watchlist.EntryInput{
		Ticker:      req.Ticker,
		EntryTarget: req.EntryTarget,
		StopLoss:    req.StopLoss,
		TakeProfit:  req.TakeProfit,
		Signal:      domain.Signal(req.Signal),
		Sector:      req.Sector,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWatchlistResponse(entry, nil, false))
}

func (s *Server) handleUpdateWatchlistEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	var req watchlistRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	entry, err := s.WatchlistService.Update(r.Context(), id, watchlist.EntryInput{
		Ticker:      req.Ticker,
		EntryTarget: req.EntryTarget,
		StopLoss:    req.StopLoss,
		TakeProfit:  req.TakeProfit,
		Signal:      domain.Signal(req.Signal),
		Sector:      req.Sector,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWatchlistResponse(entry, nil, false))
}

func (s *Server) handleDeleteWatchlistEntry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if err := s.WatchlistService.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWatchlistSizing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	sized, err := s.WatchlistService.Sizing(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWatchlistResponse(sized.Entry, sized.Sizing, sized.InvalidStop))
}

// ---- trades ----

type tradeRequest struct {
	Type   string  `json:"type"`
	Ticker string  `json:"ticker"`
	Shares float64 `json:"shares"`
	Price  float64 `json:"price"`
	Fees   float64 `json:"fees"`
	Date   string  `json:"date"`
	Notes  string  `json:"notes"`
}

type tradeResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Ticker    string    `json:"ticker"`
	Shares    float64   `json:"shares"`
	Price     float64   `json:"price"`
	Fees      float64   `json:"fees"`
	Date      string    `json:"date"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

func toTradeResponse(t *domain.TradeRecord) tradeResponse {
	return tradeResponse{
		ID:        t.ID.String(),
		Type:      string(t.Type),
		Ticker:    t.Ticker,
		Shares:    t.Shares,
		Price:     t.Price,
		Fees:      t.Fees,
		Date:      t.Date,
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt,
	}
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	list, err := s.TradeService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]tradeResponse, 0, len(list))
	for _, t := range list {
		resp = append(resp, toTradeResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTrade(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	trade, err := s.TradeService.Create(r.Context(), trades.CreateTradeInput{
		Type:   domain.TradeType(req.Type),
		Ticker: req.Ticker,
		Shares: req.Shares,
		Price:  req.Price,
		Fees:   req.Fees,
		Date:   req.Date,
		Notes:  req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTradeResponse(trade))
}

func (s *Server) handleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if err := s.TradeService.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTradeSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.TradeService.Summarize(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleTradeExport(w http.ResponseWriter, r *http.Request) {
	format := trades.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = trades.FormatCSV
	}

	switch format {
	case trades.FormatCSV:
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="trades.csv"`)
	case trades.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	default:
		writeBadRequest(w, fmt.Sprintf("unsupported export format: %s", format))
		return
	}

	if err := s.TradeService.Export(r.Context(), w, format); err != nil {
		s.Logger.Error("trade export failed", zap.Error(err))
	}
}

// ---- alerts ----

type alertRequest struct {
	Ticker    string  `json:"ticker"`
	Condition string  `json:"condition"`
	Threshold float64 `json:"threshold"`
	Message   string  `json:"message"`
}

type alertResponse struct {
	ID        string    `json:"id"`
	Ticker    string    `json:"ticker"`
	Condition string    `json:"condition"`
	Threshold float64   `json:"threshold"`
	Triggered bool      `json:"triggered"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func toAlertResponse(a *domain.Alert) alertResponse {
	return alertResponse{
		ID:        a.ID.String(),
		Ticker:    a.Ticker,
		Condition: string(a.Condition),
		Threshold: a.Threshold,
		Triggered: a.Triggered,
		Message:   a.Message,
		CreatedAt: a.CreatedAt,
	}
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	list, err := s.AlertService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]alertResponse, 0, len(list))
	for _, a := range list {
		resp = append(resp, toAlertResponse(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var req alertRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	alert, err := s.AlertService.Create(r.Context(), alerts.CreateAlertInput{
		Ticker:    req.Ticker,
		Condition: domain.AlertCondition(req.Condition),
		Threshold: req.Threshold,
		Message:   req.Message,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAlertResponse(alert))
}

func (s *Server) handleDeleteAlert(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}
	if err := s.AlertService.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- settings ----

type settingsPayload struct {
	AccountSize     float64 `json:"accountSize"`
	RiskPercentage  float64 `json:"riskPercentage"`
	FlatFeePerTrade float64 `json:"flatFeePerTrade"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	current, err := s.SettingsService.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsPayload{
		AccountSize:     current.AccountSize,
		RiskPercentage:  current.RiskPercentage,
		FlatFeePerTrade: current.FlatFeePerTrade,
	})
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsPayload
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	updated, err := s.SettingsService.Update(r.Context(), settings.UpdateInput{
		AccountSize:     req.AccountSize,
		RiskPercentage:  req.RiskPercentage,
		FlatFeePerTrade: req.FlatFeePerTrade,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settingsPayload{
		AccountSize:     updated.AccountSize,
		RiskPercentage:  updated.RiskPercentage,
		FlatFeePerTrade: updated.FlatFeePerTrade,
	})
}

// ---- quotes ----

type quoteResponse struct {
	Ticker         string  `json:"ticker"`
	DayClose       float64 `json:"dayClose"`
	LastTradePrice float64 `json:"lastTradePrice"`
	PreviousClose  float64 `json:"previousClose"`
}

func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(r.PathValue("ticker"))
	quote, err := s.Quotes.GetLiveQuote(r.Context(), ticker)
	if err != nil {
		writeError(w, err)
		return
	}
	if quote == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "quote unavailable for " + ticker})
		return
	}
	writeJSON(w, http.StatusOK, quoteResponse{
		Ticker:         quote.Ticker,
		DayClose:       quote.DayClose,
		LastTradePrice: quote.LastTradePrice,
		PreviousClose:  quote.PreviousClose,
	})
}

// ---- assistant ----

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleAssistantChat(w http.ResponseWriter, r *http.Request) {
	if s.Assistant == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "assistant is not configured"})
		return
	}

	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeBadRequest(w, "message is required")
		return
	}

	// Best effort: the assistant answers without context when the
	// overview cannot be assembled.
	var portfolioContext string
	if view, err := s.PortfolioService.Overview(r.Context()); err == nil {
		portfolioContext = renderPortfolioContext(view)
	}

	reply, err := s.Assistant.Chat(r.Context(), req.Message, portfolioContext)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

// renderPortfolioContext produces the compact text snapshot handed to
// the assistant with each chat message.
func renderPortfolioContext(view *analytics.PortfolioView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total value %.2f, cost %.2f, P&L %.2f (%.2f%%)\n",
		view.TotalValue, view.TotalCost, view.TotalPnL, view.TotalReturnPct)
	for _, p := range view.Positions {
		fmt.Fprintf(&b, "%s: %.4g shares @ %.2f, price %.2f, P&L %.2f (%.2f%%)\n",
			p.Ticker, p.Shares, p.AvgCost, p.Price, p.UnrealizedPnL, p.ReturnPct)
	}
	return b.String()
}
