// Package marketdata implements the quote REST API client. The core
// treats quotes as an optional input: an unavailable quote is (nil, nil),
// never an error the caller has to special-case.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/tradedesk/tradedesk-backend/internal/domain"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultMaxTries = 3
)

// Client fetches live quotes from the market-data REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	maxTries   uint
}

// NewClient creates a new market-data client.
func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:   logger,
		maxTries: defaultMaxTries,
	}
}

// quoteResponse is the provider's wire format.
type quoteResponse struct {
	Symbol         string  `json:"symbol"`
	DayClose       float64 `json:"dayClose"`
	LastTradePrice float64 `json:"lastTradePrice"`
	PreviousClose  float64 `json:"previousClose"`
}

// GetLiveQuote fetches the live quote for a ticker. Transient failures
// are retried with exponential backoff; an unknown ticker or an
// unavailable provider yields (nil, nil) so callers fall back to stored
// prices.
func (c *Client) GetLiveQuote(ctx context.Context, ticker string) (*domain.Quote, error) {
	backoffPolicy := backoff.NewExponentialBackOff()
	backoffPolicy.InitialInterval = 200 * time.Millisecond
	backoffPolicy.MaxInterval = 2 * time.Second

	notify := func(err error, duration time.Duration) {
		c.logger.Debug("retrying quote fetch",
			zap.String("ticker", ticker),
			zap.Error(err),
			zap.Duration("backoff", duration))
	}

	operation := func() (*domain.Quote, error) {
		return c.fetchQuote(ctx, ticker)
	}

	quote, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoffPolicy),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(notify))
	if err != nil {
		return nil, fmt.Errorf("get live quote for %s: %w", ticker, err)
	}
	return quote, nil
}

func (c *Client) fetchQuote(ctx context.Context, ticker string) (*domain.Quote, error) {
	endpoint := fmt.Sprintf("%s/v1/quotes/%s", c.baseURL, url.PathEscape(ticker))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		// Unknown ticker: quote is absent, not an error.
		return nil, nil
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("quote API status %d", resp.StatusCode)
	default:
		return nil, backoff.Permanent(fmt.Errorf("quote API status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var qr quoteResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode quote response: %w", err))
	}

	return &domain.Quote{
		Ticker:         ticker,
		DayClose:       qr.DayClose,
		LastTradePrice: qr.LastTradePrice,
		PreviousClose:  qr.PreviousClose,
	}, nil
}
