// Package assistant implements the dashboard's AI chat proxy on top of
// the Gemini API. It is a one-shot request/response text service; the
// calculation engine neither reads nor produces anything here.
package assistant

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

const systemInstruction = `
You are the assistant built into a personal trading dashboard.
The user keeps a trading journal with a portfolio, a watchlist, trade
history and price alerts. Answer questions about their positions and
trades using the portfolio context provided with each message.
Be concise. Never invent positions or prices that are not in the
context, and never present anything as financial advice.`

// Client is the Gemini chat proxy.
type Client struct {
	genai  *genai.Client
	model  string
	logger *zap.Logger
}

// NewClient creates a new assistant client. The Gemini API key is read
// by the genai SDK from the environment when cfg is nil; pass an
// explicit key through genai.ClientConfig to override.
func NewClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Client, error) {
	var cfg *genai.ClientConfig
	if apiKey != "" {
		cfg = &genai.ClientConfig{APIKey: apiKey}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{genai: client, model: model, logger: logger}, nil
}

// Chat sends one user message plus the current portfolio context and
// returns the model's text reply.
func (c *Client) Chat(ctx context.Context, message, portfolioContext string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
	}

	prompt := message
	if portfolioContext != "" {
		prompt = fmt.Sprintf("Portfolio context:\n%s\n\nUser question: %s", portfolioContext, message)
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}, Role: genai.RoleUser}},
		config)
	if err != nil {
		return "", fmt.Errorf("assistant chat: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("assistant returned no content")
	}

	reply := resp.Candidates[0].Content.Parts[0].Text
	c.logger.Debug("assistant reply",
		zap.Int("promptLen", len(prompt)),
		zap.Int("replyLen", len(reply)))
	return reply, nil
}
