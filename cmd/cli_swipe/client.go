package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stockmatch/internal/domain"
	"stockmatch/internal/service"
)

// apiClient habla con la API HTTP de StockMatch.
type apiClient struct {
	baseURL string
	client  *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type apiError struct {
	Status  int
	Message string `json:"message"`
	Detail  string `json:"error"`
}

func (e *apiError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s (%s)", e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (c *apiClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		apiErr := &apiError{Status: resp.StatusCode}
		_ = json.Unmarshal(raw, apiErr)
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

type profileRequest struct {
	SessionID        string          `json:"sessionId"`
	Risk             string          `json:"risk"`
	Industries       []string        `json:"industries"`
	ESG              bool            `json:"esg"`
	InvestmentAmount decimal.Decimal `json:"investmentAmount"`
}

func (c *apiClient) SaveProfile(ctx context.Context, req profileRequest) (domain.Preference, error) {
	var pref domain.Preference
	err := c.do(ctx, http.MethodPost, "/api/user-profile", req, &pref)
	return pref, err
}

func (c *apiClient) Deck(ctx context.Context, sessionID string) ([]domain.DeckCard, error) {
	var deck []domain.DeckCard
	err := c.do(ctx, http.MethodPost, "/api/get-stock-deck", map[string]string{"sessionId": sessionID}, &deck)
	return deck, err
}

func (c *apiClient) CreatePortfolio(ctx context.Context, sessionID string, liked []string) (service.PortfolioView, error) {
	var view service.PortfolioView
	err := c.do(ctx, http.MethodPost, "/api/portfolio", map[string]any{
		"sessionId":   sessionID,
		"likedStocks": liked,
	}, &view)
	return view, err
}

func (c *apiClient) Sentiment(ctx context.Context, tickers []string) (domain.SentimentBatch, error) {
	var batch domain.SentimentBatch
	err := c.do(ctx, http.MethodPost, "/api/sentiment-analysis", map[string]any{"tickers": tickers}, &batch)
	return batch, err
}
