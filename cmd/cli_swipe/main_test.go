package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stockmatch/internal/catalog"
	"stockmatch/internal/email"
	apihttp "stockmatch/internal/http"
	"stockmatch/internal/llm"
	"stockmatch/internal/repository"
	"stockmatch/internal/service"
)

func newTestServer(t *testing.T) (*httptest.Server, repository.PortfolioRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	stocks := repository.NewMemoryStockRepository(catalog.Curated()...)
	prefs := repository.NewMemoryPreferenceRepository()
	portfolios := repository.NewMemoryPortfolioRepository()
	sentimentSvc := service.NewSentimentService(logger, stocks, llm.DisabledClient{}, nil, nil, service.SentimentOptions{Timeout: time.Second})

	router := apihttp.NewRouter(
		logger,
		apihttp.NewDeckHandler(logger, service.NewDeckService(logger, stocks, prefs, rand.New(rand.NewPCG(3, 4)), service.DefaultDeckOptions())),
		apihttp.NewProfileHandler(logger, service.NewPreferenceService(logger, prefs, decimal.NewFromInt(10))),
		apihttp.NewPortfolioHandler(logger, service.NewPortfolioService(logger, portfolios, stocks, prefs, email.NewDisabledSender(""), 1)),
		apihttp.NewSentimentHandler(logger, sentimentSvc),
		apihttp.NewStockHandler(logger, stocks, sentimentSvc),
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, portfolios
}

func newTestSession(baseURL, input string, out *bytes.Buffer) *session {
	return &session{
		api:           newAPIClient(baseURL),
		in:            bufio.NewReader(strings.NewReader(input)),
		out:           out,
		minLiked:      1,
		withSentiment: true,
	}
}

func TestSessionLikeAll(t *testing.T) {
	srv, portfolios := newTestServer(t)
	var out bytes.Buffer
	input := "2\ntech\nn\n5000\n" + strings.Repeat("l\n", 20)

	if err := newTestSession(srv.URL, input, &out).run(context.Background(), "cli-1"); err != nil {
		t.Fatalf("expected no error, got %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "Tu portfolio ($5,000.00)") {
		t.Fatalf("expected portfolio summary, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Sentimiento") {
		t.Fatalf("expected sentiment section, got:\n%s", out.String())
	}

	stored, err := portfolios.GetBySessionID(context.Background(), "cli-1")
	if err != nil {
		t.Fatalf("expected stored portfolio, got %v", err)
	}
	if len(stored.LikedStocks) == 0 || len(stored.LikedStocks) > 15 {
		t.Fatalf("unexpected liked stocks %v", stored.LikedStocks)
	}
}

func TestSessionAllPassIsNotSubmitted(t *testing.T) {
	srv, portfolios := newTestServer(t)
	var out bytes.Buffer
	input := "1\nhealthcare\ns\n\n" + strings.Repeat("p\n", 20)

	if err := newTestSession(srv.URL, input, &out).run(context.Background(), "cli-2"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), "No se puede armar el portfolio") {
		t.Fatalf("expected rejection message, got:\n%s", out.String())
	}
	if _, err := portfolios.GetBySessionID(context.Background(), "cli-2"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected nothing stored, got %v", err)
	}
}

func TestSessionQuitDiscards(t *testing.T) {
	srv, portfolios := newTestServer(t)
	var out bytes.Buffer
	input := "3\nenergy\nn\n\nl\nq\n"

	err := newTestSession(srv.URL, input, &out).run(context.Background(), "cli-3")
	if !errors.Is(err, errQuit) {
		t.Fatalf("expected errQuit, got %v", err)
	}
	if _, err := portfolios.GetBySessionID(context.Background(), "cli-3"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected nothing stored, got %v", err)
	}
}

func TestAPIClientError(t *testing.T) {
	srv, _ := newTestServer(t)
	_, err := newAPIClient(srv.URL).CreatePortfolio(context.Background(), "s1", nil)
	var apiErr *apiError
	if !errors.As(err, &apiErr) || apiErr.Status != 400 || apiErr.Message == "" {
		t.Fatalf("expected api error 400, got %v", err)
	}
}
