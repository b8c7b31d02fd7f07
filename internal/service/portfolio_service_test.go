package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stockmatch/internal/catalog"
	"stockmatch/internal/domain"
	"stockmatch/internal/email"
	"stockmatch/internal/repository"
)

type mockSender struct {
	msg   email.Message
	calls int
	err   error
}

func (m *mockSender) Send(_ context.Context, msg email.Message) error {
	m.calls++
	m.msg = msg
	return m.err
}

type portfolioFixture struct {
	svc    *PortfolioService
	prefs  *repository.MemoryPreferenceRepository
	sender *mockSender
}

func newPortfolioFixture(minLiked int) portfolioFixture {
	prefs := repository.NewMemoryPreferenceRepository()
	sender := &mockSender{}
	svc := NewPortfolioService(
		zap.NewNop(),
		repository.NewMemoryPortfolioRepository(),
		repository.NewMemoryStockRepository(catalog.Curated()...),
		prefs,
		sender,
		minLiked,
	)
	return portfolioFixture{svc: svc, prefs: prefs, sender: sender}
}

func TestPortfolioService_CreateUsesPreferenceAmount(t *testing.T) {
	f := newPortfolioFixture(1)
	ctx := context.Background()
	_ = f.prefs.Upsert(ctx, domain.Preference{SessionID: "s1", Risk: "balanced", InvestmentAmount: decimal.NewFromInt(5000)})

	view, err := f.svc.Create(ctx, CreatePortfolioInput{SessionID: "s1", LikedStocks: []string{"aapl", "MSFT", "AAPL"}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(view.Portfolio.LikedStocks) != 2 || view.Portfolio.LikedStocks[0] != "AAPL" {
		t.Fatalf("expected normalized unique tickers, got %v", view.Portfolio.LikedStocks)
	}
	if !view.Portfolio.TotalValue.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("expected total from preference, got %s", view.Portfolio.TotalValue)
	}
	if len(view.Stocks) != 2 || view.Stocks[1].Ticker != "MSFT" {
		t.Fatalf("expected resolved stocks in liked order, got %+v", view.Stocks)
	}
	for _, a := range view.Allocations {
		if a.AllocationPct != 50 || !a.AllocationValue.Equal(decimal.NewFromInt(2500)) {
			t.Fatalf("unexpected allocation %+v", a)
		}
	}
}

func TestPortfolioService_CreateDefaultsAndExplicitTotal(t *testing.T) {
	f := newPortfolioFixture(1)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, CreatePortfolioInput{SessionID: "s1", LikedStocks: []string{"KO"}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !view.Portfolio.TotalValue.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("expected default total, got %s", view.Portfolio.TotalValue)
	}

	explicit := decimal.NewFromInt(900)
	view, err = f.svc.Create(ctx, CreatePortfolioInput{SessionID: "s1", LikedStocks: []string{"KO", "PG", "JNJ"}, TotalValue: &explicit})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !view.Portfolio.TotalValue.Equal(explicit) {
		t.Fatalf("expected explicit total, got %s", view.Portfolio.TotalValue)
	}

	got, err := f.svc.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got.Portfolio.LikedStocks) != 3 {
		t.Fatalf("expected last write to win, got %v", got.Portfolio.LikedStocks)
	}
}

func TestPortfolioService_CreateValidation(t *testing.T) {
	f := newPortfolioFixture(1)
	ctx := context.Background()
	negative := decimal.NewFromInt(-1)

	cases := map[string]CreatePortfolioInput{
		"no session":     {LikedStocks: []string{"AAPL"}},
		"no liked":       {SessionID: "s1", LikedStocks: []string{}},
		"blank tickers":  {SessionID: "s1", LikedStocks: []string{" ", ""}},
		"negative total": {SessionID: "s1", LikedStocks: []string{"AAPL"}, TotalValue: &negative},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := f.svc.Create(ctx, in); !errors.Is(err, ErrPortfolioInvalidInput) {
				t.Fatalf("expected ErrPortfolioInvalidInput, got %v", err)
			}
		})
	}

	if _, err := f.svc.Get(ctx, "s1"); !errors.Is(err, ErrPortfolioNotFound) {
		t.Fatalf("expected nothing persisted on invalid input, got %v", err)
	}
}

func TestPortfolioService_ZeroMinimumStillRejectsEmpty(t *testing.T) {
	for _, minLiked := range []int{0, -3} {
		f := newPortfolioFixture(minLiked)
		ctx := context.Background()
		_, err := f.svc.Create(ctx, CreatePortfolioInput{SessionID: "s1", LikedStocks: []string{" ", ""}})
		if !errors.Is(err, ErrPortfolioInvalidInput) {
			t.Fatalf("minLiked=%d: expected ErrPortfolioInvalidInput, got %v", minLiked, err)
		}
		if _, err := f.svc.Get(ctx, "s1"); !errors.Is(err, ErrPortfolioNotFound) {
			t.Fatalf("minLiked=%d: expected nothing persisted, got %v", minLiked, err)
		}
	}
}

func TestPortfolioService_UnknownTickersDropped(t *testing.T) {
	f := newPortfolioFixture(1)
	view, err := f.svc.Create(context.Background(), CreatePortfolioInput{SessionID: "s1", LikedStocks: []string{"AAPL", "ZZZZ"}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(view.Stocks) != 1 || view.Stocks[0].Ticker != "AAPL" {
		t.Fatalf("expected unknown ticker dropped from stocks, got %+v", view.Stocks)
	}
	if len(view.Allocations) != 2 {
		t.Fatalf("expected allocations over stored tickers, got %d", len(view.Allocations))
	}
}

func TestPortfolioService_Share(t *testing.T) {
	f := newPortfolioFixture(1)
	ctx := context.Background()
	total := decimal.NewFromInt(5000)
	if _, err := f.svc.Create(ctx, CreatePortfolioInput{SessionID: "s1", LikedStocks: []string{"AAPL", "MSFT"}, TotalValue: &total}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := f.svc.Share(ctx, "s1", " Friend@Example.com "); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if f.sender.msg.To != "friend@example.com" {
		t.Fatalf("unexpected recipient %q", f.sender.msg.To)
	}
	if !strings.Contains(f.sender.msg.Subject, "$5,000.00") {
		t.Fatalf("expected total in subject, got %q", f.sender.msg.Subject)
	}
	for _, want := range []string{"$5,000.00", "AAPL (Apple", "50%", "$2,500.00"} {
		if !strings.Contains(f.sender.msg.Text, want) {
			t.Fatalf("expected %q in text:\n%s", want, f.sender.msg.Text)
		}
		if !strings.Contains(f.sender.msg.HTML, strings.Split(want, " ")[0]) {
			t.Fatalf("expected %q in html:\n%s", want, f.sender.msg.HTML)
		}
	}

	if err := f.svc.Share(ctx, "missing", "a@b.com"); !errors.Is(err, ErrPortfolioNotFound) {
		t.Fatalf("expected ErrPortfolioNotFound, got %v", err)
	}
	if err := f.svc.Share(ctx, "s1", "not-an-email"); !errors.Is(err, ErrPortfolioInvalidInput) {
		t.Fatalf("expected ErrPortfolioInvalidInput, got %v", err)
	}
}

func TestPortfolioService_ShareDisabled(t *testing.T) {
	prefs := repository.NewMemoryPreferenceRepository()
	svc := NewPortfolioService(
		zap.NewNop(),
		repository.NewMemoryPortfolioRepository(),
		repository.NewMemoryStockRepository(catalog.Curated()...),
		prefs,
		email.NewDisabledSender("smtp not configured"),
		1,
	)
	ctx := context.Background()
	_, _ = svc.Create(ctx, CreatePortfolioInput{SessionID: "s1", LikedStocks: []string{"AAPL"}})

	if err := svc.Share(ctx, "s1", "a@b.com"); !errors.Is(err, ErrShareUnavailable) {
		t.Fatalf("expected ErrShareUnavailable, got %v", err)
	}
}
