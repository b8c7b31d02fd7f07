package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stockmatch/internal/domain"
)

func TestMemoryPreferenceRepository_LastWriteWins(t *testing.T) {
	repo := NewMemoryPreferenceRepository()
	ctx := context.Background()

	if _, err := repo.GetBySessionID(ctx, "s1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	first := domain.Preference{ID: "p1", SessionID: "s1", Risk: "balanced", Industries: []string{"tech"}}
	second := domain.Preference{ID: "p2", SessionID: "s1", Risk: "aggressive", InvestmentAmount: decimal.NewFromInt(500)}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got, err := repo.GetBySessionID(ctx, "s1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != "p2" || got.Risk != "aggressive" || len(got.Industries) != 0 {
		t.Fatalf("expected whole record replaced, got %+v", got)
	}
}

func TestMemoryPreferenceRepository_NoAliasing(t *testing.T) {
	repo := NewMemoryPreferenceRepository()
	ctx := context.Background()
	industries := []string{"tech", "energy"}
	_ = repo.Upsert(ctx, domain.Preference{SessionID: "s1", Industries: industries})
	industries[0] = "mutated"

	got, _ := repo.GetBySessionID(ctx, "s1")
	if got.Industries[0] != "tech" {
		t.Fatalf("stored preference was mutated through caller slice")
	}
}

func TestMemoryPortfolioRepository_KeepsCreatedAt(t *testing.T) {
	repo := NewMemoryPortfolioRepository()
	ctx := context.Background()
	created := time.Now().UTC().Add(-time.Hour)

	_ = repo.Upsert(ctx, domain.Portfolio{SessionID: "s1", LikedStocks: []string{"AAPL"}, CreatedAt: created})
	_ = repo.Upsert(ctx, domain.Portfolio{SessionID: "s1", LikedStocks: []string{"MSFT", "KO"}, CreatedAt: time.Now().UTC()})

	got, err := repo.GetBySessionID(ctx, "s1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got.LikedStocks) != 2 || got.LikedStocks[0] != "MSFT" {
		t.Fatalf("expected second portfolio to win, got %+v", got.LikedStocks)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("expected created_at preserved, got %v", got.CreatedAt)
	}
}

func TestMemoryStockRepository(t *testing.T) {
	repo := NewMemoryStockRepository(
		domain.StockRecord{Ticker: "MSFT"},
		domain.StockRecord{Ticker: "AAPL"},
	)
	ctx := context.Background()

	inserted, err := repo.InsertMany(ctx, []domain.StockRecord{{Ticker: "AAPL"}, {Ticker: "KO"}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if inserted != 1 {
		t.Fatalf("expected 1 inserted, got %d", inserted)
	}

	all, _ := repo.List(ctx)
	if len(all) != 3 || all[0].Ticker != "AAPL" || all[2].Ticker != "MSFT" {
		t.Fatalf("expected sorted catalog, got %+v", all)
	}

	got, _ := repo.GetByTickers(ctx, []string{"KO", "NOPE", "AAPL"})
	if len(got) != 2 || got[0].Ticker != "KO" || got[1].Ticker != "AAPL" {
		t.Fatalf("expected requested order without unknown tickers, got %+v", got)
	}

	if _, err := GetByTicker(ctx, repo, "NOPE"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
