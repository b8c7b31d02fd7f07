package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"stockmatch/internal/catalog"
	"stockmatch/internal/domain"
	"stockmatch/internal/repository"
)

func TestSeedCatalogIfEmpty(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryStockRepository()

	n, err := SeedCatalogIfEmpty(ctx, zap.NewNop(), repo, catalog.Curated())
	if err != nil || n != 24 {
		t.Fatalf("expected 24 inserted, got %d (%v)", n, err)
	}

	n, err = SeedCatalogIfEmpty(ctx, zap.NewNop(), repo, []domain.StockRecord{{Ticker: "NEW"}})
	if err != nil || n != 0 {
		t.Fatalf("expected no-op on non-empty catalog, got %d (%v)", n, err)
	}

	n, err = SeedCatalog(ctx, nil, repo, []domain.StockRecord{{Ticker: "NEW"}, {Ticker: "AAPL"}})
	if err != nil || n != 1 {
		t.Fatalf("expected 1 inserted, got %d (%v)", n, err)
	}
}
