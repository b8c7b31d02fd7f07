package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"stockmatch/internal/domain"
	"stockmatch/internal/repository"
)

// SeedCatalog inserta los registros ignorando tickers existentes.
func SeedCatalog(ctx context.Context, logger *zap.Logger, stocks repository.StockRepository, records []domain.StockRecord) (int, error) {
	inserted, err := stocks.InsertMany(ctx, records)
	if err != nil {
		return inserted, fmt.Errorf("seed catalog: %w", err)
	}
	if logger != nil {
		logger.Info("catalog seeded", zap.Int("offered", len(records)), zap.Int("inserted", inserted))
	}
	return inserted, nil
}

// SeedCatalogIfEmpty solo siembra cuando el catalogo no tiene registros.
func SeedCatalogIfEmpty(ctx context.Context, logger *zap.Logger, stocks repository.StockRepository, records []domain.StockRecord) (int, error) {
	n, err := stocks.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count stocks: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	return SeedCatalog(ctx, logger, stocks, records)
}
