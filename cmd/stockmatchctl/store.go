package main

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"stockmatch/internal/catalog"
	"stockmatch/internal/config"
	"stockmatch/internal/db"
	"stockmatch/internal/repository"
)

var errNoDatabase = errors.New("DATABASE_URL is not set")

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, errNoDatabase
	}
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// openStocks usa Postgres si hay DATABASE_URL; si no, el catalogo curado en memoria.
func openStocks(ctx context.Context) (repository.StockRepository, func(), error) {
	pool, err := openPool(ctx)
	if errors.Is(err, errNoDatabase) {
		return repository.NewMemoryStockRepository(catalog.Curated()...), func() {}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return repository.NewPgStockRepository(pool), pool.Close, nil
}
