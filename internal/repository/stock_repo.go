package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stockmatch/internal/domain"
)

// insertBatchSize agrupa inserts del seed para no saturar la base.
const insertBatchSize = 50

type StockRepository interface {
	List(ctx context.Context) ([]domain.StockRecord, error)
	// GetByTickers respeta el orden pedido y omite los tickers inexistentes.
	GetByTickers(ctx context.Context, tickers []string) ([]domain.StockRecord, error)
	// InsertMany ignora tickers ya existentes y devuelve cuantos se insertaron.
	InsertMany(ctx context.Context, stocks []domain.StockRecord) (int, error)
	Count(ctx context.Context) (int, error)
}

type PgStockRepository struct {
	pool *pgxpool.Pool
}

func NewPgStockRepository(pool *pgxpool.Pool) *PgStockRepository {
	return &PgStockRepository{pool: pool}
}

const stockColumns = `ticker, name, industry, market_cap, beta, esg_score, logo_url, hook, metric,
		price, price_change_pct, chart_data, sentiment_summary`

func (r *PgStockRepository) List(ctx context.Context) ([]domain.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_cards ORDER BY ticker`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStocks(rows)
}

func (r *PgStockRepository) GetByTickers(ctx context.Context, tickers []string) ([]domain.StockRecord, error) {
	if len(tickers) == 0 {
		return []domain.StockRecord{}, nil
	}
	query := `SELECT ` + stockColumns + ` FROM stock_cards WHERE ticker = ANY($1)`
	rows, err := r.pool.Query(ctx, query, tickers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found, err := scanStocks(rows)
	if err != nil {
		return nil, err
	}
	byTicker := make(map[string]domain.StockRecord, len(found))
	for _, s := range found {
		byTicker[s.Ticker] = s
	}
	out := make([]domain.StockRecord, 0, len(tickers))
	for _, t := range tickers {
		if s, ok := byTicker[t]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *PgStockRepository) InsertMany(ctx context.Context, stocks []domain.StockRecord) (int, error) {
	const query = `
		INSERT INTO stock_cards (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (ticker) DO NOTHING
	`
	inserted := 0
	for start := 0; start < len(stocks); start += insertBatchSize {
		end := min(start+insertBatchSize, len(stocks))

		batch := &pgx.Batch{}
		for _, s := range stocks[start:end] {
			chart := s.ChartData
			if chart == nil {
				chart = []float64{}
			}
			batch.Queue(query,
				s.Ticker, s.Name, s.Industry, s.MarketCap, s.Beta, s.ESGScore,
				s.LogoURL, s.Hook, s.Metric, s.Price, s.PriceChangePct, chart, s.SentimentSummary,
			)
		}

		results := r.pool.SendBatch(ctx, batch)
		for range stocks[start:end] {
			tag, err := results.Exec()
			if err != nil {
				_ = results.Close()
				return inserted, fmt.Errorf("insert stock batch %d-%d: %w", start, end, err)
			}
			inserted += int(tag.RowsAffected())
		}
		if err := results.Close(); err != nil {
			return inserted, err
		}
	}
	return inserted, nil
}

func (r *PgStockRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM stock_cards`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanStocks(rows pgx.Rows) ([]domain.StockRecord, error) {
	stocks := []domain.StockRecord{}
	for rows.Next() {
		var s domain.StockRecord
		if err := rows.Scan(
			&s.Ticker,
			&s.Name,
			&s.Industry,
			&s.MarketCap,
			&s.Beta,
			&s.ESGScore,
			&s.LogoURL,
			&s.Hook,
			&s.Metric,
			&s.Price,
			&s.PriceChangePct,
			&s.ChartData,
			&s.SentimentSummary,
		); err != nil {
			return nil, err
		}
		stocks = append(stocks, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stocks, nil
}

// GetByTicker es un atajo sobre GetByTickers.
func GetByTicker(ctx context.Context, repo StockRepository, ticker string) (domain.StockRecord, error) {
	stocks, err := repo.GetByTickers(ctx, []string{ticker})
	if err != nil {
		return domain.StockRecord{}, err
	}
	if len(stocks) == 0 {
		return domain.StockRecord{}, ErrNotFound
	}
	return stocks[0], nil
}
