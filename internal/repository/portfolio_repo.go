package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"stockmatch/internal/domain"
)

type PortfolioRepository interface {
	Upsert(ctx context.Context, portfolio domain.Portfolio) error
	GetBySessionID(ctx context.Context, sessionID string) (domain.Portfolio, error)
}

type PgPortfolioRepository struct {
	pool *pgxpool.Pool
}

func NewPgPortfolioRepository(pool *pgxpool.Pool) *PgPortfolioRepository {
	return &PgPortfolioRepository{pool: pool}
}

// Upsert reemplaza el portfolio previo de la sesion sin control de versiones.
func (r *PgPortfolioRepository) Upsert(ctx context.Context, portfolio domain.Portfolio) error {
	const query = `
		INSERT INTO portfolios (id, session_id, liked_stocks, total_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6)
		ON CONFLICT (session_id)
		DO UPDATE SET
			id = EXCLUDED.id,
			liked_stocks = EXCLUDED.liked_stocks,
			total_value = EXCLUDED.total_value,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		portfolio.ID,
		portfolio.SessionID,
		portfolio.LikedStocks,
		portfolio.TotalValue.String(),
		portfolio.CreatedAt,
		portfolio.UpdatedAt,
	)
	return err
}

func (r *PgPortfolioRepository) GetBySessionID(ctx context.Context, sessionID string) (domain.Portfolio, error) {
	const query = `
		SELECT id, session_id, liked_stocks, total_value::text, created_at, updated_at
		FROM portfolios
		WHERE session_id = $1
	`
	var (
		p     domain.Portfolio
		total string
	)
	err := r.pool.QueryRow(ctx, query, sessionID).Scan(
		&p.ID,
		&p.SessionID,
		&p.LikedStocks,
		&total,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Portfolio{}, ErrNotFound
	}
	if err != nil {
		return domain.Portfolio{}, err
	}
	p.TotalValue, err = decimal.NewFromString(total)
	if err != nil {
		return domain.Portfolio{}, fmt.Errorf("parse total value: %w", err)
	}
	return p, nil
}
