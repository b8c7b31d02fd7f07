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

// ErrNotFound se devuelve cuando no existe el registro para la sesion o ticker pedido.
var ErrNotFound = errors.New("record not found")

type PreferenceRepository interface {
	Upsert(ctx context.Context, pref domain.Preference) error
	GetBySessionID(ctx context.Context, sessionID string) (domain.Preference, error)
}

type PgPreferenceRepository struct {
	pool *pgxpool.Pool
}

func NewPgPreferenceRepository(pool *pgxpool.Pool) *PgPreferenceRepository {
	return &PgPreferenceRepository{pool: pool}
}

// Upsert reemplaza el registro completo de la sesion (last write wins).
func (r *PgPreferenceRepository) Upsert(ctx context.Context, pref domain.Preference) error {
	const query = `
		INSERT INTO user_profiles (id, session_id, risk, industries, esg, investment_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7)
		ON CONFLICT (session_id)
		DO UPDATE SET
			id = EXCLUDED.id,
			risk = EXCLUDED.risk,
			industries = EXCLUDED.industries,
			esg = EXCLUDED.esg,
			investment_amount = EXCLUDED.investment_amount,
			created_at = EXCLUDED.created_at
	`
	industries := pref.Industries
	if industries == nil {
		industries = []string{}
	}
	_, err := r.pool.Exec(ctx, query,
		pref.ID,
		pref.SessionID,
		pref.Risk,
		industries,
		pref.ESG,
		pref.InvestmentAmount.String(),
		pref.CreatedAt,
	)
	return err
}

func (r *PgPreferenceRepository) GetBySessionID(ctx context.Context, sessionID string) (domain.Preference, error) {
	const query = `
		SELECT id, session_id, risk, industries, esg, investment_amount::text, created_at
		FROM user_profiles
		WHERE session_id = $1
	`
	var (
		pref   domain.Preference
		amount string
	)
	err := r.pool.QueryRow(ctx, query, sessionID).Scan(
		&pref.ID,
		&pref.SessionID,
		&pref.Risk,
		&pref.Industries,
		&pref.ESG,
		&amount,
		&pref.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Preference{}, ErrNotFound
	}
	if err != nil {
		return domain.Preference{}, err
	}
	pref.InvestmentAmount, err = decimal.NewFromString(amount)
	if err != nil {
		return domain.Preference{}, fmt.Errorf("parse investment amount: %w", err)
	}
	return pref, nil
}
