package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stockmatch/internal/domain"
	"stockmatch/internal/repository"
)

var (
	ErrPreferenceInvalidInput = errors.New("invalid preference input")
	ErrPreferenceNotFound     = errors.New("preference not found")
)

type SavePreferenceInput struct {
	SessionID        string
	Risk             string
	Industries       []string
	ESG              bool
	InvestmentAmount *decimal.Decimal
}

// PreferenceService guarda las respuestas del quiz.
type PreferenceService struct {
	logger    *zap.Logger
	prefs     repository.PreferenceRepository
	minAmount decimal.Decimal
}

func NewPreferenceService(logger *zap.Logger, prefs repository.PreferenceRepository, minAmount decimal.Decimal) *PreferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceService{
		logger:    logger,
		prefs:     prefs,
		minAmount: minAmount,
	}
}

// Save reemplaza la preferencia completa de la sesion.
func (s *PreferenceService) Save(ctx context.Context, in SavePreferenceInput) (domain.Preference, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return domain.Preference{}, fmt.Errorf("%w: sessionId is required", ErrPreferenceInvalidInput)
	}
	risk := strings.ToLower(strings.TrimSpace(in.Risk))
	if _, ok := domain.ParseRiskBucket(risk); !ok {
		return domain.Preference{}, fmt.Errorf("%w: unknown risk %q", ErrPreferenceInvalidInput, in.Risk)
	}

	amount := domain.DefaultInvestmentAmount
	if in.InvestmentAmount != nil {
		amount = *in.InvestmentAmount
	}
	if amount.LessThan(s.minAmount) {
		return domain.Preference{}, fmt.Errorf("%w: investmentAmount must be at least %s", ErrPreferenceInvalidInput, s.minAmount.String())
	}

	pref := domain.Preference{
		ID:               uuid.NewString(),
		SessionID:        sessionID,
		Risk:             risk,
		Industries:       normalizeTags(in.Industries),
		ESG:              in.ESG,
		InvestmentAmount: amount.Round(2),
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.prefs.Upsert(ctx, pref); err != nil {
		return domain.Preference{}, fmt.Errorf("save preference: %w", err)
	}

	s.logger.Info("preference saved",
		zap.String("session_id", sessionID),
		zap.String("risk", risk),
		zap.Strings("industries", pref.Industries),
	)
	return pref, nil
}

func (s *PreferenceService) Get(ctx context.Context, sessionID string) (domain.Preference, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.Preference{}, ErrPreferenceNotFound
	}
	pref, err := s.prefs.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Preference{}, ErrPreferenceNotFound
		}
		return domain.Preference{}, fmt.Errorf("get preference: %w", err)
	}
	return pref, nil
}

// normalizeTags pasa a minusculas, recorta y quita duplicados conservando el orden.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// normalizeTickers pasa a mayusculas, recorta y quita duplicados conservando el orden.
func normalizeTickers(tickers []string) []string {
	out := make([]string, 0, len(tickers))
	seen := make(map[string]struct{}, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
