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
	"stockmatch/internal/email"
	"stockmatch/internal/repository"
)

var (
	ErrPortfolioInvalidInput = errors.New("invalid portfolio input")
	ErrPortfolioNotFound     = errors.New("portfolio not found")
	ErrShareUnavailable      = errors.New("portfolio sharing unavailable")
)

type CreatePortfolioInput struct {
	SessionID   string
	LikedStocks []string
	TotalValue  *decimal.Decimal
}

// PortfolioView es lo que ve la pantalla de resumen.
type PortfolioView struct {
	Portfolio   domain.Portfolio     `json:"portfolio"`
	Stocks      []domain.StockRecord `json:"stocks"`
	Allocations []domain.Allocation  `json:"allocations"`
}

// PortfolioService persiste el resultado de la sesion de swipe y arma el resumen.
type PortfolioService struct {
	logger     *zap.Logger
	portfolios repository.PortfolioRepository
	stocks     repository.StockRepository
	prefs      repository.PreferenceRepository
	mailer     email.Sender
	minLiked   int
}

func NewPortfolioService(
	logger *zap.Logger,
	portfolios repository.PortfolioRepository,
	stocks repository.StockRepository,
	prefs repository.PreferenceRepository,
	mailer email.Sender,
	minLiked int,
) *PortfolioService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mailer == nil {
		mailer = email.NewDisabledSender("")
	}
	// un portfolio vacio nunca se persiste; la configuracion solo sube el piso
	minLiked = max(minLiked, 1)
	return &PortfolioService{
		logger:     logger,
		portfolios: portfolios,
		stocks:     stocks,
		prefs:      prefs,
		mailer:     mailer,
		minLiked:   minLiked,
	}
}

// Create valida y guarda el portfolio de la sesion. La ultima escritura gana.
func (s *PortfolioService) Create(ctx context.Context, in CreatePortfolioInput) (PortfolioView, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return PortfolioView{}, fmt.Errorf("%w: sessionId is required", ErrPortfolioInvalidInput)
	}
	liked := normalizeTickers(in.LikedStocks)
	if len(liked) < s.minLiked {
		return PortfolioView{}, fmt.Errorf("%w: at least %d liked stock(s) required", ErrPortfolioInvalidInput, s.minLiked)
	}

	total, err := s.resolveTotal(ctx, sessionID, in.TotalValue)
	if err != nil {
		return PortfolioView{}, err
	}

	now := time.Now().UTC()
	portfolio := domain.Portfolio{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		LikedStocks: liked,
		TotalValue:  total,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.portfolios.Upsert(ctx, portfolio); err != nil {
		return PortfolioView{}, fmt.Errorf("save portfolio: %w", err)
	}

	s.logger.Info("portfolio saved",
		zap.String("session_id", sessionID),
		zap.Int("liked", len(liked)),
		zap.String("total_value", total.String()),
	)
	return s.view(ctx, portfolio)
}

func (s *PortfolioService) Get(ctx context.Context, sessionID string) (PortfolioView, error) {
	portfolio, err := s.load(ctx, sessionID)
	if err != nil {
		return PortfolioView{}, err
	}
	return s.view(ctx, portfolio)
}

// Share envia por mail el resumen del portfolio.
func (s *PortfolioService) Share(ctx context.Context, sessionID, to string) error {
	to = normalizeEmail(to)
	if to == "" || !strings.Contains(to, "@") {
		return fmt.Errorf("%w: valid email is required", ErrPortfolioInvalidInput)
	}
	view, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	msg, err := email.NewPortfolioMessage(to, portfolioSummary(view))
	if err != nil {
		return fmt.Errorf("build portfolio mail: %w", err)
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		if errors.Is(err, email.ErrDisabled) {
			return ErrShareUnavailable
		}
		s.logger.Warn("portfolio share failed", zap.String("session_id", view.Portfolio.SessionID), zap.Error(err))
		return fmt.Errorf("send portfolio summary: %w", err)
	}
	s.logger.Info("portfolio shared", zap.String("session_id", view.Portfolio.SessionID))
	return nil
}

func (s *PortfolioService) load(ctx context.Context, sessionID string) (domain.Portfolio, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.Portfolio{}, ErrPortfolioNotFound
	}
	portfolio, err := s.portfolios.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Portfolio{}, ErrPortfolioNotFound
		}
		return domain.Portfolio{}, fmt.Errorf("get portfolio: %w", err)
	}
	return portfolio, nil
}

// resolveTotal: valor explicito, luego monto del quiz, luego el default.
func (s *PortfolioService) resolveTotal(ctx context.Context, sessionID string, explicit *decimal.Decimal) (decimal.Decimal, error) {
	if explicit != nil {
		if explicit.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: totalValue must not be negative", ErrPortfolioInvalidInput)
		}
		return explicit.Round(2), nil
	}
	if s.prefs != nil {
		pref, err := s.prefs.GetBySessionID(ctx, sessionID)
		switch {
		case err == nil && pref.InvestmentAmount.IsPositive():
			return pref.InvestmentAmount, nil
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return decimal.Zero, fmt.Errorf("load preference: %w", err)
		}
	}
	return domain.DefaultInvestmentAmount, nil
}

// view resuelve los tickers contra el catalogo; los desconocidos se omiten.
func (s *PortfolioService) view(ctx context.Context, portfolio domain.Portfolio) (PortfolioView, error) {
	stocks, err := s.stocks.GetByTickers(ctx, portfolio.LikedStocks)
	if err != nil {
		return PortfolioView{}, fmt.Errorf("resolve portfolio stocks: %w", err)
	}
	return PortfolioView{
		Portfolio:   portfolio,
		Stocks:      stocks,
		Allocations: portfolio.EqualWeightAllocations(),
	}, nil
}

func portfolioSummary(view PortfolioView) email.PortfolioSummary {
	names := make(map[string]string, len(view.Stocks))
	for _, st := range view.Stocks {
		names[st.Ticker] = st.Name
	}
	holdings := make([]email.Holding, 0, len(view.Allocations))
	for _, a := range view.Allocations {
		holdings = append(holdings, email.Holding{
			Ticker: a.Ticker,
			Name:   names[a.Ticker],
			Pct:    a.AllocationPct,
			Value:  domain.FormatMoney(a.AllocationValue, domain.CurrencyUSD),
		})
	}
	return email.PortfolioSummary{
		SessionID: view.Portfolio.SessionID,
		Total:     domain.FormatMoney(view.Portfolio.TotalValue, domain.CurrencyUSD),
		Holdings:  holdings,
	}
}

func normalizeEmail(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}
