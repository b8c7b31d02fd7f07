package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"stockmatch/internal/domain"
	"stockmatch/internal/repository"
)

// Shuffler abstrae la fuente aleatoria; *rand.Rand la satisface.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

type DeckOptions struct {
	Size             int
	PaddingPerBucket int
	ESGMinScore      float64
}

func DefaultDeckOptions() DeckOptions {
	return DeckOptions{Size: 15, PaddingPerBucket: 3, ESGMinScore: 7.5}
}

// DeckRequest es lo que envia el cliente. Sin Risk se usa la preferencia guardada.
type DeckRequest struct {
	SessionID  string
	Risk       string
	Industries []string
	ESG        bool
}

// DeckService arma el mazo de cartas para una preferencia.
type DeckService struct {
	logger   *zap.Logger
	stocks   repository.StockRepository
	prefs    repository.PreferenceRepository
	shuffler Shuffler
	opts     DeckOptions
}

func NewDeckService(logger *zap.Logger, stocks repository.StockRepository, prefs repository.PreferenceRepository, shuffler Shuffler, opts DeckOptions) *DeckService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if shuffler == nil {
		shuffler = globalShuffler{}
	}
	def := DefaultDeckOptions()
	if opts.Size <= 0 {
		opts.Size = def.Size
	}
	if opts.PaddingPerBucket < 0 {
		opts.PaddingPerBucket = def.PaddingPerBucket
	}
	if opts.ESGMinScore < 0 {
		opts.ESGMinScore = def.ESGMinScore
	}
	return &DeckService{
		logger:   logger,
		stocks:   stocks,
		prefs:    prefs,
		shuffler: shuffler,
		opts:     opts,
	}
}

// ResolvePreference decide con que preferencia armar el mazo.
func (s *DeckService) ResolvePreference(ctx context.Context, req DeckRequest) (domain.Preference, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	if strings.TrimSpace(req.Risk) != "" {
		return domain.Preference{
			SessionID:  sessionID,
			Risk:       strings.TrimSpace(req.Risk),
			Industries: req.Industries,
			ESG:        req.ESG,
		}, nil
	}
	if sessionID != "" && s.prefs != nil {
		pref, err := s.prefs.GetBySessionID(ctx, sessionID)
		if err == nil {
			return pref, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return domain.Preference{}, fmt.Errorf("load preference: %w", err)
		}
	}
	s.logger.Debug("deck request without stored preference, using default", zap.String("session_id", sessionID))
	return domain.DefaultPreference(sessionID), nil
}

// DeckForRequest resuelve la preferencia y arma el mazo.
func (s *DeckService) DeckForRequest(ctx context.Context, req DeckRequest) ([]domain.DeckCard, error) {
	pref, err := s.ResolvePreference(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.BuildDeck(ctx, pref)
}

// BuildDeck: bucket por beta + padding, filtro de industria, filtro ESG,
// backfill sin filtrar si faltan cartas, mezcla y corte.
func (s *DeckService) BuildDeck(ctx context.Context, pref domain.Preference) ([]domain.DeckCard, error) {
	catalog, err := s.stocks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	if len(catalog) == 0 {
		return []domain.DeckCard{}, nil
	}

	target := pref.Bucket()
	buckets := map[domain.RiskBucket][]domain.StockRecord{}
	for _, st := range catalog {
		b := domain.BucketForBeta(st.Beta)
		buckets[b] = append(buckets[b], st)
	}

	candidates := make([]domain.DeckCard, 0, len(catalog))
	for _, st := range buckets[target] {
		candidates = append(candidates, domain.DeckCard{StockRecord: st, Source: domain.DeckSourceMatch})
	}
	for _, b := range []domain.RiskBucket{domain.RiskConservative, domain.RiskBalanced, domain.RiskAggressive} {
		if b == target {
			continue
		}
		pad := buckets[b]
		if len(pad) > s.opts.PaddingPerBucket {
			pad = pad[:s.opts.PaddingPerBucket]
		}
		for _, st := range pad {
			candidates = append(candidates, domain.DeckCard{StockRecord: st, Source: domain.DeckSourcePadding})
		}
	}

	if len(pref.Industries) > 0 {
		allowed := domain.IndustriesForTags(pref.Industries)
		kept := candidates[:0]
		for _, c := range candidates {
			if _, ok := allowed[c.Industry]; ok {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}

	if pref.ESG {
		kept := candidates[:0]
		for _, c := range candidates {
			if c.ESGScore >= s.opts.ESGMinScore {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}

	if len(candidates) < s.opts.Size {
		included := make(map[string]struct{}, len(candidates))
		for _, c := range candidates {
			included[c.Ticker] = struct{}{}
		}
		for _, st := range catalog {
			if _, ok := included[st.Ticker]; ok {
				continue
			}
			candidates = append(candidates, domain.DeckCard{StockRecord: st, Source: domain.DeckSourceBackfill})
		}
	}

	s.shuffler.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > s.opts.Size {
		candidates = candidates[:s.opts.Size]
	}

	s.logger.Debug("deck built",
		zap.String("session_id", pref.SessionID),
		zap.String("bucket", string(target)),
		zap.Int("cards", len(candidates)),
	)
	return candidates, nil
}

// DeckTickers extrae los tickers en orden, para iniciar una sesion de swipe.
func DeckTickers(deck []domain.DeckCard) []string {
	out := make([]string, 0, len(deck))
	for _, c := range deck {
		out = append(out, c.Ticker)
	}
	return out
}
