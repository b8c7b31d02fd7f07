package repository

import (
	"context"
	"slices"
	"sort"
	"sync"

	"stockmatch/internal/domain"
)

// Implementaciones en memoria, usadas cuando no hay DATABASE_URL y en tests.

type MemoryPreferenceRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Preference
}

func NewMemoryPreferenceRepository() *MemoryPreferenceRepository {
	return &MemoryPreferenceRepository{items: make(map[string]domain.Preference)}
}

func (r *MemoryPreferenceRepository) Upsert(_ context.Context, pref domain.Preference) error {
	pref.Industries = slices.Clone(pref.Industries)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[pref.SessionID] = pref
	return nil
}

func (r *MemoryPreferenceRepository) GetBySessionID(_ context.Context, sessionID string) (domain.Preference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pref, ok := r.items[sessionID]
	if !ok {
		return domain.Preference{}, ErrNotFound
	}
	pref.Industries = slices.Clone(pref.Industries)
	return pref, nil
}

type MemoryPortfolioRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Portfolio
}

func NewMemoryPortfolioRepository() *MemoryPortfolioRepository {
	return &MemoryPortfolioRepository{items: make(map[string]domain.Portfolio)}
}

func (r *MemoryPortfolioRepository) Upsert(_ context.Context, portfolio domain.Portfolio) error {
	portfolio.LikedStocks = slices.Clone(portfolio.LikedStocks)
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.items[portfolio.SessionID]; ok {
		portfolio.CreatedAt = prev.CreatedAt
	}
	r.items[portfolio.SessionID] = portfolio
	return nil
}

func (r *MemoryPortfolioRepository) GetBySessionID(_ context.Context, sessionID string) (domain.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[sessionID]
	if !ok {
		return domain.Portfolio{}, ErrNotFound
	}
	p.LikedStocks = slices.Clone(p.LikedStocks)
	return p, nil
}

type MemoryStockRepository struct {
	mu    sync.RWMutex
	items map[string]domain.StockRecord
}

func NewMemoryStockRepository(seed ...domain.StockRecord) *MemoryStockRepository {
	r := &MemoryStockRepository{items: make(map[string]domain.StockRecord, len(seed))}
	for _, s := range seed {
		if _, ok := r.items[s.Ticker]; !ok {
			r.items[s.Ticker] = cloneStock(s)
		}
	}
	return r
}

// List devuelve el catalogo ordenado por ticker, igual que la version Postgres.
func (r *MemoryStockRepository) List(_ context.Context) ([]domain.StockRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.StockRecord, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, cloneStock(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out, nil
}

func (r *MemoryStockRepository) GetByTickers(_ context.Context, tickers []string) ([]domain.StockRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.StockRecord, 0, len(tickers))
	for _, t := range tickers {
		if s, ok := r.items[t]; ok {
			out = append(out, cloneStock(s))
		}
	}
	return out, nil
}

func (r *MemoryStockRepository) InsertMany(_ context.Context, stocks []domain.StockRecord) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inserted := 0
	for _, s := range stocks {
		if _, ok := r.items[s.Ticker]; ok {
			continue
		}
		r.items[s.Ticker] = cloneStock(s)
		inserted++
	}
	return inserted, nil
}

func (r *MemoryStockRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

func cloneStock(s domain.StockRecord) domain.StockRecord {
	s.ChartData = slices.Clone(s.ChartData)
	return s
}
