package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"go.uber.org/zap"

	"stockmatch/internal/catalog"
	"stockmatch/internal/domain"
	"stockmatch/internal/repository"
)

type failingStockRepo struct {
	repository.StockRepository
	err error
}

func (f failingStockRepo) List(context.Context) ([]domain.StockRecord, error) {
	return nil, f.err
}

func newSeededDeckService(stocks repository.StockRepository, prefs repository.PreferenceRepository, opts DeckOptions) *DeckService {
	return NewDeckService(zap.NewNop(), stocks, prefs, rand.New(rand.NewPCG(1, 2)), opts)
}

func TestBuildDeck_CuratedProperties(t *testing.T) {
	stocks := repository.NewMemoryStockRepository(catalog.Curated()...)
	cases := []domain.Preference{
		{Risk: "balanced", Industries: []string{"tech"}},
		{Risk: "conservative", Industries: []string{"healthcare", "finance"}, ESG: true},
		{Risk: "short-term", Industries: nil},
		{Risk: "aggressive", Industries: []string{"unknown-tag"}},
	}

	for _, pref := range cases {
		t.Run(fmt.Sprintf("%s-%v-%v", pref.Risk, pref.Industries, pref.ESG), func(t *testing.T) {
			svc := newSeededDeckService(stocks, nil, DefaultDeckOptions())
			deck, err := svc.BuildDeck(context.Background(), pref)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(deck) == 0 || len(deck) > 15 {
				t.Fatalf("expected 1..15 cards, got %d", len(deck))
			}

			seen := map[string]bool{}
			allowed := domain.IndustriesForTags(pref.Industries)
			for _, c := range deck {
				if seen[c.Ticker] {
					t.Fatalf("duplicate ticker %s", c.Ticker)
				}
				seen[c.Ticker] = true

				if c.Source == domain.DeckSourceBackfill {
					continue
				}
				if c.Source == domain.DeckSourceMatch && domain.BucketForBeta(c.Beta) != pref.Bucket() {
					t.Fatalf("match card %s has beta %v outside bucket %s", c.Ticker, c.Beta, pref.Bucket())
				}
				if len(pref.Industries) > 0 {
					if _, ok := allowed[c.Industry]; !ok {
						t.Fatalf("card %s industry %s not in %v", c.Ticker, c.Industry, pref.Industries)
					}
				}
				if pref.ESG && c.ESGScore < 7.5 {
					t.Fatalf("card %s esg %v below threshold", c.Ticker, c.ESGScore)
				}
			}
		})
	}
}

func TestBuildDeck_PaddingAndBackfill(t *testing.T) {
	var seed []domain.StockRecord
	for i := 0; i < 10; i++ {
		seed = append(seed, domain.StockRecord{Ticker: fmt.Sprintf("C%02d", i), Beta: 0.8, Industry: domain.IndustryTechnology})
		seed = append(seed, domain.StockRecord{Ticker: fmt.Sprintf("G%02d", i), Beta: 2.0, Industry: domain.IndustryTechnology})
	}
	seed = append(seed,
		domain.StockRecord{Ticker: "B00", Beta: 1.2, Industry: domain.IndustryTechnology},
		domain.StockRecord{Ticker: "B01", Beta: 1.3, Industry: domain.IndustryTechnology},
	)
	stocks := repository.NewMemoryStockRepository(seed...)
	svc := newSeededDeckService(stocks, nil, DeckOptions{Size: 100, PaddingPerBucket: 3, ESGMinScore: 7.5})

	deck, err := svc.BuildDeck(context.Background(), domain.Preference{Risk: "balanced"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(deck) != len(seed) {
		t.Fatalf("expected whole catalog after backfill, got %d", len(deck))
	}

	counts := map[domain.DeckSource]int{}
	padding := map[string]bool{}
	for _, c := range deck {
		counts[c.Source]++
		if c.Source == domain.DeckSourcePadding {
			padding[c.Ticker] = true
		}
	}
	if counts[domain.DeckSourceMatch] != 2 || counts[domain.DeckSourcePadding] != 6 || counts[domain.DeckSourceBackfill] != 14 {
		t.Fatalf("unexpected source counts %v", counts)
	}
	for _, ticker := range []string{"C00", "C01", "C02", "G00", "G01", "G02"} {
		if !padding[ticker] {
			t.Fatalf("expected %s as padding, got %v", ticker, padding)
		}
	}
}

func TestBuildDeck_NoBackfillWhenEnoughCards(t *testing.T) {
	var seed []domain.StockRecord
	for i := 0; i < 20; i++ {
		seed = append(seed, domain.StockRecord{Ticker: fmt.Sprintf("B%02d", i), Beta: 1.2, Industry: domain.IndustryFinance})
	}
	seed = append(seed, domain.StockRecord{Ticker: "OUT", Beta: 1.2, Industry: domain.IndustryEnergy})
	svc := newSeededDeckService(repository.NewMemoryStockRepository(seed...), nil, DefaultDeckOptions())

	deck, err := svc.BuildDeck(context.Background(), domain.Preference{Risk: "balanced", Industries: []string{"finance"}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(deck) != 15 {
		t.Fatalf("expected 15 cards, got %d", len(deck))
	}
	for _, c := range deck {
		if c.Ticker == "OUT" || c.Source == domain.DeckSourceBackfill {
			t.Fatalf("unexpected backfill card %+v", c)
		}
	}
}

func TestBuildDeck_DeterministicWithSeed(t *testing.T) {
	stocks := repository.NewMemoryStockRepository(catalog.Curated()...)
	pref := domain.Preference{Risk: "balanced", Industries: []string{"tech"}}

	a, _ := newSeededDeckService(stocks, nil, DefaultDeckOptions()).BuildDeck(context.Background(), pref)
	b, _ := newSeededDeckService(stocks, nil, DefaultDeckOptions()).BuildDeck(context.Background(), pref)
	at, bt := DeckTickers(a), DeckTickers(b)
	if len(at) != len(bt) {
		t.Fatalf("expected same deck length")
	}
	for i := range at {
		if at[i] != bt[i] {
			t.Fatalf("expected same order with same seed, got %v vs %v", at, bt)
		}
	}
}

func TestBuildDeck_EmptyCatalog(t *testing.T) {
	svc := newSeededDeckService(repository.NewMemoryStockRepository(), nil, DefaultDeckOptions())
	deck, err := svc.BuildDeck(context.Background(), domain.Preference{Risk: "balanced"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if deck == nil || len(deck) != 0 {
		t.Fatalf("expected empty deck, got %#v", deck)
	}
}

func TestBuildDeck_RepositoryError(t *testing.T) {
	boom := errors.New("db down")
	svc := newSeededDeckService(failingStockRepo{err: boom}, nil, DefaultDeckOptions())
	if _, err := svc.BuildDeck(context.Background(), domain.Preference{}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

func TestResolvePreference(t *testing.T) {
	prefs := repository.NewMemoryPreferenceRepository()
	stored := domain.Preference{SessionID: "s1", Risk: "aggressive", Industries: []string{"energy"}, ESG: true}
	_ = prefs.Upsert(context.Background(), stored)
	svc := newSeededDeckService(repository.NewMemoryStockRepository(), prefs, DefaultDeckOptions())

	got, err := svc.ResolvePreference(context.Background(), DeckRequest{SessionID: "s1"})
	if err != nil || got.Risk != "aggressive" || !got.ESG {
		t.Fatalf("expected stored preference, got %+v (%v)", got, err)
	}

	got, err = svc.ResolvePreference(context.Background(), DeckRequest{SessionID: "missing"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Bucket() != domain.RiskBalanced || len(got.Industries) != 1 || got.Industries[0] != "tech" || got.ESG {
		t.Fatalf("expected default preference, got %+v", got)
	}

	got, _ = svc.ResolvePreference(context.Background(), DeckRequest{SessionID: "s1", Risk: "conservative", Industries: []string{"finance"}})
	if got.Risk != "conservative" || got.Industries[0] != "finance" || got.ESG {
		t.Fatalf("expected request fields to win, got %+v", got)
	}
}

func TestBuildDeck_ZeroESGThresholdIsKept(t *testing.T) {
	stocks := repository.NewMemoryStockRepository(
		domain.StockRecord{Ticker: "LOW", Beta: 0.8, ESGScore: 0.5},
		domain.StockRecord{Ticker: "MID", Beta: 1.2, ESGScore: 3},
		domain.StockRecord{Ticker: "HIGH", Beta: 1.8, ESGScore: 9},
	)
	pref := domain.Preference{Risk: "balanced", ESG: true}

	countBackfill := func(opts DeckOptions) int {
		deck, err := newSeededDeckService(stocks, nil, opts).BuildDeck(context.Background(), pref)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(deck) != 3 {
			t.Fatalf("expected 3 cards, got %d", len(deck))
		}
		n := 0
		for _, c := range deck {
			if c.Source == domain.DeckSourceBackfill {
				n++
			}
		}
		return n
	}

	if got := countBackfill(DeckOptions{Size: 3, PaddingPerBucket: 3, ESGMinScore: 0}); got != 0 {
		t.Fatalf("expected zero threshold to keep every card, got %d backfilled", got)
	}
	if got := countBackfill(DeckOptions{Size: 3, PaddingPerBucket: 3, ESGMinScore: -1}); got != 2 {
		t.Fatalf("expected negative threshold to fall back to default, got %d backfilled", got)
	}
}
