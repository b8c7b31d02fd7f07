package catalog

import (
	"fmt"
	"math"

	"stockmatch/internal/domain"
)

// HistoryLength es la cantidad de puntos del sparkline.
const HistoryLength = 30

// Quote son datos de mercado simulados; no provienen de ningun proveedor real.
type Quote struct {
	Price     float64
	ChangePct float64
	History   []float64
	Score     int // sentimiento 40-99
	Summary   string
}

// MockQuote genera datos deterministas a partir del ticker: el mismo ticker
// siempre produce el mismo precio, variacion e historia.
func MockQuote(ticker, industry string) Quote {
	r := tickerUnit(ticker)

	var base float64
	switch industry {
	case domain.IndustryTechnology:
		base = 150 + r*200
	case domain.IndustryHealthcare:
		base = 80 + r*150
	case domain.IndustryFinance:
		base = 60 + r*100
	case domain.IndustryConsumer, domain.IndustryAutomotive:
		base = 50 + r*80
	case domain.IndustryEnergy:
		base = 70 + r*60
	default:
		base = 30 + r*70
	}

	score := int(math.Floor(40 + r*59))
	q := Quote{
		Price:     round2(base),
		ChangePct: round2((r - 0.5) * 10),
		History:   PriceHistory(ticker, base),
		Score:     score,
	}
	q.Summary = summaryForScore(score, q)
	return q
}

// PriceHistory simula HistoryLength cierres diarios (-3% a +3%) terminando cerca de current.
func PriceHistory(ticker string, current float64) []float64 {
	seed := 0
	for _, ch := range ticker {
		seed += int(ch)
	}
	next := func() float64 {
		x := math.Sin(float64(seed)) * 10000
		seed++
		return x - math.Floor(x)
	}

	out := make([]float64, HistoryLength)
	price := current
	for i := HistoryLength - 1; i >= 0; i-- {
		change := (next() - 0.5) * 0.06
		price = price * (1 + change)
		out[i] = round2(price)
	}
	return out
}

// tickerUnit devuelve un valor en [0, 1] estable por ticker.
func tickerUnit(ticker string) float64 {
	var h int32
	for _, ch := range ticker {
		h = (h << 5) - h + int32(ch)
	}
	return math.Min(1, math.Abs(float64(h))/math.MaxInt32)
}

func summaryForScore(score int, q Quote) string {
	switch {
	case score >= 70:
		return fmt.Sprintf("Strong performer with positive market outlook. Recent trends show %+.2f%% growth and solid fundamentals.", q.ChangePct)
	case score >= 50:
		return fmt.Sprintf("Stable investment with moderate growth potential. Trading at $%.2f with balanced risk profile.", q.Price)
	default:
		return "Value opportunity with potential upside. Currently trading below recent highs but showing signs of recovery."
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
