package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Portfolio es el conjunto de tickers elegidos al terminar el deck.
type Portfolio struct {
	ID          string          `json:"id"`
	SessionID   string          `json:"sessionId"`
	LikedStocks []string        `json:"likedStocks"`
	TotalValue  decimal.Decimal `json:"totalValue"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type Allocation struct {
	Ticker          string          `json:"ticker"`
	AllocationPct   int             `json:"allocationPct"`
	AllocationValue decimal.Decimal `json:"allocationValue"`
}

// EqualWeightAllocations reparte el valor total en partes iguales.
// Se calcula al mostrar, nunca se persiste. Sin tickers devuelve una lista vacia.
func (p Portfolio) EqualWeightAllocations() []Allocation {
	n := len(p.LikedStocks)
	if n == 0 {
		return []Allocation{}
	}
	pct := int(math.Round(100 / float64(n)))
	value := p.TotalValue.Div(decimal.NewFromInt(int64(n))).Round(0)

	out := make([]Allocation, 0, n)
	for _, ticker := range p.LikedStocks {
		out = append(out, Allocation{
			Ticker:          ticker,
			AllocationPct:   pct,
			AllocationValue: value,
		})
	}
	return out
}
