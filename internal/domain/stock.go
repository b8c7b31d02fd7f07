package domain

import "strings"

type StockRecord struct {
	Ticker           string    `json:"ticker"`
	Name             string    `json:"name"`
	Industry         string    `json:"industry"`
	MarketCap        float64   `json:"marketCap"` // miles de millones USD
	Beta             float64   `json:"beta"`
	ESGScore         float64   `json:"esgScore"`
	LogoURL          string    `json:"logoUrl,omitempty"`
	Hook             string    `json:"hook"`
	Metric           string    `json:"metric"`
	Price            float64   `json:"price"`
	PriceChangePct   float64   `json:"priceChangePct"`
	ChartData        []float64 `json:"chartData"`
	SentimentSummary string    `json:"sentimentSummary,omitempty"`
}

// DeckSource indica por que una carta entro al deck.
type DeckSource string

const (
	DeckSourceMatch    DeckSource = "match"
	DeckSourcePadding  DeckSource = "padding"
	DeckSourceBackfill DeckSource = "backfill"
)

type DeckCard struct {
	StockRecord
	Source DeckSource `json:"source"`
}

// Industrias canonicas del catalogo curado.
const (
	IndustryTechnology    = "Technology"
	IndustryHealthcare    = "Healthcare"
	IndustryFinance       = "Finance"
	IndustryConsumer      = "Consumer"
	IndustryEnergy        = "Energy"
	IndustryEntertainment = "Entertainment"
	IndustryAutomotive    = "Automotive"
)

// IndustryTags mapea las etiquetas del quiz a nombres de industria del catalogo.
var IndustryTags = map[string][]string{
	"tech":          {IndustryTechnology},
	"healthcare":    {IndustryHealthcare},
	"finance":       {IndustryFinance},
	"consumer":      {IndustryConsumer},
	"energy":        {IndustryEnergy},
	"entertainment": {IndustryEntertainment},
}

// IndustriesForTags resuelve etiquetas a industrias. Las etiquetas desconocidas se ignoran.
func IndustriesForTags(tags []string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, tag := range tags {
		for _, industry := range IndustryTags[strings.ToLower(strings.TrimSpace(tag))] {
			out[industry] = struct{}{}
		}
	}
	return out
}

// industryKeywords se recorre en orden; la primera coincidencia gana.
var industryKeywords = []struct {
	keyword  string
	industry string
}{
	{"biotechnology", IndustryHealthcare},
	{"technology", IndustryTechnology},
	{"software", IndustryTechnology},
	{"hardware", IndustryTechnology},
	{"internet", IndustryTechnology},
	{"semiconductor", IndustryTechnology},
	{"healthcare", IndustryHealthcare},
	{"pharmaceutical", IndustryHealthcare},
	{"medical", IndustryHealthcare},
	{"finance", IndustryFinance},
	{"financial", IndustryFinance},
	{"bank", IndustryFinance},
	{"insurance", IndustryFinance},
	{"real estate", IndustryFinance},
	{"consumer", IndustryConsumer},
	{"retail", IndustryConsumer},
	{"food", IndustryConsumer},
	{"automotive", IndustryConsumer},
	{"energy", IndustryEnergy},
	{"oil", IndustryEnergy},
	{"utilities", IndustryEnergy},
	{"entertainment", IndustryEntertainment},
	{"media", IndustryEntertainment},
	{"gaming", IndustryEntertainment},
}

// CanonicalIndustry normaliza una industria libre (p.ej. del CSV) a una canonica.
// Sin coincidencia devuelve Consumer.
func CanonicalIndustry(raw string) string {
	lower := strings.ToLower(raw)
	for _, k := range industryKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.industry
		}
	}
	return IndustryConsumer
}

// RiskLevel es la presentacion del riesgo de una accion.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// RiskLevelForBeta deriva el nivel de riesgo de la beta.
func RiskLevelForBeta(beta float64) RiskLevel {
	switch BucketForBeta(beta) {
	case RiskConservative:
		return RiskLevelLow
	case RiskBalanced:
		return RiskLevelMedium
	default:
		return RiskLevelHigh
	}
}

// ParseRiskLevel acepta lo que devuelve el LLM y cae al valor por defecto si no es valido.
func ParseRiskLevel(raw string, fallback RiskLevel) RiskLevel {
	switch RiskLevel(strings.ToLower(strings.TrimSpace(raw))) {
	case RiskLevelLow:
		return RiskLevelLow
	case RiskLevelMedium:
		return RiskLevelMedium
	case RiskLevelHigh:
		return RiskLevelHigh
	default:
		return fallback
	}
}
