package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RiskBucket agrupa el catalogo por volatilidad (beta).
type RiskBucket string

const (
	RiskConservative RiskBucket = "conservative"
	RiskBalanced     RiskBucket = "balanced"
	RiskAggressive   RiskBucket = "aggressive"
)

// Etiquetas de horizonte que envia el quiz.
const (
	HorizonShortTerm  = "short-term"
	HorizonMediumTerm = "medium-term"
	HorizonLongTerm   = "long-term"
)

// Limites de beta para cada bucket.
const (
	ConservativeMaxBeta = 1.0
	BalancedMaxBeta     = 1.5
)

// DefaultInvestmentAmount se usa cuando el quiz no envia monto.
var DefaultInvestmentAmount = decimal.NewFromInt(10000)

// ParseRiskBucket normaliza tanto los buckets como las etiquetas del quiz.
// Un horizonte corto se trata como agresivo y uno largo como conservador.
func ParseRiskBucket(label string) (RiskBucket, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case string(RiskConservative), HorizonLongTerm:
		return RiskConservative, true
	case string(RiskBalanced), HorizonMediumTerm:
		return RiskBalanced, true
	case string(RiskAggressive), HorizonShortTerm:
		return RiskAggressive, true
	default:
		return "", false
	}
}

// BucketForBeta clasifica una beta en su bucket de riesgo.
func BucketForBeta(beta float64) RiskBucket {
	switch {
	case beta <= ConservativeMaxBeta:
		return RiskConservative
	case beta <= BalancedMaxBeta:
		return RiskBalanced
	default:
		return RiskAggressive
	}
}

// Preference guarda las respuestas del quiz para una sesion.
type Preference struct {
	ID               string          `json:"id"`
	SessionID        string          `json:"sessionId"`
	Risk             string          `json:"risk"`
	Industries       []string        `json:"industries"`
	ESG              bool            `json:"esg"`
	InvestmentAmount decimal.Decimal `json:"investmentAmount"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// Bucket devuelve el bucket normalizado; etiquetas desconocidas caen en balanced.
func (p Preference) Bucket() RiskBucket {
	if b, ok := ParseRiskBucket(p.Risk); ok {
		return b
	}
	return RiskBalanced
}

// DefaultPreference es la preferencia usada cuando la sesion no guardo el quiz.
func DefaultPreference(sessionID string) Preference {
	return Preference{
		SessionID:        sessionID,
		Risk:             string(RiskBalanced),
		Industries:       []string{"tech"},
		InvestmentAmount: DefaultInvestmentAmount,
	}
}
