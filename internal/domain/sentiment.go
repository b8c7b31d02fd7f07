package domain

type MarketTrend string

const (
	TrendBullish MarketTrend = "bullish"
	TrendBearish MarketTrend = "bearish"
	TrendNeutral MarketTrend = "neutral"
)

// AnalysisSource distingue respuestas del LLM de las generadas localmente.
type AnalysisSource string

const (
	SourceAI       AnalysisSource = "ai"
	SourceFallback AnalysisSource = "fallback"
)

// SentimentAnalysis es decoracion para la pagina del portfolio; nada del core depende de ella.
type SentimentAnalysis struct {
	Ticker          string         `json:"ticker"`
	OverallScore    float64        `json:"overallScore"`    // -1 a 1
	ConfidenceLevel float64        `json:"confidenceLevel"` // 0 a 1
	MarketTrend     MarketTrend    `json:"marketTrend"`
	TimeHorizon     string         `json:"timeHorizon"`
	KeyInsights     []string       `json:"keyInsights"`
	RiskFactors     []string       `json:"riskFactors"`
	Opportunities   []string       `json:"opportunities"`
	Recommendation  string         `json:"recommendation"`
	Source          AnalysisSource `json:"source"`
}

type SentimentBatch struct {
	Analyses        []SentimentAnalysis `json:"analyses"`
	TotalRequested  int                 `json:"totalRequested"`
	SuccessfulCount int                 `json:"successfulCount"`
	FailedCount     int                 `json:"failedCount"`
}

// StockSummary es el resumen para principiantes que acompana cada carta.
type StockSummary struct {
	Ticker           string         `json:"ticker"`
	SentimentSummary string         `json:"sentimentSummary"`
	RiskLevel        RiskLevel      `json:"riskLevel"`
	BeginnerFriendly bool           `json:"beginnerFriendly"`
	Source           AnalysisSource `json:"source"`
}
