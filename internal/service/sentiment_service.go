package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stockmatch/internal/domain"
	"stockmatch/internal/llm"
	"stockmatch/internal/repository"
)

var ErrStockNotFound = errors.New("stock not found")

type SentimentOptions struct {
	CacheTTL    time.Duration
	Timeout     time.Duration
	Concurrency int
}

func DefaultSentimentOptions() SentimentOptions {
	return SentimentOptions{CacheTTL: 6 * time.Hour, Timeout: 20 * time.Second, Concurrency: 4}
}

// SentimentService decora el portfolio con analisis del LLM. Nunca falla por el LLM:
// cualquier error cae al analisis generado localmente.
type SentimentService struct {
	logger  *zap.Logger
	stocks  repository.StockRepository
	llm     llm.LLMClient
	cache   SentimentCache
	limiter AIRateLimiter
	opts    SentimentOptions
}

func NewSentimentService(
	logger *zap.Logger,
	stocks repository.StockRepository,
	client llm.LLMClient,
	cache SentimentCache,
	limiter AIRateLimiter,
	opts SentimentOptions,
) *SentimentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		client = llm.DisabledClient{}
	}
	if cache == nil {
		cache = NewMemorySentimentCache()
	}
	def := DefaultSentimentOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = def.Concurrency
	}
	if limiter == nil {
		limiter = NewMemoryAIRateLimiter(time.Minute, 20)
	}
	return &SentimentService{
		logger:  logger,
		stocks:  stocks,
		llm:     client,
		cache:   cache,
		limiter: limiter,
		opts:    opts,
	}
}

// Analyze devuelve un analisis por ticker conocido; los desconocidos cuentan como fallidos.
func (s *SentimentService) Analyze(ctx context.Context, tickers []string, clientKey string) (domain.SentimentBatch, error) {
	requested := normalizeTickers(tickers)
	batch := domain.SentimentBatch{
		Analyses:       []domain.SentimentAnalysis{},
		TotalRequested: len(requested),
	}
	if len(requested) == 0 {
		return batch, nil
	}

	stocks, err := s.stocks.GetByTickers(ctx, requested)
	if err != nil {
		return domain.SentimentBatch{}, fmt.Errorf("resolve tickers: %w", err)
	}

	results := make([]domain.SentimentAnalysis, len(stocks))
	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for i, st := range stocks {
		g.Go(func() error {
			results[i] = s.analyzeOne(ctx, st, clientKey)
			return nil
		})
	}
	_ = g.Wait()

	batch.Analyses = results
	batch.SuccessfulCount = len(results)
	batch.FailedCount = len(requested) - len(results)
	return batch, nil
}

func (s *SentimentService) analyzeOne(ctx context.Context, st domain.StockRecord, clientKey string) domain.SentimentAnalysis {
	key := "analysis:" + st.Ticker
	if cached, ok := s.cache.Get(ctx, key); ok {
		return cached
	}

	if s.limiter.Allow(clientKey) {
		analysis, err := s.aiSentiment(ctx, st)
		if err == nil {
			s.cache.Set(ctx, key, analysis, s.opts.CacheTTL)
			return analysis
		}
		if !errors.Is(err, llm.ErrDisabled) {
			s.logger.Warn("ai sentiment failed, using fallback", zap.String("ticker", st.Ticker), zap.Error(err))
		}
	} else {
		s.logger.Info("ai rate limit reached, using fallback", zap.String("ticker", st.Ticker))
	}
	return FallbackSentiment(st)
}

func (s *SentimentService) aiSentiment(ctx context.Context, st domain.StockRecord) (domain.SentimentAnalysis, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	raw, err := s.llm.Generate(callCtx, buildSentimentPrompt(st))
	if err != nil {
		return domain.SentimentAnalysis{}, err
	}
	res, err := parseLLMObject(raw)
	if err != nil {
		return domain.SentimentAnalysis{}, err
	}
	return sentimentFromJSON(st, res)
}

// Summary arma el resumen para principiantes de una carta.
func (s *SentimentService) Summary(ctx context.Context, ticker, clientKey string) (domain.StockSummary, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	st, err := repository.GetByTicker(ctx, s.stocks, ticker)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.StockSummary{}, ErrStockNotFound
		}
		return domain.StockSummary{}, fmt.Errorf("get stock: %w", err)
	}

	if s.limiter.Allow(clientKey) {
		summary, err := s.aiSummary(ctx, st)
		if err == nil {
			return summary, nil
		}
		if !errors.Is(err, llm.ErrDisabled) {
			s.logger.Warn("ai summary failed, using fallback", zap.String("ticker", st.Ticker), zap.Error(err))
		}
	}
	return FallbackSummary(st), nil
}

func (s *SentimentService) aiSummary(ctx context.Context, st domain.StockRecord) (domain.StockSummary, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	raw, err := s.llm.Generate(callCtx, buildSummaryPrompt(st))
	if err != nil {
		return domain.StockSummary{}, err
	}
	res, err := parseLLMObject(raw)
	if err != nil {
		return domain.StockSummary{}, err
	}
	text := strings.TrimSpace(res.Get("sentimentSummary").String())
	if text == "" {
		return domain.StockSummary{}, errInvalidLLMJSON
	}
	friendly := true
	if v := res.Get("beginnerFriendly"); v.Exists() {
		friendly = v.Type != gjson.False
	}
	return domain.StockSummary{
		Ticker:           st.Ticker,
		SentimentSummary: text,
		RiskLevel:        domain.ParseRiskLevel(res.Get("riskLevel").String(), domain.RiskLevelForBeta(st.Beta)),
		BeginnerFriendly: friendly,
		Source:           domain.SourceAI,
	}, nil
}

// sentimentFromJSON valida y acota los campos que devuelve el LLM.
func sentimentFromJSON(st domain.StockRecord, res gjson.Result) (domain.SentimentAnalysis, error) {
	score := res.Get("overallScore")
	if !score.Exists() {
		return domain.SentimentAnalysis{}, fmt.Errorf("%w: missing overallScore", errInvalidLLMJSON)
	}
	overall := round2(clamp(score.Float(), -1, 1))

	confidence := 0.5
	if c := res.Get("confidenceLevel"); c.Exists() {
		confidence = round2(clamp(c.Float(), 0, 1))
	}

	trend := domain.MarketTrend(strings.ToLower(strings.TrimSpace(res.Get("marketTrend").String())))
	switch trend {
	case domain.TrendBullish, domain.TrendBearish, domain.TrendNeutral:
	default:
		trend = trendForScore(overall)
	}

	horizon := strings.ToLower(strings.TrimSpace(res.Get("timeHorizon").String()))
	switch horizon {
	case domain.HorizonShortTerm, domain.HorizonMediumTerm, domain.HorizonLongTerm:
	default:
		horizon = horizonForBeta(st.Beta)
	}

	recommendation := strings.TrimSpace(res.Get("recommendation").String())
	if recommendation == "" {
		recommendation = recommendationFor(st)
	}

	return domain.SentimentAnalysis{
		Ticker:          st.Ticker,
		OverallScore:    overall,
		ConfidenceLevel: confidence,
		MarketTrend:     trend,
		TimeHorizon:     horizon,
		KeyInsights:     stringList(res.Get("keyInsights"), 5),
		RiskFactors:     stringList(res.Get("riskFactors"), 5),
		Opportunities:   stringList(res.Get("opportunities"), 5),
		Recommendation:  recommendation,
		Source:          domain.SourceAI,
	}, nil
}

func buildSentimentPrompt(st domain.StockRecord) string {
	return fmt.Sprintf(`Analyze the market sentiment for the following stock for a beginner investor.

Company: %s (%s)
Industry: %s
Market Cap: $%gB
Beta (volatility): %g
ESG Score: %g/10
Recent price change: %g%%

Respond with JSON in this exact format:
{
  "overallScore": number between -1 and 1,
  "confidenceLevel": number between 0 and 1,
  "marketTrend": "bullish" | "bearish" | "neutral",
  "timeHorizon": "short-term" | "medium-term" | "long-term",
  "keyInsights": ["up to 3 short insights"],
  "riskFactors": ["up to 3 short risks"],
  "opportunities": ["up to 3 short opportunities"],
  "recommendation": "one sentence in plain language"
}`, st.Name, st.Ticker, st.Industry, st.MarketCap, st.Beta, st.ESGScore, st.PriceChangePct)
}

func buildSummaryPrompt(st domain.StockRecord) string {
	return fmt.Sprintf(`Analyze the following stock and provide a simple, beginner-friendly explanation:

Company: %s (%s)
Industry: %s
Market Cap: $%gB
Beta (volatility): %g
ESG Score: %g/10

Generate a beginner-friendly summary that:
1. Uses simple language (no jargon)
2. Explains why this stock might be good or concerning for beginners
3. Mentions 1-2 key strengths or risks
4. Keeps it under 50 words
5. Is encouraging but honest about risks

Respond with JSON in this exact format:
{
  "sentimentSummary": "your beginner-friendly explanation here",
  "riskLevel": "low" | "medium" | "high",
  "beginnerFriendly": true | false
}`, st.Name, st.Ticker, st.Industry, st.MarketCap, st.Beta, st.ESGScore)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
