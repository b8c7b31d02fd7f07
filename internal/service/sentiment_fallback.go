package service

import (
	"fmt"

	"stockmatch/internal/domain"
)

var industryDescriptions = map[string]string{
	domain.IndustryTechnology:    "Tech company with growth potential but can be volatile",
	domain.IndustryHealthcare:    "Healthcare company offering stability with steady demand",
	domain.IndustryFinance:       "Financial company that tends to be stable for long-term investing",
	domain.IndustryConsumer:      "Consumer company with products people use daily",
	domain.IndustryEnergy:        "Energy company with returns tied to commodity prices",
	domain.IndustryEntertainment: "Entertainment company with growth potential but variable income",
	domain.IndustryAutomotive:    "Automotive company riding long product cycles and shifting demand",
}

var industryRisks = map[string]string{
	domain.IndustryTechnology:    "Fast-moving competition and rich valuations",
	domain.IndustryHealthcare:    "Regulatory decisions and patent expirations",
	domain.IndustryFinance:       "Sensitivity to interest rates and credit cycles",
	domain.IndustryConsumer:      "Shifts in consumer spending",
	domain.IndustryEnergy:        "Oil and gas price swings",
	domain.IndustryEntertainment: "Subscriber growth and content costs",
	domain.IndustryAutomotive:    "Supply chain and pricing pressure",
}

func describeIndustry(industry string) string {
	if d, ok := industryDescriptions[industry]; ok {
		return d
	}
	return "Established company in its industry sector"
}

// FallbackSummary es el resumen para principiantes sin LLM. Puro y determinista.
func FallbackSummary(st domain.StockRecord) domain.StockSummary {
	base := describeIndustry(st.Industry)
	var text string
	switch domain.BucketForBeta(st.Beta) {
	case domain.RiskConservative:
		text = base + ". Generally less risky and good for beginners seeking steady growth."
	case domain.RiskBalanced:
		text = base + ". Moderate volatility makes it suitable for beginners with some risk tolerance."
	default:
		text = base + ". Higher volatility means bigger swings - consider carefully if you're new to investing."
	}
	return domain.StockSummary{
		Ticker:           st.Ticker,
		SentimentSummary: text,
		RiskLevel:        domain.RiskLevelForBeta(st.Beta),
		BeginnerFriendly: true,
		Source:           domain.SourceFallback,
	}
}

// FallbackSentiment deriva un analisis a partir de beta, ESG e industria. Puro y determinista.
func FallbackSentiment(st domain.StockRecord) domain.SentimentAnalysis {
	var base float64
	switch domain.BucketForBeta(st.Beta) {
	case domain.RiskConservative:
		base = 0.3
	case domain.RiskBalanced:
		base = 0.15
	default:
		base = 0
	}
	score := round2(clamp(base+(st.ESGScore-5)/20, -1, 1))

	insights := []string{describeIndustry(st.Industry) + "."}
	if st.MarketCap >= 200 {
		insights = append(insights, fmt.Sprintf("Large company with a market cap around $%gB.", st.MarketCap))
	} else {
		insights = append(insights, fmt.Sprintf("Smaller company with a market cap around $%gB.", st.MarketCap))
	}
	if st.ESGScore >= 7.5 {
		insights = append(insights, fmt.Sprintf("Strong ESG score of %g/10.", st.ESGScore))
	}

	risks := []string{}
	if r, ok := industryRisks[st.Industry]; ok {
		risks = append(risks, r+".")
	}
	if st.Beta > domain.BalancedMaxBeta {
		risks = append(risks, fmt.Sprintf("High volatility (beta %g) means larger price swings.", st.Beta))
	}
	if st.ESGScore < 5 {
		risks = append(risks, "Weak ESG profile may weigh on long-term investors.")
	}

	opportunities := []string{}
	switch domain.BucketForBeta(st.Beta) {
	case domain.RiskConservative:
		opportunities = append(opportunities, "Steady business that can anchor a beginner portfolio.")
	case domain.RiskBalanced:
		opportunities = append(opportunities, "Balance of growth and stability.")
	default:
		opportunities = append(opportunities, "Higher growth potential for investors who can ride out swings.")
	}

	return domain.SentimentAnalysis{
		Ticker:          st.Ticker,
		OverallScore:    score,
		ConfidenceLevel: 0.4,
		MarketTrend:     trendForScore(score),
		TimeHorizon:     horizonForBeta(st.Beta),
		KeyInsights:     insights,
		RiskFactors:     risks,
		Opportunities:   opportunities,
		Recommendation:  recommendationFor(st),
		Source:          domain.SourceFallback,
	}
}

func trendForScore(score float64) domain.MarketTrend {
	switch {
	case score > 0.2:
		return domain.TrendBullish
	case score < -0.2:
		return domain.TrendBearish
	default:
		return domain.TrendNeutral
	}
}

// horizonForBeta: las acciones mas volatiles se miran a corto plazo.
func horizonForBeta(beta float64) string {
	switch domain.BucketForBeta(beta) {
	case domain.RiskConservative:
		return domain.HorizonLongTerm
	case domain.RiskBalanced:
		return domain.HorizonMediumTerm
	default:
		return domain.HorizonShortTerm
	}
}

func recommendationFor(st domain.StockRecord) string {
	switch domain.RiskLevelForBeta(st.Beta) {
	case domain.RiskLevelLow:
		return fmt.Sprintf("%s looks like a steady holding for beginners building a long-term portfolio.", st.Name)
	case domain.RiskLevelMedium:
		return fmt.Sprintf("%s can fit a diversified portfolio if you accept some ups and downs.", st.Name)
	default:
		return fmt.Sprintf("%s is best kept as a small position until you are comfortable with volatility.", st.Name)
	}
}
