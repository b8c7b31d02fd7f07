// Package catalog provee el catalogo de acciones: la lista curada del demo,
// datos de mercado simulados y el loader del CSV de NASDAQ.
package catalog

import (
	"fmt"

	"stockmatch/internal/domain"
)

type seed struct {
	ticker    string
	name      string
	industry  string
	marketCap float64
	beta      float64
	hook      string
	esgScore  float64
}

var curatedSeeds = []seed{
	{"AAPL", "Apple Inc.", domain.IndustryTechnology, 3000, 1.2, "Designs and sells iconic consumer electronics, software, and digital services worldwide.", 8.5},
	{"MSFT", "Microsoft Corporation", domain.IndustryTechnology, 2800, 0.9, "Develops productivity software, cloud computing, and gaming platforms for businesses and consumers.", 8.8},
	{"GOOGL", "Alphabet Inc.", domain.IndustryTechnology, 1900, 1.1, "Operates the world's largest search engine and provides cloud computing and digital advertising services.", 7.9},
	{"META", "Meta Platforms Inc.", domain.IndustryTechnology, 800, 1.4, "Connects billions of people through social media platforms and develops virtual reality technologies.", 6.2},
	{"TSLA", "Tesla Inc.", domain.IndustryAutomotive, 700, 2.1, "Designs and manufactures electric vehicles, energy storage systems, and renewable energy solutions.", 9.1},
	{"NVDA", "NVIDIA Corporation", domain.IndustryTechnology, 1200, 1.8, "Creates graphics processing units for gaming, data centers, and artificial intelligence applications.", 7.6},
	{"AMZN", "Amazon.com Inc.", domain.IndustryConsumer, 1600, 1.3, "Operates the world's largest e-commerce platform and provides cloud computing services globally.", 7.2},
	{"NFLX", "Netflix Inc.", domain.IndustryEntertainment, 200, 1.5, "Streams movies and TV shows to millions of subscribers worldwide on demand.", 7.8},

	{"JNJ", "Johnson & Johnson", domain.IndustryHealthcare, 450, 0.7, "Develops pharmaceutical products, medical devices, and consumer healthcare solutions globally.", 8.7},
	{"UNH", "UnitedHealth Group", domain.IndustryHealthcare, 500, 0.8, "Provides health insurance coverage and healthcare services to millions of Americans.", 8.1},
	{"PFE", "Pfizer Inc.", domain.IndustryHealthcare, 280, 0.6, "Discovers, develops, and manufactures innovative medicines and vaccines for global health.", 8.9},

	{"JPM", "JPMorgan Chase & Co.", domain.IndustryFinance, 420, 1.1, "Provides investment banking, asset management, and consumer banking services worldwide.", 7.3},
	{"V", "Visa Inc.", domain.IndustryFinance, 480, 0.9, "Operates the world's largest electronic payments network facilitating digital transactions.", 8.0},
	{"MA", "Mastercard Inc.", domain.IndustryFinance, 380, 1.0, "Processes payments and provides technology services for digital commerce worldwide.", 8.2},

	{"WMT", "Walmart Inc.", domain.IndustryConsumer, 420, 0.5, "Operates retail stores and e-commerce platforms offering everyday low prices globally.", 7.5},
	{"PG", "Procter & Gamble", domain.IndustryConsumer, 380, 0.6, "Manufactures and markets consumer goods including household and personal care products.", 8.6},
	{"KO", "The Coca-Cola Company", domain.IndustryConsumer, 260, 0.6, "Produces and distributes non-alcoholic beverages and syrups worldwide for over a century.", 7.8},
	{"NKE", "Nike Inc.", domain.IndustryConsumer, 180, 1.0, "Designs, develops, and sells athletic footwear, apparel, and equipment globally.", 8.3},

	{"XOM", "Exxon Mobil Corporation", domain.IndustryEnergy, 460, 1.4, "Explores, produces, and refines oil and natural gas while developing low-carbon solutions.", 6.1},
	{"CVX", "Chevron Corporation", domain.IndustryEnergy, 340, 1.2, "Integrated energy company engaged in oil and gas exploration, production, and refining.", 6.5},

	{"ORCL", "Oracle Corporation", domain.IndustryTechnology, 320, 1.1, "Develops database software and cloud computing services for enterprises worldwide.", 7.7},
	{"ADBE", "Adobe Inc.", domain.IndustryTechnology, 220, 1.2, "Creates digital media and marketing software solutions for creative professionals and businesses.", 8.4},
	{"CRM", "Salesforce Inc.", domain.IndustryTechnology, 200, 1.3, "Provides cloud-based customer relationship management software and business automation tools.", 9.0},
	{"AMD", "Advanced Micro Devices", domain.IndustryTechnology, 240, 1.9, "Designs and manufactures computer processors and graphics cards for PCs and data centers.", 7.4},
}

// Curated devuelve la lista curada del demo con datos de mercado simulados.
// Cada llamada devuelve una copia nueva.
func Curated() []domain.StockRecord {
	out := make([]domain.StockRecord, 0, len(curatedSeeds))
	for _, s := range curatedSeeds {
		quote := MockQuote(s.ticker, s.industry)
		out = append(out, domain.StockRecord{
			Ticker:           s.ticker,
			Name:             s.name,
			Industry:         s.industry,
			MarketCap:        s.marketCap,
			Beta:             s.beta,
			ESGScore:         s.esgScore,
			LogoURL:          logoURL(s.ticker),
			Hook:             s.hook,
			Metric:           fmt.Sprintf("Market Cap: $%gB", s.marketCap),
			Price:            quote.Price,
			PriceChangePct:   quote.ChangePct,
			ChartData:        quote.History,
			SentimentSummary: quote.Summary,
		})
	}
	return out
}

func logoURL(ticker string) string {
	return "https://api.dicebear.com/7.x/identicon/svg?seed=" + ticker
}
