package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"stockmatch/internal/domain"
)

// MaxCSVStocks limita la carga para el demo.
const MaxCSVStocks = 500

var ErrCSVMissingColumns = errors.New("csv missing required columns")

// Columnas del listado "nasdaqtraded" de NASDAQ Trader.
const (
	colNasdaqTraded   = "Nasdaq Traded"
	colSymbol         = "Symbol"
	colSecurityName   = "Security Name"
	colMarketCategory = "Market Category"
	colETF            = "ETF"
	colTestIssue      = "Test Issue"
	colIndustry       = "Industry"
	colSector         = "Sector"
)

// LoadNasdaqCSV lee el CSV de metadatos y devuelve hasta limit acciones comunes
// con datos de mercado simulados. Descarta ETFs, test issues, simbolos largos o
// con punto y nombres demasiado cortos.
func LoadNasdaqCSV(r io.Reader, limit int) ([]domain.StockRecord, error) {
	if limit <= 0 || limit > MaxCSVStocks {
		limit = MaxCSVStocks
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))] = i
	}
	for _, required := range []string{colSymbol, colSecurityName} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrCSVMissingColumns, required)
		}
	}

	get := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []domain.StockRecord
	seen := make(map[string]struct{})
	for len(out) < limit {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		symbol := strings.ToUpper(get(row, colSymbol))
		name := get(row, colSecurityName)
		if !eligible(symbol, name, get(row, colNasdaqTraded), get(row, colETF), get(row, colTestIssue)) {
			continue
		}
		if _, dup := seen[symbol]; dup {
			continue
		}
		seen[symbol] = struct{}{}

		rawIndustry := get(row, colIndustry)
		if rawIndustry == "" {
			rawIndustry = get(row, colSector)
		}
		if rawIndustry == "" {
			rawIndustry = get(row, colMarketCategory)
		}
		out = append(out, generatedRecord(symbol, name, domain.CanonicalIndustry(rawIndustry)))
	}
	return out, nil
}

func eligible(symbol, name, traded, etf, testIssue string) bool {
	// Las columnas opcionales vacias no descartan la fila.
	if traded != "" && traded != "Y" {
		return false
	}
	if etf == "Y" || testIssue == "Y" {
		return false
	}
	if symbol == "" || len(symbol) > 5 || strings.Contains(symbol, ".") {
		return false
	}
	return len(name) > 5
}

func generatedRecord(symbol, name, industry string) domain.StockRecord {
	r := tickerUnit(symbol)
	quote := MockQuote(symbol, industry)
	metrics := industryMetrics[industry]
	if len(metrics) == 0 {
		metrics = industryMetrics[domain.IndustryConsumer]
	}
	hooks := industryHooks[industry]
	if len(hooks) == 0 {
		hooks = industryHooks[domain.IndustryConsumer]
	}

	return domain.StockRecord{
		Ticker:           symbol,
		Name:             name,
		Industry:         industry,
		MarketCap:        math.Floor(1 + r*49),
		Beta:             round2(0.5 + r*1.5),
		ESGScore:         math.Floor(3 + r*7),
		LogoURL:          logoURL(symbol),
		Hook:             hooks[nameHash(name)%len(hooks)],
		Metric:           metrics[quote.Score%len(metrics)],
		Price:            quote.Price,
		PriceChangePct:   quote.ChangePct,
		ChartData:        quote.History,
		SentimentSummary: quote.Summary,
	}
}

func nameHash(name string) int {
	h := 0
	for _, ch := range name {
		h += int(ch)
	}
	return h
}

var industryHooks = map[string][]string{
	domain.IndustryTechnology: {
		"Leading innovator in digital transformation and cloud computing solutions.",
		"Develops cutting-edge software and hardware for modern enterprises.",
		"Pioneer in artificial intelligence and machine learning technologies.",
		"Creates platforms that connect millions of users worldwide.",
		"Designs next-generation chips and processors for computing.",
	},
	domain.IndustryHealthcare: {
		"Develops life-saving medications and medical devices.",
		"Leading provider of innovative healthcare solutions and services.",
		"Pioneers breakthrough treatments for critical diseases.",
		"Manufactures essential medical equipment and diagnostics.",
		"Focused on improving patient outcomes through innovation.",
	},
	domain.IndustryFinance: {
		"Provides comprehensive banking and financial services globally.",
		"Leading investment and wealth management solutions.",
		"Innovative digital payment and fintech services.",
		"Offers insurance and risk management solutions.",
		"Facilitates global commerce and financial transactions.",
	},
	domain.IndustryConsumer: {
		"Creates beloved consumer products and brands worldwide.",
		"Leading retailer offering convenient shopping experiences.",
		"Manufactures everyday essentials and lifestyle products.",
		"Delivers exceptional customer experiences and value.",
		"Innovates in sustainable consumer goods and services.",
	},
	domain.IndustryEnergy: {
		"Leading provider of clean and renewable energy solutions.",
		"Explores and produces essential energy resources globally.",
		"Develops sustainable energy infrastructure and technology.",
		"Delivers reliable energy solutions for communities worldwide.",
		"Pioneers the transition to cleaner energy sources.",
	},
	domain.IndustryEntertainment: {
		"Produces stories and experiences enjoyed by audiences worldwide.",
		"Streams and distributes content across devices and platforms.",
		"Builds games and interactive worlds for millions of players.",
	},
}

var industryMetrics = map[string][]string{
	domain.IndustryTechnology:    {"P/E: 25.3", "Revenue Growth: +18%", "R&D Spend: $2.1B", "User Growth: +22%"},
	domain.IndustryHealthcare:    {"Pipeline: 15 drugs", "FDA Approvals: 3", "R&D: $1.8B", "Market Access: 85%"},
	domain.IndustryFinance:       {"ROE: 12.5%", "Loan Growth: +8%", "NIM: 3.2%", "Efficiency: 58%"},
	domain.IndustryConsumer:      {"Same-Store Sales: +5%", "Brand Value: $12B", "Market Share: 18%", "Margin: 15%"},
	domain.IndustryEnergy:        {"Production: 2.1M bbl/d", "Reserves: 12B bbl", "Breakeven: $45", "Dividend: 6.2%"},
	domain.IndustryEntertainment: {"Subscribers: 230M", "Content Spend: $17B", "Engagement: +9%"},
}
