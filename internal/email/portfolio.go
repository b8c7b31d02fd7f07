package email

import (
	"fmt"
	"html/template"
	"strings"
)

// Holding es una linea del resumen; los montos llegan ya formateados.
type Holding struct {
	Ticker string
	Name   string
	Pct    int
	Value  string
}

type PortfolioSummary struct {
	SessionID string
	Total     string
	Holdings  []Holding
}

const portfolioDisclaimer = "Equal-weight allocations are for education only and are not investment advice."

var portfolioHTML = template.Must(template.New("portfolio").Parse(`<html><body>
<p>Here is the portfolio you built on StockMatch.</p>
<p><strong>Total value:</strong> {{.Total}}</p>
<table>
<tr><th>Ticker</th><th>Company</th><th>Weight</th><th>Amount</th></tr>
{{range .Holdings}}<tr><td>{{.Ticker}}</td><td>{{.Name}}</td><td>{{.Pct}}%</td><td>{{.Value}}</td></tr>
{{end}}</table>
<p><small>` + portfolioDisclaimer + `</small></p>
</body></html>`))

// NewPortfolioMessage arma el correo de un portfolio compartido con parte de texto y HTML.
func NewPortfolioMessage(to string, s PortfolioSummary) (Message, error) {
	for i := range s.Holdings {
		if strings.TrimSpace(s.Holdings[i].Name) == "" {
			s.Holdings[i].Name = s.Holdings[i].Ticker
		}
	}

	var text strings.Builder
	text.WriteString("Here is the portfolio you built on StockMatch.\n\n")
	fmt.Fprintf(&text, "Total value: %s\n\n", s.Total)
	for _, h := range s.Holdings {
		fmt.Fprintf(&text, "- %s (%s): %d%% / %s\n", h.Ticker, h.Name, h.Pct, h.Value)
	}
	text.WriteString("\n" + portfolioDisclaimer + "\n")

	var html strings.Builder
	if err := portfolioHTML.Execute(&html, s); err != nil {
		return Message{}, fmt.Errorf("render portfolio html: %w", err)
	}

	return Message{
		To:      to,
		Subject: fmt.Sprintf("Your StockMatch portfolio (%s)", s.Total),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
