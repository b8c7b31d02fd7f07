// Command cli_swipe juega una sesion de StockMatch desde la terminal contra la API.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"stockmatch/internal/domain"
	"stockmatch/internal/swipe"
)

var errQuit = errors.New("session discarded")

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", envOr("STOCKMATCH_API_URL", "http://localhost:8080"), "Base URL of the StockMatch API")
	minLiked := flag.Int("min-liked", 1, "Minimum liked stocks required to submit")
	withSentiment := flag.Bool("sentiment", true, "Fetch sentiment analysis for the final portfolio")
	flag.Parse()

	s := &session{
		api:           newAPIClient(*apiURL),
		in:            bufio.NewReader(os.Stdin),
		out:           os.Stdout,
		minLiked:      *minLiked,
		withSentiment: *withSentiment,
	}
	if err := s.run(context.Background(), uuid.NewString()); err != nil {
		if errors.Is(err, errQuit) {
			fmt.Println("Sesion descartada.")
			return
		}
		log.Fatal(err)
	}
}

type session struct {
	api           *apiClient
	in            *bufio.Reader
	out           io.Writer
	minLiked      int
	withSentiment bool
}

func (s *session) run(ctx context.Context, sessionID string) error {
	fmt.Fprintln(s.out, "===== StockMatch =====")
	req, err := s.quiz(sessionID)
	if err != nil {
		return err
	}
	if _, err := s.api.SaveProfile(ctx, req); err != nil {
		return fmt.Errorf("guardar perfil: %w", err)
	}

	deck, err := s.api.Deck(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("obtener mazo: %w", err)
	}
	cards := make(map[string]domain.DeckCard, len(deck))
	tickers := make([]string, 0, len(deck))
	for _, c := range deck {
		cards[c.Ticker] = c
		tickers = append(tickers, c.Ticker)
	}

	state := swipe.New(tickers)
	for state.Phase != swipe.Complete {
		ticker, _ := state.Current()
		s.showCard(cards[ticker], len(tickers)-state.Remaining()+1, len(tickers))
		action, err := s.askAction()
		if err != nil {
			return err
		}
		state = swipe.Reduce(state, action)
	}

	if err := swipe.Submittable(state, s.minLiked); err != nil {
		fmt.Fprintf(s.out, "No se puede armar el portfolio: %v\n", err)
		return nil
	}

	view, err := s.api.CreatePortfolio(ctx, sessionID, state.Liked)
	if err != nil {
		return fmt.Errorf("crear portfolio: %w", err)
	}
	fmt.Fprintf(s.out, "\n--- Tu portfolio (%s) ---\n", domain.FormatMoney(view.Portfolio.TotalValue, domain.CurrencyUSD))
	for _, a := range view.Allocations {
		fmt.Fprintf(s.out, "%-6s %3d%%  %s\n", a.Ticker, a.AllocationPct, domain.FormatMoney(a.AllocationValue, domain.CurrencyUSD))
	}

	if s.withSentiment && len(state.Liked) > 0 {
		batch, err := s.api.Sentiment(ctx, state.Liked)
		if err != nil {
			fmt.Fprintf(s.out, "Sentimiento no disponible: %v\n", err)
			return nil
		}
		fmt.Fprintln(s.out, "\n--- Sentimiento ---")
		for _, a := range batch.Analyses {
			fmt.Fprintf(s.out, "%-6s %-8s %+.2f  %s\n", a.Ticker, a.MarketTrend, a.OverallScore, a.Recommendation)
		}
	}
	fmt.Fprintf(s.out, "\nSession ID: %s\n", sessionID)
	return nil
}

func (s *session) quiz(sessionID string) (profileRequest, error) {
	fmt.Fprintln(s.out, "Horizonte de inversion: [1] largo plazo  [2] mediano plazo  [3] corto plazo")
	choice, err := s.prompt("Seleccion [2]: ")
	if err != nil {
		return profileRequest{}, err
	}
	risk := domain.HorizonMediumTerm
	switch choice {
	case "1":
		risk = domain.HorizonLongTerm
	case "3":
		risk = domain.HorizonShortTerm
	}

	rawTags, err := s.prompt("Industrias (tech, healthcare, finance, consumer, energy, entertainment) [tech]: ")
	if err != nil {
		return profileRequest{}, err
	}
	if rawTags == "" {
		rawTags = "tech"
	}
	var industries []string
	for _, t := range strings.Split(rawTags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			industries = append(industries, strings.ToLower(t))
		}
	}

	esg, err := s.prompt("Solo empresas con buen puntaje ESG? [s/N]: ")
	if err != nil {
		return profileRequest{}, err
	}

	amount := domain.DefaultInvestmentAmount
	rawAmount, err := s.prompt("Monto a invertir en USD [10000]: ")
	if err != nil {
		return profileRequest{}, err
	}
	if rawAmount != "" {
		parsed, err := decimal.NewFromString(rawAmount)
		if err != nil {
			fmt.Fprintln(s.out, "Monto invalido, se usa 10000.")
		} else {
			amount = parsed
		}
	}

	return profileRequest{
		SessionID:        sessionID,
		Risk:             risk,
		Industries:       industries,
		ESG:              strings.EqualFold(esg, "s") || strings.EqualFold(esg, "y"),
		InvestmentAmount: amount,
	}, nil
}

func (s *session) showCard(c domain.DeckCard, pos, total int) {
	fmt.Fprintf(s.out, "\n[%d/%d] %s - %s (%s)\n", pos, total, c.Ticker, c.Name, c.Industry)
	fmt.Fprintf(s.out, "  %s\n", c.Hook)
	fmt.Fprintf(s.out, "  %s | Precio %s (%+.2f%%) | Beta %.2f | ESG %.1f\n",
		c.Metric, domain.FormatMoney(decimal.NewFromFloat(c.Price), domain.CurrencyUSD), c.PriceChangePct, c.Beta, c.ESGScore)
}

func (s *session) askAction() (swipe.Action, error) {
	for {
		in, err := s.prompt("[l] like  [p] pass  [q] salir: ")
		if err != nil {
			return swipe.Action{}, err
		}
		switch strings.ToLower(in) {
		case "l", "like", "d":
			return swipe.Like(), nil
		case "p", "pass", "a":
			return swipe.Pass(), nil
		case "q", "quit":
			return swipe.Action{}, errQuit
		}
		fmt.Fprintln(s.out, "Opcion invalida.")
	}
}

func (s *session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", errQuit
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
