package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"stockmatch/internal/domain"
	"stockmatch/internal/service"
)

type deckCmd struct {
	risk       string
	industries string
	esg        bool
	seed       uint64
	size       int
	verbose    bool
}

func (*deckCmd) Name() string     { return "deck" }
func (*deckCmd) Synopsis() string { return "preview the deck for a quiz answer" }
func (*deckCmd) Usage() string {
	return `stockmatchctl deck [-risk balanced] [-industries tech,energy] [-esg] [-seed 42]

  Builds a deck with the same rules as the API and prints it.
  Uses DATABASE_URL when set, otherwise the curated catalog.
`
}

func (c *deckCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.risk, "risk", string(domain.RiskBalanced), "Risk bucket or horizon label")
	f.StringVar(&c.industries, "industries", "tech", "Comma separated industry tags")
	f.BoolVar(&c.esg, "esg", false, "Only keep stocks with a high ESG score")
	f.Uint64Var(&c.seed, "seed", 0, "Shuffle seed (0 means random)")
	f.IntVar(&c.size, "size", 15, "Deck size")
	f.BoolVar(&c.verbose, "v", false, "Verbose logging")
}

func (c *deckCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	stocks, closeFn, err := openStocks(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	var shuffler service.Shuffler
	if c.seed != 0 {
		shuffler = rand.New(rand.NewPCG(c.seed, c.seed))
	}
	opts := service.DefaultDeckOptions()
	opts.Size = c.size
	svc := service.NewDeckService(newLogger(c.verbose), stocks, nil, shuffler, opts)

	pref := domain.Preference{Risk: c.risk, Industries: splitTags(c.industries), ESG: c.esg}
	deck, err := svc.BuildDeck(ctx, pref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TICKER\tNAME\tINDUSTRY\tBETA\tESG\tPRICE\tSOURCE")
	for _, card := range deck {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.1f\t%s\t%s\n",
			card.Ticker, card.Name, card.Industry, card.Beta, card.ESGScore,
			domain.FormatMoney(decimal.NewFromFloat(card.Price), domain.CurrencyUSD), card.Source)
	}
	_ = w.Flush()
	fmt.Printf("\n%d cards for bucket %s\n", len(deck), pref.Bucket())
	return subcommands.ExitSuccess
}

type allocateCmd struct {
	total string
}

func (*allocateCmd) Name() string     { return "allocate" }
func (*allocateCmd) Synopsis() string { return "show equal-weight allocations for tickers" }
func (*allocateCmd) Usage() string {
	return `stockmatchctl allocate [-total 10000] TICKER...

  Prints the equal-weight split shown on the portfolio page.
`
}

func (c *allocateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.total, "total", domain.DefaultInvestmentAmount.String(), "Total portfolio value in USD")
}

func (c *allocateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one ticker is required.")
		return subcommands.ExitUsageError
	}
	total, err := decimal.NewFromString(c.total)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -total: %v\n", err)
		return subcommands.ExitUsageError
	}

	tickers := make([]string, 0, f.NArg())
	for _, t := range f.Args() {
		tickers = append(tickers, strings.ToUpper(t))
	}
	p := domain.Portfolio{LikedStocks: tickers, TotalValue: total}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TICKER\tPCT\tVALUE")
	for _, a := range p.EqualWeightAllocations() {
		fmt.Fprintf(w, "%s\t%d%%\t%s\n", a.Ticker, a.AllocationPct, domain.FormatMoney(a.AllocationValue, domain.CurrencyUSD))
	}
	_ = w.Flush()
	fmt.Printf("\nTotal: %s\n", domain.FormatMoney(total, domain.CurrencyUSD))
	return subcommands.ExitSuccess
}

func splitTags(raw string) []string {
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
