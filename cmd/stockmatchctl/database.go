package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"stockmatch/internal/catalog"
	"stockmatch/internal/db"
	"stockmatch/internal/domain"
	"stockmatch/internal/repository"
	"stockmatch/internal/service"
)

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "create the database tables" }
func (*migrateCmd) Usage() string {
	return `stockmatchctl migrate

  Applies the schema to DATABASE_URL. Safe to run more than once.
`
}
func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pool, err := openPool(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("schema applied")
	return subcommands.ExitSuccess
}

type seedCmd struct {
	csvPath string
	limit   int
	verbose bool
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "load the stock catalog into the database" }
func (*seedCmd) Usage() string {
	return `stockmatchctl seed [-csv nasdaq.csv] [-limit 500]

  Without -csv, inserts the curated demo catalog.
  With -csv, loads a NASDAQ listing file (Symbol, Security Name, ...)
  and inserts up to -limit eligible stocks. Existing tickers are kept.
`
}

func (c *seedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.csvPath, "csv", "", "Path to a NASDAQ listing CSV")
	f.IntVar(&c.limit, "limit", catalog.MaxCSVStocks, "Maximum number of CSV rows to load")
	f.BoolVar(&c.verbose, "v", false, "Verbose logging")
}

func (c *seedCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	records, err := c.records()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	pool, err := openPool(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	inserted, err := service.SeedCatalog(ctx, newLogger(c.verbose), repository.NewPgStockRepository(pool), records)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%d of %d stocks inserted\n", inserted, len(records))
	return subcommands.ExitSuccess
}

func (c *seedCmd) records() ([]domain.StockRecord, error) {
	if c.csvPath == "" {
		return catalog.Curated(), nil
	}
	f, err := os.Open(c.csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return catalog.LoadNasdaqCSV(f, c.limit)
}
