package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"stock-query/models"
)

type stockCmd struct {
	ticker string
	asJSON bool
}

func (*stockCmd) Name() string     { return "stock" }
func (*stockCmd) Synopsis() string { return "show one catalog record" }
func (*stockCmd) Usage() string {
	return `stock -ticker <symbol> [-json]

  Prints the catalog record for a ticker symbol (case-insensitive).
`
}

func (c *stockCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Ticker symbol (required)")
	f.BoolVar(&c.asJSON, "json", false, "Print the raw record as JSON")
}

func (c *stockCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintln(os.Stderr, "Error: -ticker is required.")
		return subcommands.ExitUsageError
	}
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	stock, err := a.engine.GetStock(c.ticker)
	if err != nil {
		return reportError(err)
	}
	if c.asJSON {
		return writeJSON(os.Stdout, stock)
	}
	renderStock(os.Stdout, stock)
	return subcommands.ExitSuccess
}

type sectorsCmd struct {
	sector string
	asJSON bool
}

func (*sectorsCmd) Name() string     { return "sectors" }
func (*sectorsCmd) Synopsis() string { return "show per-sector aggregates" }
func (*sectorsCmd) Usage() string {
	return `sectors [-sector <name>] [-json]

  Prints member count, market cap, head count and revenue growth totals and
  averages for every sector, or for one sector when -sector is given.
`
}

func (c *sectorsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sector, "sector", "", "Restrict output to one sector (case-insensitive)")
	f.BoolVar(&c.asJSON, "json", false, "Print aggregates as JSON")
}

func (c *sectorsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	var sectors []*models.SectorAggregate
	if c.sector != "" {
		agg, err := a.sectors.Sector(c.sector)
		if err != nil {
			return reportError(err)
		}
		sectors = append(sectors, agg)
	} else {
		sectors = a.sectors.Sectors()
	}

	if c.asJSON {
		return writeJSON(os.Stdout, sectors)
	}
	renderSectors(os.Stdout, sectors)
	return subcommands.ExitSuccess
}

type searchCmd struct {
	query string
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "full-text search over the catalog" }
func (*searchCmd) Usage() string {
	return `search -q <text>

  Ranks catalog records by symbol, name, sector and industry match.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "Search text (required)")
}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.query == "" {
		fmt.Fprintln(os.Stderr, "Error: -q is required.")
		return subcommands.ExitUsageError
	}
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	results, err := a.engine.SearchStocks(c.query)
	if err != nil {
		return reportError(err)
	}
	renderSummaries(os.Stdout, results)
	return subcommands.ExitSuccess
}

// reportError prints err and picks the exit status: client errors are usage
// errors, everything else is a failure.
func reportError(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if models.IsKind(err, models.KindMissingParams) || models.IsKind(err, models.KindBadRequest) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

func writeJSON(w io.Writer, v any) subcommands.ExitStatus {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
