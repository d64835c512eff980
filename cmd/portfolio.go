package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradedesk/renderer"
	"github.com/google/subcommands"
)

// portfolioCmd holds the flags for the 'portfolio' subcommand.
type portfolioCmd struct {
	json bool
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "display the cash balance and holdings" }
func (*portfolioCmd) Usage() string {
	return `trade portfolio [-json]

  Displays the cash balance and every holding valued at its latest price.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "print the portfolio as JSON")
}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	desk, err := OpenDesk(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	snap := desk.Ledger().Snapshot()

	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding portfolio: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	prices := desk.Market().LatestPrices(desk.Ledger().Symbols()...)
	printMarkdown(renderer.PortfolioMarkdown(snap, prices))
	return subcommands.ExitSuccess
}
