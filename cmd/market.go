package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/tradedesk/renderer"
	"github.com/google/subcommands"
)

type marketCmd struct {
	history string
	bars    int
}

func (*marketCmd) Name() string     { return "market" }
func (*marketCmd) Synopsis() string { return "display the latest price of every symbol" }
func (*marketCmd) Usage() string {
	return `trade market [-history <symbol> [-n <bars>]]

  Displays the latest price of the desk symbols, or the last bars of one symbol.
`
}

func (c *marketCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.history, "history", "", "display the history of this symbol instead")
	f.IntVar(&c.bars, "n", 20, "number of bars of history")
}

func (c *marketCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	market, err := loadMarket(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.history != "" {
		symbol := strings.ToUpper(c.history)
		series, ok := market.Series(symbol)
		if !ok {
			fmt.Fprintf(os.Stderr, "No market data for %s\n", symbol)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.HistoryMarkdown(symbol, series, c.bars))
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.MarketMarkdown(market, Symbols()))
	return subcommands.ExitSuccess
}
