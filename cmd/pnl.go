package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradedesk"
	"github.com/etnz/tradedesk/renderer"
	"github.com/google/subcommands"
)

type pnlCmd struct{}

func (*pnlCmd) Name() string     { return "pnl" }
func (*pnlCmd) Synopsis() string { return "profit and loss of the sells against the latest prices" }
func (*pnlCmd) Usage() string {
	return `trade pnl

  Compares the value of every sell of the transaction log with the value the
  same shares have at the latest price.
`
}

func (*pnlCmd) SetFlags(_ *flag.FlagSet) {}

func (*pnlCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	events, err := journal().Events()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	market, err := loadMarket(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	prices := market.LatestPrices(market.Symbols()...)
	printMarkdown(renderer.ProfitLossMarkdown(tradedesk.RealizedProfitLoss(events, prices, *currency)))
	return subcommands.ExitSuccess
}
