package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradedesk"
	"github.com/google/subcommands"
)

type sellCmd struct {
	limit string
	json  bool
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares at the market or with a limit price" }
func (*sellCmd) Usage() string {
	return `trade sell [-limit <price>] [-json] <symbol> <quantity>

  Sells shares of a holding at the latest price of the symbol.
  With -limit it sells at the limit price only when the latest price is at
  or above it.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.limit, "limit", "", "limit price of the sell")
	f.BoolVar(&c.json, "json", false, "print the execution as JSON")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, quantity, err := parseOrder(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	var limit tradedesk.Money
	if c.limit != "" {
		if limit, err = tradedesk.ParseMoney(c.limit, *currency); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	desk, err := OpenDesk(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	ref, err := desk.Quote(symbol)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var x tradedesk.Execution
	if c.limit == "" {
		x, err = desk.MarketSell(symbol, quantity, ref)
	} else {
		x, err = desk.LimitSell(symbol, quantity, limit, ref)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := printExecution(x, c.json); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
