package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradedesk"
	"github.com/google/subcommands"
)

type buyCmd struct {
	limit string
	json  bool
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares at the market or with a limit price" }
func (*buyCmd) Usage() string {
	return `trade buy [-limit <price>] [-json] <symbol> <quantity>

  Places a buy order against the latest price of the symbol.
  Without -limit it is a market order. With -limit it fills at the limit
  price only when the latest price is at or below it.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.limit, "limit", "", "limit price of the order")
	f.BoolVar(&c.json, "json", false, "print the execution as JSON")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, quantity, err := parseOrder(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	var order tradedesk.Order
	if c.limit == "" {
		order, err = tradedesk.NewMarketOrder(symbol, quantity)
	} else {
		var limit tradedesk.Money
		limit, err = tradedesk.ParseMoney(c.limit, *currency)
		if err == nil {
			order, err = tradedesk.NewLimitOrder(symbol, quantity, limit)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
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
	x, err := desk.PlaceOrder(order, ref)
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
