package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type liquidateCmd struct {
	json bool
}

func (*liquidateCmd) Name() string     { return "liquidate" }
func (*liquidateCmd) Synopsis() string { return "sell a whole position at the market" }
func (*liquidateCmd) Usage() string {
	return `trade liquidate [-json] <symbol>

  Sells every share held in the symbol at its latest price.
`
}

func (c *liquidateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "print the execution as JSON")
}

func (c *liquidateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "liquidate requires exactly one symbol")
		return subcommands.ExitUsageError
	}
	symbol := strings.ToUpper(f.Arg(0))

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
	x, err := desk.Liquidate(symbol, ref)
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
