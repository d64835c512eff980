package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/tradedesk"
	"github.com/etnz/tradedesk/renderer"
	"github.com/google/subcommands"
)

type strategyCmd struct {
	kind   string
	period int
	json   bool
}

func (*strategyCmd) Name() string     { return "strategy" }
func (*strategyCmd) Synopsis() string { return "run a trading strategy over the market" }
func (*strategyCmd) Usage() string {
	return `trade strategy -s <ma|rsi|meanrev|momentum> [-period <bars>] [-json]

  Evaluates a technical strategy on every symbol and prints its advice.
  The strategy only advises, it never places an order.
`
}

func (c *strategyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "s", "ma", "strategy to run: "+strings.Join(strategyNames(), ", "))
	f.IntVar(&c.period, "period", 0, "number of bars of the strategy, 0 keeps its default")
	f.BoolVar(&c.json, "json", false, "print the signals as JSON")
}

func (c *strategyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := tradedesk.ParseStrategyKind(c.kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	s := tradedesk.DefaultStrategy(kind)
	if c.period != 0 {
		s.Period = c.period
	}

	desk, err := OpenDesk(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	signals, err := desk.RunStrategy(s, desk.Market().All())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(signals); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding signals: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.SignalsMarkdown(s.Name(), signals))
	return subcommands.ExitSuccess
}

func strategyNames() []string {
	names := make([]string, 0, len(tradedesk.StrategyKinds))
	for _, k := range tradedesk.StrategyKinds {
		names = append(names, k.String())
	}
	return names
}
