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

type txCmd struct {
	symbol string
	head   int
	tail   int
	json   bool
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions of the log" }
func (*txCmd) Usage() string {
	return `trade tx [-symbol <symbol>] [-head <n>] [-tail <n>] [-json]

  Lists the transactions of the log, with options for filtering and limiting the output.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.symbol, "symbol", "", "Show only the transactions of this symbol.")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
	f.BoolVar(&p.json, "json", false, "Print the transactions as JSON.")
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	events, err := journal().Events()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	events = filterEvents(events, strings.ToUpper(p.symbol), p.head, p.tail)

	if p.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(events); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding transactions: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.TransactionsMarkdown(events))
	return subcommands.ExitSuccess
}

// filterEvents keeps the events of symbol, all when empty, then the first
// head or the last tail of them.
func filterEvents(events []tradedesk.Event, symbol string, head, tail int) []tradedesk.Event {
	var selected []tradedesk.Event
	for _, e := range events {
		if symbol == "" || e.Symbol == symbol {
			selected = append(selected, e)
		}
	}
	if head > 0 && len(selected) > head {
		selected = selected[:head]
	}
	if tail > 0 && len(selected) > tail {
		selected = selected[len(selected)-tail:]
	}
	return selected
}
