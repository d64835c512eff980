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

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "total value bought and sold" }
func (*summaryCmd) Usage() string {
	return `trade summary

  Sums the value of the buys and of the sells of the transaction log.
`
}

func (*summaryCmd) SetFlags(_ *flag.FlagSet) {}

func (*summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	events, err := journal().Events()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SummaryMarkdown(tradedesk.Summarize(events, *currency)))
	return subcommands.ExitSuccess
}
