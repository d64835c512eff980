// Command trade is the trade desk: a paper trading portfolio over daily market
// data, with technical strategies and an AI assistant.
//
// Without a subcommand it starts the interactive menu. An unknown subcommand
// runs the trade-<subcommand> executable found in PATH, if any.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/tradedesk/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// exits when invoked by the shell to complete a command line.
	completion().Complete("trade")

	flag.Parse()
	cmd.SetupLog(os.Stderr)
	ctx := context.Background()

	if flag.NArg() == 0 {
		os.Exit(int((&cmd.MenuCmd{}).Execute(ctx, flag.CommandLine)))
	}

	if name := flag.Arg(0); !registered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", name)
	}
	os.Exit(int(commander.Execute(ctx)))
}

func registered(commander *subcommands.Commander, name string) bool {
	found := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}

// completion describes the command line to the shell completion.
func completion() *complete.Command {
	symbols := predict.Set(cmd.Symbols())
	strategies := predict.Set{"ma", "rsi", "meanrev", "momentum"}
	order := map[string]complete.Predictor{
		"limit": predict.Something,
		"json":  predict.Nothing,
	}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"portfolio-file": predict.Files("*.txt"),
			"log-file":       predict.Files("*.txt"),
			"data-dir":       predict.Dirs("*"),
			"symbols":        predict.Something,
			"initial-cash":   predict.Something,
			"currency":       predict.Set{"USD", "EUR", "GBP", "JPY", "CHF"},
			"quotes":         predict.Files("*.json"),
			"quotes-path":    predict.Something,
			"v":              predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"portfolio": {Flags: map[string]complete.Predictor{"json": predict.Nothing}},
			"market":    {Flags: map[string]complete.Predictor{"history": symbols, "n": predict.Something}},
			"buy":       {Flags: order, Args: symbols},
			"sell":      {Flags: order, Args: symbols},
			"liquidate": {Flags: map[string]complete.Predictor{"json": predict.Nothing}, Args: symbols},
			"strategy": {Flags: map[string]complete.Predictor{
				"s":      strategies,
				"period": predict.Something,
				"json":   predict.Nothing,
			}},
			"tx": {Flags: map[string]complete.Predictor{
				"symbol": symbols,
				"head":   predict.Something,
				"tail":   predict.Something,
				"json":   predict.Nothing,
			}},
			"summary": {},
			"pnl":     {},
			"assist":  {},
			"menu":    {},
		},
	}
}
