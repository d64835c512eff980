// Package cmd implements the command line of the trade desk.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/tradedesk"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&portfolioCmd{}, "portfolio")
	c.Register(&marketCmd{}, "portfolio")

	c.Register(&buyCmd{}, "orders")
	c.Register(&sellCmd{}, "orders")
	c.Register(&liquidateCmd{}, "orders")
	c.Register(&strategyCmd{}, "orders")

	c.Register(&txCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&pnlCmd{}, "reports")

	c.Register(&AssistCmd{}, "")
	c.Register(&MenuCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.
// Each flag default can be overridden by its environment variable, extensions receive them the same way.

var portfolioFile = flag.String("portfolio-file", env(EnvPortfolioFile, "portfolio.txt"), "Path to the portfolio file")
var logFile = flag.String("log-file", env(EnvLogFile, "log.txt"), "Path to the transaction log file")
var dataDir = flag.String("data-dir", env(EnvDataDir, "."), "Folder of the <SYMBOL>.csv market data files")
var symbols = flag.String("symbols", env(EnvSymbols, "AAPL,GOOG,AMZN,TSLA,MSFT,BABA,DIS,META,NFLX,NVDA"), "Comma separated list of the symbols traded on the desk")
var initialCash = flag.String("initial-cash", env(EnvInitialCash, "100000"), "Cash balance of a new portfolio")
var currency = flag.String("currency", env(EnvCurrency, "USD"), "Currency of the portfolio and of the market data")
var quotes = flag.String("quotes", env(EnvQuotes, ""), "File or http(s) URL of a JSON document with intraday quotes")
var quotesPath = flag.String("quotes-path", env(EnvQuotesPath, "$.{symbol}"), "JSONPath of a quote in the -quotes document, {symbol} is replaced by the symbol")

// Verbose also prints the warnings about malformed market data rows.
var Verbose = flag.Bool("v", envBool(EnvVerbose), "Print warnings about malformed market data rows")

func env(name, value string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return value
}

func envBool(name string) bool {
	v, err := strconv.ParseBool(os.Getenv(name))
	return err == nil && v
}

// SetupLog sends warnings to w. Warnings are always on: a portfolio that
// could not be saved must be reported. Only malformed market data rows
// depend on Verbose, see loadMarket.
func SetupLog(w io.Writer) {
	log.SetOutput(w)
}

// Symbols returns the symbols traded on the desk.
func Symbols() []string {
	var list []string
	for _, s := range strings.Split(*symbols, ",") {
		if s = strings.TrimSpace(s); s != "" {
			list = append(list, strings.ToUpper(s))
		}
	}
	return list
}

// journal returns the transaction log.
func journal() tradedesk.FileJournal {
	return tradedesk.FileJournal{Path: *logFile, Currency: *currency}
}

// loadMarket loads the market data of the desk symbols, overlaid with the
// intraday quotes when a -quotes source is set.
func loadMarket(ctx context.Context) (*tradedesk.Market, error) {
	market, err := tradedesk.CSVProvider{Dir: *dataDir, Currency: *currency, Quiet: !*Verbose}.Load(ctx, Symbols())
	if err != nil {
		return nil, fmt.Errorf("cannot load market data: %w", err)
	}
	if *quotes != "" {
		q := tradedesk.JSONQuotes{Source: *quotes, Path: *quotesPath}
		if err := q.Apply(ctx, market); err != nil {
			return nil, err
		}
	}
	return market, nil
}

// OpenDesk loads the market, the portfolio and the transaction log configured by the flags.
func OpenDesk(ctx context.Context) (*tradedesk.Engine, error) {
	initial, err := tradedesk.ParseMoney(*initialCash, *currency)
	if err != nil {
		return nil, fmt.Errorf("invalid initial cash %q: %w", *initialCash, err)
	}
	market, err := loadMarket(ctx)
	if err != nil {
		return nil, err
	}
	ledger := tradedesk.OpenLedger(tradedesk.FileStore{Path: *portfolioFile, Currency: *currency}, initial)
	return tradedesk.NewEngine(market, ledger, journal()), nil
}

// parseOrder reads the "<symbol> <quantity>" arguments of the order subcommands.
func parseOrder(f *flag.FlagSet) (string, tradedesk.Quantity, error) {
	if f.NArg() != 2 {
		return "", tradedesk.Quantity{}, fmt.Errorf("want <symbol> <quantity>, got %d arguments", f.NArg())
	}
	q, err := tradedesk.ParseQuantity(f.Arg(1))
	if err != nil {
		return "", tradedesk.Quantity{}, err
	}
	return strings.ToUpper(f.Arg(0)), q, nil
}
