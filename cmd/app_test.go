package cmd

import (
	"flag"
	"slices"
	"strconv"
	"testing"

	"github.com/etnz/tradedesk"
	"github.com/google/go-cmp/cmp"
)

func TestEnv(t *testing.T) {
	t.Setenv(EnvDataDir, "/var/data")
	if got := env(EnvDataDir, "."); got != "/var/data" {
		t.Errorf("env(%s) = %q, want %q", EnvDataDir, got, "/var/data")
	}
	if got := env(EnvQuotes, "none"); got != "none" {
		t.Errorf("env(%s) = %q, want the default %q", EnvQuotes, got, "none")
	}

	t.Setenv(EnvVerbose, "true")
	if !envBool(EnvVerbose) {
		t.Errorf("envBool(%s) = false, want true", EnvVerbose)
	}
	t.Setenv(EnvVerbose, "maybe")
	if envBool(EnvVerbose) {
		t.Errorf("envBool(%s) = true for an invalid value, want false", EnvVerbose)
	}
}

func TestSymbols(t *testing.T) {
	old := *symbols
	t.Cleanup(func() { *symbols = old })

	*symbols = " aapl, MSFT,,nvda "
	want := []string{"AAPL", "MSFT", "NVDA"}
	if diff := cmp.Diff(want, Symbols()); diff != "" {
		t.Errorf("Symbols() mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterEvents(t *testing.T) {
	price := tradedesk.M(10, "USD")
	events := []tradedesk.Event{
		tradedesk.NewEvent(tradedesk.BuyEvent, "Market Order", "AAPL", tradedesk.Q(1), price),
		tradedesk.NewEvent(tradedesk.BuyEvent, "Market Order", "MSFT", tradedesk.Q(2), price),
		tradedesk.NewEvent(tradedesk.SellEvent, tradedesk.MarketSellLabel, "AAPL", tradedesk.Q(1), price),
		tradedesk.NewEvent(tradedesk.BuyEvent, "Limit Order", "AAPL", tradedesk.Q(3), price),
	}
	quantities := func(events []tradedesk.Event) []string {
		var q []string
		for _, e := range events {
			q = append(q, e.Symbol+" "+e.Quantity.String())
		}
		return q
	}

	tests := []struct {
		name   string
		symbol string
		head   int
		tail   int
		want   []string
	}{
		{name: "all", want: []string{"AAPL 1", "MSFT 2", "AAPL 1", "AAPL 3"}},
		{name: "symbol", symbol: "AAPL", want: []string{"AAPL 1", "AAPL 1", "AAPL 3"}},
		{name: "head", head: 2, want: []string{"AAPL 1", "MSFT 2"}},
		{name: "tail", tail: 1, want: []string{"AAPL 3"}},
		{name: "symbol and tail", symbol: "MSFT", tail: 5, want: []string{"MSFT 2"}},
		{name: "unknown symbol", symbol: "NVDA", want: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := quantities(filterEvents(events, tc.symbol, tc.head, tc.tail))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("filterEvents() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		args    []string
		symbol  string
		qty     string
		wantErr bool
	}{
		{args: []string{"aapl", "10"}, symbol: "AAPL", qty: "10"},
		{args: []string{"AAPL"}, wantErr: true},
		{args: []string{"AAPL", "ten"}, wantErr: true},
		{args: []string{"AAPL", "2.5"}, wantErr: true},
		{args: []string{"AAPL", "1", "2"}, wantErr: true},
	}
	for _, tc := range tests {
		f := flag.NewFlagSet("buy", flag.ContinueOnError)
		if err := f.Parse(tc.args); err != nil {
			t.Fatalf("Parse(%q) failed: %v", tc.args, err)
		}
		symbol, q, err := parseOrder(f)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseOrder(%q) = %s %v, want an error", tc.args, symbol, q)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseOrder(%q) returned error: %v", tc.args, err)
			continue
		}
		if symbol != tc.symbol || q.String() != tc.qty {
			t.Errorf("parseOrder(%q) = %s %v, want %s %s", tc.args, symbol, q, tc.symbol, tc.qty)
		}
	}
}

func TestExtensionEnv(t *testing.T) {
	old := *portfolioFile
	t.Cleanup(func() { *portfolioFile = old })
	*portfolioFile = "/tmp/desk.txt"

	env := ExtensionEnv()
	if want := EnvPortfolioFile + "=/tmp/desk.txt"; !slices.Contains(env, want) {
		t.Errorf("ExtensionEnv() = %q, does not contain %q", env, want)
	}
	if want := EnvVerbose + "=" + strconv.FormatBool(*Verbose); !slices.Contains(env, want) {
		t.Errorf("ExtensionEnv() = %q, does not contain %q", env, want)
	}
}
