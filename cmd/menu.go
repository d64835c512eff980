package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/tradedesk"
	"github.com/etnz/tradedesk/renderer"
	"github.com/google/subcommands"
)

// MenuCmd runs the interactive menu. It is also what 'trade' runs without a subcommand.
type MenuCmd struct{}

func (*MenuCmd) Name() string     { return "menu" }
func (*MenuCmd) Synopsis() string { return "interactive trading menu" }
func (*MenuCmd) Usage() string {
	return `trade menu

  Starts the interactive menu: view the portfolio and the market, place
  orders and run strategies until 'Exit' is chosen.
`
}

func (*MenuCmd) SetFlags(_ *flag.FlagSet) {}

func (*MenuCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	desk, err := OpenDesk(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	m := NewMenu(desk, Symbols(), os.Stdin, os.Stdout)
	m.Print = printMarkdown
	if err := m.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// errExit ends the menu loop.
var errExit = errors.New("exit")

// Menu is the interactive menu over a desk. Answers are read word by word,
// so several of them can be given on a single line.
type Menu struct {
	desk    *tradedesk.Engine
	symbols []string
	in      *bufio.Scanner
	out     io.Writer
	// Print writes a markdown document. It defaults to a plain print on the output.
	Print func(md string)
}

// NewMenu returns a menu reading answers from r and writing to w.
func NewMenu(desk *tradedesk.Engine, symbols []string, r io.Reader, w io.Writer) *Menu {
	in := bufio.NewScanner(r)
	in.Split(bufio.ScanWords)
	m := &Menu{desk: desk, symbols: symbols, in: in, out: w}
	m.Print = func(md string) { fmt.Fprint(m.out, md) }
	return m
}

const menuText = `
---- Trade Desk ----
1. View Portfolio
2. View Current Market
3. Place a Market Order
4. Place a Limit Order
5. Execute a Trading Strategy
6. Sell a Market Order
7. Sell a Limit Order
8. Exit
`

// Run loops over the menu until Exit is chosen or the input ends.
func (m *Menu) Run() error {
	for {
		fmt.Fprint(m.out, menuText)
		choice, err := m.ask("Enter your choice: ")
		if err != nil {
			return m.end(err)
		}
		if err := m.do(choice); err != nil {
			if errors.Is(err, errExit) || errors.Is(err, io.EOF) {
				return m.end(err)
			}
			fmt.Fprintf(m.out, "Error: %v\n", err)
		}
		if err := m.again(); err != nil {
			return m.end(err)
		}
	}
}

// end stops the loop: Exit and the end of input are normal terminations.
func (m *Menu) end(err error) error {
	if errors.Is(err, errExit) {
		fmt.Fprintln(m.out, "Exiting...")
		return nil
	}
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// do runs one menu entry.
func (m *Menu) do(choice string) error {
	switch choice {
	case "1":
		snap := m.desk.Ledger().Snapshot()
		m.Print(renderer.PortfolioMarkdown(snap, m.desk.Market().LatestPrices(m.desk.Ledger().Symbols()...)))
	case "2":
		m.Print(renderer.MarketMarkdown(m.desk.Market(), m.symbols))
	case "3":
		symbol, err := m.askSymbol("Enter stock symbol: ")
		if err != nil {
			return err
		}
		q, err := m.askQuantity("Enter quantity: ")
		if err != nil {
			return err
		}
		order, err := tradedesk.NewMarketOrder(symbol, q)
		if err != nil {
			return err
		}
		return m.place(order)
	case "4":
		symbol, err := m.askSymbol("Enter stock symbol: ")
		if err != nil {
			return err
		}
		ref, err := m.desk.Quote(symbol)
		if err != nil {
			return err
		}
		fmt.Fprintf(m.out, "Current share price of %s: %v\n", symbol, ref)
		limit, err := m.askPrice("Enter limit price: ")
		if err != nil {
			return err
		}
		q, err := m.askQuantity("Enter quantity: ")
		if err != nil {
			return err
		}
		order, err := tradedesk.NewLimitOrder(symbol, q, limit)
		if err != nil {
			return err
		}
		return m.place(order)
	case "5":
		return m.strategy()
	case "6":
		symbol, err := m.askSymbol("Enter stock symbol to sell: ")
		if err != nil {
			return err
		}
		q, err := m.askQuantity("Enter quantity to sell: ")
		if err != nil {
			return err
		}
		ref, err := m.desk.Quote(symbol)
		if err != nil {
			return err
		}
		return m.report(m.desk.MarketSell(symbol, q, ref))
	case "7":
		symbol, err := m.askSymbol("Enter stock symbol to sell: ")
		if err != nil {
			return err
		}
		q, err := m.askQuantity("Enter quantity to sell: ")
		if err != nil {
			return err
		}
		limit, err := m.askPrice("Enter limit price: ")
		if err != nil {
			return err
		}
		ref, err := m.desk.Quote(symbol)
		if err != nil {
			return err
		}
		return m.report(m.desk.LimitSell(symbol, q, limit, ref))
	case "8":
		return errExit
	default:
		fmt.Fprintln(m.out, "Invalid choice! Try again.")
	}
	return nil
}

func (m *Menu) place(order tradedesk.Order) error {
	ref, err := m.desk.Quote(order.Symbol())
	if err != nil {
		return err
	}
	return m.report(m.desk.PlaceOrder(order, ref))
}

func (m *Menu) report(x tradedesk.Execution, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, renderer.Execution(x))
	return nil
}

func (m *Menu) strategy() error {
	fmt.Fprintln(m.out, "Choose strategy")
	for i, k := range tradedesk.StrategyKinds {
		fmt.Fprintf(m.out, "%d: %s\n", i+1, tradedesk.DefaultStrategy(k).Name())
	}
	answer, err := m.ask("Enter your choice: ")
	if err != nil {
		return err
	}
	i, err := strconv.Atoi(answer)
	if err != nil || i < 1 || i > len(tradedesk.StrategyKinds) {
		fmt.Fprintln(m.out, "Invalid strategy choice.")
		return nil
	}
	s := tradedesk.DefaultStrategy(tradedesk.StrategyKinds[i-1])
	signals, err := m.desk.RunStrategy(s, m.desk.Market().All())
	if err != nil {
		return err
	}
	m.Print(renderer.SignalsMarkdown(s.Name(), signals))
	return nil
}

// again waits for 0 to show the menu again or 8 to exit.
func (m *Menu) again() error {
	for {
		answer, err := m.ask("\nEnter 0 to display menu again or enter 8 to exit\n")
		if err != nil {
			return err
		}
		switch answer {
		case "0":
			return nil
		case "8":
			return errExit
		}
		fmt.Fprintln(m.out, "Invalid Choice, Try Again !!")
	}
}

// ask prints prompt and reads the next word. It returns io.EOF at the end of input.
func (m *Menu) ask(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return m.in.Text(), nil
}

func (m *Menu) askSymbol(prompt string) (string, error) {
	s, err := m.ask(prompt)
	return strings.ToUpper(s), err
}

func (m *Menu) askQuantity(prompt string) (tradedesk.Quantity, error) {
	s, err := m.ask(prompt)
	if err != nil {
		return tradedesk.Quantity{}, err
	}
	return tradedesk.ParseQuantity(s)
}

func (m *Menu) askPrice(prompt string) (tradedesk.Money, error) {
	s, err := m.ask(prompt)
	if err != nil {
		return tradedesk.Money{}, err
	}
	return tradedesk.ParseMoney(s, m.desk.Market().Currency())
}
