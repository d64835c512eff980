package tradedesk

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recorder is an EventSink keeping events in memory.
type recorder struct {
	events []Event
	err    error
}

func (r *recorder) Record(e Event) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

func newTestEngine(cash float64) (*Engine, *recorder) {
	m := NewMarket("USD")
	m.Add("AAPL", closes(10, 12, 14, 16, 18))
	m.Add("MSFT", closes(18, 16, 14, 12, 10))
	rec := &recorder{}
	return NewEngine(m, NewLedger(USD(cash)), rec), rec
}

func TestEngine_PlaceOrder(t *testing.T) {
	t.Run("market order", func(t *testing.T) {
		e, rec := newTestEngine(10000)
		o, _ := NewMarketOrder("AAPL", Q(10))
		x, err := e.PlaceOrder(o, USD(150))
		if err != nil {
			t.Fatalf("PlaceOrder() error = %v", err)
		}
		if !x.Filled || !x.Price.Equal(USD(150)) {
			t.Errorf("PlaceOrder() = %+v, want filled at 150", x)
		}
		if got := e.Ledger().Cash(); !got.Equal(USD(8500)) {
			t.Errorf("Cash() = %v, want $8,500.00", got)
		}
		want := []Event{{Type: BuyEvent, Kind: "Market Order", Symbol: "AAPL", Quantity: Q(10), Price: USD(150), Total: USD(1500)}}
		if diff := cmp.Diff(want, rec.events, exact); diff != "" {
			t.Errorf("journal mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("limit order fills at the limit", func(t *testing.T) {
		e, rec := newTestEngine(10000)
		o, _ := NewLimitOrder("AAPL", Q(10), USD(100))
		x, err := e.PlaceOrder(o, USD(90))
		if err != nil {
			t.Fatalf("PlaceOrder() error = %v", err)
		}
		if !x.Filled || !x.Price.Equal(USD(100)) {
			t.Errorf("PlaceOrder() = %+v, want filled at 100", x)
		}
		if got := e.Ledger().Cash(); !got.Equal(USD(9000)) {
			t.Errorf("Cash() = %v, want $9,000.00", got)
		}
		if len(rec.events) != 1 || rec.events[0].Kind != "Limit Order" {
			t.Errorf("journal = %v, want one Limit Order event", rec.events)
		}
	})

	t.Run("limit order above reference", func(t *testing.T) {
		e, rec := newTestEngine(10000)
		o, _ := NewLimitOrder("AAPL", Q(10), USD(100))
		x, err := e.PlaceOrder(o, USD(110))
		if err != nil {
			t.Fatalf("PlaceOrder() error = %v, a non-execution is not an error", err)
		}
		if x.Filled || x.Reason == "" {
			t.Errorf("PlaceOrder() = %+v, want not filled with a reason", x)
		}
		if got := e.Ledger().Cash(); !got.Equal(USD(10000)) {
			t.Errorf("Cash() = %v, want unchanged", got)
		}
		if len(rec.events) != 0 {
			t.Errorf("journal = %v, want no event", rec.events)
		}
	})

	t.Run("insufficient funds", func(t *testing.T) {
		e, rec := newTestEngine(100)
		o, _ := NewMarketOrder("AAPL", Q(10))
		if _, err := e.PlaceOrder(o, USD(150)); !errors.Is(err, ErrInsufficientFunds) {
			t.Errorf("PlaceOrder() error = %v, want %v", err, ErrInsufficientFunds)
		}
		if len(rec.events) != 0 {
			t.Errorf("journal = %v, want no event", rec.events)
		}
	})

	t.Run("journal failure keeps the fill", func(t *testing.T) {
		e, rec := newTestEngine(10000)
		rec.err = errors.New("read-only file system")
		o, _ := NewMarketOrder("AAPL", Q(1))
		x, err := e.PlaceOrder(o, USD(150))
		if err != nil || !x.Filled {
			t.Fatalf("PlaceOrder() = %+v, %v, want filled", x, err)
		}
		if _, ok := e.Ledger().Holding("AAPL"); !ok {
			t.Error("Holding(AAPL) missing after a fill")
		}
	})
}

func TestEngine_LimitSell(t *testing.T) {
	tests := []struct {
		name     string
		ref      float64
		wantFill bool
		wantCash float64
	}{
		{"reference above limit", 60, true, 5000 - 400 + 4*50},
		{"reference at limit", 50, true, 5000 - 400 + 4*50},
		{"reference below limit", 49, false, 5000 - 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newTestEngine(5000)
			if err := e.Ledger().Buy("AAPL", Q(10), USD(40)); err != nil {
				t.Fatal(err)
			}
			x, err := e.LimitSell("AAPL", Q(4), USD(50), USD(tt.ref))
			if err != nil {
				t.Fatalf("LimitSell() error = %v", err)
			}
			if x.Filled != tt.wantFill {
				t.Errorf("LimitSell().Filled = %v, want %v", x.Filled, tt.wantFill)
			}
			if tt.wantFill && !x.Price.Equal(USD(50)) {
				t.Errorf("LimitSell().Price = %v, want the limit", x.Price)
			}
			if got := e.Ledger().Cash(); !got.Equal(USD(tt.wantCash)) {
				t.Errorf("Cash() = %v, want %v", got, USD(tt.wantCash))
			}
			if got, want := len(rec.events), map[bool]int{true: 1, false: 0}[tt.wantFill]; got != want {
				t.Errorf("journal has %d events, want %d", got, want)
			}
		})
	}
}

func TestEngine_Sells(t *testing.T) {
	e, rec := newTestEngine(5000)
	if _, err := e.MarketSell("AAPL", Q(1), USD(10)); !errors.Is(err, ErrSymbolNotFound) {
		t.Errorf("MarketSell() of a symbol not held error = %v, want %v", err, ErrSymbolNotFound)
	}
	if _, err := e.LimitSell("AAPL", Q(1), USD(0), USD(10)); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("LimitSell() with a zero limit error = %v, want %v", err, ErrInvalidOrder)
	}
	if err := e.Ledger().Buy("AAPL", Q(10), USD(40)); err != nil {
		t.Fatal(err)
	}
	if _, err := e.MarketSell("AAPL", Q(3), USD(45)); err != nil {
		t.Fatalf("MarketSell() error = %v", err)
	}
	x, err := e.Liquidate("AAPL", USD(50))
	if err != nil {
		t.Fatalf("Liquidate() error = %v", err)
	}
	if !x.Quantity.Equal(Q(7)) {
		t.Errorf("Liquidate().Quantity = %v, want 7", x.Quantity)
	}
	want := []Event{
		{Type: SellEvent, Kind: MarketSellLabel, Symbol: "AAPL", Quantity: Q(3), Price: USD(45), Total: USD(135)},
		{Type: SellEvent, Kind: LiquidateLabel, Symbol: "AAPL", Quantity: Q(7), Price: USD(50), Total: USD(350)},
	}
	if diff := cmp.Diff(want, rec.events, exact); diff != "" {
		t.Errorf("journal mismatch (-want +got):\n%s", diff)
	}
	// 5000 - 400 + 135 + 350
	if got := e.Ledger().Cash(); !got.Equal(USD(5085)) {
		t.Errorf("Cash() = %v, want $5,085.00", got)
	}
}

func TestEngine_RunStrategy(t *testing.T) {
	e, rec := newTestEngine(1000)
	got, err := e.RunStrategy(NewMovingAverage(5), e.Market().All())
	if err != nil {
		t.Fatalf("RunStrategy() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("RunStrategy() returned %d signals, want 2", len(got))
	}
	if got[0].Symbol != "AAPL" || got[0].Action != Sell {
		t.Errorf("signal[0] = %s %s, want AAPL SELL", got[0].Symbol, got[0].Action)
	}
	if got[1].Symbol != "MSFT" || got[1].Action != Buy {
		t.Errorf("signal[1] = %s %s, want MSFT BUY", got[1].Symbol, got[1].Action)
	}
	if !e.Ledger().Cash().Equal(USD(1000)) || len(rec.events) != 0 {
		t.Error("RunStrategy() changed the ledger")
	}

	if _, err := e.RunStrategy(NewMovingAverage(0), e.Market().All()); !errors.Is(err, ErrInvalidStrategy) {
		t.Errorf("RunStrategy() with an invalid strategy error = %v, want %v", err, ErrInvalidStrategy)
	}
}

func TestEngine_Valuation(t *testing.T) {
	e, _ := newTestEngine(1000)
	if err := e.Ledger().Buy("AAPL", Q(10), USD(15)); err != nil {
		t.Fatal(err)
	}
	got, err := e.Valuation()
	if err != nil {
		t.Fatalf("Valuation() error = %v", err)
	}
	// 850 cash + 10 shares at the last close 18
	if !got.Equal(USD(1030)) {
		t.Errorf("Valuation() = %v, want $1,030.00", got)
	}

	e.Market().SetQuote("AAPL", USD(20))
	if got, _ := e.Valuation(); !got.Equal(USD(1050)) {
		t.Errorf("Valuation() with a quote = %v, want $1,050.00", got)
	}

	if err := e.Ledger().Buy("NFLX", Q(1), USD(10)); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Valuation(); !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("Valuation() error = %v, want %v", err, ErrDataUnavailable)
	}
}
