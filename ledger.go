package tradedesk

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"maps"
	"slices"
	"sync"
)

// Store persists ledger snapshots. Load returns an error matching
// fs.ErrNotExist when nothing has been saved yet.
type Store interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
}

// Ledger is the portfolio: a cash balance and one holding per symbol.
//
// It is mutated only through Buy, Sell and Liquidate. Each of them checks and
// commits under a single lock, then writes the new state through the store.
// Cash is never negative and no holding quantity is ever negative or zero.
type Ledger struct {
	mu       sync.Mutex
	cash     Money
	holdings map[string]Holding
	store    Store
}

// NewLedger creates an in-memory ledger with an initial cash balance.
func NewLedger(initial Money) *Ledger {
	return &Ledger{
		cash:     initial,
		holdings: make(map[string]Holding),
	}
}

// OpenLedger creates a ledger backed by store. A previously saved state
// replaces the initial balance. A missing state starts a new portfolio and so
// does an unreadable one, after a warning: a crash mid-write must not prevent
// the desk from starting.
func OpenLedger(store Store, initial Money) *Ledger {
	l := NewLedger(initial)
	l.store = store
	if store == nil {
		return l
	}
	snap, err := store.Load()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Println("warning, portfolio not found, starting with a new portfolio")
	case err != nil:
		log.Printf("warning, %v: cannot read portfolio, starting with a new portfolio: %v", ErrPersistenceUnavailable, err)
	default:
		l.restore(snap)
	}
	return l
}

func (l *Ledger) restore(snap Snapshot) {
	l.cash = snap.Cash
	for _, h := range snap.Holdings {
		if !h.Quantity.IsPositive() {
			continue
		}
		l.holdings[h.Symbol] = h
	}
}

// Buy debits quantity×price and adds the shares to the symbol holding.
// There are no partial fills: if the cost exceeds the cash balance nothing
// changes and ErrInsufficientFunds is returned.
func (l *Ledger) Buy(symbol string, quantity Quantity, price Money) error {
	if err := checkTrade(symbol, quantity, price); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	cost := price.Mul(quantity)
	if cost.GreaterThan(l.cash) {
		return fmt.Errorf("cannot buy %v %s for %v, cash balance is %v: %w", quantity, symbol, cost, l.cash, ErrInsufficientFunds)
	}
	l.cash = l.cash.Sub(cost)

	h, ok := l.holdings[symbol]
	if !ok {
		h = Holding{Symbol: symbol}
	}
	h.Quantity = h.Quantity.Add(quantity)
	// The latest purchase price replaces the cost basis, it is not averaged.
	h.Cost = price
	l.holdings[symbol] = h

	l.persist()
	return nil
}

// Sell credits quantity×price and removes the shares from the holding. The
// holding disappears when its quantity reaches zero; otherwise its cost basis
// is left untouched.
func (l *Ledger) Sell(symbol string, quantity Quantity, price Money) error {
	if err := checkTrade(symbol, quantity, price); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	h, ok := l.holdings[symbol]
	if !ok {
		return fmt.Errorf("cannot sell %s: %w", symbol, ErrSymbolNotFound)
	}
	if quantity.GreaterThan(h.Quantity) {
		return fmt.Errorf("cannot sell %v %s, position is only %v: %w", quantity, symbol, h.Quantity, ErrInsufficientShares)
	}

	l.cash = l.cash.Add(price.Mul(quantity))
	h.Quantity = h.Quantity.Sub(quantity)
	if h.Quantity.IsZero() {
		delete(l.holdings, symbol)
	} else {
		l.holdings[symbol] = h
	}

	l.persist()
	return nil
}

// Liquidate sells the entire position in symbol at price and returns the
// holding that was closed.
func (l *Ledger) Liquidate(symbol string, price Money) (Holding, error) {
	if !price.IsPositive() {
		return Holding{}, fmt.Errorf("liquidation price must be positive, got %v: %w", price, ErrInvalidOrder)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	h, ok := l.holdings[symbol]
	if !ok {
		return Holding{}, fmt.Errorf("cannot liquidate %s: %w", symbol, ErrSymbolNotFound)
	}
	l.cash = l.cash.Add(h.Value(price))
	delete(l.holdings, symbol)

	l.persist()
	return h, nil
}

// Valuate returns cash plus the market value of every holding. Every held
// symbol must have a price: a missing one fails with ErrDataUnavailable rather
// than being valued at zero.
func (l *Ledger) Valuate(prices map[string]Money) (Money, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := l.cash
	for _, symbol := range slices.Sorted(maps.Keys(l.holdings)) {
		price, ok := prices[symbol]
		if !ok {
			return Money{}, fmt.Errorf("cannot value %s: no price: %w", symbol, ErrDataUnavailable)
		}
		total = total.Add(l.holdings[symbol].Value(price))
	}
	return total, nil
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cash
}

// Holding returns the current holding in symbol, if any.
func (l *Ledger) Holding(symbol string) (Holding, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.holdings[symbol]
	return h, ok
}

// Symbols returns the held symbols in alphabetical order.
func (l *Ledger) Symbols() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Sorted(maps.Keys(l.holdings))
}

// Snapshot returns a copy of the current state for display or persistence.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

func (l *Ledger) snapshot() Snapshot {
	s := Snapshot{Cash: l.cash, Holdings: make([]Holding, 0, len(l.holdings))}
	for _, symbol := range slices.Sorted(maps.Keys(l.holdings)) {
		s.Holdings = append(s.Holdings, l.holdings[symbol])
	}
	return s
}

// persist writes the current state through the store. Failures are reported
// and the in-memory state is kept. Must be called with l.mu held.
func (l *Ledger) persist() {
	if l.store == nil {
		return
	}
	if err := l.store.Save(l.snapshot()); err != nil {
		log.Printf("warning, %v: portfolio not saved: %v", ErrPersistenceUnavailable, err)
	}
}

func checkTrade(symbol string, quantity Quantity, price Money) error {
	var errs error
	if symbol == "" {
		errs = errors.Join(errs, errors.New("symbol is missing"))
	}
	if !quantity.IsPositive() || !quantity.IsWhole() {
		errs = errors.Join(errs, fmt.Errorf("quantity must be a positive whole number, got %v", quantity))
	}
	if !price.IsPositive() {
		errs = errors.Join(errs, fmt.Errorf("price must be positive, got %v", price))
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOrder, errs)
	}
	return nil
}
