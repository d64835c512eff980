package tradedesk

import (
	"fmt"
	"log"
	"maps"
	"slices"
)

// Engine executes orders against the ledger and evaluates strategies over
// the market. It owns no state beyond its three collaborators.
type Engine struct {
	market  *Market
	ledger  *Ledger
	journal EventSink
}

// NewEngine returns an engine. journal may be nil, fills are then not recorded.
func NewEngine(market *Market, ledger *Ledger, journal EventSink) *Engine {
	return &Engine{market: market, ledger: ledger, journal: journal}
}

func (e *Engine) Market() *Market { return e.market }
func (e *Engine) Ledger() *Ledger { return e.ledger }

// Execution is the outcome of an order or a sell request. An order that does
// not fill is not an error: Filled is false and Reason says why.
type Execution struct {
	Filled    bool
	Type      EventType
	Kind      string
	Symbol    string
	Quantity  Quantity
	Price     Money // fill price
	Reference Money // reference price the order was evaluated against
	Reason    string
}

// Total returns the value exchanged by the execution, zero when it did not fill.
func (x Execution) Total() Money {
	if !x.Filled {
		return M(0, x.Reference.Currency())
	}
	return x.Price.Mul(x.Quantity)
}

// Quote returns the reference price of symbol: its latest price in the market.
func (e *Engine) Quote(symbol string) (Money, error) {
	return e.market.LatestPrice(symbol)
}

// PlaceOrder evaluates a buy order against ref and, when it fills, buys at
// the decided price.
func (e *Engine) PlaceOrder(order Order, ref Money) (Execution, error) {
	x := Execution{
		Type:      BuyEvent,
		Kind:      order.Kind().Label(),
		Symbol:    order.Symbol(),
		Quantity:  order.Quantity(),
		Reference: ref,
	}
	if !ref.IsPositive() {
		return x, fmt.Errorf("reference price must be positive, got %v: %w", ref, ErrInvalidOrder)
	}
	d := order.Evaluate(ref)
	if !d.Fill {
		limit, _ := order.Limit()
		x.Reason = fmt.Sprintf("current price %v is above the limit %v", ref, limit)
		return x, nil
	}
	if err := e.ledger.Buy(order.Symbol(), order.Quantity(), d.Price); err != nil {
		return x, err
	}
	x.Filled, x.Price = true, d.Price
	e.record(x)
	return x, nil
}

// MarketSell sells quantity of symbol at ref.
func (e *Engine) MarketSell(symbol string, quantity Quantity, ref Money) (Execution, error) {
	x := Execution{Type: SellEvent, Kind: MarketSellLabel, Symbol: symbol, Quantity: quantity, Reference: ref}
	if err := e.ledger.Sell(symbol, quantity, ref); err != nil {
		return x, err
	}
	x.Filled, x.Price = true, ref
	e.record(x)
	return x, nil
}

// LimitSell sells quantity of symbol at limit, provided ref is at or above
// limit.
func (e *Engine) LimitSell(symbol string, quantity Quantity, limit, ref Money) (Execution, error) {
	x := Execution{Type: SellEvent, Kind: LimitSellLabel, Symbol: symbol, Quantity: quantity, Reference: ref}
	if err := checkTrade(symbol, quantity, limit); err != nil {
		return x, err
	}
	if ref.LessThan(limit) {
		x.Reason = fmt.Sprintf("current price %v is below the limit %v", ref, limit)
		return x, nil
	}
	if err := e.ledger.Sell(symbol, quantity, limit); err != nil {
		return x, err
	}
	x.Filled, x.Price = true, limit
	e.record(x)
	return x, nil
}

// Liquidate sells the whole position in symbol at ref.
func (e *Engine) Liquidate(symbol string, ref Money) (Execution, error) {
	x := Execution{Type: SellEvent, Kind: LiquidateLabel, Symbol: symbol, Reference: ref}
	h, err := e.ledger.Liquidate(symbol, ref)
	if err != nil {
		return x, err
	}
	x.Filled, x.Price, x.Quantity = true, ref, h.Quantity
	e.record(x)
	return x, nil
}

// RunStrategy evaluates s over every series and returns one signal per
// symbol, sorted by symbol. It never touches the ledger.
func (e *Engine) RunStrategy(s Strategy, seriesBySymbol map[string]Series) ([]Signal, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	signals := make([]Signal, 0, len(seriesBySymbol))
	for _, symbol := range slices.Sorted(maps.Keys(seriesBySymbol)) {
		signals = append(signals, s.Evaluate(symbol, seriesBySymbol[symbol]))
	}
	return signals, nil
}

// Valuation returns the ledger value at the latest market prices.
func (e *Engine) Valuation() (Money, error) {
	prices := e.market.LatestPrices(e.ledger.Symbols()...)
	return e.ledger.Valuate(prices)
}

// record sends the fill to the journal. A journal failure is reported but
// never undoes the fill.
func (e *Engine) record(x Execution) {
	if e.journal == nil {
		return
	}
	if err := e.journal.Record(NewEvent(x.Type, x.Kind, x.Symbol, x.Quantity, x.Price)); err != nil {
		log.Printf("warning, %v: transaction not logged: %v", ErrPersistenceUnavailable, err)
	}
}
