package tradedesk

import (
	"errors"
	"fmt"
)

// OrderKind tells how an order is filled.
type OrderKind int

const (
	// MarketOrder fills at whatever the reference price is.
	MarketOrder OrderKind = iota
	// LimitOrder is a buy that fills only at or below its limit price.
	LimitOrder
)

func (k OrderKind) String() string {
	switch k {
	case MarketOrder:
		return "market"
	case LimitOrder:
		return "limit"
	default:
		return "unknown"
	}
}

// Label is the order kind as written in the transaction log.
func (k OrderKind) Label() string {
	switch k {
	case MarketOrder:
		return "Market Order"
	case LimitOrder:
		return "Limit Order"
	default:
		return "Unknown Order"
	}
}

// ParseOrderKind parses a string into an OrderKind.
func ParseOrderKind(s string) (OrderKind, error) {
	switch s {
	case "market":
		return MarketOrder, nil
	case "limit":
		return LimitOrder, nil
	default:
		return 0, fmt.Errorf("unknown order kind: %q", s)
	}
}

// Order is a request to buy a quantity of a symbol. It is immutable and holds
// no reference to the portfolio: it is evaluated once against a reference
// price and then discarded.
type Order struct {
	kind     OrderKind
	symbol   string
	quantity Quantity
	limit    Money // LimitOrder only
}

// Decision is the outcome of evaluating an order against a reference price.
type Decision struct {
	Fill  bool
	Price Money // the fill price, meaningful only when Fill is true
}

// NewMarketOrder returns a market buy order.
func NewMarketOrder(symbol string, quantity Quantity) (Order, error) {
	o := Order{kind: MarketOrder, symbol: symbol, quantity: quantity}
	return o, o.validate()
}

// NewLimitOrder returns a buy order capped at limit.
func NewLimitOrder(symbol string, quantity Quantity, limit Money) (Order, error) {
	o := Order{kind: LimitOrder, symbol: symbol, quantity: quantity, limit: limit}
	return o, o.validate()
}

func (o Order) validate() error {
	var errs error
	if o.symbol == "" {
		errs = errors.Join(errs, errors.New("symbol is missing"))
	}
	if !o.quantity.IsPositive() || !o.quantity.IsWhole() {
		errs = errors.Join(errs, fmt.Errorf("quantity must be a positive whole number, got %v", o.quantity))
	}
	if o.kind == LimitOrder && !o.limit.IsPositive() {
		errs = errors.Join(errs, fmt.Errorf("limit price must be positive, got %v", o.limit))
	}
	if errs != nil {
		return fmt.Errorf("%w: %s order: %w", ErrInvalidOrder, o.kind, errs)
	}
	return nil
}

func (o Order) Kind() OrderKind    { return o.kind }
func (o Order) Symbol() string     { return o.symbol }
func (o Order) Quantity() Quantity { return o.quantity }

// Limit returns the limit price and whether the order has one.
func (o Order) Limit() (Money, bool) { return o.limit, o.kind == LimitOrder }

// Evaluate decides whether the order fills at the reference price and at
// which price. A limit order fills at its limit price when the reference is
// at or below it.
//
// This is the buy side rule only. Limit sells use the opposite inequality in
// Engine.LimitSell.
func (o Order) Evaluate(ref Money) Decision {
	switch o.kind {
	case MarketOrder:
		return Decision{Fill: true, Price: ref}
	case LimitOrder:
		if ref.LessThanOrEqual(o.limit) {
			return Decision{Fill: true, Price: o.limit}
		}
		return Decision{}
	default:
		panic(fmt.Sprintf("unsupported order kind %d", o.kind))
	}
}
