package tradedesk

import "github.com/shopspring/decimal"

// Action is the advice carried by a signal.
type Action string

const (
	Buy  Action = "BUY"
	Sell Action = "SELL"
	Hold Action = "HOLD"
)

// Signal is the advice of a strategy for one symbol. Signals are advisory
// only, nothing trades on them automatically.
type Signal struct {
	Symbol    string
	Strategy  string // name of the strategy that produced it
	Action    Action
	Price     decimal.Decimal // latest close, zero when the series is empty
	Rationale string
}
