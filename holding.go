package tradedesk

// Holding is the position held in a single symbol.
//
// Cost is the price paid by the most recent purchase, not an average: a
// re-buy overwrites it while the quantity accumulates. A partial sell keeps
// it unchanged for the remaining shares.
type Holding struct {
	Symbol   string
	Quantity Quantity
	Cost     Money
}

// Value returns the market value of the holding at price.
func (h Holding) Value(price Money) Money { return price.Mul(h.Quantity) }

// Snapshot is a read-only copy of the ledger state.
type Snapshot struct {
	Cash     Money
	Holdings []Holding // sorted by symbol
}

// Holding returns the holding for symbol in the snapshot.
func (s Snapshot) Holding(symbol string) (Holding, bool) {
	for _, h := range s.Holdings {
		if h.Symbol == symbol {
			return h, true
		}
	}
	return Holding{}, false
}
