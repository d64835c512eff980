package tradedesk

import (
	"maps"
	"slices"
)

// Summary totals the fills of a transaction log.
type Summary struct {
	Buys      int   // number of buy fills
	Sells     int   // number of sell fills
	TotalBuy  Money // value paid for every buy
	TotalSell Money // value received for every sell
	Net       Money // TotalBuy - TotalSell, the cash put in the market
}

// Summarize totals events in currency.
func Summarize(events []Event, currency string) Summary {
	s := Summary{
		TotalBuy:  M(0, currency),
		TotalSell: M(0, currency),
	}
	for _, e := range events {
		switch e.Type {
		case BuyEvent:
			s.Buys++
			s.TotalBuy = s.TotalBuy.Add(e.Total)
		case SellEvent:
			s.Sells++
			s.TotalSell = s.TotalSell.Add(e.Total)
		}
	}
	s.Net = s.TotalBuy.Sub(s.TotalSell)
	return s
}

// ProfitLoss compares every sell of a transaction log with what the same
// shares are worth at the latest prices.
type ProfitLoss struct {
	Profit  Money    // sum of the positive differences
	Loss    Money    // sum of the other differences, zero or negative
	Missing []string // sold symbols without a latest price, sorted
}

// Net returns Profit + Loss.
func (p ProfitLoss) Net() Money { return p.Profit.Add(p.Loss) }

// RealizedProfitLoss computes, for each sell, total - quantity×latest. A sell
// of a symbol missing from prices is left out and the symbol is reported in
// Missing.
func RealizedProfitLoss(events []Event, prices map[string]Money, currency string) ProfitLoss {
	p := ProfitLoss{
		Profit: M(0, currency),
		Loss:   M(0, currency),
	}
	missing := make(map[string]bool)
	for _, e := range events {
		if e.Type != SellEvent {
			continue
		}
		latest, ok := prices[e.Symbol]
		if !ok {
			missing[e.Symbol] = true
			continue
		}
		pl := e.Total.Sub(latest.Mul(e.Quantity))
		if pl.IsPositive() {
			p.Profit = p.Profit.Add(pl)
		} else {
			p.Loss = p.Loss.Add(pl)
		}
	}
	p.Missing = slices.Sorted(maps.Keys(missing))
	return p
}
