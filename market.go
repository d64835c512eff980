package tradedesk

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/tradedesk/date"
	"github.com/shopspring/decimal"
)

// Bar is one day of market data for one symbol, with the indicators that
// come precomputed in the data files.
type Bar struct {
	Date           date.Date // zero when Stamp is not a known date layout
	Stamp          string    // date as written in the data file
	Open           decimal.Decimal
	High           decimal.Decimal
	Low            decimal.Decimal
	Close          decimal.Decimal
	Volume         decimal.Decimal
	Gain           decimal.Decimal
	Loss           decimal.Decimal
	AvgGain        decimal.Decimal
	AvgLoss        decimal.Decimal
	RSI            decimal.Decimal
	MovingAvg      decimal.Decimal
	Momentum       decimal.Decimal
	UpperThreshold decimal.Decimal
	LowerThreshold decimal.Decimal
}

// Day returns the date of the bar for display.
func (b Bar) Day() string {
	if b.Date.IsZero() {
		return b.Stamp
	}
	return b.Date.String()
}

// Series is the history of a symbol, in ascending date order.
type Series []Bar

// Latest returns the most recent bar.
func (s Series) Latest() (Bar, bool) {
	if len(s) == 0 {
		return Bar{}, false
	}
	return s[len(s)-1], true
}

// Closes returns the close prices of the last n bars, oldest first.
func (s Series) Closes(n int) []decimal.Decimal {
	n = min(n, len(s))
	closes := make([]decimal.Decimal, 0, n)
	for _, b := range s[len(s)-n:] {
		closes = append(closes, b.Close)
	}
	return closes
}

// Provider loads market data for a set of symbols.
type Provider interface {
	Load(ctx context.Context, symbols []string) (*Market, error)
}

// Market holds the loaded series of a set of symbols, read-only once loaded
// except for intraday quotes set with SetQuote.
type Market struct {
	cur    string
	series map[string]Series
	quotes map[string]Money
}

// NewMarket returns an empty market priced in currency.
func NewMarket(currency string) *Market {
	return &Market{
		cur:    currency,
		series: make(map[string]Series),
		quotes: make(map[string]Money),
	}
}

// Currency returns the currency of every price in the market.
func (m *Market) Currency() string { return m.cur }

// Add sets the series of a symbol, replacing any previous one.
func (m *Market) Add(symbol string, s Series) { m.series[symbol] = s }

// Series returns the history of symbol.
func (m *Market) Series(symbol string) (Series, bool) {
	s, ok := m.series[symbol]
	return s, ok
}

// All returns every loaded series by symbol. The map is a copy, the series are shared.
func (m *Market) All() map[string]Series { return maps.Clone(m.series) }

// Symbols returns the loaded symbols in alphabetical order.
func (m *Market) Symbols() []string { return slices.Sorted(maps.Keys(m.series)) }

// SetQuote records an intraday price for symbol that supersedes the last close.
func (m *Market) SetQuote(symbol string, price Money) { m.quotes[symbol] = price }

// LatestPrice returns the latest known price of symbol: its intraday quote if
// any, otherwise the close of its most recent bar. It fails with
// ErrDataUnavailable when there is neither.
func (m *Market) LatestPrice(symbol string) (Money, error) {
	if q, ok := m.quotes[symbol]; ok {
		return q, nil
	}
	last, ok := m.series[symbol].Latest()
	if !ok {
		return Money{}, fmt.Errorf("no price for %s: %w", symbol, ErrDataUnavailable)
	}
	return M(last.Close, m.cur), nil
}

// LatestPrices returns the latest price of each symbol that has one.
func (m *Market) LatestPrices(symbols ...string) map[string]Money {
	prices := make(map[string]Money, len(symbols))
	for _, symbol := range symbols {
		if p, err := m.LatestPrice(symbol); err == nil {
			prices[symbol] = p
		}
	}
	return prices
}
