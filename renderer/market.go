package renderer

import (
	"github.com/etnz/tradedesk"
)

// MarketMarkdown renders the latest price of every symbol, with the date of
// its last bar and the change since the previous close.
func MarketMarkdown(m *tradedesk.Market, symbols []string) string {
	var r mdRenderer
	r.Printf("# Market\n\n")
	r.Table("lrrr", "Symbol", "Last Bar", "Latest Price", "Change")
	for _, symbol := range symbols {
		price, err := m.LatestPrice(symbol)
		if err != nil {
			r.Row(symbol, unavailable, unavailable, unavailable)
			continue
		}
		series, _ := m.Series(symbol)
		last, ok := series.Latest()
		day, change := "-", "-"
		if ok {
			day = last.Day()
		}
		if len(series) > 1 {
			prev := series[len(series)-2].Close
			if !prev.IsZero() {
				change = tradedesk.NewPercent(price.Decimal().Sub(prev).Div(prev)).SignedString()
			}
		}
		r.Row(symbol, day, price, change)
	}
	return r.String()
}
