package renderer

import "github.com/etnz/tradedesk"

// SignalsMarkdown renders the advice of a strategy, one row per symbol.
func SignalsMarkdown(strategy string, signals []tradedesk.Signal) string {
	var r mdRenderer
	r.Printf("# %s\n\n", strategy)
	if len(signals) == 0 {
		r.Printf("No market data to evaluate.\n")
		return r.String()
	}
	r.Table("lcrl", "Symbol", "Signal", "Price", "Rationale")
	for _, s := range signals {
		price := "-"
		if !s.Price.IsZero() {
			price = s.Price.String()
		}
		r.Row(s.Symbol, s.Action, price, s.Rationale)
	}
	return r.String()
}
