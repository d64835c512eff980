package renderer

import (
	"fmt"
	"io"

	"github.com/etnz/tradedesk"
)

// PortfolioMarkdown renders the cash balance and holdings of s valued at
// prices. A holding without a price is shown as unavailable and the total is
// then left out.
func PortfolioMarkdown(s tradedesk.Snapshot, prices map[string]tradedesk.Money) string {
	var r mdRenderer
	r.Printf("# Portfolio\n\n")
	r.Printf("Cash balance: %v\n\n", s.Cash)

	if len(s.Holdings) == 0 {
		r.Printf("No holdings.\n\n")
	} else {
		r.Table("lrrrrr", "Symbol", "Quantity", "Cost", "Price", "Value", "Gain")
	}

	total := s.Cash
	var missing []string
	for _, h := range s.Holdings {
		price, ok := prices[h.Symbol]
		if !ok {
			missing = append(missing, h.Symbol)
			r.Row(h.Symbol, h.Quantity, h.Cost, unavailable, unavailable, unavailable)
			continue
		}
		value := h.Value(price)
		total = total.Add(value)
		r.Row(h.Symbol, h.Quantity, h.Cost, price, value, value.Sub(h.Cost.Mul(h.Quantity)).SignedString())
	}
	if len(s.Holdings) > 0 {
		r.Printf("\n")
	}

	if len(missing) == 0 {
		r.Printf("Total value: **%v**\n", total)
	} else {
		r.Printf("Total value: %s\n", unavailable)
	}
	ConditionalBlock(&r, func(w io.Writer) bool {
		fmt.Fprintf(w, "\nNo market price for:")
		for _, symbol := range missing {
			fmt.Fprintf(w, " %s", symbol)
		}
		fmt.Fprintln(w)
		return len(missing) > 0
	})
	return r.String()
}
