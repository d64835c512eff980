package renderer

import (
	"fmt"

	"github.com/etnz/tradedesk"
)

// Execution renders the outcome of an order as a sentence.
func Execution(x tradedesk.Execution) string {
	if !x.Filled {
		return fmt.Sprintf("%s for %s %s not executed: %s", x.Kind, x.Quantity, x.Symbol, x.Reason)
	}
	switch x.Type {
	case tradedesk.BuyEvent:
		return fmt.Sprintf("Bought %s %s at %v for %v (%s)", x.Quantity, x.Symbol, x.Price, x.Total(), x.Kind)
	case tradedesk.SellEvent:
		return fmt.Sprintf("Sold %s %s at %v for %v (%s)", x.Quantity, x.Symbol, x.Price, x.Total(), x.Kind)
	default:
		return string(x.Type)
	}
}

// TransactionsMarkdown renders the transaction log as a table.
func TransactionsMarkdown(events []tradedesk.Event) string {
	var r mdRenderer
	r.Printf("# Transactions\n\n")
	if len(events) == 0 {
		r.Printf("No transactions.\n")
		return r.String()
	}
	r.Table("lllrrr", "Type", "Order", "Symbol", "Quantity", "Price", "Total")
	for _, e := range events {
		r.Row(e.Type, e.Kind, e.Symbol, e.Quantity, e.Price, e.Total)
	}
	return r.String()
}
