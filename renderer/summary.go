package renderer

import (
	"strings"

	"github.com/etnz/tradedesk"
)

// SummaryMarkdown renders the trade totals of the transaction log.
func SummaryMarkdown(s tradedesk.Summary) string {
	var r mdRenderer
	r.Printf("# Trade Summary\n\n")
	r.Table("lrr", "", "Trades", "Value")
	r.Row("Buy", s.Buys, s.TotalBuy)
	r.Row("Sell", s.Sells, s.TotalSell)
	r.Row("Net", s.Buys+s.Sells, s.Net)
	return r.String()
}

// ProfitLossMarkdown renders the realised profit and loss of the sells.
func ProfitLossMarkdown(p tradedesk.ProfitLoss) string {
	var r mdRenderer
	r.Printf("# Profit and Loss\n\n")
	r.Table("lr", "", "Value")
	r.Row("Profit", p.Profit)
	r.Row("Loss", p.Loss)
	r.Row("Net", p.Net().SignedString())
	if len(p.Missing) > 0 {
		r.Printf("\nNo market price for %s, their sells are not counted.\n", strings.Join(p.Missing, ", "))
	}
	return r.String()
}
