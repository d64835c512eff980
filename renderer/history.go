package renderer

import "github.com/etnz/tradedesk"

// HistoryMarkdown renders the last n bars of a symbol, most recent last.
func HistoryMarkdown(symbol string, series tradedesk.Series, n int) string {
	var r mdRenderer
	r.Printf("# History for %s\n\n", symbol)
	if len(series) == 0 {
		r.Printf("No market data.\n")
		return r.String()
	}
	if n > 0 && len(series) > n {
		series = series[len(series)-n:]
	}
	r.Table("lrrrrrrr", "Date", "Open", "High", "Low", "Close", "Volume", "RSI", "Moving Avg")
	for _, b := range series {
		r.Row(b.Day(), b.Open, b.High, b.Low, b.Close, b.Volume, b.RSI.Round(2), b.MovingAvg.Round(2))
	}
	return r.String()
}
