package tradedesk

import "github.com/shopspring/decimal"

// Percent is a ratio displayed as a percentage: 0.05 is 5%.
type Percent struct {
	ratio decimal.Decimal
}

func NewPercent(ratio decimal.Decimal) Percent { return Percent{ratio: ratio} }

func (p Percent) Ratio() decimal.Decimal { return p.ratio }

func (p Percent) Equal(q Percent) bool { return p.ratio.Equal(q.ratio) }

func (p Percent) String() string {
	return p.ratio.Shift(2).StringFixed(2) + "%"
}

func (p Percent) SignedString() string {
	res := p.String()
	if res == "0.00%" || res == "-0.00%" {
		return "-"
	}
	if !p.ratio.IsNegative() {
		res = "+" + res
	}
	return res
}
