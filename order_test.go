package tradedesk

import (
	"errors"
	"testing"
)

func TestOrder_Evaluate(t *testing.T) {
	market, err := NewMarketOrder("AAPL", Q(10))
	if err != nil {
		t.Fatal(err)
	}
	limit, err := NewLimitOrder("AAPL", Q(10), USD(100))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		order     Order
		ref       Money
		wantFill  bool
		wantPrice Money
	}{
		{"market fills at reference", market, USD(123.45), true, USD(123.45)},
		{"limit below reference fills at limit", limit, USD(90), true, USD(100)},
		{"limit at reference fills", limit, USD(100), true, USD(100)},
		{"limit above reference does not fill", limit, USD(110), false, Money{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.order.Evaluate(tt.ref)
			if got.Fill != tt.wantFill {
				t.Fatalf("Evaluate(%v).Fill = %v, want %v", tt.ref, got.Fill, tt.wantFill)
			}
			if tt.wantFill && !got.Price.Equal(tt.wantPrice) {
				t.Errorf("Evaluate(%v).Price = %v, want %v", tt.ref, got.Price, tt.wantPrice)
			}
		})
	}
}

func TestNewOrder_Invalid(t *testing.T) {
	tests := []struct {
		name string
		new  func() (Order, error)
	}{
		{"zero quantity", func() (Order, error) { return NewMarketOrder("AAPL", Q(0)) }},
		{"negative quantity", func() (Order, error) { return NewMarketOrder("AAPL", Q(-5)) }},
		{"fractional quantity", func() (Order, error) { return NewMarketOrder("AAPL", Q(2.5)) }},
		{"missing symbol", func() (Order, error) { return NewMarketOrder("", Q(1)) }},
		{"zero limit", func() (Order, error) { return NewLimitOrder("AAPL", Q(1), USD(0)) }},
		{"negative limit", func() (Order, error) { return NewLimitOrder("AAPL", Q(1), USD(-1)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.new(); !errors.Is(err, ErrInvalidOrder) {
				t.Errorf("error = %v, want %v", err, ErrInvalidOrder)
			}
		})
	}
}

func TestParseOrderKind(t *testing.T) {
	for _, k := range []OrderKind{MarketOrder, LimitOrder} {
		got, err := ParseOrderKind(k.String())
		if err != nil {
			t.Errorf("ParseOrderKind(%q) error = %v", k, err)
		}
		if got != k {
			t.Errorf("ParseOrderKind(%q) = %v, want %v", k, got, k)
		}
	}
	if _, err := ParseOrderKind("stop"); err == nil {
		t.Error("ParseOrderKind(\"stop\") succeeded, want an error")
	}
}
