package tradedesk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/tradedesk/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// dec is a helper for test to create a decimal from a literal.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// closes returns a daily series with the given close prices, starting on 2024-01-01.
func closes(values ...float64) Series {
	start := date.New(2024, 1, 1)
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = Bar{Date: start.Add(i), Close: decimal.NewFromFloat(v)}
	}
	return s
}

// exact compares decimals and the types wrapping them by value, so that
// 1500 and 1500.00 are equal.
var exact = cmp.Options{
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Money) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Quantity) bool { return a.Equal(b) }),
}

// writeFile creates a file named name with content in a temporary directory and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("cannot write %s: %v", path, err)
	}
	return path
}
