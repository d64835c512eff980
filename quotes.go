package tradedesk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// JSONQuotes reads intraday quotes from a JSON document.
//
// Source is a file name or an http(s) URL. Path is a JSONPath expression
// evaluated once per symbol after replacing "{symbol}", for instance
// "$.quotes.{symbol}.last".
type JSONQuotes struct {
	Source string
	Path   string
	Client *http.Client // defaults to http.DefaultClient
}

// Quotes returns the quote of every symbol found in the document. Symbols
// without a usable value are reported together in the error, the others are
// still returned.
func (q JSONQuotes) Quotes(ctx context.Context, currency string, symbols ...string) (map[string]Money, error) {
	var doc any
	if err := q.fetch(ctx, &doc); err != nil {
		return nil, fmt.Errorf("cannot read quotes from %q: %w", q.Source, err)
	}
	quotes := make(map[string]Money, len(symbols))
	var errs error
	for _, symbol := range symbols {
		price, err := quoteAt(doc, strings.ReplaceAll(q.Path, "{symbol}", symbol))
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("%s: %w", symbol, err))
			continue
		}
		quotes[symbol] = M(price, currency)
	}
	return quotes, errs
}

// Apply sets the quotes found in the document on m. Missing quotes are only
// warned about: the last close remains the latest price for those symbols.
func (q JSONQuotes) Apply(ctx context.Context, m *Market) error {
	quotes, err := q.Quotes(ctx, m.Currency(), m.Symbols()...)
	if quotes == nil {
		return err
	}
	if err != nil {
		log.Printf("warning, some quotes are missing: %v", err)
	}
	for symbol, price := range quotes {
		m.SetQuote(symbol, price)
	}
	return nil
}

func (q JSONQuotes) fetch(ctx context.Context, doc any) error {
	if !strings.HasPrefix(q.Source, "http://") && !strings.HasPrefix(q.Source, "https://") {
		content, err := os.ReadFile(q.Source)
		if err != nil {
			return err
		}
		return json.Unmarshal(content, doc)
	}

	client := q.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.Source, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(content, doc)
}

// quoteAt evaluates path on doc and converts the result into a positive price.
func quoteAt(doc any, path string) (decimal.Decimal, error) {
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return decimal.Zero, fmt.Errorf("evaluating %q: %w", path, err)
	}
	// jsonpath returns a list for filters and wildcards, keep the first match.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return decimal.Zero, fmt.Errorf("%q: no match", path)
		}
		jval = jlist[0]
	}

	var price decimal.Decimal
	switch v := jval.(type) {
	case float64:
		price = decimal.NewFromFloat(v)
	case string:
		price, err = decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%q: %w", path, err)
		}
	default:
		return decimal.Zero, fmt.Errorf("%q: not a number: %v", path, jval)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%q: price must be positive, got %s", path, price)
	}
	return price, nil
}
