package tradedesk

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/etnz/tradedesk/date"
	"github.com/shopspring/decimal"
)

// barColumns is the number of columns of a market data file:
//
//	date,open,high,low,close,volume,gain,loss,avgGain,avgLoss,rsi,movingAvg,momentum,upperThreshold,lowerThreshold
const barColumns = 15

// DecodeSeries reads a market data file. The first line is a header and is
// ignored. Malformed rows are skipped with a warning, name is only used in
// those warnings. Bars are returned in ascending date order, or in file order
// when some date is not in a known layout.
func DecodeSeries(name string, r io.Reader) (Series, error) {
	return decodeSeries(name, r, log.Printf)
}

// decodeSeries is DecodeSeries reporting malformed rows to warnf.
func decodeSeries(name string, r io.Reader, warnf func(format string, v ...any)) (Series, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var series Series
	header := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if header {
			header = false
			continue
		}
		line, _ := reader.FieldPos(0)
		bar, err := decodeBar(record)
		if err != nil {
			warnf("warning, %s:%d: malformed row skipped: %v", name, line, err)
			continue
		}
		series = append(series, bar)
	}
	if slices.ContainsFunc(series, func(b Bar) bool { return b.Date.IsZero() }) {
		log.Printf("warning, %s: unrecognized dates, bars kept in file order", name)
		return series, nil
	}
	slices.SortStableFunc(series, func(a, b Bar) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		}
		return 0
	})
	return series, nil
}

func decodeBar(record []string) (Bar, error) {
	if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
		return Bar{}, errors.New("empty row")
	}
	if len(record) != barColumns {
		return Bar{}, fmt.Errorf("want %d columns, got %d", barColumns, len(record))
	}
	stamp := strings.TrimSpace(record[0])
	if stamp == "" {
		return Bar{}, errors.New("missing date")
	}
	// an unknown layout leaves the date zero, the stamp still identifies the bar.
	day, _ := date.Parse(stamp)
	values := make([]decimal.Decimal, barColumns-1)
	for i, field := range record[1:] {
		v, err := decimal.NewFromString(strings.TrimSpace(field))
		if err != nil {
			return Bar{}, fmt.Errorf("column %d: %w", i+2, err)
		}
		values[i] = v
	}
	return Bar{
		Date:           day,
		Stamp:          stamp,
		Open:           values[0],
		High:           values[1],
		Low:            values[2],
		Close:          values[3],
		Volume:         values[4],
		Gain:           values[5],
		Loss:           values[6],
		AvgGain:        values[7],
		AvgLoss:        values[8],
		RSI:            values[9],
		MovingAvg:      values[10],
		Momentum:       values[11],
		UpperThreshold: values[12],
		LowerThreshold: values[13],
	}, nil
}

// CSVProvider loads market data from one "<SYMBOL>.csv" file per symbol in Dir.
type CSVProvider struct {
	Dir      string
	Currency string

	// Quiet drops the warnings about malformed rows. Missing files and
	// symbols left without data are still reported.
	Quiet bool
}

// Load reads the file of each symbol. A symbol whose file is missing or has
// no valid row is left out of the market with a warning; only read errors
// fail the load.
func (p CSVProvider) Load(ctx context.Context, symbols []string) (*Market, error) {
	m := NewMarket(p.Currency)
	var errs error
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		series, err := p.load(symbol)
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("warning, no market data file for %s", symbol)
			continue
		}
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if len(series) == 0 {
			log.Printf("warning, no market data loaded for %s", symbol)
			continue
		}
		m.Add(symbol, series)
	}
	if errs != nil {
		return nil, errs
	}
	return m, nil
}

func (p CSVProvider) load(symbol string) (Series, error) {
	filename := filepath.Join(p.Dir, symbol+".csv")
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	warnf := log.Printf
	if p.Quiet {
		warnf = func(string, ...any) {}
	}
	return decodeSeries(filename, f, warnf)
}
