package tradedesk

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"
)

// EventType is the direction of a fill.
type EventType string

const (
	BuyEvent  EventType = "BUY"
	SellEvent EventType = "SELL"
)

// Labels of the ways a position is reduced, as written in the transaction log.
// Buys use OrderKind.Label.
const (
	MarketSellLabel = "Market Sell"
	LimitSellLabel  = "Limit Sell"
	LiquidateLabel  = "Liquidate"
)

// Event is the record of one fill. Total is always Quantity×Price.
type Event struct {
	Type     EventType
	Kind     string
	Symbol   string
	Quantity Quantity
	Price    Money
	Total    Money
}

// NewEvent returns the event of a fill, computing its total.
func NewEvent(typ EventType, kind, symbol string, quantity Quantity, price Money) Event {
	return Event{
		Type:     typ,
		Kind:     kind,
		Symbol:   symbol,
		Quantity: quantity,
		Price:    price,
		Total:    price.Mul(quantity),
	}
}

// EventSink receives one event per fill.
type EventSink interface {
	Record(Event) error
}

// EncodeEvent writes e as a single transaction log line:
//
//	BUY, Market Order, AAPL, 10, 150, 1500
func EncodeEvent(w io.Writer, e Event) error {
	_, err := fmt.Fprintf(w, "%s, %s, %s, %s, %s, %s\n", e.Type, e.Kind, e.Symbol, e.Quantity, e.Price.Plain(), e.Total.Plain())
	return err
}

// DecodeJournal reads a transaction log. Lines that cannot be parsed are
// skipped with a warning.
func DecodeJournal(r io.Reader, currency string) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		e, err := decodeEvent(line, currency)
		if err != nil {
			log.Printf("warning, transaction log line %d skipped: %v", lineNum, err)
			continue
		}
		events = append(events, e)
	}
	return events, scanner.Err()
}

func decodeEvent(line, currency string) (Event, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 6 {
		return Event{}, fmt.Errorf("want 6 fields, got %d in %q", len(fields), line)
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	e := Event{Type: EventType(fields[0]), Kind: fields[1], Symbol: fields[2]}
	if e.Type != BuyEvent && e.Type != SellEvent {
		return Event{}, fmt.Errorf("unknown transaction type %q", fields[0])
	}
	if e.Symbol == "" {
		return Event{}, errors.New("symbol is missing")
	}
	var err error
	if e.Quantity, err = ParseQuantity(fields[3]); err != nil {
		return Event{}, err
	}
	if e.Price, err = ParseMoney(fields[4], currency); err != nil {
		return Event{}, err
	}
	if e.Total, err = ParseMoney(fields[5], currency); err != nil {
		return Event{}, err
	}
	return e, nil
}

// FileJournal appends events to a transaction log file.
type FileJournal struct {
	Path     string
	Currency string
}

// Record appends e to the log, creating the file if needed.
func (j FileJournal) Record(e Event) error {
	f, err := os.OpenFile(j.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if err := EncodeEvent(f, e); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Events reads back every event of the log. A missing log has no events.
func (j FileJournal) Events() ([]Event, error) {
	f, err := os.Open(j.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeJournal(f, j.Currency)
}
