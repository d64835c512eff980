// Package date provides a day-granularity date used to stamp market bars.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// readFormats are the layouts accepted by Parse, in order. Single digit month
// and day are accepted: 2025-7-1.
var readFormats = []string{
	"2006-1-2",
	"1/2/2006",
	"2006/1/2",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	time.RFC3339,
}

// Format is the ISO-8601 layout used to print dates.
const Format = "2006-01-02"

// Date is a calendar day with no time of day and no location.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date, so that New(2025, 1, 32) is February 1st.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current local day.
func Today() Date { return New(time.Now().Date()) }

// time returns midnight UTC of d, a canonical comparable instant.
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Date) Year() int          { return d.y }
func (d Date) Month() time.Month  { return d.m }
func (d Date) Day() int           { return d.d }
func (d Date) IsZero() bool       { return d == Date{} }
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }
func (d Date) After(x Date) bool  { return d.time().After(x.time()) }

// Add returns d shifted by n days.
func (d Date) Add(n int) Date { return New(d.y, d.m, d.d+n) }

// String formats the date as 2006-01-02. The zero Date prints as "".
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(Format)
}

// Parse reads a date in the 2006-01-02 layout, or in the US 01/02/2006 one.
// A time of day is accepted and dropped.
func Parse(s string) (Date, error) {
	for _, layout := range readFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return New(t.Date()), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q want format %q", s, Format)
}

// MustParse is like Parse but panics on error. Meant for tests and constants.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
