package tradedesk

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// The portfolio file is plain text:
//
//	100000
//	AAPL 10 150.25
//	MSFT 5 410
//
// The first line is the cash balance, then one "symbol quantity cost" line per
// holding, sorted by symbol.

// EncodeSnapshot writes s in the portfolio file format.
func EncodeSnapshot(w io.Writer, s Snapshot) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, s.Cash.Plain())
	for _, h := range s.Holdings {
		fmt.Fprintf(bw, "%s %s %s\n", h.Symbol, h.Quantity, h.Cost.Plain())
	}
	return bw.Flush()
}

// DecodeSnapshot reads a portfolio file. Amounts are read in currency.
// Unlike market data, a single bad line rejects the whole file: a half
// read portfolio would silently lose holdings.
func DecodeSnapshot(r io.Reader, currency string) (Snapshot, error) {
	scanner := bufio.NewScanner(r)
	var s Snapshot
	seen := make(map[string]bool)
	lineNum, hasCash := 0, false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		lineNum++
		if line == "" {
			continue
		}
		if !hasCash {
			cash, err := ParseMoney(line, currency)
			if err != nil {
				return Snapshot{}, fmt.Errorf("line %d: cash balance: %w", lineNum, err)
			}
			if cash.IsNegative() {
				return Snapshot{}, fmt.Errorf("line %d: negative cash balance %s", lineNum, line)
			}
			s.Cash, hasCash = cash, true
			continue
		}
		h, err := decodeHolding(line, currency)
		if err != nil {
			return Snapshot{}, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if seen[h.Symbol] {
			return Snapshot{}, fmt.Errorf("line %d: duplicate holding %s", lineNum, h.Symbol)
		}
		seen[h.Symbol] = true
		s.Holdings = append(s.Holdings, h)
	}
	if err := scanner.Err(); err != nil {
		return Snapshot{}, err
	}
	if !hasCash {
		return Snapshot{}, errors.New("empty portfolio file")
	}
	return s, nil
}

func decodeHolding(line, currency string) (Holding, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Holding{}, fmt.Errorf("want \"symbol quantity cost\", got %q", line)
	}
	q, err := ParseQuantity(fields[1])
	if err != nil {
		return Holding{}, err
	}
	if q.IsNegative() {
		return Holding{}, fmt.Errorf("negative quantity for %s", fields[0])
	}
	cost, err := ParseMoney(fields[2], currency)
	if err != nil {
		return Holding{}, err
	}
	return Holding{Symbol: fields[0], Quantity: q, Cost: cost}, nil
}

// FileStore keeps the ledger in a portfolio text file, rewritten whole after
// every mutation.
type FileStore struct {
	Path     string
	Currency string
}

// Load reads the portfolio file. A missing file returns an error matching fs.ErrNotExist.
func (f FileStore) Load() (Snapshot, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return Snapshot{}, err
	}
	defer file.Close()
	return DecodeSnapshot(file, f.Currency)
}

// Save replaces the portfolio file content with s. The new content is written
// to a temporary file in the same directory first, then renamed over the old
// one. The file keeps the permissions of the one it replaces, 0644 for a new
// file.
func (f FileStore) Save(s Snapshot) error {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, s); err != nil {
		return err
	}
	mode := fs.FileMode(0644)
	if info, err := os.Stat(f.Path); err == nil {
		mode = info.Mode().Perm()
	}
	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.Path)+".*")
	if err != nil {
		return err
	}
	// CreateTemp makes the file 0600.
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.Path)
}
