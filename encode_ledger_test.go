package tradedesk

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeSnapshot(t *testing.T) {
	s := Snapshot{
		Cash: USD(98499.75),
		Holdings: []Holding{
			{Symbol: "AAPL", Quantity: Q(10), Cost: USD(150.25)},
			{Symbol: "MSFT", Quantity: Q(5), Cost: USD(410)},
		},
	}
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, s); err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}
	want := "98499.75\nAAPL 10 150.25\nMSFT 5 410\n"
	if got := buf.String(); got != want {
		t.Errorf("EncodeSnapshot() =\n%s\nwant\n%s", got, want)
	}
}

func TestDecodeSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Snapshot
		wantErr string
	}{
		{
			name:  "cash only",
			input: "100000\n",
			want:  Snapshot{Cash: USD(100000)},
		},
		{
			name:  "with holdings and blank lines",
			input: "\n1500.5\nAAPL 10 150.25\n\n  MSFT   5 410  \n",
			want: Snapshot{Cash: USD(1500.5), Holdings: []Holding{
				{Symbol: "AAPL", Quantity: Q(10), Cost: USD(150.25)},
				{Symbol: "MSFT", Quantity: Q(5), Cost: USD(410)},
			}},
		},
		{name: "empty", input: "", wantErr: "empty portfolio file"},
		{name: "bad cash", input: "lots\n", wantErr: "line 1: cash balance"},
		{name: "negative cash", input: "-1\n", wantErr: "negative cash balance"},
		{name: "missing field", input: "100\nAAPL 10\n", wantErr: "line 2"},
		{name: "fractional quantity", input: "100\nAAPL 1.5 10\n", wantErr: "not a whole number"},
		{name: "negative quantity", input: "100\nAAPL -1 10\n", wantErr: "negative quantity"},
		{name: "duplicate", input: "100\nAAPL 1 10\nAAPL 2 10\n", wantErr: "duplicate holding AAPL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeSnapshot(strings.NewReader(tt.input), "USD")
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("DecodeSnapshot() error = %v, want it to contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeSnapshot() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got, exact); diff != "" {
				t.Errorf("DecodeSnapshot() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.txt")
	store := FileStore{Path: path, Currency: "USD"}

	if _, err := store.Load(); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Load() of a missing file error = %v, want %v", err, fs.ErrNotExist)
	}

	l := OpenLedger(store, USD(1000))
	if err := l.Buy("AAPL", Q(3), USD(100)); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("portfolio file not written: %v", err)
	}
	if got, want := string(content), "700\nAAPL 3 100\n"; got != want {
		t.Errorf("portfolio file = %q, want %q", got, want)
	}

	// A new ledger on the same file picks up where the first left off.
	reopened := OpenLedger(store, USD(1000))
	if diff := cmp.Diff(l.Snapshot(), reopened.Snapshot(), exact); diff != "" {
		t.Errorf("reopened ledger mismatch (-saved +reopened):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the portfolio file", len(entries))
	}
}

func TestFileStore_Permissions(t *testing.T) {
	tests := []struct {
		name     string
		existing fs.FileMode // 0 for no previous file
		want     fs.FileMode
	}{
		{name: "new file", want: 0644},
		{name: "existing file keeps its mode", existing: 0600, want: 0600},
		{name: "existing group readable file", existing: 0640, want: 0640},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "portfolio.txt")
			if tc.existing != 0 {
				if err := os.WriteFile(path, []byte("100\n"), tc.existing); err != nil {
					t.Fatal(err)
				}
				// WriteFile is subject to the umask.
				if err := os.Chmod(path, tc.existing); err != nil {
					t.Fatal(err)
				}
			}
			if err := (FileStore{Path: path, Currency: "USD"}).Save(Snapshot{Cash: USD(50)}); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if got := info.Mode().Perm(); got != tc.want {
				t.Errorf("portfolio file mode = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFileStore_CorruptFileStartsFresh(t *testing.T) {
	path := writeFile(t, "portfolio.txt", "not a number\nAAPL 1 1\n")
	l := OpenLedger(FileStore{Path: path, Currency: "USD"}, USD(100000))
	if got := l.Cash(); !got.Equal(USD(100000)) {
		t.Errorf("Cash() = %v, want the initial balance", got)
	}
	if got := l.Symbols(); len(got) != 0 {
		t.Errorf("Symbols() = %v, want none", got)
	}
}
