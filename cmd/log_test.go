package cmd

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/tradedesk"
)

// withFlags points the global flags at a temporary desk with AAPL market data,
// and restores them at the end of the test.
func withFlags(t *testing.T, verbose bool) string {
	t.Helper()
	dir := t.TempDir()
	data := "date,open,high,low,close,volume,gain,loss,avgGain,avgLoss,rsi,movingAvg,momentum,upperThreshold,lowerThreshold\n" +
		"2024-01-02,10,11,9,11,1200,1,0,0.2,0.1,66.6,10.5,1,11,9\n" +
		"2024-01-03,1,2\n"
	if err := os.WriteFile(filepath.Join(dir, "AAPL.csv"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	oldPortfolio, oldLog, oldData, oldSymbols, oldVerbose := *portfolioFile, *logFile, *dataDir, *symbols, *Verbose
	t.Cleanup(func() {
		*portfolioFile, *logFile, *dataDir, *symbols, *Verbose = oldPortfolio, oldLog, oldData, oldSymbols, oldVerbose
	})
	*portfolioFile = filepath.Join(dir, "portfolio.txt")
	*logFile = filepath.Join(dir, "log.txt")
	*dataDir = dir
	*symbols = "AAPL"
	*Verbose = verbose
	return dir
}

// captureLog sends warnings to a buffer for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetupLog(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestFailedSaveIsReported(t *testing.T) {
	dir := withFlags(t, false)
	*portfolioFile = filepath.Join(dir, "missing", "portfolio.txt")
	buf := captureLog(t)

	desk, err := OpenDesk(context.Background())
	if err != nil {
		t.Fatalf("OpenDesk() error = %v", err)
	}
	order, err := tradedesk.NewMarketOrder("AAPL", tradedesk.Q(1))
	if err != nil {
		t.Fatal(err)
	}
	ref, err := desk.Quote("AAPL")
	if err != nil {
		t.Fatalf("Quote(AAPL) error = %v", err)
	}
	x, err := desk.PlaceOrder(order, ref)
	if err != nil || !x.Filled {
		t.Fatalf("PlaceOrder() = %+v, %v, want a fill", x, err)
	}

	for _, want := range []string{"portfolio not saved", tradedesk.ErrPersistenceUnavailable.Error()} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log output does not contain %q:\n%s", want, buf.String())
		}
	}
	if strings.Contains(buf.String(), "malformed row") {
		t.Errorf("malformed rows reported without -v:\n%s", buf.String())
	}
}

func TestVerboseReportsMalformedRows(t *testing.T) {
	withFlags(t, true)
	buf := captureLog(t)

	market, err := loadMarket(context.Background())
	if err != nil {
		t.Fatalf("loadMarket() error = %v", err)
	}
	if _, err := market.LatestPrice("AAPL"); err != nil {
		t.Errorf("LatestPrice(AAPL) error = %v", err)
	}
	if !strings.Contains(buf.String(), "malformed row skipped") {
		t.Errorf("log output does not report the malformed row:\n%s", buf.String())
	}
}
