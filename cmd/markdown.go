package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/tradedesk"
	"github.com/etnz/tradedesk/renderer"
)

// printMarkdown renders md for the terminal, or prints it as is when it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		if out, err := r.Render(md); err == nil {
			fmt.Println(strings.TrimSpace(out))
			return
		}
	}
	fmt.Print(md)
}

// printExecution reports the outcome of an order on stdout.
func printExecution(x tradedesk.Execution, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(x)
	}
	fmt.Println(renderer.Execution(x))
	return nil
}
