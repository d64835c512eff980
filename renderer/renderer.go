// Package renderer turns desk values into markdown documents.
package renderer

import (
	"fmt"
	"strings"
)

// mdRenderer accumulates a markdown document.
type mdRenderer struct {
	strings.Builder
}

// Printf formats according to a format specifier and writes to the document.
func (r *mdRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

// Table writes the header and alignment rows of a table. align has one
// character per column: 'l', 'r' or 'c'.
func (r *mdRenderer) Table(align string, headers ...string) {
	r.Printf("| %s |\n", strings.Join(headers, " | "))
	seps := make([]string, len(headers))
	for i := range seps {
		switch {
		case i < len(align) && align[i] == 'r':
			seps[i] = "---:"
		case i < len(align) && align[i] == 'c':
			seps[i] = ":---:"
		default:
			seps[i] = ":---"
		}
	}
	r.Printf("|%s|\n", strings.Join(seps, "|"))
}

// Row writes one table row.
func (r *mdRenderer) Row(cells ...any) {
	s := make([]string, len(cells))
	for i, c := range cells {
		s[i] = fmt.Sprint(c)
	}
	r.Printf("| %s |\n", strings.Join(s, " | "))
}
