// Package ui holds the terminal styling of the waygraph CLI.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Brand colors
var (
	Brand  = color.New(color.FgHiCyan, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// Banner prints the command banner.
func Banner(w io.Writer, subtitle string) {
	fmt.Fprintf(w, "%s — %s\n\n", Brand.Sprint("waygraph"), subtitle)
}

// Table prints a simple aligned table.
func Table(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var header, sep strings.Builder
	header.WriteString("  ")
	sep.WriteString("  ")
	for i, h := range headers {
		fmt.Fprintf(&header, "%-*s  ", widths[i], h)
		sep.WriteString(strings.Repeat("─", widths[i]) + "  ")
	}
	Subtle.Fprintln(w, header.String())
	Subtle.Fprintln(w, sep.String())

	for _, row := range rows {
		var line strings.Builder
		line.WriteString("  ")
		for i, cell := range row {
			if i < len(widths) {
				fmt.Fprintf(&line, "%-*s  ", widths[i], cell)
			}
		}
		fmt.Fprintln(w, line.String())
	}
}

// KeyValue prints an aligned "key: value" line.
func KeyValue(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "  %-18s %v\n", key+":", value)
}
