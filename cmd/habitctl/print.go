package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// table renders rows with aligned columns. The header row is underlined with
// dashes to keep plain-terminal output readable.
func table(w io.Writer, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	underline := make([]string, len(header))
	for i, h := range header {
		underline[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(underline, "\t"))

	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// shortDate trims an ISO-8601 timestamp down to its date part for listings.
func shortDate(ts string) string {
	if i := strings.IndexAny(ts, "T "); i > 0 {
		return ts[:i]
	}
	return ts
}
