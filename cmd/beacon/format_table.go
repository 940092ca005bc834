package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// printQueryOutput renders rows as an aligned table followed by a row count.
func printQueryOutput(w io.Writer, cols []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(cols)
	for _, row := range rows {
		for i, r := range row {
			row[i] = expandTabsAndNewLines(r)
		}
		table.Append(row)
	}
	table.Render()
	fmt.Fprintf(w, "(%d row%s)\n", len(rows), pluralize(len(rows)))
}

func expandTabsAndNewLines(s string) string {
	return strings.NewReplacer("\t", "  ", "\n", " ").Replace(s)
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
