// SPDX-License-Identifier: AGPL-3.0-or-later
package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders a Markdown table with padded columns. Rows are written in
// the order given.
func Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = max(lipgloss.Width(h), 3)
	}
	for _, row := range rows {
		for i := range headers {
			if i < len(row) {
				widths[i] = max(widths[i], lipgloss.Width(row[i]))
			}
		}
	}

	var b strings.Builder
	writeRow(&b, headers, widths)

	sep := make([]string, len(headers))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(&b, sep, widths)

	for _, row := range rows {
		writeRow(&b, row, widths)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	b.WriteString("|")
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(" " + cell + strings.Repeat(" ", w-lipgloss.Width(cell)) + " |")
	}
	b.WriteString("\n")
}
