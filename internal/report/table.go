// Package report renders records and revision history as text tables.
package report

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Options control how a table is written.
type Options struct {
	// Color styles the header line.
	Color bool
	// Width truncates lines when positive.
	Width int
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

// FormatTable lays rows out in space separated columns.
func FormatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		if rightAlignCols[i] {
			b.WriteString(runewidth.FillLeft(cell, widths[i]))
		} else {
			b.WriteString(runewidth.FillRight(cell, widths[i]))
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Write renders the table to w.
func Write(w io.Writer, headers []string, rows [][]string, rightAlignCols map[int]bool, opts Options) error {
	lines := FormatTable(headers, rows, rightAlignCols)
	for i, line := range lines {
		if opts.Width > 0 {
			line = runewidth.Truncate(line, opts.Width, "…")
		}
		if i == 0 && len(headers) > 0 && opts.Color {
			line = headerStyle.Render(line)
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}
