// Package table lays out plain-text columns for terminal output.
package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column describes one output column. Max caps the cell width; zero means
// unlimited.
type Column struct {
	Title string
	Align Alignment
	Max   int
}

// Render returns a header line followed by one line per row, every column
// padded to its widest cell. Cells wider than the column's Max are cut with
// an ellipsis.
func Render(columns []Column, rows [][]string) []string {
	if len(columns) == 0 {
		return nil
	}
	cells := make([][]string, 0, len(rows)+1)
	header := make([]string, len(columns))
	for c, col := range columns {
		header[c] = col.Title
	}
	cells = append(cells, header)
	for _, row := range rows {
		line := make([]string, len(columns))
		for c := range columns {
			if c < len(row) {
				line[c] = clip(row[c], columns[c].Max)
			}
		}
		cells = append(cells, line)
	}

	widths := make([]int, len(columns))
	for _, line := range cells {
		for c, cell := range line {
			widths[c] = max(widths[c], ansi.StringWidth(cell))
		}
	}

	out := make([]string, len(cells))
	for i, line := range cells {
		var b strings.Builder
		for c, cell := range line {
			if c > 0 {
				b.WriteString("  ")
			}
			pad := widths[c] - ansi.StringWidth(cell)
			last := c == len(line)-1
			if columns[c].Align == AlignRight {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if !last {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
		}
		out[i] = b.String()
	}
	return out
}

func clip(cell string, limit int) string {
	if limit <= 0 || ansi.StringWidth(cell) <= limit {
		return cell
	}
	return truncate.StringWithTail(cell, uint(limit), "…")
}
