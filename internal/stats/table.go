package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// Table is a plain text table measured in terminal cells, so Devanagari and
// Telugu glosses line up with Latin words.
type Table struct {
	Headers []string
	Rows    [][]string
	// Right lists the right-aligned column indexes.
	Right []int
	// MaxCell truncates wider cells with an ellipsis. Zero disables truncation.
	MaxCell int
}

// Lines renders the table. Columns are separated by one space and trailing
// padding is dropped.
func (t Table) Lines() []string {
	widths := t.columnWidths()
	if len(widths) == 0 {
		return nil
	}
	right := make(map[int]bool, len(t.Right))
	for _, col := range t.Right {
		right[col] = true
	}

	lines := make([]string, 0, len(t.Rows)+1)
	if len(t.Headers) > 0 {
		lines = append(lines, t.line(t.Headers, widths, right))
	}
	for _, row := range t.Rows {
		lines = append(lines, t.line(row, widths, right))
	}
	return lines
}

// Fprint writes the rendered table to w, one line per row.
func (t Table) Fprint(w io.Writer) error {
	for _, line := range t.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (t Table) columnWidths() []int {
	var widths []int
	measure := func(row []string) {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if cw := runewidth.StringWidth(t.cell(cell)); cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}
	return widths
}

func (t Table) cell(value string) string {
	if t.MaxCell > 0 && runewidth.StringWidth(value) > t.MaxCell {
		return runewidth.Truncate(value, t.MaxCell, ellipsis)
	}
	return value
}

func (t Table) line(row []string, widths []int, right map[int]bool) string {
	cells := make([]string, len(widths))
	for i, width := range widths {
		value := ""
		if i < len(row) {
			value = t.cell(row[i])
		}
		if right[i] {
			cells[i] = runewidth.FillLeft(value, width)
		} else {
			cells[i] = runewidth.FillRight(value, width)
		}
	}
	return strings.TrimRight(strings.Join(cells, " "), " ")
}
