// Package table renders column-aligned text tables for the list commands.
// Widths are computed from display width, not byte length, so titles with
// æ, ø, å or CJK characters still line up.
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RowKind discriminates the row variants a structured table can hold.
type RowKind int

const (
	// KindHeader is the column header row, drawn between thick separators.
	KindHeader RowKind = iota
	// KindData is a regular data row.
	KindData
	// KindGroupHeader spans the full table width with a centered label and
	// starts a group of data rows rendered without separators between them.
	KindGroupHeader
)

// Row is one row of a structured table.
type Row struct {
	Kind  RowKind
	Cells []string

	// Label and GroupSize apply to KindGroupHeader rows only: the spanning
	// text and the number of following data rows that belong to the group.
	Label     string
	GroupSize int
}

// Header builds a column header row.
func Header(cells ...string) Row { return Row{Kind: KindHeader, Cells: cells} }

// Data builds a regular data row.
func Data(cells ...string) Row { return Row{Kind: KindData, Cells: cells} }

// GroupHeader builds a spanning group header covering the next size data rows.
func GroupHeader(label string, size int) Row {
	return Row{Kind: KindGroupHeader, Label: label, GroupSize: size}
}

// Format renders rows as a bordered table. The first row must be a header;
// anything else renders as empty. Data rows inside a group omit the thin
// separators between them, so a series reads as one block.
func Format(rows []Row) string {
	if len(rows) == 0 || rows[0].Kind != KindHeader {
		return ""
	}
	header := rows[0].Cells
	widths := columnWidths(rows, len(header))

	// Column widths plus a '|' per column and the outer '|'.
	totalWidth := len(header) + 1
	for _, w := range widths {
		totalWidth += w
	}

	var b strings.Builder
	writeLine(&b, widths, '=')
	writeRow(&b, header, widths)
	writeLine(&b, widths, '=')

	groupRemaining := 0
	for _, row := range rows[1:] {
		switch row.Kind {
		case KindHeader:
			// Extra headers are ignored.
		case KindGroupHeader:
			groupRemaining = row.GroupSize
			writeGroupHeader(&b, row.Label, totalWidth)
		case KindData:
			writeRow(&b, row.Cells, widths)
			if groupRemaining > 0 {
				groupRemaining--
				if groupRemaining > 0 {
					continue
				}
			}
			writeLine(&b, widths, '-')
		}
	}
	return b.String()
}

// FormatSimple renders a plain header-plus-data table without grouping.
func FormatSimple(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	structured := make([]Row, len(rows))
	structured[0] = Header(rows[0]...)
	for i, cells := range rows[1:] {
		structured[i+1] = Data(cells...)
	}
	return Format(structured)
}

// columnWidths finds the widest cell per column, padded one space each side.
func columnWidths(rows []Row, cols int) []int {
	widths := make([]int, cols)
	for _, row := range rows {
		if row.Kind == KindGroupHeader {
			continue
		}
		for i, cell := range row.Cells {
			if i >= cols {
				break
			}
			if w := runewidth.StringWidth(cell) + 2; w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func writeLine(b *strings.Builder, widths []int, ch byte) {
	b.WriteByte('+')
	for _, w := range widths {
		for i := 0; i < w; i++ {
			b.WriteByte(ch)
		}
		b.WriteByte('+')
	}
	b.WriteByte('\n')
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	b.WriteByte('|')
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padding := w - runewidth.StringWidth(cell)
		left := padding / 2
		b.WriteString(strings.Repeat(" ", left))
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", padding-left))
		b.WriteByte('|')
	}
	b.WriteByte('\n')
}

func writeGroupHeader(b *strings.Builder, label string, totalWidth int) {
	decorated := "── " + label + " ──"
	inner := totalWidth - 2
	padding := inner - runewidth.StringWidth(decorated)
	if padding < 0 {
		padding = 0
	}
	left := padding / 2
	b.WriteByte('|')
	b.WriteString(strings.Repeat(" ", left))
	b.WriteString(decorated)
	b.WriteString(strings.Repeat(" ", padding-left))
	b.WriteString("|\n")
}
