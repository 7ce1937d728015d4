package format

import (
	"strings"

	"github.com/kk-code-lab/postmd/internal/markdown"
	"github.com/kk-code-lab/postmd/internal/textutil"
)

type tableBorders struct {
	topLeft, topSep, topRight          string
	midLeft, midSep, midRight          string
	bottomLeft, bottomSep, bottomRight string
}

func defaultTableBorders() tableBorders {
	return tableBorders{
		topLeft:     "┌",
		topSep:      "┬",
		topRight:    "┐",
		midLeft:     "├",
		midSep:      "┼",
		midRight:    "┤",
		bottomLeft:  "└",
		bottomSep:   "┴",
		bottomRight: "┘",
	}
}

const minColumnWidth = 3

type tableCell struct {
	lines []cellLine
}

type cellLine struct {
	segments []Segment
	width    int
}

type tableLayout struct {
	widths []int
	header []tableCell
	rows   [][]tableCell
}

// renderTable draws a box table. Columns shrink, widest first, until the
// table fits maxWidth; cell content then wraps inside its column.
func renderTable(tbl markdown.Table, maxWidth int) [][]Segment {
	if len(tbl.Header) == 0 {
		return nil
	}
	layout := buildTableLayout(tbl, maxWidth)
	return drawTable(layout, tbl.Align, defaultTableBorders())
}

func buildTableLayout(tbl markdown.Table, maxWidth int) tableLayout {
	header := make([]tableCell, len(tbl.Header))
	for i, cell := range tbl.Header {
		header[i] = makeTableCell(cell, StyleStrong)
	}
	rows := make([][]tableCell, len(tbl.Rows))
	for i, row := range tbl.Rows {
		rows[i] = make([]tableCell, len(tbl.Header))
		for j := range tbl.Header {
			var cell []markdown.Inline
			if j < len(row) {
				cell = row[j]
			}
			rows[i][j] = makeTableCell(cell, StylePlain)
		}
	}

	widths := computeColumnWidths(header, rows)
	widths = clampColumnWidths(widths, maxWidth)

	for i := range header {
		header[i] = wrapCell(header[i], widths[i])
	}
	for _, row := range rows {
		for j := range row {
			row[j] = wrapCell(row[j], widths[j])
		}
	}
	return tableLayout{widths: widths, header: header, rows: rows}
}

func makeTableCell(inlines []markdown.Inline, style Style) tableCell {
	segs := inlineSegments(inlines, style)
	return tableCell{lines: []cellLine{{segments: segs, width: textutil.DisplayWidth(LineText(segs))}}}
}

func wrapCell(cell tableCell, width int) tableCell {
	var wrapped []cellLine
	for _, line := range cell.lines {
		for _, segs := range wrapSegments(line.segments, width) {
			wrapped = append(wrapped, cellLine{segments: segs, width: textutil.DisplayWidth(LineText(segs))})
		}
	}
	if len(wrapped) == 0 {
		wrapped = []cellLine{{}}
	}
	return tableCell{lines: wrapped}
}

func computeColumnWidths(header []tableCell, rows [][]tableCell) []int {
	widths := make([]int, len(header))
	update := func(cell tableCell, idx int) {
		for _, line := range cell.lines {
			if line.width > widths[idx] {
				widths[idx] = line.width
			}
		}
	}
	for i, cell := range header {
		update(cell, i)
	}
	for _, row := range rows {
		for i := range widths {
			update(row[i], i)
		}
	}
	for i, w := range widths {
		if w < 1 {
			widths[i] = 1
		}
	}
	return widths
}

func clampColumnWidths(widths []int, maxWidth int) []int {
	if maxWidth <= 0 || len(widths) == 0 {
		return widths
	}
	total := tableWidth(widths)
	for total > maxWidth {
		idx := widestColumn(widths, minColumnWidth)
		if idx == -1 {
			break
		}
		widths[idx]--
		total--
	}
	return widths
}

func widestColumn(widths []int, minWidth int) int {
	maxIdx := -1
	maxVal := minWidth
	for i, w := range widths {
		if w > maxVal {
			maxVal = w
			maxIdx = i
		}
	}
	return maxIdx
}

// tableWidth counts two padding spaces and one border per column plus the
// closing border.
func tableWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	return total + len(widths)*3 + 1
}

func drawTable(layout tableLayout, align []markdown.Alignment, borders tableBorders) [][]Segment {
	rules := make([]string, len(layout.widths))
	for i, w := range layout.widths {
		rules[i] = strings.Repeat("─", w+2)
	}
	border := func(left, sep, right string) []Segment {
		return []Segment{{Text: left + strings.Join(rules, sep) + right, Style: StylePlain}}
	}

	lines := [][]Segment{border(borders.topLeft, borders.topSep, borders.topRight)}
	for i := 0; i < cellBlockHeight(layout.header); i++ {
		lines = append(lines, drawTableRow(layout.header, i, layout.widths, align))
	}
	lines = append(lines, border(borders.midLeft, borders.midSep, borders.midRight))
	for _, row := range layout.rows {
		for i := 0; i < cellBlockHeight(row); i++ {
			lines = append(lines, drawTableRow(row, i, layout.widths, align))
		}
	}
	return append(lines, border(borders.bottomLeft, borders.bottomSep, borders.bottomRight))
}

func drawTableRow(cells []tableCell, lineIdx int, widths []int, align []markdown.Alignment) []Segment {
	segs := []Segment{{Text: "│ ", Style: StylePlain}}
	for i, cell := range cells {
		var line cellLine
		if lineIdx < len(cell.lines) {
			line = cell.lines[lineIdx]
		}
		segs = append(segs, alignCell(line, widths[i], alignAt(i, align))...)
		sep := " │ "
		if i == len(cells)-1 {
			sep = " │"
		}
		segs = append(segs, Segment{Text: sep, Style: StylePlain})
	}
	return segs
}

func alignCell(line cellLine, width int, alignment markdown.Alignment) []Segment {
	space := width - line.width
	if space < 0 {
		space = 0
	}
	left, right := 0, space
	switch alignment {
	case markdown.AlignCenter:
		left = space / 2
		right = space - left
	case markdown.AlignRight:
		left, right = space, 0
	}

	segs := make([]Segment, 0, len(line.segments)+2)
	if left > 0 {
		segs = append(segs, Segment{Text: strings.Repeat(" ", left), Style: StylePlain})
	}
	segs = append(segs, line.segments...)
	if right > 0 {
		segs = append(segs, Segment{Text: strings.Repeat(" ", right), Style: StylePlain})
	}
	return segs
}

func alignAt(idx int, align []markdown.Alignment) markdown.Alignment {
	if idx < len(align) {
		return align[idx]
	}
	return markdown.AlignLeft
}

func cellBlockHeight(cells []tableCell) int {
	height := 1
	for _, cell := range cells {
		if len(cell.lines) > height {
			height = len(cell.lines)
		}
	}
	return height
}
