package markdown

import "strings"

func (p *parser) parseTable(lines []string, start int) (Table, int, bool) {
	if !startsTable(lines, start) {
		return Table{}, start, false
	}

	header := splitTableRow(strings.TrimSpace(lines[start]))
	align := parseTableAlignment(splitTableRow(strings.TrimSpace(lines[start+1])))
	width := len(header)

	tbl := Table{
		Align:  normalizeAlignment(align, width),
		Header: p.parseCells(header),
	}

	i := start + 2
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if !looksLikeTableRow(trimmed) {
			break
		}
		cells := normalizeRow(splitTableRow(trimmed), width)
		tbl.Rows = append(tbl.Rows, p.parseCells(cells))
		i++
	}
	return tbl, i, true
}

func startsTable(lines []string, i int) bool {
	if i+1 >= len(lines) {
		return false
	}
	return looksLikeTableRow(strings.TrimSpace(lines[i])) &&
		looksLikeTableSeparator(strings.TrimSpace(lines[i+1]))
}

func (p *parser) parseCells(cells []string) [][]Inline {
	out := make([][]Inline, len(cells))
	for i, cell := range cells {
		out[i] = p.parseInline(cell)
	}
	return out
}

func looksLikeTableRow(trimmed string) bool {
	return len(trimmed) >= 2 && strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|")
}

func looksLikeTableSeparator(trimmed string) bool {
	if !strings.Contains(trimmed, "|") || !strings.Contains(trimmed, "-") {
		return false
	}
	return strings.IndexFunc(trimmed, func(r rune) bool {
		return r != '|' && r != '-' && r != ':' && r != ' ' && r != '\t'
	}) == -1
}

func parseTableAlignment(parts []string) []Alignment {
	align := make([]Alignment, len(parts))
	for i, part := range parts {
		left := strings.HasPrefix(part, ":")
		right := strings.HasSuffix(part, ":")
		switch {
		case left && right && len(part) > 1:
			align[i] = AlignCenter
		case right:
			align[i] = AlignRight
		default:
			align[i] = AlignLeft
		}
	}
	return align
}

func splitTableRow(trimmed string) []string {
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	parts := strings.Split(trimmed, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// normalizeRow pads short rows with empty cells and drops cells past the
// header width.
func normalizeRow(cells []string, width int) []string {
	if len(cells) == width {
		return cells
	}
	out := make([]string, width)
	copy(out, cells)
	return out
}

func normalizeAlignment(align []Alignment, width int) []Alignment {
	if len(align) == width {
		return align
	}
	out := make([]Alignment, width)
	copy(out, align)
	return out
}
