package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/postmd/internal/format"
	textutil "github.com/kk-code-lab/postmd/internal/textutil"
	"github.com/rivo/uniseg"
)

// drawTextLine draws text from startX, never past maxWidth columns, and
// returns the column after the last cell drawn. Grapheme clusters are kept
// whole; a wide cluster that does not fit is dropped.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		w := textutil.ClusterWidth(g.Str())
		if x-startX+w > maxWidth {
			break
		}
		r.screen.SetContent(x, y, runes[0], runes[1:], style)
		for extra := 1; extra < w; extra++ {
			r.screen.SetContent(x+extra, y, ' ', nil, style)
		}
		x += w
	}
	return x
}

// drawSegments draws a formatted line, styling each segment.
func (r *Renderer) drawSegments(startX, y, maxWidth int, line []format.Segment) int {
	x := startX
	for _, seg := range line {
		remaining := maxWidth - (x - startX)
		if remaining <= 0 {
			break
		}
		x = r.drawTextLine(x, y, remaining, seg.Text, r.theme.SegmentStyle(seg.Style))
	}
	return x
}

func (r *Renderer) fillRow(fromX, y, w int, style tcell.Style) {
	for x := fromX; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

func (r *Renderer) measureTextWidth(text string) int {
	return textutil.DisplayWidth(text)
}

func (r *Renderer) truncateTextToWidth(text string, maxWidth int) string {
	return textutil.TruncateToWidth(text, maxWidth)
}
