package format

import (
	"strings"

	"github.com/kk-code-lab/postmd/internal/textutil"
	"github.com/rivo/uniseg"
)

// wrapSegments breaks a run of segments into lines of at most width columns,
// preferring breaks at spaces. Words wider than a line are split between
// grapheme clusters. Spaces at line edges are dropped.
func wrapSegments(segments []Segment, width int) [][]Segment {
	if width <= 0 {
		var line []Segment
		for _, seg := range segments {
			line = appendSegment(line, seg.Text, seg.Style)
		}
		return [][]Segment{line}
	}
	w := &wrapper{width: width}
	for _, seg := range segments {
		for _, tok := range splitWords(seg.Text) {
			w.add(tok, seg.Style)
		}
	}
	return w.finish()
}

type wrapper struct {
	width int
	lines [][]Segment
	cur   []Segment
	used  int
}

func (w *wrapper) add(tok string, style Style) {
	tw := textutil.DisplayWidth(tok)
	if tok[0] == ' ' {
		if w.used == 0 {
			return
		}
		if w.used+tw > w.width {
			w.flush()
			return
		}
		w.put(tok, style, tw)
		return
	}
	if w.used > 0 && w.used+tw > w.width {
		w.flush()
	}
	if tw <= w.width {
		w.put(tok, style, tw)
		return
	}
	g := uniseg.NewGraphemes(tok)
	for g.Next() {
		cluster := g.Str()
		cw := textutil.ClusterWidth(cluster)
		if w.used > 0 && w.used+cw > w.width {
			w.flush()
		}
		w.put(cluster, style, cw)
	}
}

func (w *wrapper) put(text string, style Style, width int) {
	w.cur = appendSegment(w.cur, text, style)
	w.used += width
}

func (w *wrapper) flush() {
	w.lines = append(w.lines, trimTrailingSpace(w.cur))
	w.cur = nil
	w.used = 0
}

func (w *wrapper) finish() [][]Segment {
	if len(w.cur) > 0 || len(w.lines) == 0 {
		w.flush()
	}
	return w.lines
}

func trimTrailingSpace(line []Segment) []Segment {
	for len(line) > 0 {
		last := &line[len(line)-1]
		last.Text = strings.TrimRight(last.Text, " ")
		if last.Text != "" {
			break
		}
		line = line[:len(line)-1]
	}
	return line
}

// splitWords cuts text into alternating runs of spaces and non-spaces.
func splitWords(text string) []string {
	var out []string
	start := 0
	for i := 1; i <= len(text); i++ {
		if i == len(text) || (text[i] == ' ') != (text[start] == ' ') {
			out = append(out, text[start:i])
			start = i
		}
	}
	return out
}
