// Package format renders a parsed post for output: styled terminal lines for
// the text view and the viewer, and an HTML fragment.
package format

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'postmd.format'.
func tracer() tracing.Trace {
	return tracing.Select("postmd.format")
}

// Style describes a semantic style for formatted terminal segments.
type Style int

const (
	StylePlain Style = iota
	StyleEmphasis
	StyleStrong
	StyleStrike
	StyleCode
	StyleCodeBlock
	StyleLink
	StyleHeading
	StyleBanner
	StyleQuote
	StyleRule
	StyleImage
	StyleSummary
)

var styleNames = [...]string{
	StylePlain:     "plain",
	StyleEmphasis:  "emphasis",
	StyleStrong:    "strong",
	StyleStrike:    "strike",
	StyleCode:      "code",
	StyleCodeBlock: "codeblock",
	StyleLink:      "link",
	StyleHeading:   "heading",
	StyleBanner:    "banner",
	StyleQuote:     "quote",
	StyleRule:      "rule",
	StyleImage:     "image",
	StyleSummary:   "summary",
}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return "unknown"
	}
	return styleNames[s]
}

// Segment is a chunk of text with an associated style.
type Segment struct {
	Text  string
	Style Style
}

// LineText joins the text of a line's segments.
func LineText(line []Segment) string {
	if len(line) == 0 {
		return ""
	}
	total := 0
	for _, seg := range line {
		total += len(seg.Text)
	}
	buf := make([]byte, 0, total)
	for _, seg := range line {
		buf = append(buf, seg.Text...)
	}
	return string(buf)
}

// PlainLines flattens styled lines to strings.
func PlainLines(lines [][]Segment) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = LineText(line)
	}
	return out
}

// Text joins lines into newline-terminated plain text.
func Text(lines [][]Segment) string {
	var b strings.Builder
	for _, line := range PlainLines(lines) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// appendSegment adds text to line, merging it into the last segment when the
// styles match.
func appendSegment(line []Segment, text string, style Style) []Segment {
	if text == "" {
		return line
	}
	if n := len(line); n > 0 && line[n-1].Style == style {
		line[n-1].Text += text
		return line
	}
	return append(line, Segment{Text: text, Style: style})
}

func prefixLines(lines [][]Segment, first, rest Segment) [][]Segment {
	out := make([][]Segment, len(lines))
	for i, line := range lines {
		p := rest
		if i == 0 {
			p = first
		}
		prefixed := make([]Segment, 0, len(line)+1)
		prefixed = append(prefixed, p)
		out[i] = append(prefixed, line...)
	}
	return out
}
