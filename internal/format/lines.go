package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kk-code-lab/postmd/internal/markdown"
	"github.com/kk-code-lab/postmd/internal/textutil"
)

// Lines lays doc out as styled terminal lines. Prose wraps at word
// boundaries to fit width columns; a width of zero or less disables wrapping.
// Blocks are separated by one empty line.
func Lines(doc markdown.Document, width int) [][]Segment {
	return renderBlocks(doc.Blocks, 0, width)
}

func renderBlocks(blocks []markdown.Block, depth, width int) [][]Segment {
	var lines [][]Segment
	for idx, block := range blocks {
		rendered := renderBlock(block, depth, width)
		if idx > 0 && len(rendered) > 0 && len(lines) > 0 && len(lines[len(lines)-1]) != 0 {
			lines = append(lines, nil)
		}
		lines = append(lines, rendered...)
	}
	return lines
}

func renderBlock(block markdown.Block, depth, width int) [][]Segment {
	switch b := block.(type) {
	case markdown.Heading:
		return renderHeading(b, width)
	case markdown.Paragraph:
		return wrapSegments(inlineSegments(b.Children, StylePlain), width)
	case markdown.Gallery:
		var lines [][]Segment
		for _, img := range b.Images {
			lines = append(lines, wrapSegments(imageSegments(img), width)...)
		}
		if len(b.Trailing) > 0 {
			lines = append(lines, wrapSegments(inlineSegments(b.Trailing, StylePlain), width)...)
		}
		return lines
	case markdown.ImageBlock:
		return wrapSegments(imageSegments(b.Image), width)
	case markdown.CodeBlock:
		return renderCodeBlock(b, width)
	case markdown.List:
		return renderList(b, depth, width)
	case markdown.Blockquote:
		content := renderBlocks(b.Blocks, depth+1, innerWidth(width, 2))
		bar := Segment{Text: "│ ", Style: StyleQuote}
		return prefixLines(content, bar, bar)
	case markdown.HorizontalRule:
		n := width
		if n <= 0 {
			n = 3
		}
		return [][]Segment{{{Text: strings.Repeat("─", n), Style: StyleRule}}}
	case markdown.Table:
		return renderTable(b, width)
	case markdown.Details:
		return renderDetails(b, depth, width)
	default:
		tracer().Debugf("no line layout for block %T", block)
		return nil
	}
}

func renderHeading(h markdown.Heading, width int) [][]Segment {
	prefix := strings.Repeat("#", h.Level) + " "
	pw := textutil.DisplayWidth(prefix)
	body := wrapSegments(inlineSegments(h.Children, StyleHeading), innerWidth(width, pw))
	lines := prefixLines(body,
		Segment{Text: prefix, Style: StyleHeading},
		Segment{Text: strings.Repeat(" ", pw), Style: StyleHeading})
	if h.Banner != nil {
		lines = append(lines, wrapSegments(inlineSegments([]markdown.Inline{h.Banner.Inlines()}, StyleBanner), width)...)
	}
	return lines
}

func renderCodeBlock(block markdown.CodeBlock, width int) [][]Segment {
	const prefix = "    "
	limit := innerWidth(width, len(prefix))
	raw := strings.Split(block.Raw, "\n")
	lines := make([][]Segment, 0, len(raw)+1)
	if block.Info != "" {
		info := textutil.SanitizeTerminalText("[" + block.Info + "]")
		lines = append(lines, []Segment{{Text: prefix + clip(info, limit), Style: StyleCodeBlock}})
	}
	for _, line := range raw {
		text := textutil.SanitizeTerminalText(textutil.ExpandTabs(line, textutil.DefaultTabWidth))
		lines = append(lines, []Segment{{Text: prefix + clip(text, limit), Style: StyleCodeBlock}})
	}
	return lines
}

func clip(text string, width int) string {
	if width <= 0 {
		return text
	}
	return textutil.TruncateToWidth(text, width)
}

func renderList(list markdown.List, depth, width int) [][]Segment {
	var lines [][]Segment
	for idx, item := range list.Items {
		bullet := bulletSymbol(depth, list.Ordered, idx, list.Start) + " "
		bw := textutil.DisplayWidth(bullet)
		body := wrapSegments(inlineSegments(item, StylePlain), innerWidth(width, bw))
		lines = append(lines, prefixLines(body,
			Segment{Text: bullet, Style: StylePlain},
			Segment{Text: strings.Repeat(" ", bw), Style: StylePlain})...)
	}
	return lines
}

func bulletSymbol(depth int, ordered bool, idx int, start int) string {
	if ordered {
		return strconv.Itoa(start+idx) + "."
	}
	switch depth {
	case 0:
		return "•"
	case 1:
		return "◦"
	default:
		return "▪"
	}
}

func renderDetails(d markdown.Details, depth, width int) [][]Segment {
	summary := d.Summary
	if len(summary) == 0 {
		summary = []markdown.Inline{markdown.Text("details")}
	}
	head := wrapSegments(inlineSegments(summary, StyleSummary), innerWidth(width, 2))
	lines := prefixLines(head,
		Segment{Text: "▾ ", Style: StyleSummary},
		Segment{Text: "  ", Style: StyleSummary})
	body := renderBlocks(d.Blocks, depth+1, innerWidth(width, 2))
	indent := Segment{Text: "  ", Style: StylePlain}
	return append(lines, prefixLines(body, indent, indent)...)
}

// innerWidth is the width left after a prefix of n columns. Unlimited stays
// unlimited.
func innerWidth(width, n int) int {
	if width <= 0 {
		return 0
	}
	if width-n < 1 {
		return 1
	}
	return width - n
}

func inlineSegments(nodes []markdown.Inline, style Style) []Segment {
	var segs []Segment
	for _, n := range nodes {
		switch n.Kind {
		case markdown.InlineText:
			segs = appendSegment(segs, textutil.SanitizeTerminalText(n.Literal), style)
		case markdown.InlineCode:
			segs = appendSegment(segs, textutil.SanitizeTerminalText(n.Literal), StyleCode)
		case markdown.InlineBold:
			segs = append(segs, inlineSegments(n.Children, StyleStrong)...)
		case markdown.InlineItalic:
			segs = append(segs, inlineSegments(n.Children, StyleEmphasis)...)
		case markdown.InlineStrike:
			segs = append(segs, inlineSegments(n.Children, StyleStrike)...)
		case markdown.InlineLink:
			segs = append(segs, linkSegments(n)...)
		case markdown.InlineImage:
			if n.Image != nil {
				segs = append(segs, imageSegments(*n.Image)...)
			}
		case markdown.InlineFragment:
			segs = append(segs, inlineSegments(n.Children, style)...)
		}
	}
	return segs
}

// linkSegments shows the label of a link. Links leaving the site also show
// their target, since the terminal cannot follow them.
func linkSegments(n markdown.Inline) []Segment {
	label := inlineSegments(n.Children, StyleLink)
	if n.Link == nil {
		return label
	}
	switch n.Link.Kind {
	case markdown.LinkYouTube:
		segs := []Segment{{Text: "▶ ", Style: StyleLink}}
		segs = append(segs, label...)
		return append(segs, Segment{Text: " (" + textutil.SanitizeTerminalText(n.Link.Href) + ")", Style: StylePlain})
	case markdown.LinkExternal:
		if LineText(label) == n.Link.Href {
			return label
		}
		return append(label,
			Segment{Text: " (", Style: StylePlain},
			Segment{Text: textutil.SanitizeTerminalText(n.Link.Href), Style: StyleLink},
			Segment{Text: ")", Style: StylePlain})
	default:
		return label
	}
}

func imageSegments(img markdown.Image) []Segment {
	kind := "image"
	if img.Thumbnail {
		kind = "thumbnail"
	}
	label := "[" + kind
	if img.Alt != "" {
		label += ": " + img.Alt
	}
	label += "]"
	segs := []Segment{{Text: textutil.SanitizeTerminalText(label), Style: StyleImage}}
	switch {
	case img.Placeholder:
		segs = append(segs, Segment{
			Text:  fmt.Sprintf(" blob %s %dx%d", textutil.SanitizeTerminalText(img.BlobID), img.Width, img.Height),
			Style: StylePlain,
		})
	case img.Src != "":
		segs = append(segs,
			Segment{Text: " ", Style: StylePlain},
			Segment{Text: textutil.SanitizeTerminalText(img.Src), Style: StyleLink})
	}
	if img.SourceHost != "" {
		segs = append(segs, Segment{Text: " via " + img.SourceHost, Style: StylePlain})
	}
	return segs
}
