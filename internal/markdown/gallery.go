package markdown

import (
	"strings"
	"unicode"
)

// splitParagraph decides the final shape of one paragraph's inline content:
// a gallery when it opens with an image, alternating prose and standalone
// images when images follow some text, or a plain paragraph otherwise.
func (p *parser) splitParagraph(nodes []Inline) []Block {
	if len(nodes) == 0 {
		return nil
	}

	var images []Image
	for _, n := range nodes {
		if n.Kind == InlineImage && n.Image != nil {
			images = append(images, *n.Image)
		}
	}

	switch {
	case len(images) == 0:
		return []Block{Paragraph{Children: nodes}}
	case nodes[0].Kind == InlineImage:
		if g, ok := buildGallery(images, nodes); ok {
			return []Block{g}
		}
		return nil
	default:
		return interleave(nodes)
	}
}

func buildGallery(images []Image, nodes []Inline) (Gallery, bool) {
	if len(images) == 0 {
		return Gallery{}, false
	}
	var ids []string
	for _, img := range images {
		if img.BlobID != "" {
			ids = append(ids, img.BlobID)
		}
	}

	g := Gallery{Images: make([]Image, len(images))}
	for i, img := range images {
		img.Gallery = cloneStrings(ids)
		if i > 0 {
			img.Thumbnail = true
			img.Alt = ""
			img.SourceHost = ""
		}
		g.Images[i] = img
	}

	var prose []Inline
	for _, n := range nodes {
		if n.Kind != InlineImage {
			prose = append(prose, n)
		}
	}
	g.Trailing = trimProse(mergeText(prose))
	return g, true
}

// interleave lifts images out of running text so none sits mid-sentence.
func interleave(nodes []Inline) []Block {
	var blocks []Block
	var run []Inline
	flush := func() {
		if prose := trimProse(run); len(prose) > 0 {
			blocks = append(blocks, Paragraph{Children: prose})
		}
		run = nil
	}
	for _, n := range nodes {
		if n.Kind == InlineImage && n.Image != nil {
			flush()
			blocks = append(blocks, ImageBlock{Image: *n.Image})
			continue
		}
		run = append(run, n)
	}
	flush()
	return blocks
}

// trimProse strips whitespace at the outer edges of a prose run and drops
// text nodes left empty.
func trimProse(nodes []Inline) []Inline {
	out := make([]Inline, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind == InlineText && strings.TrimSpace(n.Literal) == "" {
			if len(out) == 0 {
				continue
			}
		}
		out = append(out, n)
	}
	for len(out) > 0 {
		last := out[len(out)-1]
		if last.Kind == InlineText && strings.TrimSpace(last.Literal) == "" {
			out = out[:len(out)-1]
			continue
		}
		break
	}
	if len(out) == 0 {
		return nil
	}
	if out[0].Kind == InlineText {
		out[0].Literal = strings.TrimLeftFunc(out[0].Literal, unicode.IsSpace)
	}
	if n := len(out) - 1; out[n].Kind == InlineText {
		out[n].Literal = strings.TrimRightFunc(out[n].Literal, unicode.IsSpace)
	}
	return out
}

// mergeText joins neighbouring text nodes left adjacent by removed images.
func mergeText(nodes []Inline) []Inline {
	var out []Inline
	for _, n := range nodes {
		if k := len(out) - 1; k >= 0 && n.Kind == InlineText && out[k].Kind == InlineText {
			out[k].Literal += n.Literal
			continue
		}
		out = append(out, n)
	}
	return out
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	return append([]string(nil), in...)
}
