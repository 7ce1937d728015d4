package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kk-code-lab/postmd/internal/markdown"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// HTML writes doc as an HTML fragment, one element per block.
func HTML(w io.Writer, doc markdown.Document) error {
	for _, n := range HTMLNodes(doc) {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
	}
	return nil
}

// HTMLNodes builds the element trees HTML serialises.
func HTMLNodes(doc markdown.Document) []*html.Node {
	return blockNodes(doc.Blocks)
}

func blockNodes(blocks []markdown.Block) []*html.Node {
	var nodes []*html.Node
	for _, b := range blocks {
		nodes = append(nodes, blockNode(b)...)
	}
	return nodes
}

func blockNode(block markdown.Block) []*html.Node {
	switch b := block.(type) {
	case markdown.Heading:
		level := b.Level
		if level < 1 || level > len(headingAtoms) {
			level = 1
		}
		h := element(headingAtoms[level-1], inlineNodes(b.Children)...)
		if b.Banner == nil {
			return []*html.Node{h}
		}
		return []*html.Node{h, bannerNode(*b.Banner)}
	case markdown.Paragraph:
		return []*html.Node{element(atom.P, inlineNodes(b.Children)...)}
	case markdown.Gallery:
		if len(b.Images) == 0 {
			return nil
		}
		var children []*html.Node
		for _, img := range b.Images {
			children = append(children, imageNode(img))
		}
		gallery := withAttr(element(atom.Div, children...), "class", "gallery")
		if len(b.Trailing) == 0 {
			return []*html.Node{gallery}
		}
		return []*html.Node{gallery, element(atom.P, inlineNodes(b.Trailing)...)}
	case markdown.ImageBlock:
		return []*html.Node{withAttr(element(atom.Div, imageNode(b.Image)), "class", "image")}
	case markdown.CodeBlock:
		code := element(atom.Code, textNode(b.Raw))
		if b.Info != "" {
			withAttr(code, "class", "language-"+b.Info)
		}
		return []*html.Node{element(atom.Pre, code)}
	case markdown.List:
		var items []*html.Node
		for _, item := range b.Items {
			items = append(items, element(atom.Li, inlineNodes(item)...))
		}
		if !b.Ordered {
			return []*html.Node{element(atom.Ul, items...)}
		}
		ol := element(atom.Ol, items...)
		if b.Start != 1 {
			withAttr(ol, "start", strconv.Itoa(b.Start))
		}
		return []*html.Node{ol}
	case markdown.Blockquote:
		return []*html.Node{element(atom.Blockquote, blockNodes(b.Blocks)...)}
	case markdown.HorizontalRule:
		return []*html.Node{element(atom.Hr)}
	case markdown.Table:
		return []*html.Node{tableNode(b)}
	case markdown.Details:
		summary := element(atom.Summary, inlineNodes(b.Summary)...)
		return []*html.Node{element(atom.Details, append([]*html.Node{summary}, blockNodes(b.Blocks)...)...)}
	default:
		tracer().Debugf("no html mapping for block %T", block)
		return nil
	}
}

func tableNode(tbl markdown.Table) *html.Node {
	cell := func(a atom.Atom, content []markdown.Inline, col int) *html.Node {
		n := element(a, inlineNodes(content)...)
		if col < len(tbl.Align) && tbl.Align[col] != markdown.AlignLeft {
			withAttr(n, "style", "text-align:"+tbl.Align[col].String())
		}
		return n
	}
	var head []*html.Node
	for i, c := range tbl.Header {
		head = append(head, cell(atom.Th, c, i))
	}
	var rows []*html.Node
	for _, row := range tbl.Rows {
		var cells []*html.Node
		for i, c := range row {
			cells = append(cells, cell(atom.Td, c, i))
		}
		rows = append(rows, element(atom.Tr, cells...))
	}
	return element(atom.Table,
		element(atom.Thead, element(atom.Tr, head...)),
		element(atom.Tbody, rows...))
}

func bannerNode(b markdown.Banner) *html.Node {
	div := withAttr(element(atom.Div, inlineNodes([]markdown.Inline{b.Inlines()})...), "class", "banner")
	if b.Background != "" {
		withAttr(div, "style", "background-image: url("+b.Background+")")
	}
	return div
}

func inlineNodes(nodes []markdown.Inline) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		out = append(out, inlineNode(n)...)
	}
	return out
}

func inlineNode(n markdown.Inline) []*html.Node {
	switch n.Kind {
	case markdown.InlineText:
		return []*html.Node{textNode(n.Literal)}
	case markdown.InlineCode:
		return []*html.Node{element(atom.Code, textNode(n.Literal))}
	case markdown.InlineBold:
		return []*html.Node{element(atom.Strong, inlineNodes(n.Children)...)}
	case markdown.InlineItalic:
		return []*html.Node{element(atom.Em, inlineNodes(n.Children)...)}
	case markdown.InlineStrike:
		return []*html.Node{element(atom.S, inlineNodes(n.Children)...)}
	case markdown.InlineImage:
		if n.Image == nil {
			return nil
		}
		return []*html.Node{imageNode(*n.Image)}
	case markdown.InlineLink:
		if n.Link == nil || !markdown.SafeHref(n.Link.Href) {
			return inlineNodes(n.Children)
		}
		return []*html.Node{linkNode(*n.Link, n.Children)}
	case markdown.InlineFragment:
		return inlineNodes(n.Children)
	default:
		return nil
	}
}

func linkNode(link markdown.Link, label []markdown.Inline) *html.Node {
	if link.Kind == markdown.LinkYouTube {
		if link.Collapsed {
			span := element(atom.Span, inlineNodes(label)...)
			withAttr(span, "class", "youtube collapsed")
			withAttr(span, "data-video", link.VideoID)
			return withAttr(span, "data-embed", link.Href)
		}
		iframe := element(atom.Iframe)
		withAttr(iframe, "class", "youtube")
		withAttr(iframe, "src", link.Href)
		return withAttr(iframe, "allowfullscreen", "")
	}
	a := withAttr(element(atom.A, inlineNodes(label)...), "href", link.Href)
	if link.Rel != "" {
		withAttr(a, "rel", link.Rel)
	}
	if link.NewTab {
		withAttr(a, "target", "_blank")
	}
	return a
}

// imageNode renders an image with its preview contract: the resolved source,
// the blob id and the gallery id list travel as attributes.
func imageNode(img markdown.Image) *html.Node {
	n := element(atom.Img)
	withAttr(n, "src", img.Src)
	withAttr(n, "alt", img.Alt)
	if img.BlobID != "" {
		withAttr(n, "data-blob", img.BlobID)
	}
	if len(img.Gallery) > 0 {
		withAttr(n, "data-gallery", strings.Join(img.Gallery, " "))
	}
	if img.Thumbnail {
		withAttr(n, "class", "thumbnail")
	}
	if img.Placeholder {
		withAttr(n, "width", strconv.Itoa(img.Width))
		withAttr(n, "height", strconv.Itoa(img.Height))
		withAttr(n, "style", "max-height: "+strconv.Itoa(img.MaxHeight)+"px")
	}
	if img.SourceHost == "" || img.Thumbnail {
		return n
	}
	caption := withAttr(element(atom.Figcaption, textNode(img.SourceHost)), "class", "source")
	return element(atom.Figure, n, caption)
}

func element(a atom.Atom, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withAttr(n *html.Node, key, val string) *html.Node {
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
	return n
}
