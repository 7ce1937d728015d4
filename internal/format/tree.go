package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kk-code-lab/postmd/internal/markdown"
	"gopkg.in/yaml.v3"
)

// Tree writes doc as an indented YAML document, one mapping per node. It is
// meant for inspecting what the parser produced.
func Tree(w io.Writer, doc markdown.Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(treeDocument(doc)); err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}
	return nil
}

func treeDocument(doc markdown.Document) *yaml.Node {
	root := mapping()
	put(root, "blocks", treeBlocks(doc.Blocks))
	return root
}

func treeBlocks(blocks []markdown.Block) *yaml.Node {
	seq := sequence()
	for _, b := range blocks {
		seq.Content = append(seq.Content, treeBlock(b))
	}
	return seq
}

func treeBlock(block markdown.Block) *yaml.Node {
	m := mapping()
	put(m, "type", str(markdown.TypeOf(block).String()))
	switch b := block.(type) {
	case markdown.Heading:
		put(m, "level", integer(b.Level))
		put(m, "content", treeInlines(b.Children))
		if b.Banner != nil {
			put(m, "banner", str(markdown.PlainText([]markdown.Inline{b.Banner.Inlines()})))
		}
	case markdown.Paragraph:
		put(m, "content", treeInlines(b.Children))
	case markdown.Gallery:
		images := sequence()
		for _, img := range b.Images {
			images.Content = append(images.Content, treeImage(img))
		}
		put(m, "images", images)
		if len(b.Trailing) > 0 {
			put(m, "trailing", treeInlines(b.Trailing))
		}
	case markdown.ImageBlock:
		put(m, "image", treeImage(b.Image))
	case markdown.CodeBlock:
		if b.Info != "" {
			put(m, "info", str(b.Info))
		}
		put(m, "raw", str(b.Raw))
	case markdown.List:
		put(m, "ordered", boolean(b.Ordered))
		if b.Ordered {
			put(m, "start", integer(b.Start))
		}
		items := sequence()
		for _, item := range b.Items {
			items.Content = append(items.Content, treeInlines(item))
		}
		put(m, "items", items)
	case markdown.Blockquote:
		put(m, "blocks", treeBlocks(b.Blocks))
	case markdown.Table:
		align := make([]string, len(b.Align))
		for i, a := range b.Align {
			align[i] = a.String()
		}
		put(m, "align", str(strings.Join(align, " ")))
		put(m, "header", treeRow(b.Header))
		rows := sequence()
		for _, row := range b.Rows {
			rows.Content = append(rows.Content, treeRow(row))
		}
		put(m, "rows", rows)
	case markdown.Details:
		put(m, "summary", treeInlines(b.Summary))
		put(m, "blocks", treeBlocks(b.Blocks))
	}
	return m
}

func treeRow(cells [][]markdown.Inline) *yaml.Node {
	row := sequence()
	for _, cell := range cells {
		row.Content = append(row.Content, str(markdown.PlainText(cell)))
	}
	return row
}

func treeInlines(nodes []markdown.Inline) *yaml.Node {
	seq := sequence()
	for _, n := range nodes {
		seq.Content = append(seq.Content, treeInline(n))
	}
	return seq
}

func treeInline(n markdown.Inline) *yaml.Node {
	switch n.Kind {
	case markdown.InlineText:
		return str(n.Literal)
	case markdown.InlineCode:
		m := mapping()
		put(m, "code", str(n.Literal))
		return m
	case markdown.InlineImage:
		if n.Image == nil {
			return str("")
		}
		return treeImage(*n.Image)
	case markdown.InlineLink:
		m := mapping()
		put(m, "link", treeInlines(n.Children))
		if n.Link != nil {
			put(m, "href", str(n.Link.Href))
			put(m, "kind", str(n.Link.Kind.String()))
		}
		return m
	default:
		m := mapping()
		put(m, n.Kind.String(), treeInlines(n.Children))
		return m
	}
}

func treeImage(img markdown.Image) *yaml.Node {
	m := mapping()
	put(m, "src", str(img.Src))
	if img.Alt != "" {
		put(m, "alt", str(img.Alt))
	}
	if img.BlobID != "" {
		put(m, "blob", str(img.BlobID))
	}
	if img.Placeholder {
		put(m, "size", str(strconv.Itoa(img.Width)+"x"+strconv.Itoa(img.Height)))
	}
	if img.Thumbnail {
		put(m, "thumbnail", boolean(true))
	}
	if len(img.Gallery) > 0 {
		gallery := sequence()
		for _, id := range img.Gallery {
			gallery.Content = append(gallery.Content, str(id))
		}
		gallery.Style = yaml.FlowStyle
		put(m, "gallery", gallery)
	}
	if img.SourceHost != "" {
		put(m, "source", str(img.SourceHost))
	}
	return m
}

func mapping() *yaml.Node { return &yaml.Node{Kind: yaml.MappingNode} }

func sequence() *yaml.Node { return &yaml.Node{Kind: yaml.SequenceNode} }

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func integer(i int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(i)}
}

func boolean(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}

func put(m *yaml.Node, key string, val *yaml.Node) {
	m.Content = append(m.Content, str(key), val)
}
