package markdown

// Node is one stop of a Walk. Exactly one of Block and Inline is set.
type Node struct {
	Block  Block
	Inline *Inline
	Depth  int
}

// Walk visits the blocks of doc and their inline content depth first, in
// document order. When fn returns false the children of that node are
// skipped.
func Walk(doc Document, fn func(Node) bool) {
	for _, b := range doc.Blocks {
		walkBlock(b, 0, fn)
	}
}

func walkBlock(b Block, depth int, fn func(Node) bool) {
	if !fn(Node{Block: b, Depth: depth}) {
		return
	}
	switch b := b.(type) {
	case Heading:
		walkInlines(b.Children, depth+1, fn)
	case Paragraph:
		walkInlines(b.Children, depth+1, fn)
	case Gallery:
		walkInlines(b.Trailing, depth+1, fn)
	case List:
		for _, item := range b.Items {
			walkInlines(item, depth+1, fn)
		}
	case Blockquote:
		for _, child := range b.Blocks {
			walkBlock(child, depth+1, fn)
		}
	case Table:
		for _, cell := range b.Header {
			walkInlines(cell, depth+1, fn)
		}
		for _, row := range b.Rows {
			for _, cell := range row {
				walkInlines(cell, depth+1, fn)
			}
		}
	case Details:
		walkInlines(b.Summary, depth+1, fn)
		for _, child := range b.Blocks {
			walkBlock(child, depth+1, fn)
		}
	}
}

func walkInlines(nodes []Inline, depth int, fn func(Node) bool) {
	for i := range nodes {
		n := &nodes[i]
		if fn(Node{Inline: n, Depth: depth}) {
			walkInlines(n.Children, depth+1, fn)
		}
	}
}

// Images lists every image of doc in document order: gallery members,
// standalone images and images left inline in headings, lists and tables.
func Images(doc Document) []Image {
	var images []Image
	Walk(doc, func(n Node) bool {
		switch b := n.Block.(type) {
		case Gallery:
			images = append(images, b.Images...)
		case ImageBlock:
			images = append(images, b.Image)
		}
		if n.Inline != nil && n.Inline.Kind == InlineImage && n.Inline.Image != nil {
			images = append(images, *n.Inline.Image)
		}
		return true
	})
	return images
}
