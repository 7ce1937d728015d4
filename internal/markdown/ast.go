package markdown

import "time"

// Document is the root of a parsed post: an ordered sequence of blocks.
type Document struct {
	Blocks []Block
}

// Block is one of the block node variants declared in this file.
type Block interface {
	blockType() BlockType
}

// BlockType discriminates Block variants.
type BlockType int

const (
	BlockParagraph BlockType = iota
	BlockHeading
	BlockGallery
	BlockImage
	BlockCode
	BlockList
	BlockBlockquote
	BlockHorizontalRule
	BlockTable
	BlockDetails
)

var blockTypeNames = [...]string{
	BlockParagraph:      "paragraph",
	BlockHeading:        "heading",
	BlockGallery:        "gallery",
	BlockImage:          "image",
	BlockCode:           "code",
	BlockList:           "list",
	BlockBlockquote:     "blockquote",
	BlockHorizontalRule: "rule",
	BlockTable:          "table",
	BlockDetails:        "details",
}

func (t BlockType) String() string {
	if t < 0 || int(t) >= len(blockTypeNames) {
		return "unknown"
	}
	return blockTypeNames[t]
}

// TypeOf reports the variant of b.
func TypeOf(b Block) BlockType { return b.blockType() }

// InlineKind discriminates Inline nodes.
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineCode
	InlineBold
	InlineItalic
	InlineStrike
	InlineImage
	InlineLink
	InlineFragment
)

var inlineKindNames = [...]string{
	InlineText:     "text",
	InlineCode:     "code",
	InlineBold:     "bold",
	InlineItalic:   "italic",
	InlineStrike:   "strike",
	InlineImage:    "image",
	InlineLink:     "link",
	InlineFragment: "fragment",
}

func (k InlineKind) String() string {
	if k < 0 || int(k) >= len(inlineKindNames) {
		return "unknown"
	}
	return inlineKindNames[k]
}

// Inline is a within-line content node. Literal holds the text of Text and
// Code nodes, Children the content of Bold, Italic, Strike, Fragment and the
// label of a Link.
type Inline struct {
	Kind     InlineKind
	Literal  string
	Children []Inline
	Link     *Link
	Image    *Image
}

// LinkKind tells the renderer how to present a link.
type LinkKind int

const (
	LinkInternal LinkKind = iota
	LinkExternal
	LinkYouTube
)

func (k LinkKind) String() string {
	switch k {
	case LinkExternal:
		return "external"
	case LinkYouTube:
		return "youtube"
	default:
		return "internal"
	}
}

// Link is the target half of an InlineLink node.
type Link struct {
	Href   string
	Kind   LinkKind
	Rel    string
	NewTab bool
	// VideoID and Collapsed are only set for LinkYouTube.
	VideoID   string
	Collapsed bool
}

// Image is a classified image reference. Src is never a raw /blob/ path.
type Image struct {
	Src         string
	Alt         string
	BlobID      string
	Internal    bool
	Placeholder bool
	Width       int
	Height      int
	MaxHeight   int
	// SourceHost is shown beneath external images; empty for thumbnails.
	SourceHost string
	Thumbnail  bool
	Gallery    []string
}

// PreviewRequest is what activating an image hands to the preview overlay.
type PreviewRequest struct {
	Src     string
	BlobID  string
	Gallery []string
}

// PreviewRequest returns the click contract of the image.
func (img Image) PreviewRequest() PreviewRequest {
	var gallery []string
	if len(img.Gallery) > 0 {
		gallery = append([]string(nil), img.Gallery...)
	}
	return PreviewRequest{Src: img.Src, BlobID: img.BlobID, Gallery: gallery}
}

// Previewer opens a full-size image overlay. It is implemented by the host.
type Previewer interface {
	OpenPreview(req PreviewRequest)
}

type Heading struct {
	Level    int
	Children []Inline
	Banner   *Banner
}

func (Heading) blockType() BlockType { return BlockHeading }

type Paragraph struct {
	Children []Inline
}

func (Paragraph) blockType() BlockType { return BlockParagraph }

// Gallery is a paragraph that started with an image. Images[0] is full size,
// the rest are thumbnails; Trailing is the prose that followed them.
type Gallery struct {
	Images   []Image
	Trailing []Inline
}

func (Gallery) blockType() BlockType { return BlockGallery }

// ImageBlock is an image lifted out of running text.
type ImageBlock struct {
	Image Image
}

func (ImageBlock) blockType() BlockType { return BlockImage }

type CodeBlock struct {
	Info string
	Raw  string
}

func (CodeBlock) blockType() BlockType { return BlockCode }

type List struct {
	Ordered bool
	Start   int
	Items   [][]Inline
}

func (List) blockType() BlockType { return BlockList }

type Blockquote struct {
	Blocks []Block
}

func (Blockquote) blockType() BlockType { return BlockBlockquote }

type HorizontalRule struct{}

func (HorizontalRule) blockType() BlockType { return BlockHorizontalRule }

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Table cells are inline sequences. Header, every row and Align share one
// length.
type Table struct {
	Align  []Alignment
	Header [][]Inline
	Rows   [][][]Inline
}

func (Table) blockType() BlockType { return BlockTable }

type Details struct {
	Summary []Inline
	Blocks  []Block
}

func (Details) blockType() BlockType { return BlockDetails }

// BlogTitle is the post metadata shown under the first heading of a
// standalone post.
type BlogTitle struct {
	Author     string
	Created    time.Time
	Length     int
	Realm      string
	Background string
}

// Banner is the resolved metadata line attached to a heading.
type Banner struct {
	Author     string
	AuthorHref string
	Created    time.Time
	Relative   string
	Realm      string
	RealmHref  string
	Background string
	Minutes    int
}

// Text returns a Text inline node.
func Text(s string) Inline { return Inline{Kind: InlineText, Literal: s} }

// PlainText flattens inline nodes to the text a reader would see.
func PlainText(nodes []Inline) string {
	var out []byte
	for _, n := range nodes {
		switch n.Kind {
		case InlineText, InlineCode:
			out = append(out, n.Literal...)
		case InlineImage:
			if n.Image != nil {
				out = append(out, n.Image.Alt...)
			}
		default:
			out = append(out, PlainText(n.Children)...)
		}
	}
	return string(out)
}
