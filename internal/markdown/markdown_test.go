package markdown

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

const samplePost = `# Weekly notes

Intro with **bold**, _italic_, ~~gone~~ and ` + "`code`" + `.
See https://example.com/a and [home](/#/feed/news).

![cover 640x480](/blob/cover)

- one
- two

> quoted _text_

| name | score |
|:-----|------:|
| ann  | 3     |

<details><summary>more</summary>
hidden
</details>

---
https://youtu.be/abc123`

func TestParseIsDeterministic(t *testing.T) {
	opts := Options{
		Site:      Site{Domain: "taggr.link"},
		URLs:      map[string]string{"cover": "https://cdn.example/cover.png"},
		BlogTitle: &BlogTitle{Author: "ann", Created: time.Unix(1700000000, 0), Length: 120},
	}
	first := Parse(samplePost, opts)
	second := Parse(samplePost, opts)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parsing the same input twice must give equal trees")
	}
	if len(first.Blocks) == 0 {
		t.Fatalf("expected blocks for the sample post")
	}
}

func TestParseSampleShape(t *testing.T) {
	doc := parseDefault(samplePost)
	want := []BlockType{
		BlockHeading,
		BlockParagraph,
		BlockGallery,
		BlockList,
		BlockBlockquote,
		BlockTable,
		BlockDetails,
		BlockHorizontalRule,
		BlockParagraph,
	}
	var got []BlockType
	for _, b := range doc.Blocks {
		got = append(got, TypeOf(b))
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected block sequence\n got %v\nwant %v", got, want)
	}
}

func TestParseTableAlignmentAndShape(t *testing.T) {
	doc := parseDefault("|a|b|c|\n|:---|---:|:---:|\n|1|2|\n|x|y|z|w|")
	if len(doc.Blocks) != 1 {
		t.Fatalf("expected a single table, got %d blocks", len(doc.Blocks))
	}
	tbl := doc.Blocks[0].(Table)
	wantAlign := []Alignment{AlignLeft, AlignRight, AlignCenter}
	if !reflect.DeepEqual(tbl.Align, wantAlign) {
		t.Fatalf("expected alignments %v, got %v", wantAlign, tbl.Align)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("expected two rows, got %d", len(tbl.Rows))
	}
	for i, row := range tbl.Rows {
		if len(row) != len(tbl.Header) {
			t.Fatalf("row %d has %d cells, header has %d", i, len(row), len(tbl.Header))
		}
	}
	if tbl.Rows[0][2] != nil {
		t.Fatalf("padded cell must be empty, got %#v", tbl.Rows[0][2])
	}
	if PlainText(tbl.Rows[1][2]) != "z" {
		t.Fatalf("extra cells must be dropped, got %q", PlainText(tbl.Rows[1][2]))
	}
}

func TestParseNormalizesLineEndings(t *testing.T) {
	unix := parseDefault("# a\nb\n\nc")
	for _, input := range []string{"# a\r\nb\r\n\r\nc", "# a\rb\r\rc"} {
		if got := parseDefault(input); !reflect.DeepEqual(got, unix) {
			t.Fatalf("line endings in %q changed the tree", input)
		}
	}
}

func TestParseNormalizesUnicode(t *testing.T) {
	composed := parseDefault("caf\u00e9")
	decomposed := parseDefault("cafe\u0301")
	if !reflect.DeepEqual(composed, decomposed) {
		t.Fatalf("canonically equal inputs must parse alike")
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n", "   \n\t"} {
		if doc := parseDefault(input); len(doc.Blocks) != 0 {
			t.Fatalf("%q: expected no blocks, got %#v", input, doc.Blocks)
		}
	}
}

func TestParseTerminatesOnPathologicalInput(t *testing.T) {
	inputs := []string{
		strings.Repeat("<details>\n", 300),
		strings.Repeat("> - ", 300),
		strings.Repeat("|", 1000) + "\n|-|",
		strings.Repeat("```", 101),
		strings.Repeat("# \n", 100),
		strings.Repeat("[![", 400),
	}
	for _, input := range inputs {
		_ = parseDefault(input)
	}
}

func TestPlainText(t *testing.T) {
	nodes := []Inline{
		Text("a "),
		{Kind: InlineBold, Children: []Inline{Text("b")}},
		{Kind: InlineCode, Literal: " c"},
		{Kind: InlineImage, Image: &Image{Alt: " img"}},
	}
	if got := PlainText(nodes); got != "a b c img" {
		t.Fatalf("unexpected plain text %q", got)
	}
}
