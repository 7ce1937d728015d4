package markdown

import (
	"reflect"
	"strings"
	"testing"
)

func inlineOf(text string) []Inline {
	return newParser(Options{Site: Site{Domain: "taggr.link"}}).parseInline(text)
}

func TestParseInlineEmphasis(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Inline
	}{
		{
			name:  "bold",
			input: "a **b** c",
			want:  []Inline{Text("a "), {Kind: InlineBold, Children: []Inline{Text("b")}}, Text(" c")},
		},
		{
			name:  "italic",
			input: "_x_",
			want:  []Inline{{Kind: InlineItalic, Children: []Inline{Text("x")}}},
		},
		{
			name:  "single tilde strike",
			input: "~gone~",
			want:  []Inline{{Kind: InlineStrike, Children: []Inline{Text("gone")}}},
		},
		{
			name:  "double tilde strike",
			input: "~~gone~~",
			want:  []Inline{{Kind: InlineStrike, Children: []Inline{Text("gone")}}},
		},
		{
			name:  "bold wraps italic",
			input: "**_x_**",
			want: []Inline{{Kind: InlineBold, Children: []Inline{
				{Kind: InlineItalic, Children: []Inline{Text("x")}},
			}}},
		},
		{
			name:  "unbalanced markers stay literal",
			input: "**open and _half",
			want:  []Inline{Text("**open and _half")},
		},
		{
			name:  "empty markers stay literal",
			input: "__",
			want:  []Inline{Text("__")},
		},
		{
			name:  "italic needs a non-empty span",
			input: "____",
			want:  []Inline{{Kind: InlineItalic, Children: []Inline{Text("_")}}, Text("_")},
		},
		{
			name:  "single asterisk is text",
			input: "2 * 3",
			want:  []Inline{Text("2 * 3")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inlineOf(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("parseInline(%q)\n got %#v\nwant %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseInlineCodeIsLiteral(t *testing.T) {
	got := inlineOf("`#hashtag **x**` and ``a`b``")
	want := []Inline{
		{Kind: InlineCode, Literal: "#hashtag **x**"},
		Text(" and "),
		{Kind: InlineCode, Literal: "a`b"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v\nwant %#v", got, want)
	}
}

func TestParseInlineUnclosedBacktick(t *testing.T) {
	got := inlineOf("a ` b")
	if !reflect.DeepEqual(got, []Inline{Text("a ` b")}) {
		t.Fatalf("unexpected %#v", got)
	}
}

func TestParseInlineLinkLabelIsResolved(t *testing.T) {
	got := inlineOf("[**bold** label](/post/1)")
	if len(got) != 1 || got[0].Kind != InlineLink {
		t.Fatalf("expected a single link, got %#v", got)
	}
	if got[0].Link.Href != "#/post/1" {
		t.Fatalf("unexpected href %q", got[0].Link.Href)
	}
	if got[0].Children[0].Kind != InlineBold {
		t.Fatalf("expected bold label, got %#v", got[0].Children)
	}
}

func TestParseInlineBareURL(t *testing.T) {
	got := inlineOf("see https://example.com/page now")
	if len(got) != 3 {
		t.Fatalf("expected text, link, text; got %#v", got)
	}
	link := got[1]
	if link.Link.Href != "https://example.com/page" || link.Link.Kind != LinkExternal {
		t.Fatalf("unexpected link %#v", link.Link)
	}
	if got[2].Literal != " now" {
		t.Fatalf("expected scan to resume after the URL, got %q", got[2].Literal)
	}
}

func TestParseInlineWWWToken(t *testing.T) {
	got := inlineOf("www.example.org")
	if len(got) != 1 || got[0].Link == nil {
		t.Fatalf("expected a link, got %#v", got)
	}
	if got[0].Link.Href != "https://www.example.org" {
		t.Fatalf("unexpected href %q", got[0].Link.Href)
	}
	if PlainText(got[0].Children) != "WWW.EXAMPLE.ORG" {
		t.Fatalf("unexpected label %q", PlainText(got[0].Children))
	}
}

func TestParseInlineBareURLNeedsWordBoundary(t *testing.T) {
	got := inlineOf("awww.example.org")
	if !reflect.DeepEqual(got, []Inline{Text("awww.example.org")}) {
		t.Fatalf("unexpected %#v", got)
	}
}

func TestParseInlineDroppedImageLeavesNoNode(t *testing.T) {
	got := inlineOf("a ![x](not a url) b")
	want := []Inline{Text("a "), Text(" b")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v\nwant %#v", got, want)
	}
}

func TestParseInlineRespectsRecursionLimit(t *testing.T) {
	p := newParser(Options{})
	text := "**content**"
	nodes := p.parseInlineDepth(text, inlineRecursionLimit)
	if len(nodes) != 1 || nodes[0].Kind != InlineText || nodes[0].Literal != text {
		t.Fatalf("expected recursion limit to return single text node, got %#v", nodes)
	}
}

func TestParseInlineTerminatesOnAdversarialInput(t *testing.T) {
	inputs := []string{
		strings.Repeat("[", 2000),
		strings.Repeat("![](", 500),
		strings.Repeat("_*~`", 500),
		strings.Repeat("**", 1000) + "x",
		strings.Repeat("www.", 300),
	}
	for _, input := range inputs {
		nodes := inlineOf(input)
		if len(nodes) == 0 {
			t.Fatalf("expected content for %q...", input[:8])
		}
	}
}
