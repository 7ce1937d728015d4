package markdown

import "testing"

func TestPrelink(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "all triggers",
			input: "hi #go and @bob in /chess for $TAGGR",
			want:  "hi [#go](#/feed/go) and [@bob](#/user/bob) in [/chess](#/realm/chess) for [$TAGGR](#/feed/TAGGR)",
		},
		{
			name:  "start of text",
			input: "#first",
			want:  "[#first](#/feed/first)",
		},
		{
			name:  "trailing punctuation stays outside",
			input: "see #go.",
			want:  "see [#go](#/feed/go).",
		},
		{
			name:  "inside parentheses",
			input: "(#go)",
			want:  "([#go](#/feed/go))",
		},
		{
			name:  "code span untouched",
			input: "`#tag` #real",
			want:  "`#tag` [#real](#/feed/real)",
		},
		{
			name:  "token glued to code span",
			input: "`x`#tag",
			want:  "`x`#tag",
		},
		{
			name:  "fence untouched",
			input: "```\n#x @y\n```",
			want:  "```\n#x @y\n```",
		},
		{
			name:  "existing link untouched",
			input: "[#go](#/feed/go)",
			want:  "[#go](#/feed/go)",
		},
		{
			name:  "email is not a mention",
			input: "mail@example.com",
			want:  "mail@example.com",
		},
		{
			name:  "url path is not a realm",
			input: "https://x.com/a",
			want:  "https://x.com/a",
		},
		{
			name:  "unicode tag",
			input: "#café",
			want:  "[#café](#/feed/café)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Prelink(tt.input); got != tt.want {
				t.Fatalf("Prelink(%q)\n got %q\nwant %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrelinkedHashtagInCodeStaysCode(t *testing.T) {
	doc := parseDefault(Prelink("`#hashtag`"))
	para := doc.Blocks[0].(Paragraph)
	if len(para.Children) != 1 || para.Children[0].Kind != InlineCode || para.Children[0].Literal != "#hashtag" {
		t.Fatalf("expected a code span, got %#v", para.Children)
	}
}

func TestPrelinkedTokensParseAsInternalLinks(t *testing.T) {
	doc := parseDefault(Prelink("ping @alice"))
	children := doc.Blocks[0].(Paragraph).Children
	if len(children) != 2 {
		t.Fatalf("expected text and link, got %#v", children)
	}
	link := children[1]
	if link.Link == nil || link.Link.Kind != LinkInternal || link.Link.Href != "#/user/alice" {
		t.Fatalf("unexpected link %#v", link.Link)
	}
	if PlainText(link.Children) != "@alice" {
		t.Fatalf("unexpected label %q", PlainText(link.Children))
	}
}
