package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kk-code-lab/postmd/internal/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderHTML(t *testing.T, text string, opts markdown.Options) string {
	t.Helper()
	if opts.Site.Domain == "" {
		opts.Site.Domain = "taggr.link"
	}
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, markdown.Parse(text, opts)))
	return buf.String()
}

func TestHTMLBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"heading", "## Sub", "<h2>Sub</h2>"},
		{"escaped text", "a < b & c", "<p>a &lt; b &amp; c</p>"},
		{"emphasis", "**b** _i_ ~s~", "<p><strong>b</strong> <em>i</em> <s>s</s></p>"},
		{"code block", "```go\nx := 1\n```", `<pre><code class="language-go">x := 1</code></pre>`},
		{"ordered start", "2. a\n3. b", `<ol start="2"><li>a</li><li>b</li></ol>`},
		{"bullets", "- a", "<ul><li>a</li></ul>"},
		{"quote", "> q", "<blockquote><p>q</p></blockquote>"},
		{"rule", "***", "<hr/>"},
		{"details", "<details>\n<summary>s</summary>\nx\n</details>", "<details><summary>s</summary><p>x</p></details>"},
		{"internal link", "[me](/#/user/me)", `<p><a href="#/user/me">me</a></p>`},
		{
			"external link",
			"https://example.com/page",
			`<p><a href="https://example.com/page" rel="nofollow noopener noreferrer" target="_blank">EXAMPLE.COM</a></p>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderHTML(t, tt.input, markdown.Options{}))
		})
	}
}

func TestHTMLGalleryCarriesPreviewContract(t *testing.T) {
	out := renderHTML(t, "![a](/blob/x) ![b](/blob/y) nice", markdown.Options{
		URLs: map[string]string{"x": "https://cdn.example/x.png"},
	})
	assert.True(t, strings.HasPrefix(out, `<div class="gallery"><img src="https://cdn.example/x.png" alt="a" data-blob="x" data-gallery="x y"/>`), out)
	assert.Contains(t, out, `data-blob="y" data-gallery="x y" class="thumbnail" width="800" height="200"`)
	assert.True(t, strings.HasSuffix(out, "</div><p>nice</p>"), out)
}

func TestHTMLExternalImageCaption(t *testing.T) {
	out := renderHTML(t, "text ![x](https://img.example/a.png)", markdown.Options{})
	assert.Equal(t,
		`<p>text</p><div class="image"><figure><img src="https://img.example/a.png" alt="x"/><figcaption class="source">img.example</figcaption></figure></div>`,
		out)
}

func TestHTMLLinkSchemes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"javascript unlinked", "[click](javascript:alert(document.cookie))", "<p>click</p>"},
		{"data unlinked", "[y](data:text/html;base64,PHNjcmlwdD4=)", "<p>y</p>"},
		{
			"custom label external",
			"[read](https://example.com)",
			`<p><a href="https://example.com" rel="nofollow noopener noreferrer" target="_blank">read</a></p>`,
		},
		{"relative", "[doc](docs/a)", `<p><a href="docs/a">doc</a></p>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderHTML(t, tt.input, markdown.Options{}))
		})
	}
}

func TestHTMLDropsUnsafeHrefFromBuiltTree(t *testing.T) {
	doc := markdown.Document{Blocks: []markdown.Block{
		markdown.Paragraph{Children: []markdown.Inline{{
			Kind:     markdown.InlineLink,
			Children: []markdown.Inline{markdown.Text("go")},
			Link:     &markdown.Link{Href: "JavaScript:void(0)", Kind: markdown.LinkExternal},
		}}},
	}}
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, doc))
	assert.Equal(t, "<p>go</p>", buf.String())
}

func TestHTMLYouTube(t *testing.T) {
	const post = "https://youtu.be/abc123"
	eager := renderHTML(t, post, markdown.Options{})
	assert.Equal(t, `<p><iframe class="youtube" src="https://www.youtube.com/embed/abc123" allowfullscreen=""></iframe></p>`, eager)

	collapsed := renderHTML(t, post, markdown.Options{Preview: true})
	assert.Contains(t, collapsed, `<span class="youtube collapsed" data-video="abc123" data-embed="https://www.youtube.com/embed/abc123">`)
	assert.NotContains(t, collapsed, "<iframe")
}

func TestHTMLTableAlignment(t *testing.T) {
	out := renderHTML(t, "|a|b|c|\n|:-|-:|:-:|\n|1|2|3|", markdown.Options{})
	assert.Equal(t,
		`<table><thead><tr><th>a</th><th style="text-align:right">b</th><th style="text-align:center">c</th></tr></thead>`+
			`<tbody><tr><td>1</td><td style="text-align:right">2</td><td style="text-align:center">3</td></tr></tbody></table>`,
		out)
}

func TestHTMLBanner(t *testing.T) {
	out := renderHTML(t, "# Post", markdown.Options{
		BlogTitle: &markdown.BlogTitle{Author: "ann", Length: 10, Background: "https://bg.example/p.png"},
	})
	assert.Equal(t,
		`<h1>Post</h1><div class="banner" style="background-image: url(https://bg.example/p.png)"><a href="#/user/ann">ann</a> · 1 minutes read</div>`,
		out)
}
