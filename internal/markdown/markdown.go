// Package markdown turns the post dialect of markdown into a tree of typed
// block and inline nodes.
//
// The dialect is a restricted markdown with a few extensions: /blob/ID images
// resolved through a URL map, image galleries, YouTube embeds, rewriting of
// links to the site's own domains into hash routes, and an optional metadata
// banner under the first heading of a post. Parsing is total: every input
// produces a Document, and identical inputs produce deep-equal trees.
package markdown

import (
	"strings"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/unicode/norm"
)

// tracer traces with key 'postmd.markdown'.
func tracer() tracing.Trace {
	return tracing.Select("postmd.markdown")
}

const (
	defaultViewportWidth  = 800
	defaultViewportHeight = 600
)

// Site names the domains that count as "this site" when classifying links.
type Site struct {
	Domain     string
	AltDomains []string
}

// Viewport is the display area used to size placeholder images.
type Viewport struct {
	Width  int
	Height int
}

// Options carries the read-only side inputs of a parse.
type Options struct {
	URLs      map[string]string
	Site      Site
	BlogTitle *BlogTitle
	Preview   bool
	Viewport  Viewport
	// Now is the reference time for the banner's relative time. When zero the
	// banner carries no relative time, which keeps parses reproducible.
	Now time.Time
}

func (o Options) viewport() Viewport {
	v := o.Viewport
	if v.Width <= 0 {
		v.Width = defaultViewportWidth
	}
	if v.Height <= 0 {
		v.Height = defaultViewportHeight
	}
	return v
}

// Parse converts text into a Document. Hashtags and mentions are not
// rewritten here; callers wanting that run Prelink first.
func Parse(text string, opts Options) Document {
	p := newParser(opts)
	lines := splitLines(text)
	if opts.BlogTitle != nil {
		p.bannerAllowed = countTopLevelH1(lines) == 1
	}
	blocks, _ := p.parseBlocks(lines, 0, 0)
	return Document{Blocks: blocks}
}

func splitLines(text string) []string {
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

type parser struct {
	opts          Options
	bannerAllowed bool
	bannerDone    bool
}

func newParser(opts Options) *parser {
	return &parser{opts: opts}
}
