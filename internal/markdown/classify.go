package markdown

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FillerImage stands in for a blob whose URL is not known yet.
const FillerImage = "data:image/gif;base64,R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7"

// ExternalLinkRel is the rel policy of links leaving the site.
const ExternalLinkRel = "nofollow noopener noreferrer"

const blobPrefix = "/blob/"

var (
	youtubePattern   = regexp.MustCompile(`^https?://(?:www\.|m\.)?(?:youtube\.com|youtu\.be)/`)
	youtubeIDPattern = regexp.MustCompile(`(?:youtu\.be/|[?&]v=|/shorts/|/embed/|/live/)([A-Za-z0-9_-]+)`)
	dimensionPattern = regexp.MustCompile(`(\d+)x(\d+)`)
)

func isURLShaped(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "www.")
}

// classifyLink decides what a [label](href) or a bare URL becomes. It returns
// nil when the node must not be rendered.
func (p *parser) classifyLink(href, label string, children []Inline) *Inline {
	raw := strings.TrimSpace(label)

	if youtubePattern.MatchString(raw) {
		id := youtubeID(raw)
		if id == "" {
			tracer().Debugf("dropping youtube link without video id: %q", raw)
			return nil
		}
		return &Inline{
			Kind:     InlineLink,
			Children: children,
			Link: &Link{
				Href:      "https://www.youtube.com/embed/" + id,
				Kind:      LinkYouTube,
				VideoID:   id,
				Collapsed: p.opts.Preview,
			},
		}
	}

	if isURLShaped(raw) {
		if u, err := url.Parse(href); err == nil && u.Host != "" {
			if p.isOwnHost(u.Hostname()) {
				route := internalRoute(href, u)
				if raw == href || "https://"+raw == href {
					children = []Inline{Text(strings.TrimPrefix(route, "#"))}
				}
				return &Inline{
					Kind:     InlineLink,
					Children: children,
					Link:     &Link{Href: route, Kind: LinkInternal},
				}
			}
			host := cases.Upper(language.Und).String(u.Hostname())
			return &Inline{
				Kind:     InlineLink,
				Children: []Inline{Text(host)},
				Link: &Link{
					Href:   href,
					Kind:   LinkExternal,
					Rel:    ExternalLinkRel,
					NewTab: true,
				},
			}
		}
	}

	if strings.HasPrefix(href, "/") {
		route := strings.Replace("#"+href, "#/#/", "#/", 1)
		return &Inline{
			Kind:     InlineLink,
			Children: children,
			Link:     &Link{Href: route, Kind: LinkInternal},
		}
	}

	if !SafeHref(href) {
		tracer().Debugf("unlinking label with unsupported href %q", href)
		return &Inline{Kind: InlineFragment, Children: children}
	}
	link := &Link{Href: href, Kind: LinkInternal}
	if u, _ := url.Parse(href); u.IsAbs() {
		link.Kind = LinkExternal
		link.Rel = ExternalLinkRel
		link.NewTab = true
	}
	return &Inline{
		Kind:     InlineLink,
		Children: children,
		Link:     link,
	}
}

// SafeHref reports whether href may be emitted as a link target: http,
// https and mailto URLs, relative references and fragments.
func SafeHref(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto":
		return true
	}
	return false
}

func youtubeID(raw string) string {
	m := youtubeIDPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1]
}

func (p *parser) isOwnHost(host string) bool {
	if host == "" {
		return false
	}
	if strings.EqualFold(host, p.opts.Site.Domain) {
		return true
	}
	for _, alt := range p.opts.Site.AltDomains {
		if strings.EqualFold(host, alt) {
			return true
		}
	}
	return false
}

// internalRoute turns an absolute URL on the site into a hash route.
func internalRoute(href string, u *url.URL) string {
	origin := u.Scheme + "://" + u.Host
	rest := strings.TrimPrefix(href, origin)
	rest = strings.TrimPrefix(rest, "/")
	if strings.HasPrefix(rest, "#") {
		return rest
	}
	return "#/" + rest
}

// classifyImage resolves ![alt](src). It returns nil for sources that are
// neither blobs nor absolute URLs.
func (p *parser) classifyImage(src, alt string) *Inline {
	if strings.HasPrefix(src, blobPrefix) {
		id := strings.TrimPrefix(src, blobPrefix)
		if id == "" {
			tracer().Debugf("dropping image with empty blob id")
			return nil
		}
		img := Image{Alt: alt, BlobID: id, Internal: true}
		if resolved, ok := p.opts.URLs[id]; ok && resolved != "" {
			img.Src = resolved
		} else {
			p.fillPlaceholder(&img)
		}
		return &Inline{Kind: InlineImage, Image: &img}
	}

	u, err := url.Parse(src)
	if err != nil || !u.IsAbs() || u.Host == "" {
		tracer().Debugf("dropping image with unresolvable source %q", src)
		return nil
	}
	img := Image{Src: src, Alt: alt, SourceHost: u.Hostname()}
	return &Inline{Kind: InlineImage, Image: &img}
}

// fillPlaceholder sizes a filler image from a "WxH" hint in the alt text or,
// without one, from the viewport. Height never exceeds a third of the
// viewport.
func (p *parser) fillPlaceholder(img *Image) {
	vp := p.opts.viewport()
	maxHeight := vp.Height / 3
	width, height := vp.Width, maxHeight
	if m := dimensionPattern.FindStringSubmatch(img.Alt); m != nil {
		w, errW := strconv.Atoi(m[1])
		h, errH := strconv.Atoi(m[2])
		if errW == nil && errH == nil && w > 0 && h > 0 {
			width, height = w, h
		}
	}
	if height > maxHeight && height > 0 {
		width = int(float64(width) * float64(maxHeight) / float64(height))
		height = maxHeight
	}
	img.Src = FillerImage
	img.Placeholder = true
	img.Width = width
	img.Height = height
	img.MaxHeight = maxHeight
}
