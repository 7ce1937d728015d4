package markdown

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// WordsPerMinute is the reading speed behind Banner.Minutes.
const WordsPerMinute = 400

func newBanner(title BlogTitle, now time.Time) *Banner {
	b := &Banner{
		Author:     title.Author,
		AuthorHref: "#/user/" + title.Author,
		Created:    title.Created,
		Realm:      title.Realm,
		Background: title.Background,
		Minutes:    readingMinutes(title.Length),
	}
	if title.Realm != "" {
		b.RealmHref = "#/realm/" + title.Realm
	}
	if !now.IsZero() && !title.Created.IsZero() {
		b.Relative = humanize.RelTime(title.Created, now, "ago", "from now")
	}
	return b
}

func readingMinutes(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}

// Inlines composes the metadata line: author, relative time, realm and
// reading time, separated by dots.
func (b Banner) Inlines() Inline {
	parts := []Inline{{
		Kind:     InlineLink,
		Children: []Inline{Text(b.Author)},
		Link:     &Link{Href: b.AuthorHref, Kind: LinkInternal},
	}}
	if b.Relative != "" {
		parts = append(parts, Text(" · "+b.Relative))
	}
	if b.Realm != "" {
		parts = append(parts, Text(" · "), Inline{
			Kind:     InlineLink,
			Children: []Inline{Text(b.Realm)},
			Link:     &Link{Href: b.RealmHref, Kind: LinkInternal},
		})
	}
	if b.Minutes > 0 {
		parts = append(parts, Text(" · "+strconv.Itoa(b.Minutes)+" minutes read"))
	}
	return Inline{Kind: InlineFragment, Children: parts}
}
