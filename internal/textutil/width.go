package textutil

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const DefaultTabWidth = 4

// Ellipsis marks text cut by TruncateToWidth.
const Ellipsis = "…"

// DisplayWidth reports the number of terminal columns text occupies. Width is
// measured per grapheme cluster, so emoji sequences joined by ZWJ, flags and
// keycaps count as one wide glyph. Zero-width clusters count as one column.
func DisplayWidth(text string) int {
	width := 0
	state := -1
	for len(text) > 0 {
		var w int
		_, text, w, state = uniseg.FirstGraphemeClusterInString(text, state)
		width += clampWidth(w)
	}
	return width
}

// ClusterWidth is DisplayWidth for a single grapheme cluster.
func ClusterWidth(cluster string) int {
	if len(cluster) == 1 {
		return clampWidth(runewidth.RuneWidth(rune(cluster[0])))
	}
	return clampWidth(uniseg.StringWidth(cluster))
}

func clampWidth(w int) int {
	if w < 1 {
		return 1
	}
	return w
}

// TruncateToWidth shortens text to at most width columns, ending it with an
// ellipsis when anything was cut. Clusters are never split.
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}
	target := width - DisplayWidth(Ellipsis)
	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		w := ClusterWidth(cluster)
		if used+w > target {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	b.WriteString(Ellipsis)
	return b.String()
}

// ExpandTabs replaces tab characters with spaces respecting terminal column width.
func ExpandTabs(text string, tabWidth int) string {
	return ExpandTabsAt(text, tabWidth, 0)
}

// ExpandTabsAt expands tabs for text that starts at the given column.
func ExpandTabsAt(text string, tabWidth, column int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	for _, ru := range text {
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		builder.WriteRune(ru)
		column += clampWidth(runewidth.RuneWidth(ru))
	}
	return builder.String()
}

// WordCount counts the words of text using Unicode word boundaries. Runs of
// punctuation and whitespace are not words.
func WordCount(text string) int {
	count := 0
	state := -1
	for len(text) > 0 {
		var word string
		word, text, state = uniseg.FirstWordInString(text, state)
		if isWord(word) {
			count++
		}
	}
	return count
}

func isWord(segment string) bool {
	for _, r := range segment {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
