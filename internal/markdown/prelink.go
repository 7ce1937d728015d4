package markdown

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	protectedSpan = regexp.MustCompile("(?s)```.*?(?:```|\\z)|`[^`\n]*`|!?\\[[^\\]]*\\]\\([^)]*\\)")
	prelinkToken  = regexp.MustCompile(`(^|[\s(])([#@$/])([\p{L}\p{M}\p{N}_.\-]*[\p{L}\p{M}\p{N}])`)
)

var prelinkKinds = map[byte]string{
	'@': "user",
	'#': "feed",
	'$': "feed",
	'/': "realm",
}

// Prelink rewrites bare #tag, $TOKEN, @user and /realm tokens into markdown
// links. Code spans, fences and existing links or images pass through
// untouched.
func Prelink(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, span := range protectedSpan.FindAllStringIndex(text, -1) {
		b.WriteString(prelinkSegment(text, last, span[0]))
		b.WriteString(text[span[0]:span[1]])
		last = span[1]
	}
	b.WriteString(prelinkSegment(text, last, len(text)))
	return b.String()
}

// prelinkSegment rewrites text[start:end]. A token at the very start of the
// segment only counts when the character before the segment allows it.
func prelinkSegment(text string, start, end int) string {
	segment := text[start:end]
	matches := prelinkToken.FindAllStringSubmatchIndex(segment, -1)
	if len(matches) == 0 {
		return segment
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if m[0] == 0 && m[3] == 0 && !tokenMayStartAt(text, start) {
			continue
		}
		prefix := segment[m[2]:m[3]]
		trigger := segment[m[4]]
		rest := segment[m[6]:m[7]]
		b.WriteString(segment[last:m[0]])
		b.WriteString(prefix)
		b.WriteString("[")
		b.WriteByte(trigger)
		b.WriteString(rest)
		b.WriteString("](#/")
		b.WriteString(prelinkKinds[trigger])
		b.WriteString("/")
		b.WriteString(rest)
		b.WriteString(")")
		last = m[1]
	}
	b.WriteString(segment[last:])
	return b.String()
}

func tokenMayStartAt(text string, pos int) bool {
	if pos == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:pos])
	return unicode.IsSpace(r) || r == '('
}
