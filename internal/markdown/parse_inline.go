package markdown

import (
	"strings"
	"unicode"
)

const inlineRecursionLimit = 32

func (p *parser) parseInline(text string) []Inline {
	return p.parseInlineDepth(text, 0)
}

// parseInlineDepth scans text left to right. Every construct is anchored at
// the scan position; when none matches exactly one rune becomes literal text.
func (p *parser) parseInlineDepth(text string, depth int) []Inline {
	if text == "" {
		return nil
	}
	if depth >= inlineRecursionLimit {
		return []Inline{Text(text)}
	}

	runes := []rune(text)
	var nodes []Inline
	var buf []rune

	flushText := func() {
		if len(buf) == 0 {
			return
		}
		nodes = append(nodes, Text(string(buf)))
		buf = buf[:0]
	}
	emit := func(node *Inline) {
		flushText()
		if node != nil {
			nodes = append(nodes, *node)
		}
	}

	i := 0
	for i < len(runes) {
		rest := runes[i:]
		switch runes[i] {
		case '`':
			count := countRepeat(rest, '`')
			if end := findClosingBackticks(rest[count:], count); end > 0 {
				emit(&Inline{Kind: InlineCode, Literal: string(rest[count : count+end])})
				i += count + end + count
				continue
			}
			buf = append(buf, rest[:count]...)
			i += count
			continue
		case '*':
			if len(rest) > 1 && rest[1] == '*' {
				if end := findClosing(rest, 2, []rune("**")); end > 0 {
					emit(&Inline{Kind: InlineBold, Children: p.parseInlineDepth(string(rest[2:end]), depth+1)})
					i += end + 2
					continue
				}
			}
		case '_':
			if end := findClosing(rest, 1, []rune("_")); end > 0 {
				emit(&Inline{Kind: InlineItalic, Children: p.parseInlineDepth(string(rest[1:end]), depth+1)})
				i += end + 1
				continue
			}
		case '~':
			run := 1
			if len(rest) > 1 && rest[1] == '~' {
				run = 2
			}
			if end := findClosing(rest, run, rest[:run]); end > 0 {
				emit(&Inline{Kind: InlineStrike, Children: p.parseInlineDepth(string(rest[run:end]), depth+1)})
				i += end + run
				continue
			}
		case '!':
			if alt, src, consumed, ok := matchBracketed(rest[1:]); ok {
				emit(p.classifyImage(src, alt))
				i += consumed + 1
				continue
			}
		case '[':
			if label, href, consumed, ok := matchBracketed(rest); ok {
				children := []Inline{Text(label)}
				if !isURLShaped(label) {
					children = p.parseInlineDepth(label, depth+1)
				}
				emit(p.classifyLink(href, label, children))
				i += consumed
				continue
			}
		case 'h', 'w':
			if i == 0 || !isWordRune(runes[i-1]) {
				if token, href, ok := matchBareURL(rest); ok {
					emit(p.classifyLink(href, token, []Inline{Text(token)}))
					i += len([]rune(token))
					continue
				}
			}
		}
		buf = append(buf, runes[i])
		i++
	}
	flushText()
	return nodes
}

// matchBracketed matches "[text](dest)" at the start of runes and returns the
// text, the trimmed destination and the number of runes consumed.
func matchBracketed(runes []rune) (string, string, int, bool) {
	if len(runes) < 4 || runes[0] != '[' {
		return "", "", 0, false
	}
	endText := findMatchingBracket(runes[1:])
	if endText == -1 {
		return "", "", 0, false
	}
	open := 1 + endText + 1
	if open >= len(runes) || runes[open] != '(' {
		return "", "", 0, false
	}
	closeParen := findMatchingParen(runes[open+1:])
	if closeParen == -1 {
		return "", "", 0, false
	}
	text := string(runes[1 : 1+endText])
	dest := strings.TrimSpace(string(runes[open+1 : open+1+closeParen]))
	return text, dest, open + 1 + closeParen + 1, true
}

var bareURLPrefixes = [][]rune{[]rune("https://"), []rune("http://"), []rune("www.")}

// matchBareURL matches an http(s):// or www. token running to the next
// whitespace.
func matchBareURL(runes []rune) (string, string, bool) {
	var prefix []rune
	for _, candidate := range bareURLPrefixes {
		if hasPrefixRunes(runes, candidate) {
			prefix = candidate
			break
		}
	}
	if prefix == nil {
		return "", "", false
	}
	end := len(prefix)
	for end < len(runes) && !unicode.IsSpace(runes[end]) {
		end++
	}
	if end == len(prefix) {
		return "", "", false
	}
	token := string(runes[:end])
	href := token
	if prefix[0] == 'w' {
		href = "https://" + token
	}
	return token, href, true
}

func findMatchingBracket(runes []rune) int {
	depth := 0
	for i, r := range runes {
		switch r {
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

func findMatchingParen(runes []rune) int {
	depth := 0
	for i, r := range runes {
		switch r {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

func findClosingBackticks(runes []rune, count int) int {
	for i := 0; i < len(runes); {
		if runes[i] != '`' {
			i++
			continue
		}
		run := countRepeat(runes[i:], '`')
		if run == count {
			return i
		}
		i += run
	}
	return -1
}

// findClosing returns the index in runes of the first occurrence of delim at
// or after start+1, so the enclosed span is never empty. It returns -1 when
// the delimiter is not closed.
func findClosing(runes []rune, start int, delim []rune) int {
	for i := start + 1; i+len(delim) <= len(runes); i++ {
		if hasPrefixRunes(runes[i:], delim) {
			return i
		}
	}
	return -1
}

func hasPrefixRunes(runes, prefix []rune) bool {
	if len(runes) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if runes[i] != r {
			return false
		}
	}
	return true
}

func countRepeat(runes []rune, target rune) int {
	n := 0
	for n < len(runes) && runes[n] == target {
		n++
	}
	return n
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
