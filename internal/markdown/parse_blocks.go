package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

const markdownNestingLimit = 64

var (
	headingPattern  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	bulletPattern   = regexp.MustCompile(`^[-*+]\s+`)
	orderedPattern  = regexp.MustCompile(`^(\d+)\.\s+`)
	rulePattern     = regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})$`)
	summaryPattern  = regexp.MustCompile(`^<summary>(.*?)</summary>(.*)$`)
	detailsOpenTag  = "<details>"
	detailsCloseTag = "</details>"
	codeFence       = "```"
)

// parseBlocks runs the block state machine over lines[start:]. Each rule
// either consumes at least one line or the paragraph rule does, so i only
// grows.
func (p *parser) parseBlocks(lines []string, start int, depth int) ([]Block, int) {
	if depth >= markdownNestingLimit {
		text := joinParagraphLines(lines[start:])
		if text == "" {
			return nil, len(lines)
		}
		return []Block{Paragraph{Children: p.parseInline(text)}}, len(lines)
	}

	var blocks []Block
	i := start
	for i < len(lines) {
		line := lines[i]
		if isBlankLine(line) {
			i++
			continue
		}
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, codeFence) {
			code, next := parseFencedCodeBlock(lines, i)
			blocks = append(blocks, code)
			i = next
			continue
		}

		if level, text, ok := parseHeading(trimmed); ok {
			heading := Heading{Level: level, Children: p.parseInline(text)}
			if level == 1 && depth == 0 {
				heading.Banner = p.takeBanner()
			}
			blocks = append(blocks, heading)
			i++
			continue
		}

		if _, ok := parseListMarker(trimmed); ok {
			list, next := p.parseList(lines, i)
			blocks = append(blocks, list)
			i = next
			continue
		}

		if isQuoteLine(trimmed) {
			quote, next := p.parseBlockquote(lines, i, depth)
			blocks = append(blocks, quote)
			i = next
			continue
		}

		if isHorizontalRule(trimmed) {
			blocks = append(blocks, HorizontalRule{})
			i++
			continue
		}

		if tbl, next, ok := p.parseTable(lines, i); ok {
			blocks = append(blocks, tbl)
			i = next
			continue
		}

		if strings.HasPrefix(trimmed, detailsOpenTag) {
			details, next := p.parseDetails(lines, i, depth)
			blocks = append(blocks, details)
			i = next
			continue
		}

		paragraph, next := p.parseParagraph(lines, i)
		blocks = append(blocks, paragraph...)
		i = next
	}
	return blocks, i
}

func (p *parser) parseParagraph(lines []string, start int) ([]Block, int) {
	var parts []string
	i := start
	for i < len(lines) {
		line := lines[i]
		if isBlankLine(line) {
			break
		}
		if i > start && startsBlock(lines, i) {
			break
		}
		parts = append(parts, strings.TrimSpace(line))
		i++
	}
	return p.splitParagraph(p.parseInline(strings.Join(parts, " "))), i
}

func parseFencedCodeBlock(lines []string, start int) (CodeBlock, int) {
	info := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[start]), codeFence))
	var content []string
	i := start + 1
	for i < len(lines) {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), codeFence) {
			return CodeBlock{Info: info, Raw: strings.Join(content, "\n")}, i + 1
		}
		content = append(content, lines[i])
		i++
	}
	return CodeBlock{Info: info, Raw: strings.Join(content, "\n")}, i
}

func parseHeading(trimmed string) (int, string, bool) {
	m := headingPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return 0, "", false
	}
	text := strings.TrimSpace(m[2])
	if text == "" {
		return 0, "", false
	}
	return len(m[1]), text, true
}

type listMarker struct {
	ordered bool
	number  int
	content string
}

func parseListMarker(trimmed string) (listMarker, bool) {
	if loc := bulletPattern.FindStringIndex(trimmed); loc != nil {
		return listMarker{content: trimmed[loc[1]:]}, true
	}
	if m := orderedPattern.FindStringSubmatchIndex(trimmed); m != nil {
		num, err := strconv.Atoi(trimmed[m[2]:m[3]])
		if err != nil {
			num = 1
		}
		return listMarker{ordered: true, number: num, content: trimmed[m[1]:]}, true
	}
	return listMarker{}, false
}

// parseList consumes a run of markers of one kind. Blank lines inside the
// run are swallowed.
func (p *parser) parseList(lines []string, start int) (List, int) {
	first, _ := parseListMarker(strings.TrimSpace(lines[start]))
	list := List{Ordered: first.ordered, Start: 1}
	if first.ordered {
		list.Start = first.number
	}

	i := start
	for i < len(lines) {
		if isBlankLine(lines[i]) {
			i++
			continue
		}
		m, ok := parseListMarker(strings.TrimSpace(lines[i]))
		if !ok || m.ordered != list.Ordered {
			break
		}
		list.Items = append(list.Items, p.parseInline(strings.TrimSpace(m.content)))
		i++
	}
	return list, i
}

func (p *parser) parseBlockquote(lines []string, start int, depth int) (Blockquote, int) {
	var inner []string
	i := start
	for i < len(lines) {
		line := lines[i]
		if isBlankLine(line) {
			i++
			continue
		}
		trimmed := strings.TrimSpace(line)
		if !isQuoteLine(trimmed) {
			break
		}
		stripped := strings.TrimPrefix(trimmed, ">")
		stripped = strings.TrimPrefix(stripped, " ")
		inner = append(inner, stripped)
		i++
	}

	children, _ := p.nested().parseBlocks(inner, 0, depth+1)
	return Blockquote{Blocks: children}, i
}

// parseDetails consumes a <details> region up to its matching </details>, or
// to the end of input when the region is left open.
func (p *parser) parseDetails(lines []string, start int, depth int) (Details, int) {
	var details Details
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[start]), detailsOpenTag))
	i := start + 1

	var inner []string
	summaryFound := false
	if rest != "" {
		if m := summaryPattern.FindStringSubmatch(rest); m != nil {
			details.Summary = p.parseInline(strings.TrimSpace(m[1]))
			summaryFound = true
			rest = strings.TrimSpace(m[2])
		}
	}
	if !summaryFound && rest == "" && i < len(lines) {
		if m := summaryPattern.FindStringSubmatch(strings.TrimSpace(lines[i])); m != nil {
			details.Summary = p.parseInline(strings.TrimSpace(m[1]))
			if tail := strings.TrimSpace(m[2]); tail != "" {
				inner = append(inner, tail)
			}
			i++
		}
	}

	open := 1
	if rest != "" {
		if strings.HasSuffix(rest, detailsCloseTag) {
			inner = append(inner, strings.TrimSuffix(rest, detailsCloseTag))
			open = 0
		} else {
			inner = append(inner, rest)
		}
	}

	for open > 0 && i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(trimmed, detailsOpenTag):
			open++
		case strings.HasPrefix(trimmed, detailsCloseTag):
			open--
			if open == 0 {
				i++
				continue
			}
		}
		inner = append(inner, lines[i])
		i++
	}

	details.Blocks, _ = p.nested().parseBlocks(inner, 0, depth+1)
	return details, i
}

// nested returns a parser for quoted or collapsed content: same side inputs,
// no banner.
func (p *parser) nested() *parser {
	return &parser{opts: p.opts, bannerDone: true}
}

func (p *parser) takeBanner() *Banner {
	if !p.bannerAllowed || p.bannerDone || p.opts.BlogTitle == nil {
		return nil
	}
	p.bannerDone = true
	return newBanner(*p.opts.BlogTitle, p.opts.Now)
}

// isQuoteLine reports whether a trimmed line carries a quote marker: "> "
// followed by content, or a lone ">".
func isQuoteLine(trimmed string) bool {
	return trimmed == ">" || strings.HasPrefix(trimmed, "> ")
}

// startsBlock reports whether lines[i] opens any block other than a
// paragraph.
func startsBlock(lines []string, i int) bool {
	trimmed := strings.TrimSpace(lines[i])
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, codeFence) || isQuoteLine(trimmed) ||
		strings.HasPrefix(trimmed, detailsOpenTag) {
		return true
	}
	if _, _, ok := parseHeading(trimmed); ok {
		return true
	}
	if _, ok := parseListMarker(trimmed); ok {
		return true
	}
	if isHorizontalRule(trimmed) {
		return true
	}
	return startsTable(lines, i)
}

func isHorizontalRule(trimmed string) bool {
	return rulePattern.MatchString(trimmed)
}

// countTopLevelH1 counts level-one headings outside code fences.
func countTopLevelH1(lines []string) int {
	count := 0
	inFence := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, codeFence) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if level, _, ok := parseHeading(trimmed); ok && level == 1 {
			count++
		}
	}
	return count
}

func joinParagraphLines(lines []string) string {
	var parts []string
	for _, line := range lines {
		if s := strings.TrimSpace(line); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}
