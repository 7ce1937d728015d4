package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kk-code-lab/postmd/internal/markdown"
	"github.com/kk-code-lab/postmd/internal/textutil"
	"gopkg.in/yaml.v3"
)

// ErrNoFrontMatter is returned by SplitFrontMatter when text does not open
// with a closed front matter block.
var ErrNoFrontMatter = errors.New("no front matter")

const frontMatterDelimiter = "---"

// FrontMatter is the metadata block a post may open with.
type FrontMatter struct {
	Author     string            `yaml:"author"`
	Created    time.Time         `yaml:"created"`
	Length     int               `yaml:"length"`
	Realm      string            `yaml:"realm"`
	Background string            `yaml:"background"`
	URLs       map[string]string `yaml:"urls"`
}

// BlogTitle returns the banner metadata, or nil when no author is named.
func (fm FrontMatter) BlogTitle() *markdown.BlogTitle {
	if fm.Author == "" {
		return nil
	}
	return &markdown.BlogTitle{
		Author:     fm.Author,
		Created:    fm.Created,
		Length:     fm.Length,
		Realm:      fm.Realm,
		Background: fm.Background,
	}
}

// SplitFrontMatter separates a leading
//
//	---
//	author: alice
//	---
//
// block from the post body. Without such a block it returns the text
// unchanged together with ErrNoFrontMatter. When the block gives no length,
// the word count of the body is used.
func SplitFrontMatter(text string) (FrontMatter, string, error) {
	var fm FrontMatter
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	first, rest, found := strings.Cut(normalized, "\n")
	if !found || strings.TrimSpace(first) != frontMatterDelimiter {
		return fm, text, ErrNoFrontMatter
	}

	var header []string
	lines := strings.Split(rest, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != frontMatterDelimiter {
			header = append(header, line)
			continue
		}
		body := strings.Join(lines[i+1:], "\n")
		if err := yaml.Unmarshal([]byte(strings.Join(header, "\n")), &fm); err != nil {
			return FrontMatter{}, text, fmt.Errorf("parse front matter: %w", err)
		}
		if fm.Length <= 0 {
			fm.Length = textutil.WordCount(body)
		}
		return fm, body, nil
	}
	return fm, text, ErrNoFrontMatter
}
