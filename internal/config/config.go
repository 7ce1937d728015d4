// Package config holds the settings that feed the parser: which domains
// count as the site itself, the viewport used to size placeholder images and
// known blob URLs. Settings come from a YAML file and from a post's front
// matter.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/kk-code-lab/postmd/internal/markdown"
	"gopkg.in/yaml.v3"
)

// DefaultDomain is the site domain used when no configuration names one.
const DefaultDomain = "taggr.link"

// Config is the on-disk configuration.
type Config struct {
	Site     Site              `yaml:"site"`
	Viewport Viewport          `yaml:"viewport"`
	Preview  bool              `yaml:"preview"`
	URLs     map[string]string `yaml:"urls,omitempty"`
}

type Site struct {
	Domain     string   `yaml:"domain"`
	AltDomains []string `yaml:"alt_domains,omitempty"`
}

type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Site:     Site{Domain: DefaultDomain},
		Viewport: Viewport{Width: 800, Height: 600},
	}
}

// Load reads the YAML file at path over the defaults. An empty path or a
// missing file yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Viewport.Width < 0 || c.Viewport.Height < 0 {
		return fmt.Errorf("viewport %dx%d must not be negative", c.Viewport.Width, c.Viewport.Height)
	}
	if strings.ContainsAny(c.Site.Domain, "/: ") {
		return fmt.Errorf("site domain %q must be a bare host name", c.Site.Domain)
	}
	return nil
}

// Options converts the configuration into parser options. URLs from the
// front matter take precedence over configured ones.
func (c Config) Options(fm FrontMatter) markdown.Options {
	urls := make(map[string]string, len(c.URLs)+len(fm.URLs))
	for id, u := range c.URLs {
		urls[id] = u
	}
	for id, u := range fm.URLs {
		urls[id] = u
	}
	return markdown.Options{
		URLs: urls,
		Site: markdown.Site{
			Domain:     c.Site.Domain,
			AltDomains: append([]string(nil), c.Site.AltDomains...),
		},
		BlogTitle: fm.BlogTitle(),
		Preview:   c.Preview,
		Viewport:  markdown.Viewport{Width: c.Viewport.Width, Height: c.Viewport.Height},
	}
}
