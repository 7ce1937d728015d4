package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/postmd/internal/format"
)

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	HeadingFg   tcell.Color
	BannerFg    tcell.Color
	LinkFg      tcell.Color
	CodeFg      tcell.Color
	CodeBlockBg tcell.Color
	CodeBlockFg tcell.Color
	QuoteFg     tcell.Color
	RuleFg      tcell.Color
	ImageFg     tcell.Color
	ErrorFg     tcell.Color
	FlashBg     tcell.Color
	FlashFg     tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		HeaderBg:    tcell.Color33,
		HeaderFg:    tcell.ColorWhite,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
		HeadingFg:   tcell.Color33,
		BannerFg:    tcell.ColorLightSlateGray,
		LinkFg:      tcell.Color51,
		CodeFg:      tcell.Color44,  // brighter cyan text for code
		CodeBlockBg: tcell.Color234, // darker grey background for fenced code
		CodeBlockFg: tcell.Color252, // light grey text for fenced code
		QuoteFg:     tcell.ColorLightSlateGray,
		RuleFg:      tcell.ColorLightSlateGray,
		ImageFg:     tcell.Color141,
		ErrorFg:     tcell.ColorRed,
		FlashBg:     tcell.ColorGreen,
		FlashFg:     tcell.ColorBlack,
	}
}

// SegmentStyle maps a formatted segment style to a terminal style.
func (t ColorTheme) SegmentStyle(style format.Style) tcell.Style {
	base := tcell.StyleDefault.Background(t.Background).Foreground(t.Foreground)
	switch style {
	case format.StyleEmphasis:
		return base.Italic(true)
	case format.StyleStrong:
		return base.Bold(true)
	case format.StyleStrike:
		return base.StrikeThrough(true)
	case format.StyleCode:
		return base.Foreground(t.CodeFg)
	case format.StyleCodeBlock:
		return base.Background(t.CodeBlockBg).Foreground(t.CodeBlockFg)
	case format.StyleLink:
		return base.Foreground(t.LinkFg).Underline(true)
	case format.StyleHeading:
		return base.Foreground(t.HeadingFg).Bold(true)
	case format.StyleBanner:
		return base.Foreground(t.BannerFg).Italic(true)
	case format.StyleQuote:
		return base.Foreground(t.QuoteFg)
	case format.StyleRule:
		return base.Foreground(t.RuleFg)
	case format.StyleImage:
		return base.Foreground(t.ImageFg)
	case format.StyleSummary:
		return base.Bold(true)
	default:
		return base
	}
}
