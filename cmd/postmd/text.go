package main

import (
	"bufio"
	"io"
	"os"

	"github.com/kk-code-lab/postmd/internal/format"
	"github.com/kk-code-lab/postmd/internal/markdown"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

var segmentStyles = map[format.Style]*pterm.Style{
	format.StyleEmphasis:  pterm.NewStyle(pterm.Italic),
	format.StyleStrong:    pterm.NewStyle(pterm.Bold),
	format.StyleCode:      pterm.NewStyle(pterm.FgCyan),
	format.StyleCodeBlock: pterm.NewStyle(pterm.FgLightWhite, pterm.BgBlack),
	format.StyleLink:      pterm.NewStyle(pterm.FgLightBlue, pterm.Underscore),
	format.StyleHeading:   pterm.NewStyle(pterm.FgBlue, pterm.Bold),
	format.StyleBanner:    pterm.NewStyle(pterm.FgGray, pterm.Italic),
	format.StyleQuote:     pterm.NewStyle(pterm.FgGray),
	format.StyleRule:      pterm.NewStyle(pterm.FgGray),
	format.StyleImage:     pterm.NewStyle(pterm.FgMagenta),
	format.StyleSummary:   pterm.NewStyle(pterm.Bold),
}

// writeText writes doc wrapped to width. Terminals get styled output.
func writeText(w io.Writer, doc markdown.Document, width int) error {
	lines := format.Lines(doc, width)
	if !isTerminal(w) {
		_, err := io.WriteString(w, format.Text(lines))
		return err
	}
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		for _, seg := range line {
			if style, ok := segmentStyles[seg.Style]; ok {
				_, _ = bw.WriteString(style.Sprint(seg.Text))
				continue
			}
			_, _ = bw.WriteString(seg.Text)
		}
		_ = bw.WriteByte('\n')
	}
	return bw.Flush()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
