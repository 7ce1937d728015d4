package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/postmd/internal/state"
	textutil "github.com/kk-code-lab/postmd/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(state *statepkg.ViewerState) []string {
	actions := []helpOverlayEntry{
		{keys: "?", desc: "Close this help"},
	}
	if state != nil && state.ClipboardAvailable {
		actions = append([]helpOverlayEntry{{keys: "y", desc: "Copy the post as HTML"}}, actions...)
	}

	sections := []helpOverlaySection{
		{
			title: "Scrolling",
			entries: []helpOverlayEntry{
				{keys: "↑/↓ or k/j", desc: "Scroll one line"},
				{keys: "PgUp/PgDn", desc: "Scroll one page"},
				{keys: "Ctrl+U/Ctrl+D", desc: "Scroll half a page"},
				{keys: "g/G", desc: "Jump to start/end"},
			},
		},
		{
			title: "Headings",
			entries: []helpOverlayEntry{
				{keys: "n or ]", desc: "Next heading"},
				{keys: "N or [", desc: "Previous heading"},
			},
		},
		{
			title:   "Actions",
			entries: actions,
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "q", desc: "Quit"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
			},
		},
	}

	lines := make([]string, 0, 24)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}
	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-14s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(state *statepkg.ViewerState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fillRow(0, y, w, baseStyle)
	}

	title := " Help "
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg).Bold(true)
	r.fillRow(0, 0, w, headerStyle)
	titleStart := 0
	if titleWidth := r.measureTextWidth(title); w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	row := 2
	for _, line := range buildHelpOverlayLines(state) {
		if row >= h-1 {
			break
		}
		text := r.truncateTextToWidth(strings.TrimRight(line, " "), w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	if h > 1 {
		footer := r.truncateTextToWidth("? toggle · Esc/q close", w)
		r.fillRow(0, h-1, w, headerStyle)
		r.drawTextLine(0, h-1, w, footer, headerStyle)
	}
}
