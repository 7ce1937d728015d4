package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/postmd/internal/state"
	textutil "github.com/kk-code-lab/postmd/internal/textutil"
)

const yankFlashDuration = 100 * time.Millisecond

// Renderer handles all UI rendering
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.ViewerState) {
	r.screen.Clear()
	w, h := r.screen.Size()

	if state.HelpVisible {
		r.drawHelpOverlay(state, w, h)
		r.screen.Show()
		return
	}

	r.drawHeader(state, w)
	r.drawBody(state, w)
	r.drawStatusLine(state, w, h)
	r.screen.Show()
}

// drawHeader renders the top bar with the program name and post title.
func (r *Renderer) drawHeader(state *statepkg.ViewerState, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	endX := r.drawTextLine(0, 0, w, "postmd ", headerStyle)
	title := textutil.SanitizeTerminalText(state.Title)
	title = r.truncateTextToWidth(title, w-endX)
	endX = r.drawTextLine(endX, 0, w-endX, title, headerStyle.Bold(true))
	r.fillRow(endX, 0, w, headerStyle)
}

func (r *Renderer) drawBody(state *statepkg.ViewerState, w int) {
	maxWidth := w - 2*statepkg.Margin
	for row, line := range state.VisibleLines() {
		r.drawSegments(statepkg.Margin, statepkg.HeaderRows+row, maxWidth, line)
	}
}

// drawStatusLine renders help hints on the left and the scroll position on
// the right. Errors replace the hints until the next action.
func (r *Renderer) drawStatusLine(state *statepkg.ViewerState, w, h int) {
	if h < statepkg.HeaderRows+statepkg.FooterRows {
		return
	}
	y := h - 1
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	if !state.LastYankTime.IsZero() && time.Since(state.LastYankTime) < yankFlashDuration {
		style = tcell.StyleDefault.Background(r.theme.FlashBg).Foreground(r.theme.FlashFg)
	}

	position := formatPosition(state)
	left := buildFooterHelpText(state)
	leftStyle := style
	if state.LastError != nil {
		left = " " + textutil.SanitizeTerminalText(state.LastError.Error())
		leftStyle = style.Foreground(r.theme.ErrorFg)
	}

	posWidth := r.measureTextWidth(position)
	available := w - posWidth - 1
	if available < 0 {
		available = 0
	}
	endX := r.drawTextLine(0, y, available, r.truncateTextToWidth(left, available), leftStyle)
	r.fillRow(endX, y, w, style)
	if posWidth <= w {
		r.drawTextLine(w-posWidth, y, posWidth, position, style)
	}
}

func formatPosition(state *statepkg.ViewerState) string {
	total := len(state.Lines)
	if total == 0 {
		return "empty "
	}
	first := state.ScrollOffset + 1
	last := state.ScrollOffset + len(state.VisibleLines())
	return fmt.Sprintf("%d-%d/%d %d%% ", first, last, total, state.ScrollPercent())
}
