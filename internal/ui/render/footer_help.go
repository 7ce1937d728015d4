package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/postmd/internal/state"
)

// buildFooterHelpText returns the footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.ViewerState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

func buildFooterHelpSegments(state *statepkg.ViewerState) []string {
	if state == nil {
		return nil
	}
	segments := []string{
		"↑↓/jk: scroll",
		"PgUp/PgDn: page",
		"n/N: heading",
	}
	if state.ClipboardAvailable {
		segments = append(segments, "y: yank html")
	}
	return append(segments, "?: help", "q: quit")
}
