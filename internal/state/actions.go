package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== SCROLL ACTIONS =====

type ScrollUpAction struct{}
type ScrollDownAction struct{}
type ScrollPageUpAction struct{}
type ScrollPageDownAction struct{}
type ScrollHalfPageUpAction struct{}
type ScrollHalfPageDownAction struct{}
type ScrollToStartAction struct{}
type ScrollToEndAction struct{}

// ===== HEADING ACTIONS =====

type HeadingNextAction struct{}
type HeadingPrevAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type HelpToggleAction struct{}
type HelpHideAction struct{}

// ===== APPLICATION ACTIONS =====

type YankHTMLAction struct{} // y - copy the post as HTML
type SuspendAction struct{}  // Ctrl+Z
type QuitAction struct{}
