package state

import (
	"errors"
	"fmt"
)

var errNoState = errors.New("reducer: nil state")

// StateReducer applies actions to a ViewerState.
type StateReducer struct{}

// NewStateReducer creates a reducer.
func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

// Reduce applies action to state. The state is mutated in place and
// returned for convenience.
func (r *StateReducer) Reduce(state *ViewerState, action Action) (*ViewerState, error) {
	if state == nil {
		return nil, errNoState
	}

	switch a := action.(type) {

	// ===== SCROLL =====

	case ScrollDownAction:
		state.scrollBy(1)
	case ScrollUpAction:
		state.scrollBy(-1)
	case ScrollPageDownAction:
		state.scrollBy(state.pageSize())
	case ScrollPageUpAction:
		state.scrollBy(-state.pageSize())
	case ScrollHalfPageDownAction:
		state.scrollBy(halfPage(state.BodyHeight()))
	case ScrollHalfPageUpAction:
		state.scrollBy(-halfPage(state.BodyHeight()))
	case ScrollToStartAction:
		state.ScrollOffset = 0
	case ScrollToEndAction:
		state.ScrollOffset = state.MaxScroll()

	// ===== HEADINGS =====

	case HeadingNextAction:
		for _, idx := range state.HeadingLines() {
			if idx > state.ScrollOffset {
				state.scrollTo(idx)
				break
			}
		}
	case HeadingPrevAction:
		headings := state.HeadingLines()
		for i := len(headings) - 1; i >= 0; i-- {
			if headings[i] < state.ScrollOffset {
				state.scrollTo(headings[i])
				break
			}
		}

	// ===== VIEW =====

	case ResizeAction:
		if a.Width < 0 || a.Height < 0 {
			return state, fmt.Errorf("invalid size %dx%d", a.Width, a.Height)
		}
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.Reflow()
	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
	case HelpHideAction:
		state.HelpVisible = false

	default:
		return state, fmt.Errorf("unknown action: %T", action)
	}
	return state, nil
}

func (s *ViewerState) scrollBy(delta int) {
	s.scrollTo(s.ScrollOffset + delta)
}

func (s *ViewerState) scrollTo(offset int) {
	s.ScrollOffset = offset
	s.clampScroll()
}

// pageSize keeps one line of context when paging.
func (s *ViewerState) pageSize() int {
	h := s.BodyHeight()
	if h > 1 {
		return h - 1
	}
	return 1
}

func halfPage(h int) int {
	if h < 2 {
		return 1
	}
	return h / 2
}
