package state

import (
	"testing"

	"github.com/kk-code-lab/postmd/internal/format"
	"github.com/kk-code-lab/postmd/internal/markdown"
)

func TestReducerScrolling(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		action Action
		want   int
	}{
		{"down", 0, ScrollDownAction{}, 1},
		{"up clamps at top", 0, ScrollUpAction{}, 0},
		{"page down keeps a line of context", 0, ScrollPageDownAction{}, 9},
		{"page up", 15, ScrollPageUpAction{}, 6},
		{"half page down", 0, ScrollHalfPageDownAction{}, 5},
		{"half page up", 3, ScrollHalfPageUpAction{}, 0},
		{"end", 4, ScrollToEndAction{}, 20},
		{"start", 12, ScrollToStartAction{}, 0},
		{"down clamps at end", 20, ScrollDownAction{}, 20},
	}
	r := NewStateReducer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSizedState(plainLines(30), 40, 12)
			s.ScrollOffset = tt.start
			if _, err := r.Reduce(s, tt.action); err != nil {
				t.Fatalf("Reduce returned error: %v", err)
			}
			if s.ScrollOffset != tt.want {
				t.Fatalf("expected offset %d, got %d", tt.want, s.ScrollOffset)
			}
		})
	}
}

func TestReducerHeadingJumps(t *testing.T) {
	lines := plainLines(40)
	for _, idx := range []int{0, 12, 25} {
		lines[idx] = []format.Segment{{Text: "# h", Style: format.StyleHeading}}
	}
	s := newSizedState(lines, 40, 7)
	r := NewStateReducer()

	for _, want := range []int{12, 25, 25} {
		if _, err := r.Reduce(s, HeadingNextAction{}); err != nil {
			t.Fatal(err)
		}
		if s.ScrollOffset != want {
			t.Fatalf("expected next heading at %d, got %d", want, s.ScrollOffset)
		}
	}
	for _, want := range []int{12, 0, 0} {
		if _, err := r.Reduce(s, HeadingPrevAction{}); err != nil {
			t.Fatal(err)
		}
		if s.ScrollOffset != want {
			t.Fatalf("expected previous heading at %d, got %d", want, s.ScrollOffset)
		}
	}
}

func TestReducerResizeReflows(t *testing.T) {
	doc := markdown.Parse("# Title\n\nbody text", markdown.Options{})
	s := NewViewerState("post.md", doc)
	r := NewStateReducer()
	if _, err := r.Reduce(s, ResizeAction{Width: 30, Height: 10}); err != nil {
		t.Fatal(err)
	}
	if s.ScreenWidth != 30 || s.ScreenHeight != 10 {
		t.Fatalf("unexpected size %dx%d", s.ScreenWidth, s.ScreenHeight)
	}
	if len(s.Lines) != 3 {
		t.Fatalf("expected heading, blank and paragraph lines, got %d", len(s.Lines))
	}
	if _, err := r.Reduce(s, ResizeAction{Width: -1, Height: 10}); err == nil {
		t.Fatalf("expected negative size to be rejected")
	}
}

func TestReducerHelpToggle(t *testing.T) {
	s := newSizedState(plainLines(1), 40, 10)
	r := NewStateReducer()
	_, _ = r.Reduce(s, HelpToggleAction{})
	if !s.HelpVisible {
		t.Fatalf("expected help to be visible")
	}
	_, _ = r.Reduce(s, HelpHideAction{})
	if s.HelpVisible {
		t.Fatalf("expected help to be hidden")
	}
}

func TestReducerErrors(t *testing.T) {
	r := NewStateReducer()
	if _, err := r.Reduce(nil, ScrollDownAction{}); err == nil {
		t.Fatalf("expected error for nil state")
	}
	if _, err := r.Reduce(newSizedState(nil, 10, 10), QuitAction{}); err == nil {
		t.Fatalf("expected error for actions the reducer does not own")
	}
}
