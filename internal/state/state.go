// Package state holds the viewer state and the reducer that applies user
// actions to it.
package state

import (
	"time"

	"github.com/kk-code-lab/postmd/internal/format"
	"github.com/kk-code-lab/postmd/internal/markdown"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'postmd.viewer'.
func tracer() tracing.Trace {
	return tracing.Select("postmd.viewer")
}

const (
	// HeaderRows is the number of rows above the document body.
	HeaderRows = 1
	// FooterRows is the number of rows below the document body.
	FooterRows = 1
	// Margin is the blank column kept on either side of the body.
	Margin = 1
)

// ViewerState is everything the renderer needs to draw one frame.
type ViewerState struct {
	Title        string
	Doc          markdown.Document
	Lines        [][]format.Segment
	ScreenWidth  int
	ScreenHeight int
	ScrollOffset int
	HelpVisible  bool

	ClipboardAvailable bool
	LastYankTime       time.Time
	LastError          error

	renderedWidth int
}

// NewViewerState prepares a state for doc. Lines are produced on the first
// Reflow.
func NewViewerState(title string, doc markdown.Document) *ViewerState {
	return &ViewerState{Title: title, Doc: doc, renderedWidth: -1}
}

// ContentWidth is the width the document is wrapped to.
func (s *ViewerState) ContentWidth() int {
	w := s.ScreenWidth - 2*Margin
	if w < 1 {
		return 1
	}
	return w
}

// BodyHeight is the number of document lines visible at once.
func (s *ViewerState) BodyHeight() int {
	h := s.ScreenHeight - HeaderRows - FooterRows
	if h < 0 {
		return 0
	}
	return h
}

// MaxScroll is the largest valid ScrollOffset.
func (s *ViewerState) MaxScroll() int {
	m := len(s.Lines) - s.BodyHeight()
	if m < 0 {
		return 0
	}
	return m
}

// Reflow re-renders the document when the content width changed. The scroll
// position is kept proportional so the reader stays near the same passage.
func (s *ViewerState) Reflow() {
	width := s.ContentWidth()
	if s.Lines != nil && width == s.renderedWidth {
		s.clampScroll()
		return
	}
	oldLen := len(s.Lines)
	s.Lines = format.Lines(s.Doc, width)
	s.renderedWidth = width
	if oldLen > 0 && s.ScrollOffset > 0 {
		s.ScrollOffset = s.ScrollOffset * len(s.Lines) / oldLen
	}
	tracer().Debugf("reflow to width %d: %d lines", width, len(s.Lines))
	s.clampScroll()
}

func (s *ViewerState) clampScroll() {
	if s.ScrollOffset > s.MaxScroll() {
		s.ScrollOffset = s.MaxScroll()
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}

// VisibleLines returns the lines inside the body window.
func (s *ViewerState) VisibleLines() [][]format.Segment {
	start := s.ScrollOffset
	if start >= len(s.Lines) {
		return nil
	}
	end := start + s.BodyHeight()
	if end > len(s.Lines) {
		end = len(s.Lines)
	}
	return s.Lines[start:end]
}

// HeadingLines lists the indexes of lines that start a heading.
func (s *ViewerState) HeadingLines() []int {
	var idx []int
	for i, line := range s.Lines {
		if len(line) > 0 && line[0].Style == format.StyleHeading {
			if i > 0 && len(s.Lines[i-1]) > 0 && s.Lines[i-1][0].Style == format.StyleHeading {
				continue
			}
			idx = append(idx, i)
		}
	}
	return idx
}

// ScrollPercent reports how far the body window has advanced.
func (s *ViewerState) ScrollPercent() int {
	limit := s.MaxScroll()
	if limit == 0 {
		return 100
	}
	return s.ScrollOffset * 100 / limit
}
