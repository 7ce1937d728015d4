// Package app runs the interactive terminal viewer for a parsed post.
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/postmd/internal/markdown"
	statepkg "github.com/kk-code-lab/postmd/internal/state"
	inputui "github.com/kk-code-lab/postmd/internal/ui/input"
	renderui "github.com/kk-code-lab/postmd/internal/ui/render"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'postmd.viewer'.
func tracer() tracing.Trace {
	return tracing.Select("postmd.viewer")
}

// Application represents the running viewer.
type Application struct {
	screen       tcell.Screen
	state        *statepkg.ViewerState
	reducer      *statepkg.StateReducer
	renderer     *renderui.Renderer
	input        *inputui.InputHandler
	actionCh     chan statepkg.Action
	shouldQuit   bool
	clipboardCmd []string
}

// NewApplication initialises screen and lays doc out for its size.
// Use tcell.NewScreen for a terminal or tcell.NewSimulationScreen in tests.
func NewApplication(screen tcell.Screen, title string, doc markdown.Document) (*Application, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	clipboardCmd, clipboardAvail := detectClipboard()
	state := statepkg.NewViewerState(title, doc)
	state.ClipboardAvailable = clipboardAvail

	reducer := statepkg.NewStateReducer()
	w, h := screen.Size()
	if _, err := reducer.Reduce(state, statepkg.ResizeAction{Width: w, Height: h}); err != nil {
		screen.Fini()
		return nil, err
	}

	actionCh := make(chan statepkg.Action, 10)
	inputHandler := inputui.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	return &Application{
		screen:       screen,
		state:        state,
		reducer:      reducer,
		renderer:     renderui.NewRenderer(screen),
		input:        inputHandler,
		actionCh:     actionCh,
		clipboardCmd: clipboardCmd,
	}, nil
}

// State exposes the viewer state, mainly for tests.
func (app *Application) State() *statepkg.ViewerState {
	return app.state
}
