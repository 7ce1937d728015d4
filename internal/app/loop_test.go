package app

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/postmd/internal/markdown"
	statepkg "github.com/kk-code-lab/postmd/internal/state"
)

func longDocument() markdown.Document {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("paragraph\n\n")
	}
	return markdown.Parse(b.String(), markdown.Options{})
}

func newTestApplication(t *testing.T) (*Application, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	app, err := NewApplication(screen, "post.md", longDocument())
	if err != nil {
		t.Fatalf("NewApplication failed: %v", err)
	}
	screen.SetSize(40, 10)
	if _, err := app.reducer.Reduce(app.state, statepkg.ResizeAction{Width: 40, Height: 10}); err != nil {
		t.Fatalf("resize failed: %v", err)
	}
	return app, screen
}

func runWithTimeout(t *testing.T, app *Application) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		app.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("viewer did not quit")
	}
}

func TestRunScrollsAndQuits(t *testing.T) {
	app, screen := newTestApplication(t)
	screen.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'k', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	runWithTimeout(t, app)

	if got := app.State().ScrollOffset; got != 1 {
		t.Fatalf("expected scroll offset 1, got %d", got)
	}
}

func TestRunEndKeyAndCtrlC(t *testing.T) {
	app, screen := newTestApplication(t)
	screen.InjectKey(tcell.KeyRune, 'G', tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	runWithTimeout(t, app)

	if got, want := app.State().ScrollOffset, app.State().MaxScroll(); got != want {
		t.Fatalf("expected offset %d at end, got %d", want, got)
	}
}

func TestHandleActionRecordsReducerErrors(t *testing.T) {
	app, _ := newTestApplication(t)
	defer app.screen.Fini()

	app.handleAction(statepkg.ResizeAction{Width: -5, Height: 3})
	if app.state.LastError == nil {
		t.Fatalf("expected reducer error to be recorded")
	}
	app.handleAction(statepkg.ScrollDownAction{})
	if app.state.LastError != nil {
		t.Fatalf("expected next action to clear the error, got %v", app.state.LastError)
	}
}

func TestHandleActionQuit(t *testing.T) {
	app, _ := newTestApplication(t)
	defer app.screen.Fini()

	if app.handleAction(statepkg.QuitAction{}) {
		t.Fatalf("quit must not request a render")
	}
	if !app.shouldQuit {
		t.Fatalf("expected quit flag")
	}
}
