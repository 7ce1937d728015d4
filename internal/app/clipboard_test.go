package app

import (
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"testing"

	"github.com/kk-code-lab/postmd/internal/markdown"
	statepkg "github.com/kk-code-lab/postmd/internal/state"
)

func TestDetectClipboardInternal(t *testing.T) {
	available := func(names ...string) func(string) (string, error) {
		return func(name string) (string, error) {
			for _, n := range names {
				if n == name {
					return "/usr/bin/" + name, nil
				}
			}
			return "", errors.New("not found")
		}
	}

	tests := []struct {
		name   string
		goos   string
		lookup func(string) (string, error)
		want   []string
		ok     bool
	}{
		{"mac", "darwin", available("pbcopy"), []string{"/usr/bin/pbcopy"}, true},
		{"wayland before x11", "linux", available("xclip", "wl-copy"), []string{"/usr/bin/wl-copy"}, true},
		{"windows powershell", "windows", available("pwsh"), []string{"/usr/bin/pwsh", "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}, true},
		{"nothing", "linux", available(), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := detectClipboardInternal(tt.goos, tt.lookup)
			if ok != tt.ok || strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Fatalf("got %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestHandleClipboardSetsLastErrorOnFailure(t *testing.T) {
	app := newClipboardApplication()
	app.clipboardCmd = []string{"fake-clip", "--flag"}

	var recorded []string
	withFakeCommandBuilder(t, 7, &recorded, func() {
		app.handleClipboard()
	})

	if app.state.LastError == nil {
		t.Fatalf("expected clipboard failure to set LastError")
	}
	if got := app.state.LastError.Error(); !strings.Contains(got, "fake-clip") {
		t.Fatalf("expected error mentioning command, got %q", got)
	}
	if !app.state.LastYankTime.IsZero() {
		t.Fatalf("expected LastYankTime to remain zero on failure")
	}
	assertCommandRecorded(t, recorded, []string{"fake-clip", "--flag"})
}

func TestHandleClipboardUpdatesYankTimeOnSuccess(t *testing.T) {
	app := newClipboardApplication()
	app.clipboardCmd = []string{"fake-clip"}

	var recorded []string
	withFakeCommandBuilder(t, 0, &recorded, func() {
		app.handleClipboard()
	})

	if app.state.LastYankTime.IsZero() {
		t.Fatalf("expected LastYankTime to update on success")
	}
	if app.state.LastError != nil {
		t.Fatalf("expected LastError to remain nil on success, got %v", app.state.LastError)
	}
	assertCommandRecorded(t, recorded, []string{"fake-clip"})
}

func TestHandleClipboardWithoutCommand(t *testing.T) {
	app := newClipboardApplication()
	if app.handleClipboard() {
		t.Fatalf("expected no render without a clipboard command")
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	code, err := strconv.Atoi(os.Getenv("HELPER_PROCESS_EXIT"))
	if err != nil {
		code = 1
	}
	os.Exit(code)
}

func newClipboardApplication() *Application {
	doc := markdown.Parse("# Title\n\nbody", markdown.Options{})
	return &Application{state: statepkg.NewViewerState("post.md", doc)}
}

func withFakeCommandBuilder(t *testing.T, exitCode int, recorded *[]string, fn func()) {
	t.Helper()
	orig := commandBuilder
	commandBuilder = func(name string, args ...string) *exec.Cmd {
		if recorded != nil {
			*recorded = append([]string{name}, args...)
		}
		return helperProcessCommand(exitCode, name, args...)
	}
	defer func() {
		commandBuilder = orig
	}()
	fn()
}

func helperProcessCommand(exitCode int, name string, args ...string) *exec.Cmd {
	cmdArgs := []string{"-test.run=TestHelperProcess", "--", name}
	cmdArgs = append(cmdArgs, args...)
	cmd := exec.Command(os.Args[0], cmdArgs...)
	cmd.Env = append(os.Environ(),
		"GO_WANT_HELPER_PROCESS=1",
		"HELPER_PROCESS_EXIT="+strconv.Itoa(exitCode),
	)
	return cmd
}

func assertCommandRecorded(t *testing.T, recorded, want []string) {
	t.Helper()
	if len(recorded) != len(want) {
		t.Fatalf("expected command %v, got %v", want, recorded)
	}
	for i := range want {
		if recorded[i] != want[i] {
			t.Fatalf("expected command %v, got %v", want, recorded)
		}
	}
}
