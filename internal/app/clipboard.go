package app

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/kk-code-lab/postmd/internal/format"
)

var commandBuilder = exec.Command

func detectClipboard() ([]string, bool) {
	return detectClipboardInternal(runtime.GOOS, exec.LookPath)
}

func detectClipboardInternal(goos string, lookPath func(string) (string, error)) ([]string, bool) {
	if strings.EqualFold(goos, "windows") {
		for _, candidate := range []string{"clip.exe", "clip"} {
			if path, err := lookPath(candidate); err == nil && path != "" {
				return []string{path}, true
			}
		}
		for _, ps := range []string{"powershell", "powershell.exe", "pwsh"} {
			if path, err := lookPath(ps); err == nil && path != "" {
				return []string{path, "-NoLogo", "-NoProfile", "-Command", "Set-Clipboard"}, true
			}
		}
	}

	for _, cmd := range []string{"pbcopy", "wl-copy", "xclip", "xsel"} {
		if resolved, err := lookPath(cmd); err == nil && resolved != "" {
			return []string{resolved}, true
		}
	}
	return nil, false
}

// handleClipboard pipes the post, rendered as HTML, into the clipboard
// command.
func (app *Application) handleClipboard() bool {
	if len(app.clipboardCmd) == 0 {
		return false
	}
	var buf bytes.Buffer
	if err := format.HTML(&buf, app.state.Doc); err != nil {
		app.state.LastError = err
		return true
	}
	cmd := commandBuilder(app.clipboardCmd[0], app.clipboardCmd[1:]...)
	cmd.Stdin = &buf
	if err := cmd.Run(); err != nil {
		app.state.LastError = fmt.Errorf("%s: %w", app.clipboardCmd[0], err)
		return true
	}
	app.state.LastError = nil
	app.state.LastYankTime = time.Now()
	return true
}
