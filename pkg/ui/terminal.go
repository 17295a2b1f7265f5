package ui

import (
	"os"
	"runtime"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	unicodeOnce sync.Once
	unicodeOK   bool

	colorOnce sync.Once
	colorOK   bool
)

// UnicodeTerminal reports whether stdout can render Unicode glyphs.
// Returns false when output is piped, redirected, TERM is "dumb", or on
// Windows without Windows Terminal.
func UnicodeTerminal() bool {
	unicodeOnce.Do(func() {
		if os.Getenv("TERM") == "dumb" {
			return
		}
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return
		}
		if runtime.GOOS == "windows" {
			// Windows Terminal sets WT_SESSION; legacy conhost does not.
			unicodeOK = os.Getenv("WT_SESSION") != ""
			return
		}
		unicodeOK = true
	})
	return unicodeOK
}

// ColorTerminal reports whether stdout supports ANSI color.
func ColorTerminal() bool {
	colorOnce.Do(func() {
		if os.Getenv("NO_COLOR") != "" {
			return
		}
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return
		}
		colorOK = termenv.DefaultOutput().Profile != termenv.Ascii
	})
	return colorOK
}

// Icon returns unicode when the terminal supports it, ascii otherwise.
// Use at every call site that renders special characters:
// ui.Icon("✓", "[+]")
func Icon(unicode, ascii string) string {
	if UnicodeTerminal() {
		return unicode
	}
	return ascii
}
