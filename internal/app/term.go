package app

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// isTTY reports whether w is a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// initColor configures color output based on flags and terminal detection.
func initColor(noColor bool, w io.Writer) {
	if noColor || !isTTY(w) {
		color.NoColor = true
	}
}
