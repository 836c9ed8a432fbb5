package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	strike = "\033[9m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"

	symCheck = "✔"
	symCross = "✖"
)

var (
	forceColor   bool
	disableColor bool
)

// SetColorForcing overrides TTY detection: force wins unless disable is set.
func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

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

// C wraps s in color when stdout is a terminal (or color is forced).
func C(color, s string) string {
	return colorFor(os.Stdout, color, s)
}

func colorFor(w io.Writer, color, s string) string {
	if disableColor || color == "" {
		return s
	}
	if forceColor || isTTY(w) {
		return color + s + reset
	}
	return s
}

// OK prints a success line to w.
func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, colorFor(w, current.Success, symCheck+" "+msg))
}

// Fail prints an error line to w.
func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, colorFor(w, current.Error, symCross+" "+msg))
}
