package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgCyan   = "\033[36m"
	fgRed    = "\033[31m"
)

var (
	forceColor   bool
	disableColor bool
)

// Out and Err are where CLI output goes.
var (
	Out io.Writer = os.Stdout
	Err io.Writer = os.Stderr
)

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

func isTTY() bool {
	f, ok := Out.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func C(color, s string) string {
	if disableColor || color == "" {
		return s
	}
	if forceColor || isTTY() {
		return color + s + reset
	}
	return s
}

func OK(msg string)   { fmt.Fprintln(Out, C(Current().Success, Current().SymOK+" "+msg)) }
func Warn(msg string) { fmt.Fprintln(Err, C(Current().Warning, Current().SymWarn+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(Err, C(Current().Error, Current().SymFail+" "+msg)) }
