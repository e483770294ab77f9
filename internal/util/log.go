package util

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// ANSI color codes used for CLI output.
const (
	reset    = "\033[0m"
	bold     = "\033[1m"
	green    = "\033[32m"
	yellow   = "\033[33m"
	boldRed  = "\033[1;31m"
	boldCyan = "\033[1;36m"
)

// colorEnabled reports whether stderr is a TTY and NO_COLOR is not set.
var colorEnabled = sync.OnceValue(func() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
})

func colorize(c, msg string) string {
	if !colorEnabled() {
		return msg
	}
	return c + msg + reset
}

// Log prints an informational message to stderr with a cyan "==>" prefix.
func Log(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", colorize(boldCyan, "==>"), fmt.Sprintf(msg, args...))
}

// Success prints a success message to stderr with a green "==>" prefix.
func Success(msg string, args ...interface{}) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", colorize(green, "==>"), colorize(green, formatted))
}

// Warn prints a warning message to stderr.
func Warn(msg string, args ...interface{}) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", colorize(yellow, "WARN:"), colorize(yellow, formatted))
}

// Section prints a bold section header to stderr (e.g. "==> dist check").
func Section(msg string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, colorize(bold, "==> "+fmt.Sprintf(msg, args...)))
}

// Die prints an error message to stderr and exits with status 1.
func Die(msg string, args ...interface{}) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", colorize(boldRed, "ERROR:"), colorize(boldRed, formatted))
	os.Exit(1)
}
