package util

import "strings"

// ShellQuote quotes a string for safe use in a shell command line: wraps it
// in single quotes, escaping embedded single quotes.
func ShellQuote(s string) string {
	escaped := strings.ReplaceAll(s, "'", "'\\''")
	return "'" + escaped + "'"
}

// QuoteCommand quotes every argument of a command line and joins them, ready
// to hand to `su -c`.
func QuoteCommand(parts []string) string {
	quoted := make([]string, len(parts))
	for i, part := range parts {
		quoted[i] = ShellQuote(part)
	}
	return strings.Join(quoted, " ")
}
