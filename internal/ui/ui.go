package ui

// Raw ANSI color codes used by the prefix loggers. Terminal views use the
// lipgloss styles in styles.go.
const (
	Reset      = "\033[0m"
	LegacyBold = "\033[1m"
	FgCyan     = "\033[36m"
	FgGreen    = "\033[32m"
	FgMagenta  = "\033[35m"
	FgYellow   = "\033[33m"
	FgRed      = "\033[31m"
)

// Color wraps a string with the given ANSI code.
func Color(s string, code string) string {
	return code + s + Reset
}
