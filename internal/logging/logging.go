package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/idlab-discover/TrustScore-cli/internal/ui"
)

// Logger is a tiny opt-in logger used across internal packages.
// When Writer is nil, logging is disabled.
//
// The output format is:
//
//	<ColoredPrefix> id=<artifactID> <formattedMessage>\n
//
// where <artifactID> is trimmed and defaults to "(unknown)".
type Logger struct {
	Writer io.Writer

	PrefixText  string
	PrefixColor string

	// OmitID controls whether the artifact ID field is written.
	// When false (default), output includes: "id=<id>".
	OmitID bool
}

func (l *Logger) SetWriter(w io.Writer) { l.Writer = w }

func (l *Logger) Enabled() bool { return l != nil && l.Writer != nil }

func (l *Logger) Logf(artifactID string, format string, args ...any) {
	if l == nil || l.Writer == nil {
		return
	}
	prefix := l.PrefixText
	if prefix == "" {
		prefix = "Log:"
	}
	if l.PrefixColor != "" {
		prefix = ui.Color(prefix, l.PrefixColor)
	}
	msg := fmt.Sprintf(format, args...)
	if l.OmitID {
		fmt.Fprintf(l.Writer, "%s %s\n", prefix, msg)
		return
	}

	id := strings.TrimSpace(artifactID)
	if id == "" {
		id = "(unknown)"
	}
	fmt.Fprintf(l.Writer, "%s id=%s %s\n", prefix, id, msg)
}
