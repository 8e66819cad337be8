package evaluator

import (
	"io"

	"github.com/idlab-discover/TrustScore-cli/internal/logging"
	"github.com/idlab-discover/TrustScore-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Evaluate:", PrefixColor: ui.FgCyan}

// SetLogger sets an optional destination for evaluation logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(link string, format string, args ...any) {
	logger.Logf(link, format, args...)
}
