package estimator

import (
	"io"

	"github.com/idlab-discover/TrustScore-cli/internal/logging"
	"github.com/idlab-discover/TrustScore-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Size:", PrefixColor: ui.FgYellow}

// SetLogger sets an optional destination for size estimation logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(id string, format string, args ...any) {
	logger.Logf(id, format, args...)
}
