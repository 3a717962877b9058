package log

import (
	"fmt"
	"log/slog"
)

// Error returns an attribute carrying the error message and, at debug level,
// its stack as rendered by github.com/pkg/errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}

	return slog.Group("error",
		slog.String("message", err.Error()),
		slog.String("stack", fmt.Sprintf("%+v", err)),
	)
}
