package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. JSON output so audit and
// operational lines are machine-ingestible.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
