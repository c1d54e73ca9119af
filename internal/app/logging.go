package app

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/blackwell-systems/tasktimer/internal/session"
)

// logger is replaced before every command runs.
var logger = newLogger(os.Stderr, false)

// newLogger returns a text logger on w. Only warnings and errors are shown
// unless verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// logSkipped reports each session record the engine will exclude.
func logSkipped(rejected []error) {
	for _, err := range rejected {
		var verr *session.ValidationError
		if errors.As(err, &verr) {
			logger.Warn("skipping invalid session", "id", verr.SessionID, "reason", verr.Reason)
			continue
		}
		logger.Warn("skipping invalid session", "err", err)
	}
}
