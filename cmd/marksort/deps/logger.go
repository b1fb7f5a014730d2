package deps

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/papercomputeco/marksort/pkg/logger"
)

// NewLogger builds the command logger: colorized when stderr is a terminal,
// JSON otherwise. Debug also reports the caller of every record. A non-empty
// logFile adds a JSON copy of every record, appended to that file. The
// returned closer releases the file.
func NewLogger(debug bool, logFile string) (*slog.Logger, func() error, error) {
	console := logger.New(
		logger.WithWriter(os.Stderr),
		logger.WithDebug(debug),
		logger.WithSource(debug),
		logger.WithPretty(isTerminal(os.Stderr)),
		logger.WithJSON(!isTerminal(os.Stderr)),
	)

	if logFile == "" {
		return console, func() error { return nil }, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	file := logger.New(
		logger.WithWriter(f),
		logger.WithDebug(debug),
		logger.WithSource(debug),
		logger.WithJSON(true),
	)

	return logger.Multi(console, file), f.Close, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
