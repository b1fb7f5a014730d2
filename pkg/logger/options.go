package logger

import (
	"io"
	"log/slog"
)

// Option configures a logger built by New.
type Option func(*config)

// WithDebug lowers the level to Debug. marksort commands pass their --debug
// flag straight through.
func WithDebug(debug bool) Option {
	return func(c *config) {
		c.level = slog.LevelInfo
		if debug {
			c.level = slog.LevelDebug
		}
	}
}

// WithPretty selects the charmbracelet/log handler, used when stderr is a
// terminal.
func WithPretty(pretty bool) Option {
	return func(c *config) { c.pretty = pretty }
}

// WithJSON selects slog's JSON handler, used by serve and for --log-file.
func WithJSON(json bool) Option {
	return func(c *config) { c.json = json }
}

// WithWriter sets the destination. The default is os.Stderr so command output
// on stdout stays clean.
func WithWriter(w io.Writer) Option {
	return func(c *config) { c.writer = w }
}

// WithSource adds the caller's file:line to every record.
func WithSource(source bool) Option {
	return func(c *config) { c.source = source }
}
