// Package logging wraps zerolog into the tagged, level-filtered,
// multi-sink logger the spec's re-architecture notes call for in
// place of a singleton logger registry: a single *Logger value is
// constructed once and passed by reference into every component,
// rather than reached through a global.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is a thin, component-tagged wrapper around zerolog.Logger.
// Each logging subsystem (server, connection, command) gets its own
// tagged Logger via With(), all fanning out to the same sinks.
type Logger struct {
	zl zerolog.Logger
}

// New builds a root Logger writing to every sink in writers (console,
// file, or both — NewConsoleWriter below is the usual first entry) at
// the given minimum level.
func New(level zerolog.Level, writers ...io.Writer) *Logger {
	var w io.Writer
	switch len(writers) {
	case 0:
		w = os.Stdout
	case 1:
		w = writers[0]
	default:
		w = zerolog.MultiLevelWriter(writers...)
	}

	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// NewConsoleWriter returns a human-readable, colorized console sink
// suitable for local development; production deployments typically
// pass os.Stdout directly (or a file) to New instead for structured
// JSON output.
func NewConsoleWriter(out io.Writer) io.Writer {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
}

// With returns a child Logger tagged with component, e.g.
// root.With("connection") so every log line from the connection
// handler carries component=connection.
func (l *Logger) With(component string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", component).Logger()}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
