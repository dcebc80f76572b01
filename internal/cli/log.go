// Package cli implements the seqgram command-line interface.
//
// The CLI is built with cobra and logs through charmbracelet/log. Diagrams
// and JSON documents are written to stdout; logs and status lines go to
// stderr so that output can be piped.
//
// # Commands
//
//   - render: draw a diagram as text or JSON
//   - parse: print the parsed statements and participants
//   - layout: print the computed geometry
//   - serve: run the HTTP rendering service
//   - cache: manage the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes per-stage timings and cache hits.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at debug level with the elapsed time since the tracker
// was created, rounded to the millisecond.
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Debug(msg, append([]any{"elapsed", time.Since(p.start).Round(time.Millisecond)}, keyvals...)...)
}
