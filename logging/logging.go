// Package logging adapts zerolog to office.Logger.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/VantageDataChat/pptassist/office"
)

// Logger writes office log calls as zerolog events.
type Logger struct {
	zl zerolog.Logger
}

var _ office.Logger = (*Logger)(nil)

// New returns a logger writing to w at the given level. pretty selects the
// human-readable console format instead of JSON lines.
func New(w io.Writer, level zerolog.Level, pretty bool) *Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	}
	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// FromZerolog wraps an existing zerolog logger.
func FromZerolog(zl zerolog.Logger) *Logger {
	return &Logger{zl: zl}
}

// ParseLevel maps a config level name onto zerolog. Unknown names fall back
// to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

// Zerolog returns the underlying logger.
func (l *Logger) Zerolog() zerolog.Logger { return l.zl }

func (l *Logger) Debug(msg string, kv ...any) { fields(l.zl.Debug(), kv).Msg(msg) }
func (l *Logger) Info(msg string, kv ...any)  { fields(l.zl.Info(), kv).Msg(msg) }
func (l *Logger) Warn(msg string, kv ...any)  { fields(l.zl.Warn(), kv).Msg(msg) }

func (l *Logger) Error(msg string, err error, kv ...any) {
	fields(l.zl.Error().Err(err), kv).Msg(msg)
}

// fields adds alternating key/value pairs. A dangling value is logged under
// "extra"; non-string keys are formatted.
func fields(e *zerolog.Event, kv []any) *zerolog.Event {
	if e == nil {
		return e
	}
	for i := 0; i < len(kv); i += 2 {
		if i+1 == len(kv) {
			e = e.Interface("extra", kv[i])
			break
		}
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		e = e.Interface(key, kv[i+1])
	}
	return e
}
