// Package zerologx adapts a zerolog.Logger to the observability.Logger
// interface so command-line tools can get leveled console output without the
// library packages depending on zerolog directly.
package zerologx

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/ereaderlab/reflow/observability"
)

// Logger forwards observability fields to an underlying zerolog.Logger.
type Logger struct {
	zl zerolog.Logger
}

// New wraps an existing zerolog.Logger.
func New(zl zerolog.Logger) *Logger {
	return &Logger{zl: zl}
}

// NewConsole builds a pretty console logger writing to w at the given level.
func NewConsole(w io.Writer, level zerolog.Level) *Logger {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

func (l *Logger) Debug(msg string, fields ...observability.Field) {
	l.emit(l.zl.Debug(), msg, fields)
}

func (l *Logger) Info(msg string, fields ...observability.Field) {
	l.emit(l.zl.Info(), msg, fields)
}

func (l *Logger) Warn(msg string, fields ...observability.Field) {
	l.emit(l.zl.Warn(), msg, fields)
}

func (l *Logger) Error(msg string, fields ...observability.Field) {
	l.emit(l.zl.Error(), msg, fields)
}

func (l *Logger) With(fields ...observability.Field) observability.Logger {
	ctx := l.zl.With()
	for _, f := range fields {
		ctx = ctx.Interface(f.Key(), f.Value())
	}
	return &Logger{zl: ctx.Logger()}
}

func (l *Logger) emit(ev *zerolog.Event, msg string, fields []observability.Field) {
	for _, f := range fields {
		switch v := f.Value().(type) {
		case string:
			ev = ev.Str(f.Key(), v)
		case int:
			ev = ev.Int(f.Key(), v)
		case bool:
			ev = ev.Bool(f.Key(), v)
		case error:
			ev = ev.AnErr(f.Key(), v)
		default:
			ev = ev.Interface(f.Key(), v)
		}
	}
	ev.Msg(msg)
}
