package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
}

type zeroLogger struct {
	logger zerolog.Logger
}

// New builds a Logger writing to the named output ("stdout" or "stderr").
// Format "text" selects the human readable console writer, anything else
// emits JSON lines.
func New(level, format, output string) Logger {
	var w io.Writer = os.Stderr
	if output == "stdout" {
		w = os.Stdout
	}
	return NewWithWriter(w, level, format)
}

func NewWithWriter(w io.Writer, level, format string) Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if format == "text" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	l, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		l = zerolog.InfoLevel
	}

	z := zerolog.New(w).Level(l).With().Timestamp().Logger()

	return &zeroLogger{logger: z}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &zeroLogger{logger: zerolog.Nop()}
}

func (l *zeroLogger) Debug(msg string, keyvals ...interface{}) {
	l.log(l.logger.Debug(), msg, keyvals...)
}

func (l *zeroLogger) Info(msg string, keyvals ...interface{}) {
	l.log(l.logger.Info(), msg, keyvals...)
}

func (l *zeroLogger) Warn(msg string, keyvals ...interface{}) {
	l.log(l.logger.Warn(), msg, keyvals...)
}

func (l *zeroLogger) Error(msg string, keyvals ...interface{}) {
	l.log(l.logger.Error(), msg, keyvals...)
}

func (l *zeroLogger) log(e *zerolog.Event, msg string, keyvals ...interface{}) {
	if e == nil {
		return
	}

	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		if err, isErr := keyvals[i+1].(error); isErr {
			e.AnErr(key, err)
			continue
		}
		e.Interface(key, keyvals[i+1])
	}

	e.Msg(msg)
}
