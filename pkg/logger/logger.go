package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"doc-ingest/internal/domain"

	"github.com/phuslu/log"
)

// AppLogger implements the domain.Logger interface on top of phuslu/log
type AppLogger struct {
	logger log.Logger
}

// NewLogger creates a logger writing to stdout.
// format is "json" or "console" (default).
func NewLogger(levelStr, format string) domain.Logger {
	return NewLoggerWithWriter(levelStr, format, os.Stdout)
}

// NewLoggerWithWriter creates a logger writing to w.
func NewLoggerWithWriter(levelStr, format string, w io.Writer) domain.Logger {
	var writer log.Writer
	if strings.EqualFold(format, "json") {
		writer = &log.IOWriter{Writer: w}
	} else {
		writer = &log.ConsoleWriter{Writer: w, QuoteString: true, EndWithMessage: true}
	}

	return &AppLogger{
		logger: log.Logger{
			Level:      parseLogLevel(levelStr),
			TimeFormat: "2006-01-02 15:04:05",
			Writer:     writer,
		},
	}
}

// Info logs an info message
func (l *AppLogger) Info(msg string, fields ...interface{}) {
	withFields(l.logger.Info(), fields).Msg(msg)
}

// Error logs an error message
func (l *AppLogger) Error(msg string, err error, fields ...interface{}) {
	withFields(l.logger.Error().Err(err), fields).Msg(msg)
}

// Debug logs a debug message
func (l *AppLogger) Debug(msg string, fields ...interface{}) {
	withFields(l.logger.Debug(), fields).Msg(msg)
}

// Warn logs a warning message
func (l *AppLogger) Warn(msg string, fields ...interface{}) {
	withFields(l.logger.Warn(), fields).Msg(msg)
}

// withFields attaches alternating key/value pairs. A trailing key without a
// value is dropped.
func withFields(e *log.Entry, fields []interface{}) *log.Entry {
	if e == nil {
		return nil
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprint(fields[i])
		}
		if err, isErr := fields[i+1].(error); isErr {
			e = e.Str(key, err.Error())
			continue
		}
		e = e.Any(key, fields[i+1])
	}
	return e
}

// parseLogLevel converts string log level to a phuslu level
func parseLogLevel(levelStr string) log.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
