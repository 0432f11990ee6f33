// Package logger provides basic leveled logging for the orchestration
// layer. Data-path components take a zap.Logger instead.
package logger

import (
	"io"
	"log"
	"os"
)

// Logger defines a simple interface for logging.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
}

type defaultLogger struct {
	debugLogger *log.Logger
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	fatalLogger *log.Logger
}

const flags = log.Ldate | log.Ltime | log.Lshortfile

// levelRank orders the supported log levels.
func levelRank(level string) int {
	switch level {
	case "debug":
		return 0
	case "info":
		return 1
	case "warn":
		return 2
	case "error":
		return 3
	case "fatal":
		return 4
	default:
		return 1
	}
}

func newDefaultLogger(level string) *defaultLogger {
	rank := levelRank(level)
	handle := func(minRank int, w io.Writer) io.Writer {
		if rank > minRank {
			return io.Discard
		}
		return w
	}
	return &defaultLogger{
		debugLogger: log.New(handle(0, os.Stdout), "DEBUG: ", flags),
		infoLogger:  log.New(handle(1, os.Stdout), "INFO:  ", flags),
		warnLogger:  log.New(handle(2, os.Stdout), "WARN:  ", flags),
		errorLogger: log.New(handle(3, os.Stderr), "ERROR: ", flags),
		fatalLogger: log.New(os.Stderr, "FATAL: ", flags),
	}
}

// NewLogger creates a new Logger instance at the given level.
// level is one of "debug", "info", "warn", "error", "fatal".
func NewLogger(level string) Logger {
	return newDefaultLogger(level)
}

func (l *defaultLogger) Debug(args ...interface{}) { l.debugLogger.Println(args...) }
func (l *defaultLogger) Debugf(format string, args ...interface{}) {
	l.debugLogger.Printf(format, args...)
}
func (l *defaultLogger) Info(args ...interface{})                 { l.infoLogger.Println(args...) }
func (l *defaultLogger) Infof(format string, args ...interface{}) { l.infoLogger.Printf(format, args...) }
func (l *defaultLogger) Warn(args ...interface{})                 { l.warnLogger.Println(args...) }
func (l *defaultLogger) Warnf(format string, args ...interface{}) { l.warnLogger.Printf(format, args...) }
func (l *defaultLogger) Error(args ...interface{})                { l.errorLogger.Println(args...) }
func (l *defaultLogger) Errorf(format string, args ...interface{}) {
	l.errorLogger.Printf(format, args...)
}
func (l *defaultLogger) Fatal(args ...interface{}) { l.fatalLogger.Fatalln(args...) }
func (l *defaultLogger) Fatalf(format string, args ...interface{}) {
	l.fatalLogger.Fatalf(format, args...)
}

// Global std logger, defaulting to "info".
var std = newDefaultLogger("info")

// SetGlobalLogLevel reconfigures the global std logger's level.
func SetGlobalLogLevel(level string) {
	*std = *newDefaultLogger(level)
}

// Default returns the global std logger for callers that take a Logger.
func Default() Logger {
	return std
}

// Debug logs a debug message using the global std logger.
func Debug(args ...interface{}) { std.Debug(args...) }

// Debugf logs a debug message with formatting.
func Debugf(format string, args ...interface{}) { std.Debugf(format, args...) }

// Info logs an informational message using the global std logger.
func Info(args ...interface{}) { std.Info(args...) }

// Infof logs an informational message with formatting.
func Infof(format string, args ...interface{}) { std.Infof(format, args...) }

// Warn logs a warning message.
func Warn(args ...interface{}) { std.Warn(args...) }

// Warnf logs a warning message with formatting.
func Warnf(format string, args ...interface{}) { std.Warnf(format, args...) }

// Error logs an error message.
func Error(args ...interface{}) { std.Error(args...) }

// Errorf logs an error message with formatting.
func Errorf(format string, args ...interface{}) { std.Errorf(format, args...) }

// Fatal logs a fatal error message and exits.
func Fatal(args ...interface{}) { std.Fatal(args...) }

// Fatalf logs a fatal error message with formatting and exits.
func Fatalf(format string, args ...interface{}) { std.Fatalf(format, args...) }
