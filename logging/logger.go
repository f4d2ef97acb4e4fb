// Package logging handles logging within the metastats engine and its surrounding
// pipeline demo. It intentionally stays a thin wrapper over the standard log package —
// the engine never does enough logging per call to justify a structured logger, and
// callers embedding this module are expected to supply their own LoggerInterface
// implementation when they already have one.
package logging

import (
	"io"
	"log"
	"os"
)

// LoggerInterface is the logging contract the metastats engine and the demo pipeline
// depend on. Any logger with these four levels can be plugged in.
type LoggerInterface interface {
	Debug(msg ...interface{})
	Info(msg ...interface{})
	Warning(msg ...interface{})
	Error(msg ...interface{})
}

// LoggerOptions is passed to NewLogger to set up a logger.
// CommonWriter and ErrorWriter can be <nil>, in which case they default to os.Stdout.
type LoggerOptions struct {
	CommonWriter io.Writer
	ErrorWriter  io.Writer
}

// Logger encapsulates four different loggers, one per level, and forwards each
// message to the appropriate one.
type Logger struct {
	debugLogger   log.Logger
	infoLogger    log.Logger
	warningLogger log.Logger
	errorLogger   log.Logger
}

// Debug logs a message with Debug level.
func (l *Logger) Debug(msg ...interface{}) { l.debugLogger.Println(msg...) }

// Info logs a message with Info level.
func (l *Logger) Info(msg ...interface{}) { l.infoLogger.Println(msg...) }

// Warning logs a message with Warning level.
func (l *Logger) Warning(msg ...interface{}) { l.warningLogger.Println(msg...) }

// Error logs a message with Error level.
func (l *Logger) Error(msg ...interface{}) { l.errorLogger.Println(msg...) }

// NewLogger instantiates a new Logger from the given options.
func NewLogger(options *LoggerOptions) *Logger {
	if options == nil {
		options = &LoggerOptions{}
	}
	errorWriter := options.ErrorWriter
	commonWriter := options.CommonWriter

	if errorWriter == nil {
		errorWriter = os.Stdout
	}
	if commonWriter == nil {
		commonWriter = os.Stdout
	}

	return &Logger{
		debugLogger:   *log.New(commonWriter, "DEBUG - ", 0),
		infoLogger:    *log.New(commonWriter, "INFO - ", 0),
		warningLogger: *log.New(commonWriter, "WARNING - ", 0),
		errorLogger:   *log.New(errorWriter, "ERROR - ", 0),
	}
}

// NopLogger discards everything. Used as the default when no logger is configured.
type NopLogger struct{}

func (NopLogger) Debug(msg ...interface{})   {}
func (NopLogger) Info(msg ...interface{})    {}
func (NopLogger) Warning(msg ...interface{}) {}
func (NopLogger) Error(msg ...interface{})   {}
