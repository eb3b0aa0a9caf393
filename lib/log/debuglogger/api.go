package debuglogger

import (
	"github.com/osprey-linux/installer/lib/log"
)

type Logger struct {
	level int16
	log.Logger
}

// New will create a Logger from an existing log.Logger, adding methods for
// debug logs. Debug messages will be logged or ignored depending on their
// debug level. By default, the max debug level is -1, meaning all debug logs
// are dropped.
func New(logger log.Logger) *Logger {
	return &Logger{level: -1, Logger: logger}
}

// Upgrade will upgrade a log.Logger to a log.DebugLogger. If logger is
// already a log.DebugLogger it is simply returned, otherwise the logger is
// wrapped with New.
func Upgrade(logger log.Logger) log.DebugLogger {
	if debugLogger, ok := logger.(log.DebugLogger); ok {
		return debugLogger
	}
	return New(logger)
}

// Debug will call the Print method of the underlying logger if level is less
// than or equal to the max debug level of the Logger.
func (l *Logger) Debug(level uint8, v ...interface{}) {
	l.debug(level, v...)
}

// Debugf will call the Printf method of the underlying logger if level is
// less than or equal to the max debug level of the Logger.
func (l *Logger) Debugf(level uint8, format string, v ...interface{}) {
	l.debugf(level, format, v...)
}

// Debugln will call the Println method of the underlying logger if level is
// less than or equal to the max debug level of the Logger.
func (l *Logger) Debugln(level uint8, v ...interface{}) {
	l.debugln(level, v...)
}

// GetLevel gets the current max debug level.
func (l *Logger) GetLevel() int16 {
	return l.level
}

// SetLevel sets the max debug level. Debug messages with a level greater
// than the max debug level will not be logged.
func (l *Logger) SetLevel(maxLevel int16) {
	l.level = maxLevel
}
