package logger

import (
	"fmt"
	"strings"
)

var globalLogger = NewDefault()

// ParseLevel parses a log level name, case insensitive
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO", "":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "FATAL":
		return FATAL, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", level)
	}
}

// ParseFormat parses a log format name. "auto" selects text for the local
// environment and JSON everywhere else.
func ParseFormat(format, environment string) (LogFormat, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return JSONFormat, nil
	case "text":
		return TextFormat, nil
	case "auto", "":
		if environment == "local" {
			return TextFormat, nil
		}
		return JSONFormat, nil
	default:
		return JSONFormat, fmt.Errorf("unknown log format %q", format)
	}
}

// Configure applies level and format to the global logger
func Configure(level, format, environment string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	f, err := ParseFormat(format, environment)
	if err != nil {
		return err
	}
	globalLogger.SetLevel(lvl)
	globalLogger.SetFormat(f)
	return nil
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	return globalLogger
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	globalLogger = logger
}

// Component returns a component logger derived from the global logger
func Component(name string) *Logger {
	return globalLogger.WithComponent(name)
}

// Debug logs a debug message using the global logger
func Debug(message string, fields ...Fields) {
	globalLogger.log(1, DEBUG, message, firstFields(fields), nil)
}

// Info logs an info message using the global logger
func Info(message string, fields ...Fields) {
	globalLogger.log(1, INFO, message, firstFields(fields), nil)
}

// Warn logs a warning message using the global logger
func Warn(message string, fields ...Fields) {
	globalLogger.log(1, WARN, message, firstFields(fields), nil)
}

// Error logs an error message using the global logger
func Error(message string, err error, fields ...Fields) {
	globalLogger.log(1, ERROR, message, firstFields(fields), err)
}

// Fatal logs a fatal message using the global logger and exits
func Fatal(message string, err error, fields ...Fields) {
	globalLogger.log(1, FATAL, message, firstFields(fields), err)
}
