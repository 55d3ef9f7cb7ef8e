package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// LogFormat represents the output format for logs
type LogFormat int

const (
	JSONFormat LogFormat = iota
	TextFormat
)

// Fields carries structured key/value context for a log line
type Fields map[string]interface{}

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Component string `json:"component,omitempty"`
	Caller    string `json:"caller,omitempty"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Logger is a leveled structured logger. Loggers derived with WithComponent
// or With share the parent's output and its write lock.
type Logger struct {
	state     *state
	component string
	fields    Fields
}

type state struct {
	mu     sync.Mutex
	level  LogLevel
	format LogFormat
	output io.Writer
	exit   func(int)
}

// Config holds logger configuration
type Config struct {
	Level     LogLevel
	Format    LogFormat
	Output    io.Writer
	Component string
}

// New creates a new logger with the given configuration
func New(config Config) *Logger {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	return &Logger{
		state: &state{
			level:  config.Level,
			format: config.Format,
			output: config.Output,
			exit:   os.Exit,
		},
		component: config.Component,
	}
}

// NewDefault creates a logger with default configuration
func NewDefault() *Logger {
	return New(Config{
		Level:  INFO,
		Format: JSONFormat,
		Output: os.Stdout,
	})
}

// WithComponent returns a logger tagging every entry with component
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{state: l.state, component: component, fields: l.fields}
}

// With returns a logger that adds fields to every entry
func (l *Logger) With(fields Fields) *Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{state: l.state, component: l.component, fields: merged}
}

// SetLevel sets the minimum log level
func (l *Logger) SetLevel(level LogLevel) {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	l.state.level = level
}

// SetFormat sets the log output format
func (l *Logger) SetFormat(format LogFormat) {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	l.state.format = format
}

// SetOutput redirects log output
func (l *Logger) SetOutput(w io.Writer) {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	l.state.output = w
}

// Enabled reports whether entries at level would be written
func (l *Logger) Enabled(level LogLevel) bool {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	return level >= l.state.level
}

// log is the internal logging method; depth is the number of frames between
// the public API and this function
func (l *Logger) log(depth int, level LogLevel, message string, fields Fields, err error) {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()

	if level < l.state.level {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   message,
		Component: l.component,
		Caller:    caller(depth + 1),
		Fields:    mergeFields(l.fields, fields),
	}
	if err != nil {
		entry.Error = err.Error()
	}

	var output string
	switch l.state.format {
	case JSONFormat:
		jsonBytes, marshalErr := json.Marshal(entry)
		if marshalErr != nil {
			output = formatText(entry)
		} else {
			output = string(jsonBytes) + "\n"
		}
	default:
		output = formatText(entry)
	}

	_, _ = io.WriteString(l.state.output, output)

	if level == FATAL {
		l.state.exit(1)
	}
}

// caller returns file:line of the frame skip levels above its caller
func caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

func mergeFields(base, extra Fields) Fields {
	if len(base) == 0 {
		return extra
	}
	if len(extra) == 0 {
		return base
	}
	merged := make(Fields, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// formatText formats a log entry as human-readable text
func formatText(entry LogEntry) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("[%s] %s", entry.Timestamp, entry.Level))

	if entry.Component != "" {
		parts = append(parts, fmt.Sprintf("[%s]", entry.Component))
	}

	parts = append(parts, entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fieldParts := make([]string, 0, len(keys))
		for _, k := range keys {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%v", k, entry.Fields[k]))
		}
		parts = append(parts, fmt.Sprintf("fields={%s}", strings.Join(fieldParts, ", ")))
	}

	if entry.Error != "" {
		parts = append(parts, fmt.Sprintf("error=%s", entry.Error))
	}

	if entry.Caller != "" {
		parts = append(parts, fmt.Sprintf("(%s)", entry.Caller))
	}

	return strings.Join(parts, " ") + "\n"
}

func firstFields(fields []Fields) Fields {
	if len(fields) > 0 {
		return fields[0]
	}
	return nil
}

// Debug logs a debug message
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(1, DEBUG, message, firstFields(fields), nil)
}

// Info logs an info message
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(1, INFO, message, firstFields(fields), nil)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(1, WARN, message, firstFields(fields), nil)
}

// Error logs an error message
func (l *Logger) Error(message string, err error, fields ...Fields) {
	l.log(1, ERROR, message, firstFields(fields), err)
}

// Fatal logs a fatal message and exits the program
func (l *Logger) Fatal(message string, err error, fields ...Fields) {
	l.log(1, FATAL, message, firstFields(fields), err)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(1, INFO, fmt.Sprintf(format, args...), nil, nil)
}
