// Package logging provides the structured application logger used by the CLI.
// Entries are written as JSON objects or as single text lines and carry a
// level, a component name and a correlation ID taken from the context.
package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"
)

// ApplicationLogger defines the interface for structured application logging.
type ApplicationLogger interface {
	Debug(ctx context.Context, message string, fields Fields)
	Info(ctx context.Context, message string, fields Fields)
	Warn(ctx context.Context, message string, fields Fields)
	Error(ctx context.Context, message string, fields Fields)
	ErrorWithError(ctx context.Context, err error, message string, fields Fields)
	WithComponent(component string) ApplicationLogger
}

// Fields represents structured logging fields.
type Fields map[string]interface{}

// Config represents logger configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// LogEntry represents the structure of JSON log entries.
type LogEntry struct {
	Timestamp     string                 `json:"timestamp"`
	Level         string                 `json:"level"`
	Message       string                 `json:"message"`
	CorrelationID string                 `json:"correlation_id,omitempty"`
	Component     string                 `json:"component,omitempty"`
	Error         string                 `json:"error,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

const (
	levelDebug = "DEBUG"
	levelInfo  = "INFO"
	levelWarn  = "WARN"
	levelError = "ERROR"
)

var levelRank = map[string]int{
	levelDebug: 0,
	levelInfo:  1,
	levelWarn:  2,
	levelError: 3,
}

type applicationLogger struct {
	config    Config
	level     int
	component string
	logger    *log.Logger
}

// NewApplicationLogger creates a logger writing to w.
func NewApplicationLogger(config Config, w io.Writer) (ApplicationLogger, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	return &applicationLogger{
		config: config,
		level:  levelRank[strings.ToUpper(config.Level)],
		logger: log.New(w, "", 0),
	}, nil
}

// Discard returns a logger that drops every entry.
func Discard() ApplicationLogger {
	return &applicationLogger{
		config: Config{Level: levelError, Format: "text"},
		level:  levelRank[levelError] + 1,
		logger: log.New(io.Discard, "", 0),
	}
}

// ValidateConfig checks the level and format of a logger configuration.
func ValidateConfig(config Config) error {
	if _, ok := levelRank[strings.ToUpper(config.Level)]; !ok {
		return fmt.Errorf("invalid log level: %s", config.Level)
	}

	if config.Format != "json" && config.Format != "text" {
		return fmt.Errorf("invalid log format: %s", config.Format)
	}

	return nil
}

// Debug logs debug messages.
func (l *applicationLogger) Debug(ctx context.Context, message string, fields Fields) {
	l.log(ctx, levelDebug, message, nil, fields)
}

// Info logs info messages.
func (l *applicationLogger) Info(ctx context.Context, message string, fields Fields) {
	l.log(ctx, levelInfo, message, nil, fields)
}

// Warn logs warning messages.
func (l *applicationLogger) Warn(ctx context.Context, message string, fields Fields) {
	l.log(ctx, levelWarn, message, nil, fields)
}

// Error logs error messages.
func (l *applicationLogger) Error(ctx context.Context, message string, fields Fields) {
	l.log(ctx, levelError, message, nil, fields)
}

// ErrorWithError logs error messages with an error object.
func (l *applicationLogger) ErrorWithError(ctx context.Context, err error, message string, fields Fields) {
	l.log(ctx, levelError, message, err, fields)
}

// WithComponent returns a logger sharing the output that tags entries with component.
func (l *applicationLogger) WithComponent(component string) ApplicationLogger {
	return &applicationLogger{
		config:    l.config,
		level:     l.level,
		component: component,
		logger:    l.logger,
	}
}

func (l *applicationLogger) log(ctx context.Context, level, message string, err error, fields Fields) {
	if levelRank[level] < l.level {
		return
	}

	entry := LogEntry{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Level:         level,
		Message:       message,
		CorrelationID: CorrelationIDFromContext(ctx),
		Component:     l.component,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if len(fields) > 0 {
		entry.Metadata = make(map[string]interface{}, len(fields))
		for key, value := range fields {
			entry.Metadata[key] = value
		}
	}

	if l.config.Format == "json" {
		data, marshalErr := json.Marshal(entry)
		if marshalErr != nil {
			return
		}
		l.logger.Println(string(data))
		return
	}

	l.logger.Println(formatText(entry))
}

// formatText renders an entry as "[ts] LEVEL component: message key=value ...".
func formatText(entry LogEntry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s ", entry.Timestamp, entry.Level)
	if entry.Component != "" {
		b.WriteString(entry.Component)
		b.WriteString(": ")
	}
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Metadata))
	for key := range entry.Metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, " %s=%v", key, entry.Metadata[key])
	}

	if entry.Error != "" {
		fmt.Fprintf(&b, " error=%q", entry.Error)
	}
	if entry.CorrelationID != "" {
		fmt.Fprintf(&b, " correlation_id=%s", entry.CorrelationID)
	}

	return b.String()
}
