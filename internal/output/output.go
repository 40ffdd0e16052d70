// Package output renders command results for the CLI.
//
// Structured formats wrap every result in the same envelope: a success flag,
// an optional data payload, optional error information and a timestamp.
// The text format is meant for terminals and prints plain values and tables.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Format selects how command results are rendered.
type Format string

// Supported output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid output format %q: must be one of text, json, yaml", s)
	}
}

// Structured reports whether the format uses the response envelope.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatYAML
}

// Response is the envelope for structured command output. Data and Error are
// mutually exclusive.
type Response struct {
	Success   bool      `json:"success" yaml:"success"`
	Data      any       `json:"data,omitempty" yaml:"data,omitempty"`
	Error     *Error    `json:"error,omitempty" yaml:"error,omitempty"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Error is structured error information in a Response.
type Error struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	Details any    `json:"details,omitempty" yaml:"details,omitempty"`
}

// WriteSuccess writes data to w. Structured formats wrap it in a success
// envelope; the text format prints the value followed by a newline.
func WriteSuccess(w io.Writer, format Format, data any) error {
	if !format.Structured() {
		_, err := fmt.Fprintln(w, data)
		return err
	}

	return encode(w, format, Response{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// WriteError writes a failure to w. Structured formats write an error
// envelope; the text format prints "Error: <message>".
func WriteError(w io.Writer, format Format, code, message string, details any) error {
	if !format.Structured() {
		_, err := fmt.Fprintf(w, "Error: %s\n", message)
		return err
	}

	return encode(w, format, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now(),
	})
}

func encode(w io.Writer, format Format, response Response) error {
	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(response); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(response)
}
