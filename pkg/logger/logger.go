// Package logger provides the level-gated, field-annotated logger used
// across the simulation core, wrapping charmbracelet/log behind a small
// package-level API.
package logger

import (
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// Fields is a lightweight key/value bag attached to a log line. Odd-length
// field lists drop their trailing key, matching charmbracelet/log's own
// With(...) contract.
type Fields map[string]interface{}

var std = charmlog.NewWithOptions(os.Stdout, charmlog.Options{
	ReportTimestamp: true,
})

func init() {
	std.SetLevel(charmlog.InfoLevel)
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		SetLevel(parseLevel(level))
	}
}

func parseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DEBUG
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

func withFields(fields Fields) *charmlog.Logger {
	if len(fields) == 0 {
		return std
	}
	kv := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	return std.With(kv...)
}

func Debug(msg string, fields ...Fields) {
	withFields(mergeFields(fields)).Debug(msg)
}

func Info(msg string, fields ...Fields) {
	withFields(mergeFields(fields)).Info(msg)
}

func Warn(msg string, fields ...Fields) {
	withFields(mergeFields(fields)).Warn(msg)
}

func Error(msg string, fields ...Fields) {
	withFields(mergeFields(fields)).Error(msg)
}

// Fatal logs at FATAL and exits the process. Reserved for cmd/ entry points;
// engine packages should return errors instead.
func Fatal(msg string, fields ...Fields) {
	withFields(mergeFields(fields)).Fatal(msg)
}

func mergeFields(fields []Fields) Fields {
	if len(fields) == 0 {
		return nil
	}
	if len(fields) == 1 {
		return fields[0]
	}
	merged := Fields{}
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}
	return merged
}

// SetLevel sets the logging level.
func SetLevel(level Level) {
	switch level {
	case DEBUG:
		std.SetLevel(charmlog.DebugLevel)
	case WARN:
		std.SetLevel(charmlog.WarnLevel)
	case ERROR:
		std.SetLevel(charmlog.ErrorLevel)
	default:
		std.SetLevel(charmlog.InfoLevel)
	}
}

// SetOutput sets the output destination for the logger.
func SetOutput(output *os.File) {
	std.SetOutput(output)
}

// ForSave returns a field helper pre-populated with a save_id, so call
// sites in phase/simulation don't repeat it on every line.
func ForSave(saveID string) Fields {
	return Fields{"save_id": saveID}
}
