// Package logging provides the small structured logger shared by all
// components. Keep the interface tiny so any implementation can be swapped in
// (tests use testutil.DummyLogger).
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Field is a simple key/value pair for structured logging fields.
type Field struct {
	Key   string
	Value any
}

// Logger is a deliberately small, framework-agnostic logging interface.
type Logger interface {
	// Debug logs a debug-level message.
	Debug(msg string, fields ...Field)

	// Info logs an informational message.
	Info(msg string, fields ...Field)

	// Warn logs a warning.
	Warn(msg string, fields ...Field)

	// Error logs an error.
	Error(msg string, fields ...Field)

	// With returns a child logger with a different component name.
	With(fields ...Field) Logger
}

// Level is the minimum severity a logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level. Both "warn" and "warning" are
// accepted. Unknown strings fall back to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Options control a StdoutLogger. They are populated from the [logger]
// config section by the caller; this package does not read config itself.
type Options struct {
	Level Level

	// Format is "json" (one JSON object per line) or "text".
	Format string

	// MessageFormat is the text-format line template. {time}, {level} and
	// {msg} are substituted; structured fields are appended as key=value.
	MessageFormat string

	// Out defaults to os.Stdout.
	Out io.Writer
}

// StdoutLogger is the structured logger used in production. It prints one
// line per entry, JSON or templated text depending on Options.
type StdoutLogger struct {
	component string
	opts      Options

	mu  *sync.Mutex
	out io.Writer
}

// New creates a StdoutLogger. component is optional and is carried on every
// entry and on children created via With.
func New(component string, opts Options) *StdoutLogger {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.MessageFormat == "" {
		opts.MessageFormat = "{time} {level} {msg}"
	}
	if opts.Format == "" {
		opts.Format = "json"
	}
	return &StdoutLogger{
		component: component,
		opts:      opts,
		mu:        &sync.Mutex{},
		out:       opts.Out,
	}
}

// NewStdoutLogger creates a JSON logger at info level. Handy in tests and
// small tools where no config is around.
func NewStdoutLogger(component string) *StdoutLogger {
	return New(component, Options{Level: LevelInfo})
}

func (s *StdoutLogger) log(level Level, msg string, fields ...Field) {
	if level < s.opts.Level {
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)

	var line string
	if s.opts.Format == "text" {
		r := strings.NewReplacer("{time}", now, "{level}", level.String(), "{msg}", msg)
		var b strings.Builder
		b.WriteString(r.Replace(s.opts.MessageFormat))
		if s.component != "" {
			fmt.Fprintf(&b, " component=%s", s.component)
		}
		for _, f := range fields {
			fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
		}
		line = b.String()
	} else {
		type outEntry struct {
			Level     string         `json:"level"`
			Msg       string         `json:"msg"`
			Component string         `json:"component,omitempty"`
			Time      string         `json:"time"`
			Fields    map[string]any `json:"fields,omitempty"`
		}
		var m map[string]any
		if len(fields) > 0 {
			m = make(map[string]any, len(fields))
			for _, f := range fields {
				m[f.Key] = f.Value
			}
		}
		enc, err := json.Marshal(outEntry{
			Level:     level.String(),
			Msg:       msg,
			Component: s.component,
			Time:      now,
			Fields:    m,
		})
		if err != nil {
			// Fallback simple formatting if JSON marshal fails.
			line = fmt.Sprintf("%s %s %v", level, msg, m)
		} else {
			line = string(enc)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, line)
}

func (s *StdoutLogger) Debug(msg string, fields ...Field) { s.log(LevelDebug, msg, fields...) }
func (s *StdoutLogger) Info(msg string, fields ...Field)  { s.log(LevelInfo, msg, fields...) }
func (s *StdoutLogger) Warn(msg string, fields ...Field)  { s.log(LevelWarn, msg, fields...) }
func (s *StdoutLogger) Error(msg string, fields ...Field) { s.log(LevelError, msg, fields...) }

// With returns a child logger sharing the same sink. If fields include a
// "component" key its value becomes the child's component name.
func (s *StdoutLogger) With(fields ...Field) Logger {
	child := &StdoutLogger{component: s.component, opts: s.opts, mu: s.mu, out: s.out}
	for _, f := range fields {
		if f.Key == "component" {
			if str, ok := f.Value.(string); ok {
				child.component = str
			}
		}
	}
	return child
}
