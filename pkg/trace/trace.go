// Package trace provides the context-carried tracing facility used across
// tumbler. A Tracer travels in the context.Context, so library code never
// needs a logger parameter: it recovers the tracer with FromContext and
// narrows it with WithPrefix to tag its own messages.
package trace

import (
	"context"
	"fmt"
	"log"
	"os"
)

// LogLevel represents tracing verbosity level
type LogLevel int

const (
	// LogLevelNormal for regular user-facing messages
	LogLevelNormal LogLevel = iota
	// LogLevelVerbose for detailed debug output
	LogLevelVerbose
	// LogLevelTrace for maximum verbosity, including per-read engine output
	LogLevelTrace
)

type traceKeyType string

const traceKey traceKeyType = "tracer"

// Tracer provides a context-aware tracing interface
type Tracer struct {
	prefix  string
	level   LogLevel
	verbose bool
}

// NewTracer creates a new tracer instance
func NewTracer(prefix string, level LogLevel) *Tracer {
	return &Tracer{
		prefix:  prefix,
		level:   level,
		verbose: level >= LogLevelVerbose,
	}
}

// WithContext adds the tracer to the given context
func WithContext(ctx context.Context, tracer *Tracer) context.Context {
	return context.WithValue(ctx, traceKey, tracer)
}

// FromContext extracts the tracer from the context, returning a default
// normal-level tracer when the context carries none.
func FromContext(ctx context.Context) *Tracer {
	if tracer, ok := ctx.Value(traceKey).(*Tracer); ok {
		return tracer
	}
	return NewTracer("", LogLevelNormal)
}

// WithPrefix creates a new tracer with the given prefix, inheriting the
// verbosity of the receiver.
func (t *Tracer) WithPrefix(prefix string) *Tracer {
	return &Tracer{
		prefix:  prefix,
		level:   t.level,
		verbose: t.verbose,
	}
}

// SetVerbose updates the verbose flag
func (t *Tracer) SetVerbose(verbose bool) {
	t.verbose = verbose
	if verbose {
		t.level = LogLevelVerbose
	} else {
		t.level = LogLevelNormal
	}
}

// IsVerbose returns whether verbose tracing is enabled
func (t *Tracer) IsVerbose() bool {
	return t.verbose
}

// Infof logs a formatted message at normal level
func (t *Tracer) Infof(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if t.prefix != "" {
		log.Printf("%s: %s", t.prefix, msg)
	} else {
		log.Print(msg)
	}
}

// Debugf logs a formatted message only if verbose is enabled
func (t *Tracer) Debugf(format string, args ...interface{}) {
	if !t.verbose {
		return
	}
	msg := fmt.Sprintf(format, args...)
	log.Printf("%s: %s", t.prefix, msg)
}

// Tracef logs a message at the TRACE level (most verbose). Hot paths such
// as per-read logging use this level so that -verbose stays readable.
func (t *Tracer) Tracef(format string, args ...interface{}) {
	if t.level < LogLevelTrace {
		return
	}
	msg := fmt.Sprintf(format, args...)
	log.Printf("%s TRACE: %s", t.prefix, msg)
}

// Warnf logs a formatted warning at normal level
func (t *Tracer) Warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if t.prefix != "" {
		log.Printf("%s WARNING: %s", t.prefix, msg)
	} else {
		log.Printf("WARNING: %s", msg)
	}
}

// Error logs an error message
func (t *Tracer) Error(err error) {
	if t.prefix != "" {
		log.Printf("%s ERROR: %v", t.prefix, err)
	} else {
		log.Printf("ERROR: %v", err)
	}
}

// Fatal logs a fatal error and exits
func (t *Tracer) Fatal(err error) {
	if t.prefix != "" {
		log.Fatalf("%s FATAL: %v", t.prefix, err)
	} else {
		log.Fatalf("FATAL: %v", err)
	}
	os.Exit(1)
}
