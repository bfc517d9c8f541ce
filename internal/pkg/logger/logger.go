package logger

import (
	"io"
	"log"
	"os"
)

// StdLogger is a lightweight implementation backed by Go's log package.
// Debug and Info are emitted only when verbose; Warn and Error always reach the writer.
type StdLogger struct {
	verbose bool
	out     *log.Logger
}

// NewStd creates a StdLogger writing to stderr.
func NewStd(verbose bool) *StdLogger {
	return New(os.Stderr, verbose)
}

// New creates a StdLogger writing to w.
func New(w io.Writer, verbose bool) *StdLogger {
	flags := 0
	if verbose {
		flags = log.LstdFlags
	}
	return &StdLogger{verbose: verbose, out: log.New(w, "gitme: ", flags)}
}

// Verbose reports whether debug output is enabled.
func (l *StdLogger) Verbose() bool {
	return l.verbose
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.out.Println("[DEBUG]", msg, fieldsOrEmpty(fields))
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.out.Println("[INFO]", msg, fieldsOrEmpty(fields))
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.out.Println("[WARN]", msg, fieldsOrEmpty(fields))
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.out.Println("[ERROR]", msg, err, fieldsOrEmpty(fields))
}

func fieldsOrEmpty(fields map[string]interface{}) interface{} {
	if len(fields) == 0 {
		return ""
	}
	return fields
}
