package errlog

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"stock-manager/core/apperror"
)

// Config holds configuration for the durable error log.
type Config struct {
	// Path is the file the error log is appended to.
	Path string `mapstructure:"path" default:"error.log"`
}

// Entry is one recorded failure.
type Entry struct {
	// Time is when the failure was recorded, in UTC.
	Time time.Time `json:"time"`
	// Op is the originating operation name.
	Op string `json:"op"`
	// Kind is the structured error kind.
	Kind string `json:"kind"`
	// Error is the rendered error text.
	Error string `json:"error"`
}

// Log appends failures as JSON lines to a file. Writes are serialized; a
// write failure is returned to the caller but never panics, since the error
// log must not take down the action it is diagnosing.
type Log struct {
	mu sync.Mutex
	w  io.WriteCloser
}

// Open opens (or creates) the append-only error log at path.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &Log{w: f}, nil
}

// NewWithWriter wraps an arbitrary writer, used by tests.
func NewWithWriter(w io.WriteCloser) *Log {
	return &Log{w: w}
}

// Record appends one entry for the given error. The operation name and kind
// are taken from the error chain; plain errors are recorded with an empty op
// and the internal kind. A nil error is a no-op.
func (l *Log) Record(err error) error {
	if err == nil {
		return nil
	}
	entry := Entry{
		Time:  time.Now().UTC(),
		Op:    apperror.OpOf(err),
		Kind:  string(apperror.KindOf(err)),
		Error: err.Error(),
	}
	line, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		return marshalErr
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, writeErr := l.w.Write(line)
	return writeErr
}

// Close closes the underlying file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Close()
}
