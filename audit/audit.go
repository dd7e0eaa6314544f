// Package audit persists tool-call records. The server shell hands every
// invocation to an AuditLogger; the SessionLogger here buffers those records
// and stores them as one session document through a Sink on shutdown.
package audit

import (
	"context"
	"errors"
)

// Sink stores a finished audit session document.
type Sink interface {
	Store(ctx context.Context, data []byte) error
}

// TestSink is a simple in-memory implementation for testing
type TestSink struct {
	stored [][]byte
	err    error
}

func NewTestSink() *TestSink {
	return &TestSink{}
}

func NewTestSinkWithError() *TestSink {
	return &TestSink{err: errors.New("store failed")}
}

func (t *TestSink) Store(ctx context.Context, data []byte) error {
	if t.err != nil {
		return t.err
	}
	t.stored = append(t.stored, append([]byte(nil), data...))
	return nil
}

// Stored returns the documents stored so far.
func (t *TestSink) Stored() [][]byte {
	return t.stored
}
