package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"mealiemcp"
)

// SessionLogger accumulates tool-call records in memory and writes them out
// as a single session document when flushed.
type SessionLogger struct {
	mu    sync.Mutex
	calls []mealiemcp.ToolCallRecord
	sink  Sink
}

// NewSessionLogger creates a logger that stores its records on Flush.
func NewSessionLogger(sink Sink) *SessionLogger {
	return &SessionLogger{
		calls: make([]mealiemcp.ToolCallRecord, 0),
		sink:  sink,
	}
}

// LogToolCall logs a record to the buffer (does not store immediately)
func (sl *SessionLogger) LogToolCall(call mealiemcp.ToolCallRecord) error {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.calls = append(sl.calls, call)
	return nil
}

// Flush stores all accumulated records as one session document
func (sl *SessionLogger) Flush(ctx context.Context) error {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if sl.sink == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"audit_session": map[string]any{
			"timestamp":  time.Now(),
			"tool_calls": sl.calls,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal audit session: %w", err)
	}

	if err := sl.sink.Store(ctx, data); err != nil {
		return fmt.Errorf("failed to store audit session: %w", err)
	}

	// Clear the buffer after successful store
	sl.calls = sl.calls[:0]
	return nil
}
