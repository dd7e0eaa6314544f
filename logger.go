package mealiemcp

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AuditLogger is the interface for recording tool invocations.
type AuditLogger interface {
	LogToolCall(call ToolCallRecord) error
}

// NewAuditLogFilePath returns a file path keyed by start time and profile so logs from
// concurrent server runs and different profiles stay distinguishable.
func NewAuditLogFilePath(dir, profile string) string {
	return filepath.Join(dir, fmt.Sprintf("%d.%s.audit.json", time.Now().Unix(), strings.ToLower(profile)))
}

// ToolCallRecord represents a single tool invocation as seen by the server shell
type ToolCallRecord struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	Tool       string         `json:"tool"`
	Arguments  map[string]any `json:"arguments,omitempty"`
	Outcome    string         `json:"outcome"`
	ErrorKind  string         `json:"error_kind,omitempty"`
	Error      string         `json:"error,omitempty"`
	DurationMS int64          `json:"duration_ms"`
}

// NoOpAuditLogger is a logger that discards all records
type NoOpAuditLogger struct{}

// NewNoOpAuditLogger creates a new no-op audit logger
func NewNoOpAuditLogger() *NoOpAuditLogger {
	return &NoOpAuditLogger{}
}

// LogToolCall discards the record (no-op)
func (nop *NoOpAuditLogger) LogToolCall(call ToolCallRecord) error {
	return nil
}

// StdoutAuditLogger logs each record as a JSON line to stdout
type StdoutAuditLogger struct{}

// NewStdoutAuditLogger creates a new stdout-based audit logger
func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

// LogToolCall writes the record as a JSON line to os.Stdout
func (l *StdoutAuditLogger) LogToolCall(call ToolCallRecord) error {
	data, err := json.Marshal(call)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
