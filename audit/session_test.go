package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealiemcp"
)

type sessionDoc struct {
	AuditSession struct {
		Timestamp time.Time                  `json:"timestamp"`
		ToolCalls []mealiemcp.ToolCallRecord `json:"tool_calls"`
	} `json:"audit_session"`
}

func TestSessionLogger(t *testing.T) {
	t.Run("records buffer until flush", func(t *testing.T) {
		sink := NewTestSink()
		logger := NewSessionLogger(sink)

		require.NoError(t, logger.LogToolCall(mealiemcp.ToolCallRecord{
			ID:         "c-1",
			Timestamp:  time.Now(),
			Tool:       "get_recipe",
			Arguments:  map[string]any{"slug": "pasta"},
			Outcome:    "ok",
			DurationMS: 12,
		}))
		require.NoError(t, logger.LogToolCall(mealiemcp.ToolCallRecord{
			ID:        "c-2",
			Timestamp: time.Now(),
			Tool:      "delete_recipe",
			Outcome:   "error",
			ErrorKind: "not_found",
			Error:     "recipe not found",
		}))
		assert.Empty(t, sink.Stored())

		require.NoError(t, logger.Flush(context.Background()))
		require.Len(t, sink.Stored(), 1)

		var doc sessionDoc
		require.NoError(t, json.Unmarshal(sink.Stored()[0], &doc))
		require.Len(t, doc.AuditSession.ToolCalls, 2)
		assert.Equal(t, "get_recipe", doc.AuditSession.ToolCalls[0].Tool)
		assert.Equal(t, "pasta", doc.AuditSession.ToolCalls[0].Arguments["slug"])
		assert.Equal(t, "not_found", doc.AuditSession.ToolCalls[1].ErrorKind)
		assert.False(t, doc.AuditSession.Timestamp.IsZero())
	})

	t.Run("flush clears the buffer", func(t *testing.T) {
		sink := NewTestSink()
		logger := NewSessionLogger(sink)

		require.NoError(t, logger.LogToolCall(mealiemcp.ToolCallRecord{Tool: "get_units", Outcome: "ok"}))
		require.NoError(t, logger.Flush(context.Background()))
		require.NoError(t, logger.Flush(context.Background()))
		require.Len(t, sink.Stored(), 2)

		var doc sessionDoc
		require.NoError(t, json.Unmarshal(sink.Stored()[1], &doc))
		assert.Empty(t, doc.AuditSession.ToolCalls)
	})

	t.Run("flush propagates sink errors and keeps the buffer", func(t *testing.T) {
		logger := NewSessionLogger(NewTestSinkWithError())

		require.NoError(t, logger.LogToolCall(mealiemcp.ToolCallRecord{Tool: "get_foods", Outcome: "ok"}))

		err := logger.Flush(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to store audit session")

		// The records are still there for a retry against a working sink.
		recovered := NewTestSink()
		logger.sink = recovered
		require.NoError(t, logger.Flush(context.Background()))
		var doc sessionDoc
		require.NoError(t, json.Unmarshal(recovered.Stored()[0], &doc))
		assert.Len(t, doc.AuditSession.ToolCalls, 1)
	})

	t.Run("nil sink drops everything", func(t *testing.T) {
		logger := NewSessionLogger(nil)
		require.NoError(t, logger.LogToolCall(mealiemcp.ToolCallRecord{Tool: "get_tags", Outcome: "ok"}))
		require.NoError(t, logger.Flush(context.Background()))
	})
}
