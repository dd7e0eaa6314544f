package audit

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "audit_sink_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	tests := []struct {
		name        string
		filename    string
		data        []byte
		expectError bool
	}{
		{
			name:        "basic session store",
			filename:    "session.audit.json",
			data:        []byte(`{"audit_session": {"tool_calls": []}}`),
			expectError: false,
		},
		{
			name:        "missing log directory is created",
			filename:    filepath.Join("logs", "nested", "session.audit.json"),
			data:        []byte(`{}`),
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath := filepath.Join(tmpDir, tt.filename)

			sink := NewFileSink(filePath)
			err := sink.Store(context.Background(), tt.data)
			if tt.expectError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			written, err := os.ReadFile(filePath)
			require.NoError(t, err)
			assert.Equal(t, tt.data, written)
		})
	}

	t.Run("store under a path blocked by a regular file", func(t *testing.T) {
		blocked := filepath.Join(tmpDir, "blocked")
		require.NoError(t, os.WriteFile(blocked, []byte("x"), 0644))

		sink := NewFileSink(filepath.Join(blocked, "session.audit.json"))
		err := sink.Store(context.Background(), []byte(`{}`))
		assert.Error(t, err)
	})
}
