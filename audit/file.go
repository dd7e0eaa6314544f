package audit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type FileSink struct {
	FilePath string
}

func NewFileSink(filePath string) *FileSink {
	return &FileSink{FilePath: filePath}
}

// Store writes the document, creating the parent directory if it is missing.
func (f *FileSink) Store(ctx context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.FilePath), 0755); err != nil {
		return fmt.Errorf("failed to create audit log directory: %w", err)
	}
	return os.WriteFile(f.FilePath, data, 0644)
}
