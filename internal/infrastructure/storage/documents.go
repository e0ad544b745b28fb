package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DocumentStore reads and writes whole text documents. Every write is a
// whole-document replace via temp file + rename, so an interrupted process
// leaves the previous content fully intact.
type DocumentStore struct {
	logger *zap.Logger
}

// NewDocumentStore constructs a DocumentStore.
func NewDocumentStore(logger *zap.Logger) *DocumentStore {
	return &DocumentStore{logger: logger}
}

// Read returns the document content. A missing file is an error; use
// ReadIfExists when absence is a normal case.
func (s *DocumentStore) Read(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(b), nil
}

// ReadIfExists returns the document content and whether the file existed.
func (s *DocumentStore) ReadIfExists(path string) (string, bool, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(b), true, nil
}

// Write replaces the document at path with content, creating parent
// directories as needed.
func (s *DocumentStore) Write(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	if s.logger != nil {
		s.logger.Debug("document written", zap.String("path", path), zap.Int("bytes", len(content)))
	}
	return nil
}

// Exists reports whether a regular file exists at path.
func (s *DocumentStore) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// EnsureDirs creates every directory in dirs.
func (s *DocumentStore) EnsureDirs(dirs ...string) error {
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}
	return nil
}
