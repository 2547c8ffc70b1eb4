// Package testutil provides test utilities and helpers for tasknotify tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateAgentsFile writes an AGENTS.md with content into dir, creating dir
// if needed. Returns the file path.
func CreateAgentsFile(t *testing.T, dir, content string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	path := filepath.Join(dir, "AGENTS.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write AGENTS.md: %v", err)
	}
	return path
}

// CreateNestedDir creates dir/elem... and returns its path.
func CreateNestedDir(t *testing.T, dir string, elem ...string) string {
	t.Helper()

	path := filepath.Join(append([]string{dir}, elem...)...)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create nested directory: %v", err)
	}
	return path
}
