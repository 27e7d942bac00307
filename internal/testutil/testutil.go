// Package testutil provides test helpers for building storage fixtures.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates a file with the given content under dir, creating parent
// directories as needed, and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// Storage creates a storage tree in a temporary directory. Each entry is a
// slash-separated path relative to the storage root, for example
// "@jest/core/core-26.6.3.tgz". Returns the storage root.
func Storage(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		WriteFile(t, root, filepath.FromSlash(f), "")
	}
	return root
}
