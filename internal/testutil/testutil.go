// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

// TempDir creates a temporary directory for tests and returns a cleanup function.
func TempDir(t *testing.T) (string, func()) {
	t.Helper()
	dir, err := os.MkdirTemp("", "unityforge-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	return dir, func() {
		if err := os.RemoveAll(dir); err != nil {
			t.Logf("warning: failed to remove temp dir %s: %v", dir, err)
		}
	}
}

// WriteFile creates a file with the given content in the specified directory.
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

// CatalogFS builds an in-memory catalog filesystem in the shape the
// loader expects: the three catalog documents plus a templates directory.
func CatalogFS(t *testing.T, genres, features, modules string, templates map[string]string) fstest.MapFS {
	t.Helper()
	fsys := fstest.MapFS{
		"genres.yaml":   {Data: []byte(genres)},
		"features.yaml": {Data: []byte(features)},
		"modules.yaml":  {Data: []byte(modules)},
	}
	for name, content := range templates {
		fsys["templates/"+name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}
