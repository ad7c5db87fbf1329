package testutil

import (
	"path/filepath"
	"runtime"
	"testing"
)

// RepoPath resolves a path relative to the repository root.
// The root is found relative to this source file: sim/internal/testutil/ → ../../..
func RepoPath(t *testing.T, elem ...string) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	root := filepath.Join(filepath.Dir(thisFile), "..", "..", "..")
	return filepath.Join(append([]string{root}, elem...)...)
}
