package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Workspace is a temporary directory tree with a private bin dir that
// shadows PATH, so tests can stand in for the external proxy, indexer,
// and fuzzy-filter binaries.
type Workspace struct {
	Path string
	Bin  string
	T    *testing.T
}

// NewWorkspace creates a workspace and prepends its bin dir to PATH.
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()

	path := t.TempDir()
	bin := filepath.Join(path, ".bin")
	if err := os.MkdirAll(bin, 0755); err != nil {
		t.Fatalf("failed to create bin dir: %v", err)
	}
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))

	return &Workspace{Path: path, Bin: bin, T: t}
}

// CreateFile creates a file under the workspace, making parent
// directories as needed, and returns its absolute path.
func (w *Workspace) CreateFile(name, content string) string {
	w.T.Helper()

	path := filepath.Join(w.Path, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		w.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		w.T.Fatalf("failed to create file: %v", err)
	}
	return path
}

// CreateDir creates a directory under the workspace.
func (w *Workspace) CreateDir(name string) string {
	w.T.Helper()

	path := filepath.Join(w.Path, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		w.T.Fatalf("failed to create directory: %v", err)
	}
	return path
}

// StubBinary installs an executable shell script on the test PATH.
func (w *Workspace) StubBinary(name, script string) string {
	w.T.Helper()

	path := filepath.Join(w.Bin, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		w.T.Fatalf("failed to install stub %s: %v", name, err)
	}
	return path
}

// Chdir enters the workspace and restores the old directory on cleanup.
func (w *Workspace) Chdir() {
	w.T.Helper()

	oldWd, err := os.Getwd()
	if err != nil {
		w.T.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(w.Path); err != nil {
		w.T.Fatalf("failed to chdir: %v", err)
	}
	w.T.Cleanup(func() { _ = os.Chdir(oldWd) })
}

// ReadFile reads a workspace file, failing the test on error.
func (w *Workspace) ReadFile(name string) string {
	w.T.Helper()

	data, err := os.ReadFile(filepath.Join(w.Path, name))
	if err != nil {
		w.T.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}
