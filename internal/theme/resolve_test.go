package swatch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// mkTree creates files (relative paths) under a fresh temp root and returns it.
func mkTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", f, err)
		}
		if err := os.WriteFile(path, []byte("colors:\n  accent: \"#000000\"\n"), 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", f, err)
		}
	}
	return root
}

func TestResolvePaths(t *testing.T) {
	root := mkTree(t, "base.yaml", "variants/dark.yaml", "variants/light.yaml")

	paths, err := ResolvePaths(root, []string{"base.yaml", "dark.yaml"})
	if err != nil {
		t.Fatalf("ResolvePaths failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("Expected 2 paths, got %d", len(paths))
	}
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			t.Errorf("Expected absolute path, got %s", p)
		}
	}
	if filepath.Base(paths[0]) != "base.yaml" || filepath.Base(paths[1]) != "dark.yaml" {
		t.Errorf("Paths out of input order: %v", paths)
	}
}

func TestResolvePathsPreservesOrder(t *testing.T) {
	root := mkTree(t, "a.yaml", "b.yaml", "c.yaml")

	names := []string{"c.yaml", "a.yaml", "b.yaml"}
	paths, err := ResolvePaths(root, names)
	if err != nil {
		t.Fatalf("ResolvePaths failed: %v", err)
	}
	for i, name := range names {
		if filepath.Base(paths[i]) != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, paths[i])
		}
	}
}

func TestResolvePathsNotFound(t *testing.T) {
	root := mkTree(t, "base.yaml")

	_, err := ResolvePaths(root, []string{"missing.yaml"})
	var notFound *FileNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected FileNotFoundError, got %v", err)
	}
	if notFound.Name != "missing.yaml" {
		t.Errorf("Expected name missing.yaml, got %s", notFound.Name)
	}
}

func TestResolvePathsAmbiguous(t *testing.T) {
	root := mkTree(t, "a/dup.yaml", "b/dup.yaml")

	_, err := ResolvePaths(root, []string{"dup.yaml"})
	var ambiguous *AmbiguousFilenameError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("Expected AmbiguousFilenameError, got %v", err)
	}
	if len(ambiguous.Matches) != 2 {
		t.Errorf("Expected 2 matches, got %d: %v", len(ambiguous.Matches), ambiguous.Matches)
	}
}

func TestResolvePathsMissingRoot(t *testing.T) {
	if _, err := ResolvePaths(filepath.Join(t.TempDir(), "nope"), []string{"a.yaml"}); err == nil {
		t.Error("Expected error for missing root")
	}
}
