package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDoc(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("# doc\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveWatchTargetsExpandsDirectories(t *testing.T) {
	dir := t.TempDir()
	a := writeDoc(t, dir, "a.md")
	b := writeDoc(t, dir, "nested/b.md")
	writeDoc(t, dir, "nested/notes.txt")

	got, err := resolveWatchTargets(&checkFlags{}, []string{dir})
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]bool{a: true, b: true}
	if len(got) != len(want) {
		t.Fatalf("targets = %v, want the markdown files under %s", got, dir)
	}
	for _, f := range got {
		if !want[f] {
			t.Errorf("unexpected watch target %s", f)
		}
	}
}

func TestResolveWatchTargetsKeepsExplicitFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.md")

	got, err := resolveWatchTargets(&checkFlags{}, []string{path})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != path {
		t.Errorf("targets = %v, want [%s]", got, path)
	}
}

func TestResolveWatchTargetsExpandsGlobs(t *testing.T) {
	dir := t.TempDir()
	a := writeDoc(t, dir, "a.md")
	writeDoc(t, dir, "skip.txt")

	got, err := resolveWatchTargets(&checkFlags{}, []string{filepath.Join(dir, "*.md")})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != a {
		t.Errorf("targets = %v, want [%s]", got, a)
	}
}
