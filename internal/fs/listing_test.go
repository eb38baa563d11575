package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func makeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"docs", "docs/reports", "photos", ".cache"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	for _, file := range []string{"readme.md", ".env", "docs/report.pdf", "docs/reports/q1.pdf", "photos/cat.jpg"} {
		if err := os.WriteFile(filepath.Join(root, file), []byte(file), 0644); err != nil {
			t.Fatalf("write %s: %v", file, err)
		}
	}
	return root
}

func TestReadDirSortsDirectoriesFirst(t *testing.T) {
	root := makeTree(t)

	entries, err := ReadDir(root, false)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	want := []string{"docs", "photos", "readme.md"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
	if !entries[0].IsDir || entries[2].IsDir {
		t.Fatalf("unexpected IsDir flags: %+v", entries)
	}
	if entries[2].FullPath != filepath.Join(root, "readme.md") {
		t.Fatalf("FullPath = %q", entries[2].FullPath)
	}
}

func TestReadDirShowHidden(t *testing.T) {
	root := makeTree(t)

	entries, err := ReadDir(root, true)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected hidden entries included, got %d", len(entries))
	}
}

func TestReadDirMissing(t *testing.T) {
	if _, err := ReadDir(filepath.Join(t.TempDir(), "nope"), false); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestVisitEntriesFindsNestedEntries(t *testing.T) {
	root := makeTree(t)

	var names []string
	err := VisitEntries(context.Background(), root, false, func(e Entry) error {
		if filepath.Ext(e.Name) == ".pdf" {
			names = append(names, e.Name)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("VisitEntries failed: %v", err)
	}

	sort.Strings(names)
	if len(names) != 2 || names[0] != "q1.pdf" || names[1] != "report.pdf" {
		t.Fatalf("names = %v", names)
	}
}

func TestVisitEntriesHiddenAndCancel(t *testing.T) {
	root := makeTree(t)

	count := func(showHidden bool) int {
		n := 0
		if err := VisitEntries(context.Background(), root, showHidden, func(Entry) error {
			n++
			return nil
		}); err != nil {
			t.Fatalf("VisitEntries failed: %v", err)
		}
		return n
	}
	if visible, all := count(false), count(true); all != visible+2 {
		t.Fatalf("hidden entries: visible=%d all=%d, want 2 more", visible, all)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := VisitEntries(ctx, root, false, func(Entry) error { return nil }); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestVisitEntriesStopsEarly(t *testing.T) {
	root := makeTree(t)

	visited := 0
	err := VisitEntries(context.Background(), root, false, func(Entry) error {
		visited++
		return iofs.SkipAll
	})
	if err != nil {
		t.Fatalf("SkipAll should end the walk cleanly, got %v", err)
	}
	if visited != 1 {
		t.Fatalf("visited %d entries after SkipAll, want 1", visited)
	}

	boom := errors.New("boom")
	err = VisitEntries(context.Background(), root, false, func(Entry) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("visit error not returned: %v", err)
	}
}

func TestEntryHasTag(t *testing.T) {
	e := Entry{Name: "a", Tags: []string{"work", "urgent"}}
	if !e.HasTag("urgent") || e.HasTag("home") {
		t.Fatalf("HasTag mismatch for %v", e.Tags)
	}
}
