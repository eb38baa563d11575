// Package storetest holds the behavior every TagStore implementation must share.
package storetest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kk-code-lab/tagdir/internal/store"
	"github.com/kk-code-lab/tagdir/internal/tags"
)

// Factory returns a fresh, empty store. The suite closes it.
type Factory func(t *testing.T) store.TagStore

// Run exercises the TagStore contract against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("CreateAndList", func(t *testing.T) { testCreateAndList(t, newStore(t)) })
	t.Run("CreateRejectsBadInput", func(t *testing.T) { testCreateRejectsBadInput(t, newStore(t)) })
	t.Run("Update", func(t *testing.T) { testUpdate(t, newStore(t)) })
	t.Run("DeleteOrphansChildren", func(t *testing.T) { testDeleteOrphansChildren(t, newStore(t)) })
	t.Run("AssignTags", func(t *testing.T) { testAssignTags(t, newStore(t)) })
	t.Run("Closed", func(t *testing.T) { testClosed(t, newStore(t)) })
}

func testCreateAndList(t *testing.T, s store.TagStore) {
	defer s.Close()
	ctx := t.Context()

	work, err := s.CreateTag(ctx, "work", nil)
	if err != nil {
		t.Fatalf("CreateTag(work) failed: %v", err)
	}
	reports, err := s.CreateTag(ctx, "  reports ", tags.ID(work))
	if err != nil {
		t.Fatalf("CreateTag(reports) failed: %v", err)
	}

	records, err := s.Tags(ctx)
	if err != nil {
		t.Fatalf("Tags() failed: %v", err)
	}
	want := []tags.TagRecord{
		{ID: work, Name: "work"},
		{ID: reports, Name: "reports", ParentID: tags.ID(work)},
	}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("Tags() = %+v, want %+v", records, want)
	}

	forest := tags.BuildForest(records)
	if got := forest.Roots(); !reflect.DeepEqual(got, []int64{work}) {
		t.Fatalf("roots = %v, want [%d]", got, work)
	}
}

func testCreateRejectsBadInput(t *testing.T, s store.TagStore) {
	defer s.Close()
	ctx := t.Context()

	if _, err := s.CreateTag(ctx, "   ", nil); !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("empty name: expected ErrInvalidInput, got %v", err)
	}
	if _, err := s.CreateTag(ctx, "child", tags.ID(9999)); !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("missing parent: expected ErrInvalidInput, got %v", err)
	}
}

func testUpdate(t *testing.T, s store.TagStore) {
	defer s.Close()
	ctx := t.Context()

	a, _ := s.CreateTag(ctx, "a", nil)
	b, _ := s.CreateTag(ctx, "b", nil)

	if err := s.UpdateTag(ctx, b, "b2", tags.ID(a)); err != nil {
		t.Fatalf("UpdateTag failed: %v", err)
	}
	records, _ := s.Tags(ctx)
	if len(records) != 2 || records[1].Name != "b2" || records[1].ParentID == nil || *records[1].ParentID != a {
		t.Fatalf("unexpected records after update: %+v", records)
	}

	if err := s.UpdateTag(ctx, 9999, "x", nil); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("missing tag: expected ErrNotFound, got %v", err)
	}
	if err := s.UpdateTag(ctx, a, "a", tags.ID(a)); !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("self parent: expected ErrInvalidInput, got %v", err)
	}
}

func testDeleteOrphansChildren(t *testing.T, s store.TagStore) {
	defer s.Close()
	ctx := t.Context()

	parent, _ := s.CreateTag(ctx, "parent", nil)
	child, _ := s.CreateTag(ctx, "child", tags.ID(parent))
	if err := s.AssignTags(ctx, "/tmp/a.txt", []int64{parent, child}); err != nil {
		t.Fatalf("AssignTags failed: %v", err)
	}

	if err := s.DeleteTag(ctx, parent); err != nil {
		t.Fatalf("DeleteTag failed: %v", err)
	}

	records, _ := s.Tags(ctx)
	if len(records) != 1 || records[0].ID != child || records[0].ParentID != nil {
		t.Fatalf("expected child to become a root, got %+v", records)
	}

	assigned, _ := s.TagsForPaths(ctx, []string{"/tmp/a.txt"})
	if !reflect.DeepEqual(assigned["/tmp/a.txt"], []string{"child"}) {
		t.Fatalf("assignments after delete = %v", assigned)
	}

	if err := s.DeleteTag(ctx, parent); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func testAssignTags(t *testing.T, s store.TagStore) {
	defer s.Close()
	ctx := t.Context()

	work, _ := s.CreateTag(ctx, "work", nil)
	urgent, _ := s.CreateTag(ctx, "urgent", nil)

	if err := s.AssignTags(ctx, "/docs/report.pdf", []int64{work, urgent, work}); err != nil {
		t.Fatalf("AssignTags failed: %v", err)
	}
	if err := s.AssignTags(ctx, "/docs/notes.txt", []int64{urgent}); err != nil {
		t.Fatalf("AssignTags failed: %v", err)
	}

	got, err := s.TagsForPaths(ctx, []string{"/docs/report.pdf", "/docs/notes.txt", "/docs/none"})
	if err != nil {
		t.Fatalf("TagsForPaths failed: %v", err)
	}
	want := map[string][]string{
		"/docs/report.pdf": {"urgent", "work"},
		"/docs/notes.txt":  {"urgent"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TagsForPaths() = %v, want %v", got, want)
	}

	if err := s.AssignTags(ctx, "/docs/report.pdf", nil); err != nil {
		t.Fatalf("clearing assignments failed: %v", err)
	}
	got, _ = s.TagsForPaths(ctx, []string{"/docs/report.pdf"})
	if len(got) != 0 {
		t.Fatalf("expected no tags after clearing, got %v", got)
	}

	if err := s.AssignTags(ctx, "/docs/x", []int64{9999}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("unknown tag: expected ErrNotFound, got %v", err)
	}
}

func testClosed(t *testing.T, s store.TagStore) {
	ctx := t.Context()
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := s.Tags(ctx); !errors.Is(err, store.ErrClosed) {
		t.Fatalf("Tags after close: expected ErrClosed, got %v", err)
	}
}
