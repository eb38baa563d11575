package state

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/kk-code-lab/tagdir/internal/tags"
)

var errFake = errors.New("fake backend failure")

// fakeBackend serves an in-memory tree: dirs maps a directory to its entries.
type fakeBackend struct {
	mu       sync.Mutex
	records  []tags.TagRecord
	nextID   int64
	dirs     map[string][]FileEntry
	volumes  []string
	assigned map[string][]int64

	failDirs    map[string]bool
	failTags    bool
	failMutate  bool
	listCalls   []string
	searchCalls []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		nextID:   100,
		dirs:     make(map[string][]FileEntry),
		assigned: make(map[string][]int64),
		failDirs: make(map[string]bool),
	}
}

func (b *fakeBackend) addDir(path string, entries ...FileEntry) {
	for i := range entries {
		if entries[i].FullPath == "" {
			entries[i].FullPath = filepath.Join(path, entries[i].Name)
		}
	}
	b.dirs[path] = entries
}

func (b *fakeBackend) FetchTags(context.Context) ([]tags.TagRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failTags {
		return nil, errFake
	}
	return slices.Clone(b.records), nil
}

func (b *fakeBackend) CreateTag(_ context.Context, name string, parentID *int64) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failMutate {
		return 0, errFake
	}
	b.nextID++
	b.records = append(b.records, tags.TagRecord{ID: b.nextID, Name: name, ParentID: parentID})
	return b.nextID, nil
}

func (b *fakeBackend) UpdateTag(_ context.Context, id int64, name string, parentID *int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failMutate {
		return errFake
	}
	for i := range b.records {
		if b.records[i].ID == id {
			b.records[i].Name = name
			b.records[i].ParentID = parentID
			return nil
		}
	}
	return errFake
}

func (b *fakeBackend) DeleteTag(_ context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failMutate {
		return errFake
	}
	kept := b.records[:0]
	for _, rec := range b.records {
		if rec.ID == id {
			continue
		}
		if rec.ParentID != nil && *rec.ParentID == id {
			rec.ParentID = nil
		}
		kept = append(kept, rec)
	}
	b.records = kept
	return nil
}

func (b *fakeBackend) AssignTags(_ context.Context, path string, ids []int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failMutate {
		return errFake
	}
	b.assigned[path] = slices.Clone(ids)
	return nil
}

func (b *fakeBackend) tagNames(path string) []string {
	var names []string
	for _, id := range b.assigned[path] {
		for _, rec := range b.records {
			if rec.ID == id {
				names = append(names, rec.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}

func (b *fakeBackend) ListDirectory(_ context.Context, path string) ([]FileEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listCalls = append(b.listCalls, path)
	if b.failDirs[path] {
		return nil, errFake
	}
	entries, ok := b.dirs[path]
	if !ok {
		return nil, errFake
	}
	out := slices.Clone(entries)
	for i := range out {
		if names := b.tagNames(out[i].FullPath); names != nil {
			out[i].Tags = names
		}
	}
	return out, nil
}

func (b *fakeBackend) ListVolumes(context.Context) ([]string, error) {
	return slices.Clone(b.volumes), nil
}

func (b *fakeBackend) Search(ctx context.Context, root, query string, c Criteria) ([]FileEntry, error) {
	b.mu.Lock()
	b.searchCalls = append(b.searchCalls, root+"|"+query)
	b.mu.Unlock()

	var out []FileEntry
	for dir := range b.dirs {
		if dir != root && !strings.HasPrefix(dir, root+string(filepath.Separator)) {
			continue
		}
		listed, _ := b.ListDirectory(ctx, dir)
		for _, entry := range listed {
			if strings.Contains(strings.ToLower(entry.Name), strings.ToLower(query)) && Matches(entry, c) {
				out = append(out, entry)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullPath < out[j].FullPath })
	return out, nil
}

// newTestState builds a state that runs backend calls inline.
func newTestState(backend Backend) (*AppState, *StateReducer) {
	state := NewAppState(backend, nil)
	state.ScreenWidth = 80
	state.ScreenHeight = 24
	return state, NewStateReducer(nil)
}

// manualRunner queues requests so tests decide when, and in which order,
// results arrive.
type manualRunner struct {
	pending   []Request
	cancelled map[int]bool
}

func newManualRunner() *manualRunner {
	return &manualRunner{cancelled: make(map[int]bool)}
}

func (m *manualRunner) Start(req Request) {
	m.pending = append(m.pending, req)
}

func (m *manualRunner) Cancel(token int) {
	m.cancelled[token] = true
}

// take removes the oldest queued request of kind and returns its result.
func (m *manualRunner) take(kind RequestKind) (Action, bool) {
	for i, req := range m.pending {
		if req.Kind == kind {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return req.Run(context.Background()), true
		}
	}
	return nil, false
}

func dir(name string) FileEntry {
	return FileEntry{Name: name, IsDir: true}
}

func file(name string) FileEntry {
	return FileEntry{Name: name}
}

func displayNames(state *AppState) []string {
	entries := state.DisplayEntries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func mustReduce(t testing.TB, r *StateReducer, state *AppState, action Action) {
	t.Helper()
	if _, err := r.Reduce(state, action); err != nil {
		t.Fatalf("Reduce(%T) error: %v", action, err)
	}
}
