// Package memory is a TagStore kept entirely in process memory.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kk-code-lab/tagdir/internal/store"
	"github.com/kk-code-lab/tagdir/internal/tags"
	"github.com/tidwall/btree"
)

type Store struct {
	mu     sync.RWMutex
	closed bool
	nextID int64

	// tags ordered by id, so Tags returns creation order.
	tags *btree.Map[int64, tags.TagRecord]
	// path -> assigned tag ids
	assigned map[string][]int64
}

var _ store.TagStore = (*Store)(nil)

func New() *Store {
	return &Store{
		nextID:   1,
		tags:     btree.NewMap[int64, tags.TagRecord](0),
		assigned: make(map[string][]int64),
	}
}

// Seed loads records as-is, keeping their ids. Used for tests and demo data.
func (s *Store) Seed(records []tags.TagRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		s.tags.Set(rec.ID, cloneRecord(rec))
		if rec.ID >= s.nextID {
			s.nextID = rec.ID + 1
		}
	}
}

func (*Store) Name() string {
	return "memory"
}

func (s *Store) Tags(ctx context.Context) ([]tags.TagRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, store.ErrClosed
	}

	out := make([]tags.TagRecord, 0, s.tags.Len())
	s.tags.Scan(func(_ int64, rec tags.TagRecord) bool {
		out = append(out, cloneRecord(rec))
		return true
	})
	return out, nil
}

func (s *Store) CreateTag(ctx context.Context, name string, parentID *int64) (int64, error) {
	name, err := store.NormalizeName(name)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, store.ErrClosed
	}
	if parentID != nil {
		if _, ok := s.tags.Get(*parentID); !ok {
			return 0, store.MissingParent(*parentID)
		}
	}

	id := s.nextID
	s.nextID++
	s.tags.Set(id, tags.TagRecord{ID: id, Name: name, ParentID: cloneID(parentID)})
	return id, nil
}

func (s *Store) UpdateTag(ctx context.Context, id int64, name string, parentID *int64) error {
	name, err := store.NormalizeName(name)
	if err != nil {
		return err
	}
	if err := store.CheckParent(id, parentID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.ErrClosed
	}
	if _, ok := s.tags.Get(id); !ok {
		return store.MissingTag(id)
	}
	if parentID != nil {
		if _, ok := s.tags.Get(*parentID); !ok {
			return store.MissingParent(*parentID)
		}
	}

	s.tags.Set(id, tags.TagRecord{ID: id, Name: name, ParentID: cloneID(parentID)})
	return nil
}

func (s *Store) DeleteTag(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.ErrClosed
	}
	if _, ok := s.tags.Delete(id); !ok {
		return store.MissingTag(id)
	}

	var orphaned []tags.TagRecord
	s.tags.Scan(func(_ int64, rec tags.TagRecord) bool {
		if rec.ParentID != nil && *rec.ParentID == id {
			orphaned = append(orphaned, rec)
		}
		return true
	})
	for _, rec := range orphaned {
		rec.ParentID = nil
		s.tags.Set(rec.ID, rec)
	}

	for path, ids := range s.assigned {
		kept := ids[:0]
		for _, tagID := range ids {
			if tagID != id {
				kept = append(kept, tagID)
			}
		}
		if len(kept) == 0 {
			delete(s.assigned, path)
		} else {
			s.assigned[path] = kept
		}
	}
	return nil
}

func (s *Store) AssignTags(ctx context.Context, path string, tagIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.ErrClosed
	}

	ids := store.UniqueIDs(tagIDs)
	for _, id := range ids {
		if _, ok := s.tags.Get(id); !ok {
			return store.MissingTag(id)
		}
	}
	if len(ids) == 0 {
		delete(s.assigned, path)
		return nil
	}
	s.assigned[path] = ids
	return nil
}

func (s *Store) TagsForPaths(ctx context.Context, paths []string) (map[string][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, store.ErrClosed
	}

	out := make(map[string][]string)
	for _, path := range paths {
		ids, ok := s.assigned[path]
		if !ok {
			continue
		}
		names := make([]string, 0, len(ids))
		for _, id := range ids {
			if rec, ok := s.tags.Get(id); ok {
				names = append(names, rec.Name)
			}
		}
		sort.Strings(names)
		out[path] = names
	}
	return out, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.tags.Clear()
	s.assigned = make(map[string][]int64)
	return nil
}

func cloneRecord(rec tags.TagRecord) tags.TagRecord {
	rec.ParentID = cloneID(rec.ParentID)
	return rec
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
