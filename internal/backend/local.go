// Package backend serves the browser from a tag store and the local filesystem.
package backend

import (
	"context"
	"fmt"
	iofs "io/fs"
	"slices"

	fsutil "github.com/kk-code-lab/tagdir/internal/fs"
	"github.com/kk-code-lab/tagdir/internal/search"
	"github.com/kk-code-lab/tagdir/internal/state"
	"github.com/kk-code-lab/tagdir/internal/store"
	"github.com/kk-code-lab/tagdir/internal/tags"
	"go.uber.org/zap"
)

// DefaultSearchLimit caps how many entries a search returns.
const DefaultSearchLimit = 2000

// searchTagBatch is how many name matches are looked up in the store at once.
const searchTagBatch = 256

// Options tune Local.
type Options struct {
	// SearchHidden makes searches descend into hidden directories.
	SearchHidden bool
	// SearchLimit caps search results; 0 means DefaultSearchLimit.
	SearchLimit int
	Logger      *zap.Logger
}

// Local implements state.Backend.
type Local struct {
	store   store.TagStore
	matcher *search.Matcher
	opts    Options
	logger  *zap.Logger

	// Swappable for tests.
	readDir func(path string, showHidden bool) ([]fsutil.Entry, error)
	volumes func() ([]string, error)
}

var _ state.Backend = (*Local)(nil)

// NewLocal wires s to the filesystem.
func NewLocal(s store.TagStore, opts Options) *Local {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = DefaultSearchLimit
	}
	return &Local{
		store:   s,
		matcher: search.NewMatcher(),
		opts:    opts,
		logger:  logger.With(zap.String("store", s.Name())),
		readDir: fsutil.ReadDir,
		volumes: fsutil.Volumes,
	}
}

// Store returns the underlying tag store.
func (l *Local) Store() store.TagStore {
	return l.store
}

func (l *Local) FetchTags(ctx context.Context) ([]tags.TagRecord, error) {
	return l.store.Tags(ctx)
}

func (l *Local) CreateTag(ctx context.Context, name string, parentID *int64) (int64, error) {
	id, err := l.store.CreateTag(ctx, name, parentID)
	if err != nil {
		return 0, err
	}
	l.logger.Info("tag created", zap.Int64("id", id), zap.String("name", name))
	return id, nil
}

func (l *Local) UpdateTag(ctx context.Context, id int64, newName string, parentID *int64) error {
	if err := l.store.UpdateTag(ctx, id, newName, parentID); err != nil {
		return err
	}
	l.logger.Info("tag updated", zap.Int64("id", id), zap.String("name", newName))
	return nil
}

func (l *Local) DeleteTag(ctx context.Context, id int64) error {
	if err := l.store.DeleteTag(ctx, id); err != nil {
		return err
	}
	l.logger.Info("tag deleted", zap.Int64("id", id))
	return nil
}

func (l *Local) AssignTags(ctx context.Context, path string, tagIDs []int64) error {
	if err := l.store.AssignTags(ctx, path, tagIDs); err != nil {
		return err
	}
	l.logger.Debug("tags assigned", zap.String("path", path), zap.Int64s("tags", tagIDs))
	return nil
}

// ListDirectory lists path, hidden entries included, with tag names attached.
func (l *Local) ListDirectory(ctx context.Context, path string) ([]state.FileEntry, error) {
	entries, err := l.readDir(path, true)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := l.attachTags(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (l *Local) ListVolumes(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.volumes()
}

// Search walks root for entries whose name fuzzily matches query and that pass
// c. Files are matched on their stem. The walk stops once SearchLimit entries
// are accepted, so results are the best of the entries closest to root, ranked
// best first with an exact name always leading.
func (l *Local) Search(ctx context.Context, root, query string, c state.Criteria) ([]state.FileEntry, error) {
	if root == "" {
		return nil, fmt.Errorf("search needs a root directory")
	}

	// Tags are only known from the store, so name matches are resolved in
	// batches; type and extension are checked while walking.
	walkCriteria := c.WithTags(nil)
	limit := l.opts.SearchLimit

	var (
		accepted []search.Result
		batch    []search.Result
	)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		entries := make([]fsutil.Entry, len(batch))
		for i := range batch {
			entries[i] = batch[i].Entry
		}
		if err := l.attachTags(ctx, entries); err != nil {
			return err
		}
		for i := range batch {
			if state.Matches(entries[i], c) {
				accepted = append(accepted, search.Result{Entry: entries[i], Match: batch[i].Match})
			}
		}
		batch = batch[:0]
		return nil
	}

	err := fsutil.VisitEntries(ctx, root, l.opts.SearchHidden, func(entry fsutil.Entry) error {
		if !state.Matches(entry, walkCriteria) {
			return nil
		}
		match, ok := l.matcher.MatchName(query, entry)
		if !ok {
			return nil
		}
		batch = append(batch, search.Result{Entry: entry, Match: match})
		if len(batch) < searchTagBatch && len(accepted)+len(batch) < limit {
			return nil
		}
		if err := flush(); err != nil {
			return err
		}
		if len(accepted) >= limit {
			l.logger.Debug("search stopped at limit", zap.String("root", root), zap.Int("limit", limit))
			return iofs.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}

	search.Rank(accepted)
	if len(accepted) > limit {
		accepted = accepted[:limit]
	}
	l.logger.Debug("search finished", zap.String("root", root), zap.String("query", query), zap.Int("results", len(accepted)))
	return search.Entries(accepted), nil
}

func (l *Local) attachTags(ctx context.Context, entries []fsutil.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.FullPath
	}
	assigned, err := l.store.TagsForPaths(ctx, paths)
	if err != nil {
		return fmt.Errorf("load tags for entries: %w", err)
	}
	for i := range entries {
		if names, ok := assigned[entries[i].FullPath]; ok {
			entries[i].Tags = slices.Clone(names)
		}
	}
	return nil
}
