// Package sqlite is a TagStore backed by a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kk-code-lab/tagdir/internal/store"
	"github.com/kk-code-lab/tagdir/internal/tags"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// maxPathParams bounds the IN (...) list of TagsForPaths, below SQLite's
// default host parameter limit.
const maxPathParams = 500

type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

var _ store.TagStore = (*Store)(nil)

// Open opens or creates the database at dbPath. ":memory:" gives a private
// in-memory database.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// One connection: PRAGMAs are per connection and ":memory:" is per connection too.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}
	if dbPath != ":memory:" {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &Store{db: db}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS tags (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		parent_id INTEGER REFERENCES tags(id) ON DELETE SET NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tags_parent ON tags(parent_id);

	CREATE TABLE IF NOT EXISTS tagged_files (
		path TEXT NOT NULL,
		tag_id INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (path, tag_id)
	);
	CREATE INDEX IF NOT EXISTS idx_tagged_files_tag ON tagged_files(tag_id);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (*Store) Name() string {
	return "sqlite"
}

func (s *Store) Tags(ctx context.Context) ([]tags.TagRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, store.ErrClosed
	}

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, parent_id FROM tags ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []tags.TagRecord
	for rows.Next() {
		var (
			rec    tags.TagRecord
			parent sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &parent); err != nil {
			return nil, err
		}
		if parent.Valid {
			rec.ParentID = tags.ID(parent.Int64)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
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
	if err := s.checkParentExists(ctx, parentID); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, "INSERT INTO tags (name, parent_id) VALUES (?, ?)", name, nullID(parentID))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
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
	if err := s.checkParentExists(ctx, parentID); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, "UPDATE tags SET name = ?, parent_id = ? WHERE id = ?", name, nullID(parentID), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.MissingTag(id)
	}
	return nil
}

func (s *Store) DeleteTag(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.ErrClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "UPDATE tags SET parent_id = NULL WHERE parent_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM tagged_files WHERE tag_id = ?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.MissingTag(id)
	}
	return tx.Commit()
}

func (s *Store) AssignTags(ctx context.Context, path string, tagIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.ErrClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tagged_files WHERE path = ?", path); err != nil {
		return err
	}
	for _, id := range store.UniqueIDs(tagIDs) {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM tags WHERE id = ?", id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return store.MissingTag(id)
		}
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO tagged_files (path, tag_id) VALUES (?, ?)", path, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) TagsForPaths(ctx context.Context, paths []string) (map[string][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, store.ErrClosed
	}

	out := make(map[string][]string)
	for start := 0; start < len(paths); start += maxPathParams {
		end := min(start+maxPathParams, len(paths))
		if err := s.tagsForChunk(ctx, paths[start:end], out); err != nil {
			return nil, err
		}
	}
	for path := range out {
		sort.Strings(out[path])
	}
	return out, nil
}

func (s *Store) tagsForChunk(ctx context.Context, paths []string, out map[string][]string) error {
	if len(paths) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(paths)), ",")
	args := make([]any, len(paths))
	for i, p := range paths {
		args[i] = p
	}

	query := `SELECT tf.path, t.name FROM tagged_files tf
		JOIN tags t ON t.id = tf.tag_id
		WHERE tf.path IN (` + placeholders + `)`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var path, name string
		if err := rows.Scan(&path, &name); err != nil {
			return err
		}
		out[path] = append(out[path], name)
	}
	return rows.Err()
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *Store) checkParentExists(ctx context.Context, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM tags WHERE id = ?", *parentID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return store.MissingParent(*parentID)
	}
	return err
}

func nullID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
