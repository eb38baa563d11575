package state

import (
	"context"

	"github.com/kk-code-lab/tagdir/internal/tags"
)

// Backend is everything the controller needs from storage and the filesystem.
// Tag mutations only change the store; callers refresh their snapshot after a
// successful call.
type Backend interface {
	FetchTags(ctx context.Context) ([]tags.TagRecord, error)
	CreateTag(ctx context.Context, name string, parentID *int64) (int64, error)
	UpdateTag(ctx context.Context, id int64, newName string, parentID *int64) error
	DeleteTag(ctx context.Context, id int64) error
	AssignTags(ctx context.Context, path string, tagIDs []int64) error

	ListDirectory(ctx context.Context, path string) ([]FileEntry, error)
	ListVolumes(ctx context.Context) ([]string, error)
	// Search walks root for entries whose name contains query and that pass c.
	Search(ctx context.Context, root, query string, c Criteria) ([]FileEntry, error)
}
