// Package store persists tags and the tag assignments of filesystem paths.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kk-code-lab/tagdir/internal/tags"
)

var (
	ErrNotFound     = errors.New("store: tag not found")
	ErrInvalidInput = errors.New("store: invalid input")
	ErrClosed       = errors.New("store: closed")
)

// TagStore is the persistence side of the tag backend.
//
// Deleting a tag turns its children into roots and drops its assignments.
type TagStore interface {
	// Name identifies the implementation in logs.
	Name() string

	Tags(ctx context.Context) ([]tags.TagRecord, error)
	CreateTag(ctx context.Context, name string, parentID *int64) (int64, error)
	UpdateTag(ctx context.Context, id int64, name string, parentID *int64) error
	DeleteTag(ctx context.Context, id int64) error

	// AssignTags replaces the tag set of path. An empty list clears it.
	AssignTags(ctx context.Context, path string, tagIDs []int64) error
	// TagsForPaths returns the tag names assigned to each of paths. Paths without
	// tags are absent from the result.
	TagsForPaths(ctx context.Context, paths []string) (map[string][]string, error)

	Close() error
}

// NormalizeName trims name and rejects empty results.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: tag name is empty", ErrInvalidInput)
	}
	return name, nil
}

// CheckParent rejects a tag naming itself as parent. id is 0 for tags that do not
// exist yet.
func CheckParent(id int64, parentID *int64) error {
	if parentID != nil && id != 0 && *parentID == id {
		return fmt.Errorf("%w: tag %d cannot be its own parent", ErrInvalidInput, id)
	}
	return nil
}

// MissingParent builds the error returned when parentID does not resolve.
func MissingParent(parentID int64) error {
	return fmt.Errorf("%w: parent tag %d does not exist", ErrInvalidInput, parentID)
}

// MissingTag builds the not-found error for id.
func MissingTag(id int64) error {
	return fmt.Errorf("%w: tag %d", ErrNotFound, id)
}

// UniqueIDs removes duplicate ids keeping first occurrences.
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
