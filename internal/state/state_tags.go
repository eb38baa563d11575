package state

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/kk-code-lab/tagdir/internal/tags"
	"go.uber.org/zap"
)

const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
	opAssign = "assign"
)

func (r *StateReducer) refreshTags(state *AppState) error {
	backend, err := r.backend(state)
	if err != nil {
		return err
	}
	token := r.issueToken(state, RequestTags)
	return r.launch(state, RequestTags, token, func(ctx context.Context) Action {
		records, err := backend.FetchTags(ctx)
		return TagsLoadedAction{Token: token, Records: records, Err: err}
	})
}

// applyTags replaces the tag snapshot wholesale. Selected names that no longer
// exist are dropped from the criteria.
func (r *StateReducer) applyTags(state *AppState, a TagsLoadedAction) error {
	if !state.isLatest(RequestTags, a.Token) {
		r.logger.Debug("discarding stale tag snapshot", zap.Int("token", a.Token))
		return nil
	}
	if a.Err != nil {
		r.logger.Warn("fetching tags failed", zap.Error(a.Err))
		return &FetchError{Op: "tags", Err: a.Err}
	}

	state.TagRecords = a.Records
	state.Forest = tags.BuildForest(a.Records)
	state.TagIssues = state.Forest.Validate()
	for _, issue := range state.TagIssues {
		r.logger.Warn("tag data issue", zap.Stringer("issue", issue))
	}
	r.logger.Debug("tags loaded", zap.Int("count", len(a.Records)))

	pruned := state.Forest.PruneSelection(state.Criteria.SelectedTags)
	if !pruned.Equal(state.Criteria.SelectedTags) {
		state.Criteria = state.Criteria.WithTags(pruned)
		state.invalidateDisplay()
		state.clampSelection()
	}
	state.clampTagCursor()
	return nil
}

func (r *StateReducer) toggleTag(state *AppState, id int64) error {
	next := tags.Toggle(state.Forest, state.Criteria.SelectedTags, id)
	state.Criteria = state.Criteria.WithTags(next)
	return r.criteriaChanged(state)
}

// criteriaChanged refilters the listing. Active search results are fetched
// again because the backend applies the criteria while walking.
func (r *StateReducer) criteriaChanged(state *AppState) error {
	state.invalidateDisplay()
	state.clampSelection()
	if state.SearchPending || (state.SearchActive && state.SearchQuery != "") {
		return r.rerunSearch(state)
	}
	return nil
}

func (r *StateReducer) createTag(state *AppState, name string, parentID *int64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &MutationError{Op: opCreate, Err: fmt.Errorf("tag name is empty")}
	}
	return r.mutate(state, opCreate, 0, "", func(ctx context.Context, backend Backend) (int64, error) {
		return backend.CreateTag(ctx, name, parentID)
	})
}

func (r *StateReducer) updateTag(state *AppState, id int64, name string, parentID *int64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &MutationError{Op: opUpdate, TagID: id, Err: fmt.Errorf("tag name is empty")}
	}
	return r.mutate(state, opUpdate, id, "", func(ctx context.Context, backend Backend) (int64, error) {
		return id, backend.UpdateTag(ctx, id, name, parentID)
	})
}

func (r *StateReducer) deleteTag(state *AppState, id int64) error {
	return r.mutate(state, opDelete, id, "", func(ctx context.Context, backend Backend) (int64, error) {
		return id, backend.DeleteTag(ctx, id)
	})
}

func (r *StateReducer) assignTags(state *AppState, path string, ids []int64) error {
	ids = slices.Clone(ids)
	return r.mutate(state, opAssign, 0, path, func(ctx context.Context, backend Backend) (int64, error) {
		return 0, backend.AssignTags(ctx, path, ids)
	})
}

// toggleCursorTagOnEntry adds the tag under the tag cursor to the entry under
// the file cursor, or removes it (with every same-named tag) when present.
func (r *StateReducer) toggleCursorTagOnEntry(state *AppState) error {
	entry := state.CurrentEntry()
	node, ok := state.CursorTag()
	if entry == nil || !ok {
		return nil
	}

	removing := entry.HasTag(node.Name)
	var ids []int64
	for _, row := range state.Forest.Rows() {
		if !entry.HasTag(row.Node.Name) {
			continue
		}
		if removing && row.Node.Name == node.Name {
			continue
		}
		ids = append(ids, row.Node.ID)
	}
	if !removing {
		ids = append(ids, node.ID)
	}
	return r.assignTags(state, entry.FullPath, ids)
}

func (r *StateReducer) mutate(state *AppState, op string, tagID int64, path string, call func(ctx context.Context, backend Backend) (int64, error)) error {
	backend, err := r.backend(state)
	if err != nil {
		return &MutationError{Op: op, TagID: tagID, Path: path, Err: err}
	}
	token := r.issueToken(state, RequestMutation)
	r.logger.Debug("tag mutation", zap.String("op", op), zap.Int64("tag", tagID), zap.String("path", path))
	return r.launch(state, RequestMutation, token, func(ctx context.Context) Action {
		id, err := call(ctx, backend)
		if id == 0 {
			id = tagID
		}
		return MutationDoneAction{Token: token, Op: op, TagID: id, Path: path, Err: err}
	})
}

// applyMutation refreshes the snapshot after a successful change. The refresh
// gets a new token, so any snapshot requested before the change is discarded.
func (r *StateReducer) applyMutation(state *AppState, a MutationDoneAction) error {
	if a.Err != nil {
		r.logger.Warn("tag mutation failed", zap.String("op", a.Op), zap.Int64("tag", a.TagID), zap.Error(a.Err))
		return &MutationError{Op: a.Op, TagID: a.TagID, Path: a.Path, Err: a.Err}
	}

	switch a.Op {
	case opCreate:
		state.StatusMessage = "tag created"
	case opUpdate:
		state.StatusMessage = "tag updated"
	case opDelete:
		state.StatusMessage = "tag deleted"
	case opAssign:
		state.StatusMessage = "tags assigned"
	}

	if err := r.refreshTags(state); err != nil {
		return err
	}
	if a.Op == opCreate {
		return nil
	}
	// Entry tag names changed.
	return r.refreshListing(state)
}
