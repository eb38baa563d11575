package state

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// search runs query below the current directory. An empty query clears the
// results and brings the directory listing back.
func (r *StateReducer) search(state *AppState, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		r.clearSearch(state)
		return nil
	}
	root := state.History.Current()
	if state.SearchActive && state.SearchRoot != "" {
		root = state.SearchRoot
	}
	if root == "" {
		state.StatusMessage = "open a volume before searching"
		return nil
	}
	return r.startSearch(state, root, query)
}

func (r *StateReducer) startSearch(state *AppState, root, query string) error {
	backend, err := r.backend(state)
	if err != nil {
		return err
	}
	token := r.issueToken(state, RequestSearch)
	state.SearchPending = true
	state.pendingSearchRoot = root
	state.pendingSearchQuery = query
	criteria := state.Criteria.WithTags(state.Criteria.SelectedTags.Clone())
	r.logger.Debug("searching", zap.String("root", root), zap.String("query", query), zap.Int("token", token))

	return r.launch(state, RequestSearch, token, func(ctx context.Context) Action {
		results, err := backend.Search(ctx, root, query, criteria)
		return SearchResultsAction{Token: token, Root: root, Query: query, Results: results, Err: err}
	})
}

// rerunSearch issues the newest search again: the one in flight if any,
// otherwise the one on screen.
func (r *StateReducer) rerunSearch(state *AppState) error {
	root, query := state.SearchRoot, state.SearchQuery
	if state.SearchPending {
		root, query = state.pendingSearchRoot, state.pendingSearchQuery
	}
	return r.startSearch(state, root, query)
}

func (r *StateReducer) applySearchResults(state *AppState, a SearchResultsAction) error {
	if !state.isLatest(RequestSearch, a.Token) {
		r.logger.Debug("discarding stale search results", zap.String("query", a.Query), zap.Int("token", a.Token))
		return nil
	}
	state.SearchPending = false
	if a.Err != nil {
		r.logger.Warn("search failed", zap.String("root", a.Root), zap.String("query", a.Query), zap.Error(a.Err))
		return &FetchError{Op: "search", Path: a.Root, Err: a.Err}
	}

	sameQuery := state.SearchActive && state.SearchQuery == a.Query && state.SearchRoot == a.Root
	state.SearchActive = true
	state.SearchQuery = a.Query
	state.SearchRoot = a.Root
	state.SearchResults = a.Results
	state.invalidateDisplay()
	if !sameQuery {
		state.resetViewport()
	}
	state.clampSelection()
	return nil
}

// clearSearch drops results and cancels a running search.
func (r *StateReducer) clearSearch(state *AppState) {
	if token := state.latest[RequestSearch]; token != 0 && state.Runner != nil {
		state.Runner.Cancel(token)
	}
	delete(state.latest, RequestSearch)
	wasActive := state.SearchActive
	state.SearchActive = false
	state.SearchPending = false
	state.pendingSearchRoot = ""
	state.pendingSearchQuery = ""
	state.SearchQuery = ""
	state.SearchRoot = ""
	state.SearchResults = nil
	state.invalidateDisplay()
	if wasActive {
		state.SelectedIndex = r.selectionHistory[state.History.Current()]
		state.ScrollOffset = 0
		state.clampSelection()
	}
}
