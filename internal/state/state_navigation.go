package state

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"
)

func (r *StateReducer) rememberSelection(state *AppState) {
	if state.SearchActive {
		return
	}
	r.selectionHistory[state.History.Current()] = state.SelectedIndex
}

// navigate moves to path. The volume list ("") is local and applied at once;
// a directory is fetched first and the history only moves when it arrives.
func (r *StateReducer) navigate(state *AppState, path string, kind navKind, selectName string) error {
	if path == "" {
		r.cancelPendingNavigation(state)
		switch kind {
		case navBack:
			state.History.Back()
		case navForward:
			state.History.Forward()
		case navVisit:
			if state.History.Current() != "" {
				state.History.push("")
			}
		}
		r.clearSearch(state)
		state.Files = nil
		state.invalidateDisplay()
		state.SelectedIndex = r.selectionHistory[""]
		state.ScrollOffset = 0
		state.clampSelection()
		return nil
	}

	backend, err := r.backend(state)
	if err != nil {
		return err
	}

	token := r.issueToken(state, RequestDirectory)
	state.pendingNav = &pendingNavigation{
		token:      token,
		path:       path,
		kind:       kind,
		fromPos:    state.History.Position(),
		selectName: selectName,
	}
	r.logger.Debug("loading directory", zap.String("path", path), zap.Int("token", token))

	return r.launch(state, RequestDirectory, token, func(ctx context.Context) Action {
		entries, err := backend.ListDirectory(ctx, path)
		return DirectoryLoadedAction{Token: token, Path: path, Entries: entries, Err: err}
	})
}

func (r *StateReducer) cancelPendingNavigation(state *AppState) {
	if state.pendingNav == nil {
		return
	}
	if state.Runner != nil {
		state.Runner.Cancel(state.pendingNav.token)
	}
	delete(state.latest, RequestDirectory)
	state.pendingNav = nil
}

func (r *StateReducer) openEntry(state *AppState) error {
	if volume, ok := state.CurrentVolume(); ok {
		r.rememberSelection(state)
		return r.navigate(state, volume, navVisit, "")
	}
	entry := state.CurrentEntry()
	if entry == nil {
		return nil
	}
	if !entry.IsDir {
		state.StatusMessage = entry.Name + " is not a directory"
		return nil
	}
	r.rememberSelection(state)
	return r.navigate(state, entry.FullPath, navVisit, "")
}

func (r *StateReducer) openPath(state *AppState, path string) error {
	if path == "" {
		return r.navigate(state, "", navVisit, "")
	}
	r.rememberSelection(state)
	return r.navigate(state, filepath.Clean(path), navVisit, "")
}

// goUp opens the parent directory with the cursor on the directory we left. A
// filesystem root goes up to the volume list.
func (r *StateReducer) goUp(state *AppState) error {
	current := state.History.Current()
	if current == "" {
		return nil
	}
	r.rememberSelection(state)
	parent := filepath.Dir(current)
	if parent == current {
		return r.navigate(state, "", navVisit, "")
	}
	return r.navigate(state, parent, navVisit, filepath.Base(current))
}

// refreshListing reloads what the file panel shows without moving the history.
// A load still in flight is issued again rather than replaced, so the
// navigation the user started still lands.
func (r *StateReducer) refreshListing(state *AppState) error {
	if pending := state.pendingNav; pending != nil {
		return r.navigate(state, pending.path, pending.kind, pending.selectName)
	}
	if state.SearchActive || state.SearchPending {
		return r.rerunSearch(state)
	}
	current := state.History.Current()
	if current == "" {
		return r.loadVolumes(state)
	}
	return r.navigate(state, current, navRefresh, "")
}

func (r *StateReducer) applyDirectory(state *AppState, a DirectoryLoadedAction) error {
	pending := state.pendingNav
	if pending == nil || pending.token != a.Token || !state.isLatest(RequestDirectory, a.Token) {
		r.logger.Debug("discarding stale directory listing", zap.String("path", a.Path), zap.Int("token", a.Token))
		return nil
	}
	state.pendingNav = nil

	if a.Err != nil {
		r.logger.Warn("directory listing failed", zap.String("path", a.Path), zap.Error(a.Err))
		return &FetchError{Op: "directory", Path: a.Path, Err: a.Err}
	}

	switch pending.kind {
	case navBack:
		if state.History.Position() == pending.fromPos {
			state.History.Back()
		} else {
			state.History.push(a.Path)
		}
	case navForward:
		if state.History.Position() == pending.fromPos {
			state.History.Forward()
		} else {
			state.History.push(a.Path)
		}
	case navVisit:
		// Reopening the current location does not grow the history.
		if state.History.Current() != a.Path {
			state.History.push(a.Path)
		}
	}

	refresh := pending.kind == navRefresh
	if !refresh {
		r.clearSearch(state)
	}
	state.Files = a.Entries
	state.invalidateDisplay()

	switch {
	case refresh:
	case pending.selectName != "":
		state.resetViewport()
		for idx, entry := range state.DisplayEntries() {
			if entry.Name == pending.selectName {
				state.SelectedIndex = idx
				break
			}
		}
	default:
		state.resetViewport()
		if saved, ok := r.selectionHistory[a.Path]; ok {
			state.SelectedIndex = saved
		}
	}
	state.clampSelection()
	return nil
}

func (r *StateReducer) loadVolumes(state *AppState) error {
	backend, err := r.backend(state)
	if err != nil {
		return err
	}
	token := r.issueToken(state, RequestVolumes)
	return r.launch(state, RequestVolumes, token, func(ctx context.Context) Action {
		volumes, err := backend.ListVolumes(ctx)
		return VolumesLoadedAction{Token: token, Volumes: volumes, Err: err}
	})
}

func (r *StateReducer) applyVolumes(state *AppState, a VolumesLoadedAction) error {
	if !state.isLatest(RequestVolumes, a.Token) {
		return nil
	}
	if a.Err != nil {
		r.logger.Warn("listing volumes failed", zap.Error(a.Err))
		return &FetchError{Op: "volumes", Err: a.Err}
	}
	state.Volumes = a.Volumes
	state.clampSelection()
	return nil
}
