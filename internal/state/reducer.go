package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/kk-code-lab/tagdir/internal/tags"
	"go.uber.org/zap"
)

// ===== REDUCER =====

// StateReducer applies actions to state
type StateReducer struct {
	logger           *zap.Logger
	selectionHistory map[string]int // path -> selected index
}

// NewStateReducer creates a new reducer. A nil logger discards output.
func NewStateReducer(logger *zap.Logger) *StateReducer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateReducer{
		logger:           logger,
		selectionHistory: make(map[string]int),
	}
}

// Reduce applies action to state and returns it. The returned error is also
// stored in state.LastError.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	if !isResultAction(action) {
		state.LastError = nil
	}
	err := r.reduce(state, action)
	if err != nil {
		state.LastError = err
	}
	return state, err
}

func isResultAction(action Action) bool {
	switch action.(type) {
	case TagsLoadedAction, DirectoryLoadedAction, VolumesLoadedAction, SearchResultsAction, MutationDoneAction:
		return true
	}
	return false
}

func (r *StateReducer) reduce(state *AppState, action Action) error {
	switch a := action.(type) {

	// ===== LIFECYCLE =====
	case InitAction:
		if state.Initialized {
			return nil
		}
		state.Initialized = true
		r.logger.Debug("initializing session")
		return errors.Join(r.loadVolumes(state), r.refreshTags(state))

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.clampSelection()
		state.clampTagCursor()
		return nil

	case QuitAction, SuspendAction:
		return nil
	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
		return nil
	case HelpHideAction:
		state.HelpVisible = false
		return nil

	// ===== CURSOR =====
	case CursorUpAction:
		r.moveCursor(state, -1)
		return nil
	case CursorDownAction:
		r.moveCursor(state, 1)
		return nil
	case CursorPageUpAction:
		r.moveCursor(state, -state.listHeight())
		return nil
	case CursorPageDownAction:
		r.moveCursor(state, state.listHeight())
		return nil
	case CursorHomeAction:
		r.moveCursor(state, -state.cursorLen())
		return nil
	case CursorEndAction:
		r.moveCursor(state, state.cursorLen())
		return nil
	case SelectEntryAction:
		if a.Index >= 0 && a.Index < state.listLen() {
			state.Focus = FocusFiles
			state.SelectedIndex = a.Index
			state.clampSelection()
		}
		return nil
	case SelectTagRowAction:
		if a.Index >= 0 && a.Index < len(state.Forest.Rows()) {
			state.Focus = FocusTags
			state.TagCursor = a.Index
			state.clampTagCursor()
		}
		return nil
	case SwitchFocusAction:
		if state.Focus == FocusFiles {
			state.Focus = FocusTags
		} else {
			state.Focus = FocusFiles
		}
		return nil

	// ===== NAVIGATION =====
	case OpenEntryAction:
		return r.openEntry(state)
	case OpenPathAction:
		return r.openPath(state, a.Path)
	case GoBackAction:
		target, ok := state.History.PeekBack()
		if !ok {
			return nil
		}
		r.rememberSelection(state)
		return r.navigate(state, target, navBack, "")
	case GoForwardAction:
		target, ok := state.History.PeekForward()
		if !ok {
			return nil
		}
		r.rememberSelection(state)
		return r.navigate(state, target, navForward, "")
	case GoUpAction:
		return r.goUp(state)
	case GoVolumesAction:
		r.rememberSelection(state)
		return r.navigate(state, "", navVisit, "")
	case RefreshDirectoryAction:
		return r.refreshListing(state)
	case ToggleHiddenFilesAction:
		state.ShowHidden = !state.ShowHidden
		state.invalidateDisplay()
		state.clampSelection()
		return nil

	// ===== TAGS =====
	case RefreshTagsAction:
		return r.refreshTags(state)
	case ToggleTagAction:
		return r.toggleTag(state, a.ID)
	case ToggleTagAtCursorAction:
		if node, ok := state.CursorTag(); ok {
			return r.toggleTag(state, node.ID)
		}
		return nil
	case ClearTagSelectionAction:
		state.Criteria = state.Criteria.WithTags(tags.NewSelection())
		return r.criteriaChanged(state)
	case CreateTagAction:
		return r.createTag(state, a.Name, a.ParentID)
	case UpdateTagAction:
		return r.updateTag(state, a.ID, a.Name, a.ParentID)
	case DeleteTagAction:
		return r.deleteTag(state, a.ID)
	case AssignTagsAction:
		return r.assignTags(state, a.Path, a.TagIDs)
	case ToggleCursorTagOnEntryAction:
		return r.toggleCursorTagOnEntry(state)

	// ===== FILTER =====
	case ToggleAcceptFilesAction:
		state.Criteria = state.Criteria.SetAcceptFiles(!state.Criteria.AcceptFiles)
		return r.criteriaChanged(state)
	case ToggleAcceptDirectoriesAction:
		state.Criteria = state.Criteria.SetAcceptDirectories(!state.Criteria.AcceptDirectories)
		return r.criteriaChanged(state)
	case SetExtensionAction:
		state.Criteria = state.Criteria.WithExtension(a.Extension)
		return r.criteriaChanged(state)

	// ===== SEARCH =====
	case SearchAction:
		return r.search(state, a.Query)
	case SearchClearAction:
		r.clearSearch(state)
		return nil

	// ===== PROMPT =====
	case PromptStartAction:
		r.startPrompt(state, a.Kind)
		return nil
	case PromptCharAction:
		if state.Prompt.Kind != PromptNone {
			state.Prompt.Input += string(a.Char)
		}
		return nil
	case PromptBackspaceAction:
		if input := []rune(state.Prompt.Input); len(input) > 0 {
			state.Prompt.Input = string(input[:len(input)-1])
		}
		return nil
	case PromptCancelAction:
		state.Prompt = Prompt{}
		return nil
	case PromptSubmitAction:
		return r.submitPrompt(state)

	// ===== RESULTS =====
	case TagsLoadedAction:
		return r.applyTags(state, a)
	case DirectoryLoadedAction:
		return r.applyDirectory(state, a)
	case VolumesLoadedAction:
		return r.applyVolumes(state, a)
	case SearchResultsAction:
		return r.applySearchResults(state, a)
	case MutationDoneAction:
		return r.applyMutation(state, a)
	}

	return nil
}

// ===== REQUESTS =====

// issueToken allocates the token of a new request of kind. For every kind but
// mutations the previous request is cancelled and its result will be ignored.
func (r *StateReducer) issueToken(state *AppState, kind RequestKind) int {
	state.nextToken++
	token := state.nextToken
	if kind == RequestMutation {
		return token
	}
	if state.latest == nil {
		state.latest = make(map[RequestKind]int)
	}
	if prev := state.latest[kind]; prev != 0 && state.Runner != nil {
		state.Runner.Cancel(prev)
	}
	state.latest[kind] = token
	return token
}

// isLatest reports whether token belongs to the newest request of kind.
func (s *AppState) isLatest(kind RequestKind, token int) bool {
	return token != 0 && s.latest[kind] == token
}

// launch hands run to the runner. Without a runner or dispatch hook the call
// happens inline and its result is reduced before launch returns.
func (r *StateReducer) launch(state *AppState, kind RequestKind, token int, run func(ctx context.Context) Action) error {
	runner := state.Runner
	dispatch := state.getDispatch()
	if runner == nil || dispatch == nil {
		return r.reduce(state, run(context.Background()))
	}
	r.logger.Debug("request started", zap.Stringer("kind", kind), zap.Int("token", token))
	runner.Start(Request{
		Token:    token,
		Kind:     kind,
		Run:      run,
		Callback: dispatch,
	})
	return nil
}

func (r *StateReducer) backend(state *AppState) (Backend, error) {
	if state.Backend == nil {
		return nil, fmt.Errorf("no backend configured")
	}
	return state.Backend, nil
}

func (r *StateReducer) moveCursor(state *AppState, delta int) {
	if state.Focus == FocusTags {
		state.TagCursor += delta
		state.clampTagCursor()
		return
	}
	state.SelectedIndex += delta
	state.clampSelection()
}
