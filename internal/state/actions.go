package state

import "github.com/kk-code-lab/tagdir/internal/tags"

// Action is the base interface for all state mutations
type Action interface{}

// ===== LIFECYCLE ACTIONS =====

// InitAction loads volumes and tags. Only the first one has an effect.
type InitAction struct{}

type ResizeAction struct {
	Width  int
	Height int
}

type QuitAction struct{}

type HelpToggleAction struct{}
type HelpHideAction struct{}

// SuspendAction stops the process and returns control to the shell.
type SuspendAction struct{}

// ===== CURSOR ACTIONS =====

type CursorUpAction struct{}
type CursorDownAction struct{}
type CursorPageUpAction struct{}
type CursorPageDownAction struct{}
type CursorHomeAction struct{}
type CursorEndAction struct{}
type SwitchFocusAction struct{}

// SelectEntryAction moves the file cursor to Index (mouse).
type SelectEntryAction struct {
	Index int
}

// SelectTagRowAction moves the tag cursor to Index (mouse).
type SelectTagRowAction struct {
	Index int
}

// ===== NAVIGATION ACTIONS =====

// OpenEntryAction opens the volume or directory under the file cursor.
type OpenEntryAction struct{}
type OpenPathAction struct {
	Path string
}
type GoBackAction struct{}
type GoForwardAction struct{}
type GoUpAction struct{}
type GoVolumesAction struct{}
type RefreshDirectoryAction struct{}
type ToggleHiddenFilesAction struct{}

// ===== TAG ACTIONS =====

type RefreshTagsAction struct{}
type ToggleTagAction struct {
	ID int64
}
type ToggleTagAtCursorAction struct{}
type ClearTagSelectionAction struct{}
type CreateTagAction struct {
	Name     string
	ParentID *int64
}
type UpdateTagAction struct {
	ID       int64
	Name     string
	ParentID *int64
}
type DeleteTagAction struct {
	ID int64
}

// AssignTagsAction replaces the tags of Path.
type AssignTagsAction struct {
	Path   string
	TagIDs []int64
}

// ToggleCursorTagOnEntryAction adds or removes the tag under the tag cursor on
// the entry under the file cursor.
type ToggleCursorTagOnEntryAction struct{}

// ===== FILTER ACTIONS =====

type ToggleAcceptFilesAction struct{}
type ToggleAcceptDirectoriesAction struct{}
type SetExtensionAction struct {
	Extension string
}

// ===== SEARCH ACTIONS =====

type SearchAction struct {
	Query string
}
type SearchClearAction struct{}

// ===== PROMPT ACTIONS =====

type PromptStartAction struct {
	Kind PromptKind
}
type PromptCharAction struct {
	Char rune
}
type PromptBackspaceAction struct{}
type PromptSubmitAction struct{}
type PromptCancelAction struct{}

// ===== RESULT ACTIONS =====
// Emitted by the request runner. Token identifies the request that produced them.

type TagsLoadedAction struct {
	Token   int
	Records []tags.TagRecord
	Err     error
}

type DirectoryLoadedAction struct {
	Token   int
	Path    string
	Entries []FileEntry
	Err     error
}

type VolumesLoadedAction struct {
	Token   int
	Volumes []string
	Err     error
}

type SearchResultsAction struct {
	Token   int
	Root    string
	Query   string
	Results []FileEntry
	Err     error
}

type MutationDoneAction struct {
	Token int
	Op    string
	TagID int64
	Path  string
	Err   error
}
