package state

import (
	fsutil "github.com/kk-code-lab/tagdir/internal/fs"
	"github.com/kk-code-lab/tagdir/internal/tags"
)

// FileEntry mirrors fs.Entry so UI/state code can rely on a stable type.
type FileEntry = fsutil.Entry

// Focus selects the panel that receives cursor movement.
type Focus int

const (
	FocusFiles Focus = iota
	FocusTags
)

// PromptKind identifies what the one-line input at the bottom is collecting.
type PromptKind int

const (
	PromptNone PromptKind = iota
	PromptSearch
	PromptExtension
	PromptNewTag
	PromptNewChildTag
	PromptRenameTag
	PromptConfirmDelete
)

// Prompt is an active line-edit session.
type Prompt struct {
	Kind     PromptKind
	Input    string
	TargetID int64 // tag the prompt acts on, when any
}

type navKind int

const (
	navVisit navKind = iota
	navBack
	navForward
	navRefresh
)

// pendingNavigation is a directory load whose success will move the history.
type pendingNavigation struct {
	token   int
	path    string
	kind    navKind
	fromPos int
	// selectName is the entry to put the cursor on once loaded (going up).
	selectName string
}

// ===== STATE DEFINITIONS =====

// AppState is the single source of truth
type AppState struct {
	// Lifecycle: set by the first InitAction.
	Initialized bool

	// Tags
	TagRecords []tags.TagRecord
	Forest     *tags.Forest
	TagIssues  []tags.Issue
	TagCursor  int
	TagScroll  int

	// Filtering
	Criteria Criteria

	// Navigation & filesystem
	History       History
	Volumes       []string
	Files         []FileEntry // entries of History.Current(), sorted
	SelectedIndex int         // cursor into DisplayEntries (or Volumes)
	ScrollOffset  int
	ShowHidden    bool

	// Search results interleave with browsing: while SearchActive they replace
	// Files as the listing source.
	SearchActive  bool
	SearchQuery   string
	SearchRoot    string
	SearchResults []FileEntry
	SearchPending bool

	Focus       Focus
	Prompt      Prompt
	HelpVisible bool

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Status line
	StatusMessage string
	LastError     error

	// Collaborators
	Backend Backend
	Runner  RequestRunner

	dispatchAction func(Action)
	nextToken      int
	latest         map[RequestKind]int
	pendingNav     *pendingNavigation
	// root and query of the search in flight while SearchPending
	pendingSearchRoot  string
	pendingSearchQuery string

	// Display entries cache
	displayCache []FileEntry
	displayDirty bool
}

// NewAppState returns the state of a fresh session.
func NewAppState(backend Backend, runner RequestRunner) *AppState {
	return &AppState{
		Criteria:     DefaultCriteria(),
		History:      NewHistory(),
		Forest:       tags.BuildForest(nil),
		Backend:      backend,
		Runner:       runner,
		displayDirty: true,
	}
}

// ===== HELPER METHODS =====

func (s *AppState) setDispatch(fn func(Action)) {
	s.dispatchAction = fn
}

func (s *AppState) getDispatch() func(Action) {
	return s.dispatchAction
}

// SetDispatch exposes the reducer dispatch hook to other packages.
func (s *AppState) SetDispatch(fn func(Action)) {
	s.setDispatch(fn)
}

// CurrentLocation is the location the history points at; "" is the volume list.
func (s *AppState) CurrentLocation() string {
	return s.History.Current()
}

// ShowVolumes reports whether the listing shows volumes instead of entries.
func (s *AppState) ShowVolumes() bool {
	return s.History.Current() == "" && !s.SearchActive
}

func (s *AppState) CanGoBack() bool {
	return s.History.CanGoBack()
}

func (s *AppState) CanGoForward() bool {
	return s.History.CanGoForward()
}

// Loading reports whether a directory or search request is in flight.
func (s *AppState) Loading() bool {
	return s.pendingNav != nil || s.SearchPending
}

// invalidateDisplay marks the display entries cache as dirty.
// Call it whenever Files, SearchResults, SearchActive or Criteria change.
func (s *AppState) invalidateDisplay() {
	s.displayDirty = true
}

// DisplayEntries returns the listing after the filter criteria.
func (s *AppState) DisplayEntries() []FileEntry {
	if !s.displayDirty && s.displayCache != nil {
		return s.displayCache
	}
	source := s.Files
	if s.SearchActive {
		source = s.SearchResults
	}
	if !s.ShowHidden {
		visible := make([]FileEntry, 0, len(source))
		for _, entry := range source {
			if !entry.IsHidden() {
				visible = append(visible, entry)
			}
		}
		source = visible
	}
	s.displayCache = FilterEntries(source, s.Criteria)
	s.displayDirty = false
	return s.displayCache
}

// listLen is the number of rows in the file panel.
func (s *AppState) listLen() int {
	if s.ShowVolumes() {
		return len(s.Volumes)
	}
	return len(s.DisplayEntries())
}

// cursorLen is the length of the list under focus.
func (s *AppState) cursorLen() int {
	if s.Focus == FocusTags {
		return len(s.Forest.Rows())
	}
	return s.listLen()
}

// CurrentEntry returns the entry under the file cursor.
func (s *AppState) CurrentEntry() *FileEntry {
	if s.ShowVolumes() {
		return nil
	}
	entries := s.DisplayEntries()
	if s.SelectedIndex >= 0 && s.SelectedIndex < len(entries) {
		return &entries[s.SelectedIndex]
	}
	return nil
}

// CurrentVolume returns the volume under the file cursor.
func (s *AppState) CurrentVolume() (string, bool) {
	if !s.ShowVolumes() || s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Volumes) {
		return "", false
	}
	return s.Volumes[s.SelectedIndex], true
}

// TagRow is one line of the tag panel.
type TagRow struct {
	tags.Row
	Checked bool
}

// TagRows flattens the forest with selection state.
func (s *AppState) TagRows() []TagRow {
	rows := s.Forest.Rows()
	out := make([]TagRow, len(rows))
	for i, row := range rows {
		out[i] = TagRow{Row: row, Checked: s.Criteria.SelectedTags.Has(row.Node.Name)}
	}
	return out
}

// CursorTag returns the tag under the tag cursor.
func (s *AppState) CursorTag() (tags.TagNode, bool) {
	rows := s.Forest.Rows()
	if s.TagCursor < 0 || s.TagCursor >= len(rows) {
		return tags.TagNode{}, false
	}
	return rows[s.TagCursor].Node, true
}

// listHeight is the number of rows available to the scrolling panels.
func (s *AppState) listHeight() int {
	h := s.ScreenHeight - 4 // header, filter bar, prompt/status, footer
	if h < 1 {
		return 1
	}
	return h
}

func (s *AppState) clampSelection() {
	n := s.listLen()
	if s.SelectedIndex >= n {
		s.SelectedIndex = n - 1
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	s.ScrollOffset = scrollToShow(s.SelectedIndex, s.ScrollOffset, s.listHeight(), n)
}

func (s *AppState) clampTagCursor() {
	n := len(s.Forest.Rows())
	if s.TagCursor >= n {
		s.TagCursor = n - 1
	}
	if s.TagCursor < 0 {
		s.TagCursor = 0
	}
	s.TagScroll = scrollToShow(s.TagCursor, s.TagScroll, s.listHeight(), n)
}

func (s *AppState) resetViewport() {
	s.SelectedIndex = 0
	s.ScrollOffset = 0
}

// scrollToShow keeps index visible in a window of height rows.
func scrollToShow(index, offset, height, total int) int {
	if total <= height {
		return 0
	}
	if index < offset {
		return index
	}
	if index >= offset+height {
		return index - height + 1
	}
	if offset > total-height {
		return total - height
	}
	return offset
}
