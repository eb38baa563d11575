package render

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	searchpkg "github.com/kk-code-lab/tagdir/internal/search"
	statepkg "github.com/kk-code-lab/tagdir/internal/state"
	textutil "github.com/kk-code-lab/tagdir/internal/textutil"
)

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	matcher          *searchpkg.Matcher
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes

	layoutMu   sync.RWMutex
	lastLayout Layout
	hasLayout  bool
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen:  screen,
		theme:   GetColorTheme(),
		matcher: searchpkg.NewMatcher().WithMinScore(0),
	}
}

// LastLayout returns the layout of the most recent frame.
func (r *Renderer) LastLayout() (Layout, bool) {
	r.layoutMu.RLock()
	defer r.layoutMu.RUnlock()
	return r.lastLayout, r.hasLayout
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()

	w, h := r.screen.Size()
	layout := computeLayout(w, h)
	r.layoutMu.Lock()
	r.lastLayout = layout
	r.hasLayout = true
	r.layoutMu.Unlock()

	if state.HelpVisible {
		r.drawHelpOverlay(state, w, h)
		r.screen.Show()
		return
	}

	r.drawHeader(state, layout)
	if layout.TagPanelWidth > 0 {
		r.drawTagPanel(state, layout)
		if layout.SeparatorWidth > 0 {
			sepStyle := tcell.StyleDefault.Foreground(r.theme.DisabledFg)
			for y := layout.ListTop; y < layout.ListTop+layout.ListRows; y++ {
				r.screen.SetContent(layout.TagPanelWidth, y, '│', nil, sepStyle)
			}
		}
	}
	r.drawFileList(state, layout)
	r.drawFilterBar(state, layout)
	r.drawStatusLine(state, layout)
	r.drawFooter(state, layout)

	r.screen.Show()
}

// drawHeader renders the top bar: title, history arrows and location.
func (r *Renderer) drawHeader(state *statepkg.AppState, layout Layout) {
	w := layout.Width
	if layout.Height < 1 {
		return
	}
	headerStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	disabledStyle := headerStyle.Foreground(r.theme.DisabledFg)

	x := r.drawTextLine(0, 0, w, headerTitle, headerStyle.Bold(true))

	backStyle, forwardStyle := disabledStyle, disabledStyle
	if state.CanGoBack() {
		backStyle = headerStyle
	}
	if state.CanGoForward() {
		forwardStyle = headerStyle
	}
	x = r.drawStyledStringClipped(x, 0, w, "◀", backStyle)
	x = r.drawStyledStringClipped(x, 0, w, " ", headerStyle)
	x = r.drawStyledStringClipped(x, 0, w, "▶", forwardStyle)
	x = r.drawStyledStringClipped(x, 0, w, " ", headerStyle)

	if x < w {
		location := headerLocation(state)
		location = textutil.SanitizeTerminalText(location)
		location = r.truncateLeftToWidth(location, w-x)
		x = r.drawTextLine(x, 0, w-x, location, headerStyle.Bold(true))
	}

	r.fillRow(x, w, 0, headerStyle)
}

func headerLocation(state *statepkg.AppState) string {
	switch {
	case state.SearchActive:
		return "search in " + state.SearchRoot
	case state.ShowVolumes():
		return "Volumes"
	default:
		return state.CurrentLocation()
	}
}

// drawTagPanel renders the tag forest with selection checkboxes.
func (r *Renderer) drawTagPanel(state *statepkg.AppState, layout Layout) {
	width := layout.TagPanelWidth
	baseStyle := tcell.StyleDefault.Background(r.theme.PanelBg).Foreground(r.theme.PanelFg)
	rows := state.TagRows()

	y := layout.ListTop
	bottom := layout.ListTop + layout.ListRows

	if len(rows) == 0 {
		for _, line := range []string{" No tags", " n: new tag"} {
			if y >= bottom {
				break
			}
			endX := r.drawTextLine(0, y, width, r.truncateTextToWidth(line, width), baseStyle.Foreground(r.theme.DisabledFg))
			r.fillRow(endX, width, y, baseStyle)
			y++
		}
	}

	for i := state.TagScroll; i < len(rows) && y < bottom; i++ {
		row := rows[i]

		style := baseStyle.Foreground(r.theme.TagFg)
		if row.Checked {
			style = style.Foreground(r.theme.TagCheckedFg)
		}
		if i == state.TagCursor {
			style = r.cursorStyle(state.Focus == statepkg.FocusTags)
		}

		box := "[ ] "
		if row.Checked {
			box = "[x] "
		}
		prefix := " " + strings.Repeat("  ", row.Depth) + box
		name := textutil.SanitizeTerminalText(row.Node.Name)
		line := prefix + r.truncateTextToWidth(name, width-r.measureTextWidth(prefix))
		line = r.truncateTextToWidth(line, width)

		endX := r.drawTextLine(0, y, width, line, style)
		r.fillRow(endX, width, y, style)
		y++
	}

	for ; y < bottom; y++ {
		r.fillRow(0, width, y, baseStyle)
	}
}

func (r *Renderer) cursorStyle(focused bool) tcell.Style {
	if focused {
		return tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	}
	return tcell.StyleDefault.Background(r.theme.InactiveSelBg).Foreground(r.theme.InactiveSelFg)
}

// drawFileList renders the volume list, the directory listing or search results.
func (r *Renderer) drawFileList(state *statepkg.AppState, layout Layout) {
	startX := layout.ListStart
	maxX := startX + layout.ListWidth
	baseStyle := tcell.StyleDefault.Background(r.theme.PanelBg)
	bottom := layout.ListTop + layout.ListRows
	focused := state.Focus == statepkg.FocusFiles

	y := layout.ListTop
	if state.ShowVolumes() {
		for i := state.ScrollOffset; i < len(state.Volumes) && y < bottom; i++ {
			style := baseStyle.Foreground(r.theme.DirectoryFg)
			if i == state.SelectedIndex {
				style = r.cursorStyle(focused)
			}
			line := " # " + textutil.SanitizeTerminalText(state.Volumes[i])
			endX := r.drawTextLine(startX, y, layout.ListWidth, r.truncateTextToWidth(line, layout.ListWidth), style)
			r.fillRow(endX, maxX, y, style)
			y++
		}
		if len(state.Volumes) == 0 && y < bottom {
			r.drawPlaceholder(startX, y, layout.ListWidth, emptyListMessage(state), baseStyle)
			y++
		}
		for ; y < bottom; y++ {
			r.fillRow(startX, maxX, y, baseStyle)
		}
		return
	}

	entries := state.DisplayEntries()
	for i := state.ScrollOffset; i < len(entries) && y < bottom; i++ {
		r.drawEntryRow(state, entries[i], i == state.SelectedIndex, focused, startX, maxX, y, baseStyle)
		y++
	}
	if len(entries) == 0 && y < bottom {
		r.drawPlaceholder(startX, y, layout.ListWidth, emptyListMessage(state), baseStyle)
		y++
	}
	for ; y < bottom; y++ {
		r.fillRow(startX, maxX, y, baseStyle)
	}
}

func (r *Renderer) drawEntryRow(state *statepkg.AppState, entry statepkg.FileEntry, selected, focused bool, startX, maxX, y int, baseStyle tcell.Style) {
	var rowStyle tcell.Style
	switch {
	case selected:
		rowStyle = r.cursorStyle(focused)
	case entry.IsSymlink:
		rowStyle = baseStyle.Foreground(r.theme.SymlinkFg)
	case entry.IsDir:
		rowStyle = baseStyle.Foreground(r.theme.DirectoryFg)
	default:
		rowStyle = baseStyle.Foreground(r.theme.FileFg)
	}
	if entry.IsHidden() && !selected {
		rowStyle = rowStyle.Foreground(r.theme.HiddenFg)
	}
	matchStyle := rowStyle.Bold(true)
	if !selected {
		matchStyle = matchStyle.Foreground(r.theme.MatchFg)
	}
	dimStyle := rowStyle
	tagStyle := rowStyle
	if !selected {
		dimStyle = rowStyle.Foreground(r.theme.DisabledFg)
		tagStyle = rowStyle.Foreground(r.theme.TagLabelFg)
	}

	// Icon: @ for symlinks, / for directories, space for files
	icon := " "
	if entry.IsSymlink {
		icon = "@"
	} else if entry.IsDir {
		icon = "/"
	}

	x := r.drawTextLine(startX, y, maxX-startX, " "+icon+" ", rowStyle)

	name := textutil.SanitizeTerminalText(entry.Name)
	var spans []highlightSpan
	if state.SearchActive && state.SearchQuery != "" {
		if match, ok := r.matcher.MatchName(state.SearchQuery, entry); ok {
			spans = convertMatchSpans(match.Spans)
		}
	}
	if r.measureTextWidth(name) > maxX-x {
		name = r.truncateTextToWidth(name, maxX-x)
		spans = nil
	}
	x = r.drawHighlightedText(x, y, maxX, name, spans, rowStyle, matchStyle)

	if state.SearchActive {
		if rel := relativeDir(state.SearchRoot, entry.FullPath); rel != "" && x+2 < maxX {
			x = r.drawStyledStringClipped(x, y, maxX, "  ", rowStyle)
			rel = r.truncateLeftToWidth(textutil.SanitizeTerminalText(rel), maxX-x)
			x = r.drawStyledStringClipped(x, y, maxX, rel, dimStyle)
		}
	}

	if len(entry.Tags) > 0 && x+2 < maxX {
		x = r.drawStyledStringClipped(x, y, maxX, "  ", rowStyle)
		labels := textutil.SanitizeTerminalText(formatTagLabels(entry.Tags))
		labels = r.truncateTextToWidth(labels, maxX-x)
		x = r.drawStyledStringClipped(x, y, maxX, labels, tagStyle)
	}

	r.fillRow(x, maxX, y, rowStyle)
}

func (r *Renderer) drawPlaceholder(startX, y, width int, text string, baseStyle tcell.Style) {
	style := baseStyle.Foreground(r.theme.DisabledFg)
	endX := r.drawTextLine(startX, y, width, r.truncateTextToWidth(text, width), style)
	r.fillRow(endX, startX+width, y, baseStyle)
}

func emptyListMessage(state *statepkg.AppState) string {
	switch {
	case state.Loading():
		return " Loading…"
	case state.ShowVolumes():
		return " No volumes"
	case state.SearchActive:
		return " No results"
	case len(state.Files) > 0:
		return " No entries match the filters"
	default:
		return " Empty directory"
	}
}

func formatTagLabels(names []string) string {
	labels := make([]string, len(names))
	for i, name := range names {
		labels[i] = "#" + name
	}
	return strings.Join(labels, " ")
}

// relativeDir returns the directory of fullPath relative to root, or "" when
// fullPath sits directly in root.
func relativeDir(root, fullPath string) string {
	if root == "" || fullPath == "" {
		return ""
	}
	rel, err := filepath.Rel(root, filepath.Dir(fullPath))
	if err != nil || rel == "." {
		return ""
	}
	return rel + string(filepath.Separator)
}

func convertMatchSpans(spans []searchpkg.MatchSpan) []highlightSpan {
	if len(spans) == 0 {
		return nil
	}
	merged := searchpkg.MergeMatchSpans(spans)
	out := make([]highlightSpan, 0, len(merged))
	for _, span := range merged {
		if span.End < span.Start {
			continue
		}
		out = append(out, highlightSpan{start: span.Start, end: span.End + 1}) // inclusive -> exclusive
	}
	return out
}

// drawFilterBar shows the active criteria and how many entries they let through.
func (r *Renderer) drawFilterBar(state *statepkg.AppState, layout Layout) {
	y := layout.Height - 3
	if y < layout.ListTop {
		return
	}
	w := layout.Width
	style := tcell.StyleDefault.Background(r.theme.FilterBarBg).Foreground(r.theme.FilterBarFg)

	left := " " + strings.Join(formatFilterSegments(state.Criteria), " · ")
	var right string
	switch {
	case state.SearchActive:
		right = formatSearchSummary(state)
	case state.ShowVolumes():
		right = formatCompactNumber(len(state.Volumes)) + " volumes"
	default:
		right = formatCountSummary(len(state.DisplayEntries()), len(state.Files))
	}
	right = textutil.SanitizeTerminalText(right) + " "

	rightWidth := r.measureTextWidth(right)
	leftMax := w - rightWidth - 1
	if leftMax < 0 {
		leftMax = 0
	}
	left = r.truncateTextToWidth(textutil.SanitizeTerminalText(left), leftMax)
	x := r.drawTextLine(0, y, w, left, style)
	r.fillRow(x, w, y, style)
	if rightWidth < w-x {
		r.drawTextLine(w-rightWidth, y, rightWidth, right, style)
	}
}

// drawStatusLine shows the prompt while one is active, otherwise the latest
// error or status message.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, layout Layout) {
	y := layout.Height - 2
	if y < layout.ListTop {
		return
	}
	w := layout.Width
	style := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)

	if state.Prompt.Active() {
		label := state.Prompt.Label()
		x := r.drawTextLine(0, y, w, label, style.Bold(true))
		input := textutil.SanitizeTerminalText(state.Prompt.Input)
		input = r.truncateLeftToWidth(input, w-x-1)
		x = r.drawTextLine(x, y, w-x, input, style)
		x = r.drawStyledRune(x, y, w, ' ', style.Background(r.theme.PromptCursorBg))
		r.fillRow(x, w, y, style)
		return
	}

	text, isError := statusText(state)
	msgStyle := style.Foreground(r.theme.StatusFg)
	if isError {
		msgStyle = style.Foreground(r.theme.ErrorFg)
	}
	text = r.truncateTextToWidth(textutil.SanitizeTerminalText(text), w-1)
	x := r.drawTextLine(0, y, w, " "+text, msgStyle)
	r.fillRow(x, w, y, style)
}

func (r *Renderer) drawFooter(state *statepkg.AppState, layout Layout) {
	y := layout.Height - 1
	if y < layout.ListTop {
		return
	}
	w := layout.Width
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	help := textutil.SanitizeTerminalText(buildFooterHelpText(state))
	x := r.drawTextLine(0, y, w, r.truncateTextToWidth(help, w), style)
	r.fillRow(x, w, y, style)
}
