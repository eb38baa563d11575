package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/tagdir/internal/state"
	textutil "github.com/kk-code-lab/tagdir/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(state *statepkg.AppState) []string {
	hiddenDesc := "Show hidden files"
	if state != nil && state.ShowHidden {
		hiddenDesc = "Hide hidden files"
	}

	sections := []helpOverlaySection{
		{
			title: "Navigation",
			entries: []helpOverlayEntry{
				{keys: "↑/↓ PgUp/PgDn", desc: "Move selection"},
				{keys: "↵ or →", desc: "Open volume or directory"},
				{keys: "← or Backspace", desc: "Parent directory"},
				{keys: "[ / ]", desc: "History back/forward"},
				{keys: "v", desc: "Volume list"},
				{keys: "r", desc: "Refresh listing"},
				{keys: "Tab", desc: "Switch between files and tags"},
			},
		},
		{
			title: "Filters & Search",
			entries: []helpOverlayEntry{
				{keys: "/", desc: "Search below the current directory"},
				{keys: "Esc", desc: "Clear search"},
				{keys: "F / D", desc: "Toggle files / directories"},
				{keys: "e", desc: "Filter by extension"},
				{keys: "c", desc: "Clear tag selection"},
			},
		},
		{
			title: "Tags",
			entries: []helpOverlayEntry{
				{keys: "space or ↵", desc: "Select tag with its subtree"},
				{keys: "n / N", desc: "New tag / new child tag"},
				{keys: "m", desc: "Rename tag"},
				{keys: "d", desc: "Delete tag"},
				{keys: "t", desc: "Add or remove tag on the entry"},
				{keys: "R", desc: "Reload tags"},
			},
		},
		{
			title: "Other",
			entries: []helpOverlayEntry{
				{keys: ".", desc: hiddenDesc},
				{keys: "Ctrl+Z", desc: "Suspend"},
				{keys: "q or Ctrl+C", desc: "Quit"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-16s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(state *statepkg.AppState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fillRow(0, w, y, baseStyle)
	}

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Bold(true)
	titleStart := 0
	titleWidth := r.measureTextWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	lines := buildHelpOverlayLines(state)
	row := 2
	maxRow := h - 1
	for _, line := range lines {
		if row >= maxRow {
			break
		}
		text := strings.TrimRight(line, " ")
		text = r.truncateTextToWidth(text, w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	footer := "? toggle · Esc/q close"
	if h > 0 {
		footerText := r.truncateTextToWidth(footer, w)
		r.drawTextLine(0, h-1, w, footerText, headerStyle)
	}
}
