package render

import (
	"fmt"
	"strings"

	statepkg "github.com/kk-code-lab/tagdir/internal/state"
)

// formatFilterSegments describes the active criteria, one segment per filter.
func formatFilterSegments(c statepkg.Criteria) []string {
	kinds := "files+dirs"
	switch {
	case c.AcceptFiles && !c.AcceptDirectories:
		kinds = "files only"
	case !c.AcceptFiles && c.AcceptDirectories:
		kinds = "dirs only"
	}
	segments := []string{kinds}
	if c.Extension != "" {
		segments = append(segments, "ext: ."+strings.TrimPrefix(c.Extension, "."))
	}
	if c.SelectedTags.Len() > 0 {
		segments = append(segments, "tags: "+strings.Join(c.SelectedTags.Names(), ", "))
	}
	return segments
}

// formatCountSummary reports how many entries survive the filters.
func formatCountSummary(shown, total int) string {
	if shown == total {
		return fmt.Sprintf("%s entries", formatCompactNumber(total))
	}
	return fmt.Sprintf("%s of %s entries", formatCompactNumber(shown), formatCompactNumber(total))
}

func formatSearchSummary(state *statepkg.AppState) string {
	if !state.SearchActive {
		return ""
	}
	if state.SearchPending {
		return fmt.Sprintf("searching %q…", state.SearchQuery)
	}
	return fmt.Sprintf("%q: %s results", state.SearchQuery, formatCompactNumber(len(state.SearchResults)))
}

// statusText picks the bottom line message: errors win over status messages,
// which win over the loading indicator.
func statusText(state *statepkg.AppState) (string, bool) {
	switch {
	case state.LastError != nil:
		return state.LastError.Error(), true
	case state.StatusMessage != "":
		return state.StatusMessage, false
	case state.SearchPending:
		return "searching…", false
	case state.Loading():
		return "loading…", false
	default:
		return "", false
	}
}

func formatCompactNumber(n int) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000.0)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000.0)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000.0)
	default:
		return fmt.Sprintf("%d", n)
	}
}
