package render

import (
	"fmt"
	"strings"

	statepkg "github.com/kk-code-lab/tagdir/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	segments := contextualHelpSegments(state)
	segments = append(segments, persistentHelpSegments(state)...)

	return segments
}

func contextualHelpSegments(state *statepkg.AppState) []string {
	switch {
	case state.Prompt.Kind == statepkg.PromptConfirmDelete:
		return []string{
			"y: delete",
			"Esc: cancel",
		}
	case state.Prompt.Active():
		return []string{
			"type: input",
			"↵: confirm",
			"Esc: cancel",
		}
	case state.Focus == statepkg.FocusTags:
		return []string{
			"↑↓: move",
			"space/↵: select tag",
			"n/N: new tag/child",
			"m: rename",
			"d: delete",
			"t: tag entry",
			"c: clear",
			"Tab: files",
		}
	case state.SearchActive:
		return []string{
			"↑↓: select",
			"↵: open",
			"/: new search",
			"Esc: clear search",
			"Tab: tags",
		}
	default:
		return []string{
			"↑/↓/↵/←: navigate",
			"[]: history",
			"v: volumes",
			"/: search",
			"F/D/e: filters",
			"Tab: tags",
		}
	}
}

func persistentHelpSegments(state *statepkg.AppState) []string {
	if state == nil || state.Prompt.Active() {
		return nil
	}

	hiddenStatus := "visible"
	if !state.ShowHidden {
		hiddenStatus = "hidden"
	}

	return []string{
		fmt.Sprintf(".: toggle %s", hiddenStatus),
		"?: help",
		"q: quit",
	}
}
