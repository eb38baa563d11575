package render

import (
	"strings"
	"testing"

	statepkg "github.com/kk-code-lab/tagdir/internal/state"
)

func TestBuildHelpOverlayLinesIncludesSections(t *testing.T) {
	state := statepkg.NewAppState(nil, nil)

	lines := buildHelpOverlayLines(state)

	assertContains := func(substr string) {
		found := false
		for _, line := range lines {
			if strings.Contains(line, substr) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected lines to contain %q, got %v", substr, lines)
		}
	}

	assertContains("Navigation")
	assertContains("Filters & Search")
	assertContains("Tags")
	assertContains("Show hidden files")
	assertContains("Select tag with its subtree")
	assertContains("Delete tag")
}

func TestBuildHelpOverlayLinesReflectsHiddenToggle(t *testing.T) {
	state := statepkg.NewAppState(nil, nil)
	state.ShowHidden = true
	lines := buildHelpOverlayLines(state)

	joined := strings.Join(lines, " ")
	if !strings.Contains(joined, "Hide hidden files") {
		t.Fatalf("expected help to show hide instruction when hidden files visible, got %v", lines)
	}
}
