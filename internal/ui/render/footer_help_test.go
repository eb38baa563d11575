package render

import (
	"slices"
	"strings"
	"testing"

	statepkg "github.com/kk-code-lab/tagdir/internal/state"
)

func TestBuildFooterHelpSegments_DefaultMode(t *testing.T) {
	state := statepkg.NewAppState(nil, nil)

	got := buildFooterHelpSegments(state)
	want := []string{
		"↑/↓/↵/←: navigate",
		"[]: history",
		"v: volumes",
		"/: search",
		"F/D/e: filters",
		"Tab: tags",
		".: toggle hidden",
		"?: help",
		"q: quit",
	}

	if !slices.Equal(got, want) {
		t.Fatalf("default help mismatch\nwant: %#v\n got: %#v", want, got)
	}
}

func TestBuildFooterHelpSegments_PromptMode(t *testing.T) {
	state := statepkg.NewAppState(nil, nil)
	state.Prompt = statepkg.Prompt{Kind: statepkg.PromptSearch}

	got := buildFooterHelpSegments(state)
	want := []string{
		"type: input",
		"↵: confirm",
		"Esc: cancel",
	}

	if !slices.Equal(got, want) {
		t.Fatalf("prompt help should only include contextual hints\nwant: %#v\n got: %#v", want, got)
	}

	state.Prompt.Kind = statepkg.PromptConfirmDelete
	if got := buildFooterHelpSegments(state); got[0] != "y: delete" {
		t.Fatalf("confirm help = %v", got)
	}
}

func TestBuildFooterHelpSegments_TagFocus(t *testing.T) {
	state := statepkg.NewAppState(nil, nil)
	state.Focus = statepkg.FocusTags
	state.ShowHidden = true

	got := buildFooterHelpSegments(state)
	if got[0] != "↑↓: move" || !slices.Contains(got, "t: tag entry") {
		t.Fatalf("tag help = %v", got)
	}
	if !slices.Contains(got, ".: toggle visible") {
		t.Fatalf("hidden status missing: %v", got)
	}
}

func TestBuildFooterHelpTextPadding(t *testing.T) {
	state := statepkg.NewAppState(nil, nil)

	text := buildFooterHelpText(state)
	if !strings.HasPrefix(text, " ") || !strings.HasSuffix(text, " ") {
		t.Fatalf("help text missing padding: %q", text)
	}
}
