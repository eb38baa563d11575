package state

import "strings"

// Label is the text shown in front of the prompt input.
func (p Prompt) Label() string {
	switch p.Kind {
	case PromptSearch:
		return "search: "
	case PromptExtension:
		return "extension: "
	case PromptNewTag:
		return "new tag: "
	case PromptNewChildTag:
		return "new child tag: "
	case PromptRenameTag:
		return "rename tag: "
	case PromptConfirmDelete:
		return "delete tag? (y/n) "
	default:
		return ""
	}
}

// Active reports whether keystrokes go to the prompt.
func (p Prompt) Active() bool {
	return p.Kind != PromptNone
}

func (r *StateReducer) startPrompt(state *AppState, kind PromptKind) {
	prompt := Prompt{Kind: kind}
	switch kind {
	case PromptSearch:
		prompt.Input = state.SearchQuery
	case PromptExtension:
		prompt.Input = state.Criteria.Extension
	case PromptNewChildTag, PromptRenameTag, PromptConfirmDelete:
		node, ok := state.CursorTag()
		if !ok {
			state.StatusMessage = "no tag under the cursor"
			return
		}
		prompt.TargetID = node.ID
		if kind == PromptRenameTag {
			prompt.Input = node.Name
		}
	case PromptNewTag:
	default:
		return
	}
	state.Prompt = prompt
}

func (r *StateReducer) submitPrompt(state *AppState) error {
	prompt := state.Prompt
	state.Prompt = Prompt{}

	switch prompt.Kind {
	case PromptSearch:
		return r.search(state, prompt.Input)
	case PromptExtension:
		state.Criteria = state.Criteria.WithExtension(prompt.Input)
		return r.criteriaChanged(state)
	case PromptNewTag:
		return r.createTag(state, prompt.Input, nil)
	case PromptNewChildTag:
		parent := prompt.TargetID
		return r.createTag(state, prompt.Input, &parent)
	case PromptRenameTag:
		node, ok := state.Forest.Node(prompt.TargetID)
		if !ok {
			return nil
		}
		return r.updateTag(state, node.ID, prompt.Input, node.ParentID)
	case PromptConfirmDelete:
		switch strings.ToLower(strings.TrimSpace(prompt.Input)) {
		case "y", "yes":
			return r.deleteTag(state, prompt.TargetID)
		}
	}
	return nil
}
