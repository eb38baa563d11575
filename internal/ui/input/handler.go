package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/tagdir/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the application should quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) emit(action statepkg.Action) bool {
	ih.actionChan <- action
	return true
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		ih.actionChan <- statepkg.QuitAction{}
		return false
	}

	helpVisible := ih.state != nil && ih.state.HelpVisible
	promptActive := ih.state != nil && ih.state.Prompt.Active()

	switch {
	case helpVisible:
		return ih.processHelpKey(ev)
	case promptActive:
		return ih.processPromptKey(ev)
	default:
		return ih.processBrowseKey(ev)
	}
}

func (ih *InputHandler) processHelpKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		return ih.emit(statepkg.HelpHideAction{})
	case tcell.KeyRune:
		r := ev.Rune()
		if r == '?' || r == 'q' || r == 'Q' {
			return ih.emit(statepkg.HelpHideAction{})
		}
	}
	return true
}

// processPromptKey routes every printable key to the prompt input, including
// the ones bound to commands while browsing.
func (ih *InputHandler) processPromptKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		return ih.emit(statepkg.PromptCancelAction{})
	case tcell.KeyEnter:
		return ih.emit(statepkg.PromptSubmitAction{})
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		return ih.emit(statepkg.PromptBackspaceAction{})
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			if r := ev.Rune(); r == 'h' || r == 'H' {
				return ih.emit(statepkg.PromptBackspaceAction{})
			}
			return true
		}
		return ih.emit(statepkg.PromptCharAction{Char: ev.Rune()})
	}
	return true
}

func (ih *InputHandler) processBrowseKey(ev *tcell.EventKey) bool {
	tagsFocused := ih.state != nil && ih.state.Focus == statepkg.FocusTags
	searchActive := ih.state != nil && ih.state.SearchActive

	switch ev.Key() {
	case tcell.KeyEscape:
		if searchActive {
			return ih.emit(statepkg.SearchClearAction{})
		}
		return true
	case tcell.KeyCtrlZ:
		return ih.emit(statepkg.SuspendAction{})
	case tcell.KeyUp:
		return ih.emit(statepkg.CursorUpAction{})
	case tcell.KeyDown:
		return ih.emit(statepkg.CursorDownAction{})
	case tcell.KeyPgUp:
		return ih.emit(statepkg.CursorPageUpAction{})
	case tcell.KeyPgDn:
		return ih.emit(statepkg.CursorPageDownAction{})
	case tcell.KeyHome:
		return ih.emit(statepkg.CursorHomeAction{})
	case tcell.KeyEnd:
		return ih.emit(statepkg.CursorEndAction{})
	case tcell.KeyTab, tcell.KeyBacktab:
		return ih.emit(statepkg.SwitchFocusAction{})
	case tcell.KeyEnter, tcell.KeyRight:
		if tagsFocused {
			return ih.emit(statepkg.ToggleTagAtCursorAction{})
		}
		return ih.emit(statepkg.OpenEntryAction{})
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		return ih.emit(statepkg.GoUpAction{})
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			return true
		}
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModShift != 0 {
			// Normalize shifted alphabetic runes to reflect user intent (Shift+A => 'A')
			r = unicode.ToUpper(r)
		}
		return ih.processBrowseRune(r, tagsFocused)
	}
	return true
}

func (ih *InputHandler) processBrowseRune(r rune, tagsFocused bool) bool {
	switch r {
	case 'q':
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case '?':
		return ih.emit(statepkg.HelpToggleAction{})
	case '.':
		return ih.emit(statepkg.ToggleHiddenFilesAction{})
	case 'j':
		return ih.emit(statepkg.CursorDownAction{})
	case 'k':
		return ih.emit(statepkg.CursorUpAction{})
	case '[':
		return ih.emit(statepkg.GoBackAction{})
	case ']':
		return ih.emit(statepkg.GoForwardAction{})
	case 'v':
		return ih.emit(statepkg.GoVolumesAction{})
	case 'r':
		return ih.emit(statepkg.RefreshDirectoryAction{})
	case 'R':
		return ih.emit(statepkg.RefreshTagsAction{})
	case '/':
		return ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptSearch})
	case 'e':
		return ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptExtension})
	case 'F':
		return ih.emit(statepkg.ToggleAcceptFilesAction{})
	case 'D':
		return ih.emit(statepkg.ToggleAcceptDirectoriesAction{})
	case 'c':
		return ih.emit(statepkg.ClearTagSelectionAction{})
	case 'n':
		return ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptNewTag})
	case 'N':
		return ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptNewChildTag})
	case 'm':
		return ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptRenameTag})
	case 'd':
		return ih.emit(statepkg.PromptStartAction{Kind: statepkg.PromptConfirmDelete})
	case 't':
		return ih.emit(statepkg.ToggleCursorTagOnEntryAction{})
	case ' ':
		if tagsFocused {
			return ih.emit(statepkg.ToggleTagAtCursorAction{})
		}
		return ih.emit(statepkg.CursorDownAction{})
	}
	return true
}
