package app

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/tagdir/internal/state"
	renderui "github.com/kk-code-lab/tagdir/internal/ui/render"
	"go.uber.org/zap"
)

const doubleClickThreshold = 300 * time.Millisecond

// Run processes terminal events and request results until the user quits.
func (app *Application) Run() {
	defer app.screen.Fini()

	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps primary clicks to cursor moves; a double click opens the
// entry or toggles the tag. The wheel moves the focused cursor.
func (app *Application) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		app.actionCh <- statepkg.CursorUpAction{}
		return
	case buttons&tcell.WheelDown != 0:
		app.actionCh <- statepkg.CursorDownAction{}
		return
	case buttons&tcell.Button1 == 0:
		return
	}

	layout, ok := app.renderer.LastLayout()
	if !ok {
		return
	}
	x, y := ev.Position()
	region, row := layout.Hit(x, y)

	clickKey := fmt.Sprintf("%d-%d", region, row)
	doubleClick := app.lastClickKey == clickKey && time.Since(app.lastClickTime) <= doubleClickThreshold
	app.lastClickKey = clickKey
	app.lastClickTime = time.Now()

	switch region {
	case renderui.RegionBack:
		app.actionCh <- statepkg.GoBackAction{}
	case renderui.RegionForward:
		app.actionCh <- statepkg.GoForwardAction{}
	case renderui.RegionTags:
		idx := app.state.TagScroll + row
		if idx >= len(app.state.TagRows()) {
			return
		}
		app.actionCh <- statepkg.SelectTagRowAction{Index: idx}
		if doubleClick {
			app.actionCh <- statepkg.ToggleTagAtCursorAction{}
		}
	case renderui.RegionFiles:
		idx := app.state.ScrollOffset + row
		if idx >= app.listCount() {
			return
		}
		app.actionCh <- statepkg.SelectEntryAction{Index: idx}
		if doubleClick {
			app.actionCh <- statepkg.OpenEntryAction{}
		}
	}
}

func (app *Application) listCount() int {
	if app.state.ShowVolumes() {
		return len(app.state.Volumes)
	}
	return len(app.state.DisplayEntries())
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.logger.Warn("action failed", zap.String("action", fmt.Sprintf("%T", action)), zap.Error(err))
	}
	return true
}
