// Package app runs the terminal session: it owns the screen, feeds input and
// request results through the reducer and redraws after every change.
package app

import (
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/tagdir/internal/state"
	inputui "github.com/kk-code-lab/tagdir/internal/ui/input"
	renderui "github.com/kk-code-lab/tagdir/internal/ui/render"
	"go.uber.org/zap"
)

// Options configures a session.
type Options struct {
	// RequestTimeout bounds every backend call; zero disables the deadline.
	RequestTimeout time.Duration
	ShowHidden     bool
	// StartPath is opened after the volume list loads; empty stays on volumes.
	StartPath string
	Logger    *zap.Logger
}

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	shouldQuit bool
	logger     *zap.Logger

	lastClickKey  string
	lastClickTime time.Time
}

// NewApplication opens the terminal and starts loading volumes and tags.
func NewApplication(backend statepkg.Backend, opts Options) (*Application, error) {
	_ = flushConsoleInput()

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so modified clicks don't leak as key events.
	screen.EnableMouse()

	runner := statepkg.NewAsyncRequestRunner(opts.RequestTimeout)
	return newApplication(screen, backend, runner, opts), nil
}

// newApplication wires an initialized screen. A nil runner performs backend
// calls inline.
func newApplication(screen tcell.Screen, backend statepkg.Backend, runner statepkg.RequestRunner, opts Options) *Application {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	state := statepkg.NewAppState(backend, runner)
	state.ShowHidden = opts.ShowHidden
	state.ScreenWidth, state.ScreenHeight = screen.Size()

	actionCh := make(chan statepkg.Action, 64)
	state.SetDispatch(func(action statepkg.Action) {
		select {
		case actionCh <- action:
		default:
			go func() { actionCh <- action }()
		}
	})

	inputHandler := inputui.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	app := &Application{
		screen:   screen,
		state:    state,
		reducer:  statepkg.NewStateReducer(logger),
		renderer: renderui.NewRenderer(screen),
		input:    inputHandler,
		actionCh: actionCh,
		logger:   logger,
	}

	app.handleAction(statepkg.InitAction{})
	if opts.StartPath != "" {
		app.handleAction(statepkg.OpenPathAction{Path: opts.StartPath})
	}
	return app
}

// Close releases the terminal. Results of requests still in flight are
// dropped.
func (app *Application) Close() error {
	app.screen.Fini()
	return nil
}

// Location returns the directory shown when the session ended, or "" for the
// volume list.
func (app *Application) Location() string {
	return app.state.CurrentLocation()
}
