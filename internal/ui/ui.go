// Package ui renders the focused document and the find/replace bar on
// a terminal screen and routes key events to the search controllers.
package ui

import (
	"log/slog"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"graphide/internal/docmanager"
	"graphide/internal/findreplace"
	"graphide/internal/logging"
)

// mode selects which bar, if any, is open below the document.
type mode int

const (
	modeEdit mode = iota
	modeFind
	modeReplace
)

// App drives the terminal front end. Not safe for concurrent use;
// everything runs on the event loop, and external callers hand work
// over with an interrupt event.
type App struct {
	screen   tcell.Screen
	docs     *docmanager.Manager
	finder   *findreplace.Finder
	replacer *findreplace.Replacer
	log      *slog.Logger

	mode         mode
	replaceFocus bool
	findInput    string
	replaceInput string
	status       string

	running atomic.Bool
	quit    bool
}

// statusUpdate is the interrupt payload carrying a status change onto
// the event loop.
type statusUpdate struct {
	msg string
}

// New creates the app on the given screen. The screen must not be
// initialised yet; Run does that.
func New(screen tcell.Screen, docs *docmanager.Manager, finder *findreplace.Finder, replacer *findreplace.Replacer, log *slog.Logger) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		screen:   screen,
		docs:     docs,
		finder:   finder,
		replacer: replacer,
		log:      log,
	}
}

// SetStatus updates the status line. While the loop runs the change is
// posted as an event, so off-loop callers such as the timed message
// expiry never touch the app state directly.
func (a *App) SetStatus(msg string) {
	if a.running.Load() {
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(statusUpdate{msg: msg}))
		return
	}
	a.status = msg
}

// Post schedules fn on the event loop. Before the loop starts it runs
// inline; everything is still single-threaded then.
func (a *App) Post(fn func()) {
	if a.running.Load() {
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(fn))
		return
	}
	fn()
}

// Run initialises the screen and processes events until quit.
func (a *App) Run() error {
	if err := a.screen.Init(); err != nil {
		return err
	}
	defer a.screen.Fini()

	a.running.Store(true)
	defer a.running.Store(false)

	a.draw()
	for !a.quit {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		a.handleEvent(ev)
		a.draw()
	}
	return nil
}

func (a *App) handleEvent(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		a.handleKey(e)
	case *tcell.EventInterrupt:
		switch data := e.Data().(type) {
		case statusUpdate:
			a.status = data.msg
		case func():
			data()
		}
	}
}

func (a *App) handleKey(e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyCtrlQ:
		a.quit = true
		return
	case tcell.KeyCtrlF:
		a.openFind()
		return
	case tcell.KeyCtrlR:
		a.openReplace()
		return
	case tcell.KeyF3:
		if e.Modifiers()&tcell.ModShift != 0 {
			a.active().Prev()
		} else {
			a.active().SearchAgain()
		}
		return
	}

	if a.mode == modeEdit {
		return
	}
	a.handleBarKey(e)
}

// active returns the navigation surface of the open bar. The finder
// serves edit mode so F3 repeats the last search with the bar closed.
func (a *App) active() navigator {
	if a.mode == modeReplace {
		return a.replacer
	}
	return a.finder
}

// navigator is the shared navigation surface of Finder and Replacer.
type navigator interface {
	Next() bool
	Prev() bool
	SearchAgain() bool
}

func (a *App) openFind() {
	a.mode = modeFind
	a.replaceFocus = false
	a.finder.Begin(a.findInput)
}

func (a *App) openReplace() {
	a.mode = modeReplace
	a.replaceFocus = false
	a.replacer.Begin(a.findInput)
}

func (a *App) handleBarKey(e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyEscape:
		a.closeBar()
	case tcell.KeyEnter:
		if a.mode == modeReplace && a.replaceFocus {
			a.replacer.ReplaceAndMove()
		} else {
			a.active().Next()
		}
	case tcell.KeyTab:
		if a.mode == modeReplace {
			a.replaceFocus = !a.replaceFocus
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.eraseInput()
	case tcell.KeyCtrlD:
		if a.mode == modeReplace {
			a.replacer.Replace()
		}
	case tcell.KeyCtrlA:
		if a.mode == modeReplace {
			a.replacer.ReplaceAll()
		}
	case tcell.KeyRune:
		if e.Modifiers()&tcell.ModAlt != 0 {
			a.toggleOption(e.Rune())
			return
		}
		a.appendInput(e.Rune())
	}
}

func (a *App) closeBar() {
	if a.mode == modeReplace {
		a.replacer.Cancel()
	} else {
		a.finder.Cancel()
	}
	a.mode = modeEdit
	a.replaceFocus = false
}

func (a *App) appendInput(r rune) {
	if a.mode == modeReplace && a.replaceFocus {
		a.replaceInput += string(r)
		a.replacer.SetReplaceText(a.replaceInput)
		return
	}
	a.findInput += string(r)
	a.setSearchText(a.findInput)
}

func (a *App) eraseInput() {
	if a.mode == modeReplace && a.replaceFocus {
		a.replaceInput = trimLastRune(a.replaceInput)
		a.replacer.SetReplaceText(a.replaceInput)
		return
	}
	a.findInput = trimLastRune(a.findInput)
	a.setSearchText(a.findInput)
}

func (a *App) setSearchText(text string) {
	if a.mode == modeReplace {
		a.replacer.SetText(text)
	} else {
		a.finder.SetText(text)
	}
}

// activeController returns the controller behind the open bar.
func (a *App) activeController() *findreplace.Controller {
	if a.mode == modeReplace {
		return a.replacer.Controller
	}
	return a.finder.Controller
}

// toggleOption flips a search option from its Alt-key mnemonic.
func (a *App) toggleOption(r rune) {
	ctrl := a.activeController()
	q := ctrl.Query()
	switch r {
	case 'c':
		ctrl.SetCaseSensitive(!q.CaseSensitive)
	case 'w':
		ctrl.SetWholeWord(!q.WholeWord)
	case 'r':
		ctrl.SetRegex(!q.Regex)
	}
}

func trimLastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[:len(runes)-1])
}
