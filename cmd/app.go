package cmd

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/depvet/depvet/model"
	"github.com/depvet/depvet/view"
)

// TUIApp hosts the verify screen inside a tview application. The screen
// owns every cell of the surface; tview only contributes the event loop,
// resize handling and redraw scheduling.
type TUIApp struct {
	tviewApp *tview.Application
	screen   *view.VerifyScreen
	table    *model.DepTable
	interval time.Duration
}

// NewTUIApp creates the application over a table the engine keeps filling.
func NewTUIApp(title string, table *model.DepTable, interval time.Duration) *TUIApp {
	app := &TUIApp{
		tviewApp: tview.NewApplication(),
		screen:   view.NewVerifyScreen(title, view.DefaultSkin()),
		table:    table,
		interval: interval,
	}

	root := &verifyPrimitive{Box: tview.NewBox(), app: app}
	app.tviewApp.SetRoot(root, true)

	app.tviewApp.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlQ:
			app.tviewApp.Stop()
			return nil
		case tcell.KeyUp:
			app.screen.ScrollLines(-1)
			return nil
		case tcell.KeyDown:
			app.screen.ScrollLines(1)
			return nil
		case tcell.KeyPgUp:
			app.screen.ScrollPages(-1)
			return nil
		case tcell.KeyPgDn:
			app.screen.ScrollPages(1)
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q':
				app.tviewApp.Stop()
				return nil
			case 'k':
				app.screen.ScrollLines(-1)
				return nil
			case 'j':
				app.screen.ScrollLines(1)
				return nil
			case 'c':
				_ = clipboard.WriteAll(app.screen.VisibleText())
				return nil
			}
		}
		return event
	})

	return app
}

// Run starts the refresh ticker and blocks in the tview event loop. A
// terminal failure surfaces as the returned error and ends the session.
func (app *TUIApp) Run() error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(app.interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				app.tviewApp.QueueUpdateDraw(func() {})
				if app.table.Status().Phase == model.PhaseDone {
					// Final state is on screen; key events trigger any
					// further redraws.
					return
				}
			}
		}
	}()

	return app.tviewApp.Run()
}

// verifyPrimitive mounts the verify screen as a tview primitive. Draw
// ignores the box geometry on purpose: the screen lays out the full surface
// itself and caches the last seen size.
type verifyPrimitive struct {
	*tview.Box
	app *TUIApp
}

func (p *verifyPrimitive) Draw(screen tcell.Screen) {
	p.app.screen.Update(screen, p.app.table.Snapshot())
}
