package ui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// App runs a frame function against a terminal until the quit key is
// pressed. Every input event redraws the whole frame.
type App struct {
	Screen  Screen
	Surface *Surface
	Frame   func(s *Surface)
	// OnKey receives key events other than QuitKey and reports whether
	// the frame should be redrawn.
	OnKey   func(ev *EventKey) bool
	QuitKey tcell.Key // key to quit the app, default is Escape

	done     chan struct{}
	stopOnce sync.Once
}

// NewApp returns an app drawing frame on screen with the default theme.
func NewApp(screen Screen, frame func(s *Surface)) *App {
	return &App{
		Screen:  screen,
		Surface: NewSurface(screen, DefaultVisuals()),
		Frame:   frame,
		done:    make(chan struct{}),
		QuitKey: tcell.KeyEscape,
	}
}

// Render draws one logical frame and shows it.
func (a *App) Render() {
	a.Screen.Clear()
	if a.Frame != nil {
		a.Frame(a.Surface)
	}
	a.Surface.EndFrame()
	a.Screen.Show()
}

func (a *App) Run() error {
	if err := a.Screen.Init(); err != nil {
		return err
	}
	defer a.Screen.Fini()
	a.Screen.EnableMouse()
	a.Render()

	for {
		select {
		case <-a.done:
			return nil
		default:
		}

		ev := a.Screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *EventResize:
			a.Screen.Sync()
			a.Render()
		case *EventKey:
			if ev.Key() == a.QuitKey {
				return nil
			}
			if a.OnKey != nil && a.OnKey(ev) {
				a.Render()
			}
		default:
			if a.Surface.HandleEvent(ev) {
				a.Render()
			}
		}
	}
}

// Stop makes Run return after the event being handled.
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		close(a.done)
		_ = a.Screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
}
