package term

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"chosenoffset.com/lucid/internal/render"
)

// DefaultTPS is the terminal tick rate.
const DefaultTPS = 30

// Engine runs a render.Game inside a tcell screen.
type Engine struct {
	screen tcell.Screen
	input  *Input
	tps    int
	log    zerolog.Logger
}

// NewEngine creates an engine over an uninitialized screen.
func NewEngine(screen tcell.Screen, input *Input, log zerolog.Logger) *Engine {
	return &Engine{screen: screen, input: input, tps: DefaultTPS, log: log}
}

// NewScreenEngine opens the controlling terminal.
func NewScreenEngine(log zerolog.Logger) (*Engine, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	return NewEngine(s, NewInput(DefaultHold), log), nil
}

// Input returns the input manager fed by this engine.
func (e *Engine) Input() render.InputManager { return e.input }

// SetTPS changes the tick rate.
func (e *Engine) SetTPS(tps int) {
	if tps > 0 {
		e.tps = tps
	}
}

// The terminal decides its own size, title and display mode.
func (e *Engine) SetWindowSize(int, int) {}
func (e *Engine) SetWindowTitle(string) {}
func (e *Engine) SetWindowResizable(bool) {}
func (e *Engine) SetCursorCaptured(bool) {}
func (e *Engine) SetFullscreen(bool) {}
func (e *Engine) SetVsyncEnabled(bool) {}

// RunGame initializes the screen and ticks game until it quits.
func (e *Engine) RunGame(game render.Game) error {
	if err := e.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer e.screen.Fini()
	e.screen.EnableMouse()
	e.screen.EnableFocus()
	e.screen.HideCursor()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := e.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(e.tps))
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				e.screen.Sync()
				continue
			}
			e.input.Handle(ev)
		case <-ticker.C:
			done, err := e.tick(game)
			if done || err != nil {
				return err
			}
		}
	}
}

// tick runs one update and draw. done is true when the game asked to quit.
func (e *Engine) tick(game render.Game) (done bool, err error) {
	cols, rows := e.screen.Size()
	w, h := game.Layout(cols, rows*2)

	err = game.Update()
	e.input.EndFrame()
	if errors.Is(err, render.ErrQuit) {
		e.log.Info().Msg("quit requested")
		return true, nil
	}
	if err != nil {
		return true, err
	}

	game.Draw(&screen{cells: e.screen, width: w, height: h})
	e.screen.Show()
	return false, nil
}
