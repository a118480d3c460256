package term

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/lucid/internal/render"
)

// DefaultHold is how long a key counts as down after its last press or
// repeat. Terminals only report presses, never releases.
const DefaultHold = 150 * time.Millisecond

// Input turns tcell events into render.InputManager state. It is not safe for
// concurrent use; feed it from the loop goroutine only.
type Input struct {
	hold time.Duration
	now  func() time.Time

	held  map[render.Key]time.Time
	fresh map[render.Key]bool

	buttons      tcell.ButtonMask
	freshButtons tcell.ButtonMask
	mouseX       int
	mouseY       int
}

// NewInput creates an input tracker that holds keys for hold after each event.
func NewInput(hold time.Duration) *Input {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Input{
		hold:  hold,
		now:   time.Now,
		held:  make(map[render.Key]time.Time),
		fresh: make(map[render.Key]bool),
	}
}

// Handle records a key or mouse event.
func (in *Input) Handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		key, ok := keyOf(ev)
		if !ok {
			return
		}
		if !in.IsKeyPressed(key) {
			in.fresh[key] = true
		}
		in.held[key] = in.now()
	case *tcell.EventMouse:
		in.mouseX, in.mouseY = ev.Position()
		pressed := ev.Buttons() &^ in.buttons
		in.freshButtons |= pressed
		in.buttons = ev.Buttons()
	case *tcell.EventFocus:
		// Releases are never reported, so keys held while focus left would stick.
		if !ev.Focused {
			in.Release()
		}
	}
}

// EndFrame clears the just-pressed state after a tick has consumed it.
func (in *Input) EndFrame() {
	clear(in.fresh)
	in.freshButtons = 0
}

// Release forgets every held key and button.
func (in *Input) Release() {
	clear(in.held)
	clear(in.fresh)
	in.buttons, in.freshButtons = 0, 0
}

func (in *Input) IsKeyPressed(key render.Key) bool {
	at, ok := in.held[key]
	return ok && in.now().Sub(at) < in.hold
}

func (in *Input) IsKeyJustPressed(key render.Key) bool {
	return in.fresh[key]
}

func (in *Input) CursorPosition() (int, int) {
	return in.mouseX, in.mouseY
}

func (in *Input) IsMouseButtonPressed(button render.MouseButton) bool {
	return in.buttons&buttonMask(button) != 0
}

func (in *Input) IsMouseButtonJustPressed(button render.MouseButton) bool {
	return in.freshButtons&buttonMask(button) != 0
}

func buttonMask(button render.MouseButton) tcell.ButtonMask {
	switch button {
	case render.MouseButtonRight:
		return tcell.Button2
	case render.MouseButtonMiddle:
		return tcell.Button3
	default:
		return tcell.Button1
	}
}

var runeKeys = map[rune]render.Key{
	'w': render.KeyW,
	'a': render.KeyA,
	's': render.KeyS,
	'd': render.KeyD,
	'q': render.KeyQ,
	' ': render.KeySpace,
}

var namedKeys = map[tcell.Key]render.Key{
	tcell.KeyUp:     render.KeyUp,
	tcell.KeyDown:   render.KeyDown,
	tcell.KeyLeft:   render.KeyLeft,
	tcell.KeyRight:  render.KeyRight,
	tcell.KeyEnter:  render.KeyEnter,
	tcell.KeyEscape: render.KeyEscape,
	tcell.KeyCtrlC:  render.KeyQ,
}

func keyOf(ev *tcell.EventKey) (render.Key, bool) {
	if ev.Key() == tcell.KeyRune {
		k, ok := runeKeys[unicode.ToLower(ev.Rune())]
		return k, ok
	}
	k, ok := namedKeys[ev.Key()]
	return k, ok
}
