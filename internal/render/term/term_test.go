package term

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/lucid/internal/render"
)

type cell struct {
	r     rune
	style tcell.Style
}

type recorder map[[2]int]cell

func (r recorder) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	r[[2]int{x, y}] = cell{primary, style}
}

func TestBlitPairsRows(t *testing.T) {
	// 2x3 frame: rows red, green, blue.
	frame := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 255, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	rec := recorder{}
	Blit(rec, frame, 2, 3)

	require.Len(t, rec, 4)
	top := rec[[2]int{1, 0}]
	assert.Equal(t, HalfBlock, top.r)
	assert.Equal(t, tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 0, 0)).Background(tcell.NewRGBColor(0, 255, 0)), top.style)

	last := rec[[2]int{0, 1}]
	assert.Equal(t, tcell.StyleDefault.Foreground(tcell.NewRGBColor(0, 0, 255)).Background(tcell.NewRGBColor(0, 0, 0)), last.style)
}

func TestBlitShortFrame(t *testing.T) {
	rec := recorder{}
	Blit(rec, make([]byte, 4), 2, 2)
	assert.Empty(t, rec)
}

func newTestInput() (*Input, *time.Time) {
	in := NewInput(100 * time.Millisecond)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	in.now = func() time.Time { return now }
	return in, &now
}

func TestInputHoldsKeys(t *testing.T) {
	in, now := newTestInput()

	in.Handle(tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModNone))
	assert.True(t, in.IsKeyPressed(render.KeyW))
	assert.True(t, in.IsKeyJustPressed(render.KeyW))

	in.EndFrame()
	assert.False(t, in.IsKeyJustPressed(render.KeyW))

	*now = now.Add(60 * time.Millisecond)
	assert.True(t, in.IsKeyPressed(render.KeyW))

	// A repeat extends the hold without counting as a new press.
	in.Handle(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	assert.False(t, in.IsKeyJustPressed(render.KeyW))
	*now = now.Add(60 * time.Millisecond)
	assert.True(t, in.IsKeyPressed(render.KeyW))

	*now = now.Add(100 * time.Millisecond)
	assert.False(t, in.IsKeyPressed(render.KeyW))
}

func TestInputNamedKeys(t *testing.T) {
	in, _ := newTestInput()
	in.Handle(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	in.Handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	in.Handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	in.Handle(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone))

	assert.True(t, in.IsKeyPressed(render.KeyLeft))
	assert.True(t, in.IsKeyJustPressed(render.KeyEscape))
	assert.True(t, in.IsKeyPressed(render.KeySpace))
	assert.False(t, in.IsKeyPressed(render.KeyRight))

	in.Release()
	assert.False(t, in.IsKeyPressed(render.KeyLeft))
}

func TestInputReleasesOnFocusLoss(t *testing.T) {
	in, _ := newTestInput()
	in.Handle(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	in.Handle(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone))

	in.Handle(tcell.NewEventFocus(true))
	require.True(t, in.IsKeyPressed(render.KeyW))

	in.Handle(tcell.NewEventFocus(false))
	assert.False(t, in.IsKeyPressed(render.KeyW))
	assert.False(t, in.IsKeyJustPressed(render.KeyW))
	assert.False(t, in.IsMouseButtonPressed(render.MouseButtonLeft))
}

func TestInputMouse(t *testing.T) {
	in, _ := newTestInput()
	in.Handle(tcell.NewEventMouse(4, 7, tcell.Button1, tcell.ModNone))

	x, y := in.CursorPosition()
	assert.Equal(t, 4, x)
	assert.Equal(t, 7, y)
	assert.True(t, in.IsMouseButtonPressed(render.MouseButtonLeft))
	assert.True(t, in.IsMouseButtonJustPressed(render.MouseButtonLeft))
	assert.False(t, in.IsMouseButtonPressed(render.MouseButtonRight))

	in.EndFrame()
	in.Handle(tcell.NewEventMouse(5, 7, tcell.Button1, tcell.ModNone))
	assert.False(t, in.IsMouseButtonJustPressed(render.MouseButtonLeft), "drag is not a new click")

	in.Handle(tcell.NewEventMouse(5, 7, tcell.ButtonNone, tcell.ModNone))
	assert.False(t, in.IsMouseButtonPressed(render.MouseButtonLeft))
}

type fakeGame struct {
	updates  int
	draws    int
	quitAt   int
	fail     error
	layoutW  int
	layoutH  int
	drawSize [2]int
}

func (g *fakeGame) Update() error {
	g.updates++
	if g.fail != nil {
		return g.fail
	}
	if g.updates >= g.quitAt {
		return render.ErrQuit
	}
	return nil
}

func (g *fakeGame) Draw(s render.Screen) {
	g.draws++
	w, h := s.Size()
	g.drawSize = [2]int{w, h}
	s.WritePixels(make([]byte, w*h*4))
}

func (g *fakeGame) Layout(w, h int) (int, int) {
	g.layoutW, g.layoutH = w, h
	return w, h
}

func TestEngineTickUsesDoubleHeight(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	defer sim.Fini()
	sim.SetSize(10, 4)

	e := NewEngine(sim, NewInput(0), zerolog.Nop())
	g := &fakeGame{quitAt: 5}
	done, err := e.tick(g)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 10, g.layoutW)
	assert.Equal(t, 8, g.layoutH)
	assert.Equal(t, [2]int{10, 8}, g.drawSize)
}

func TestEngineRunQuits(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	e := NewEngine(sim, NewInput(0), zerolog.Nop())
	e.SetTPS(200)

	g := &fakeGame{quitAt: 3}
	require.NoError(t, e.RunGame(g))
	assert.Equal(t, 3, g.updates)
	assert.Equal(t, 2, g.draws)
}

func TestEngineRunPropagatesErrors(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	e := NewEngine(sim, NewInput(0), zerolog.Nop())
	e.SetTPS(200)

	boom := errors.New("boom")
	err := e.RunGame(&fakeGame{fail: boom})
	assert.ErrorIs(t, err, boom)
}
