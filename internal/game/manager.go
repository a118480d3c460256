package game

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"chosenoffset.com/lucid/internal/audio"
	"chosenoffset.com/lucid/internal/render"
	"chosenoffset.com/lucid/internal/storage"
	"chosenoffset.com/lucid/internal/telemetry"
	"chosenoffset.com/lucid/internal/ui/menu"
	"chosenoffset.com/lucid/internal/world/level"
)

// DefaultTPS is the simulation rate assumed when none is set.
const DefaultTPS = 60

// RunStore persists finished sessions.
type RunStore interface {
	Save(r *storage.RunRecord) error
	Best(level string) (storage.RunRecord, bool, error)
	Recent(n int) ([]storage.RunRecord, error)
}

// RecentRuns is how many past runs the menu lists.
const RecentRuns = 3

// Manager handles the overall game state, including menu and gameplay. It
// implements render.Game.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	// Resizable makes the frame follow the outside size instead of staying fixed.
	Resizable bool
	// MouseSensitivity converts horizontal cursor movement to radians.
	MouseSensitivity float64
	// InvertMouse flips the mouse turning direction.
	InvertMouse bool

	MainMenu *menu.MainMenu
	Session  *Session
	View     *View
	InputMgr render.InputManager

	// LoadLevel reads a level file; it defaults to level.Load.
	LoadLevel func(path string) (*level.Level, error)

	assets  Assets
	opts    Options
	store   RunStore
	metrics *telemetry.Metrics
	sound   audio.Player
	log     zerolog.Logger

	tps     int
	current menu.Selection
	saved   bool
	best    map[string]string
	recent  []string

	cursorX   int
	hasCursor bool
}

// NewManager creates a manager that starts on the level menu.
func NewManager(input render.InputManager, view *View, mainMenu *menu.MainMenu, assets Assets, opts Options, log zerolog.Logger) *Manager {
	w, h := view.Size()
	return &Manager{
		ScreenWidth:  w,
		ScreenHeight: h,
		MainMenu:     mainMenu,
		View:         view,
		InputMgr:     input,
		LoadLevel:    level.Load,
		assets:       assets,
		opts:         opts,
		log:          log,
		tps:          DefaultTPS,
		best:         map[string]string{},
	}
}

// SetStore enables the run history.
func (m *Manager) SetStore(s RunStore) { m.store = s }

// SetMetrics enables gameplay telemetry.
func (m *Manager) SetMetrics(mt *telemetry.Metrics) { m.metrics = mt }

// SetSound routes sound effects to p.
func (m *Manager) SetSound(p audio.Player) { m.sound = p }

// SetTPS tells the manager how often Update is called.
func (m *Manager) SetTPS(tps int) {
	if tps > 0 {
		m.tps = tps
	}
}

// Screen returns the current top-level screen.
func (m *Manager) Screen() Screen {
	if m.Session == nil {
		return ScreenMainMenu
	}
	return m.Session.Screen
}

// Update updates the game state.
func (m *Manager) Update() error {
	ctx := context.Background()
	in := m.readInput()
	if in.Quit {
		m.finish()
		return render.ErrQuit
	}

	switch m.Screen() {
	case ScreenMainMenu:
		if selected, sel := m.MainMenu.Update(); selected {
			m.Start(sel)
		}
	case ScreenGameOver:
		if in.Confirm {
			m.Session = nil
		}
	default:
		m.Session.Tick(ctx, in, 1/float64(m.tps))
		if m.Session.Screen == ScreenGameOver {
			m.finish()
		}
	}
	return nil
}

// readInput polls the backend into an Input.
func (m *Manager) readInput() Input {
	im := m.InputMgr
	in := Input{
		Forward:     im.IsKeyPressed(render.KeyW) || im.IsKeyPressed(render.KeyUp),
		Back:        im.IsKeyPressed(render.KeyS) || im.IsKeyPressed(render.KeyDown),
		StrafeLeft:  im.IsKeyPressed(render.KeyA),
		StrafeRight: im.IsKeyPressed(render.KeyD),
		TurnLeft:    im.IsKeyPressed(render.KeyLeft),
		TurnRight:   im.IsKeyPressed(render.KeyRight),
		Fire:        im.IsKeyPressed(render.KeySpace) || im.IsMouseButtonPressed(render.MouseButtonLeft),
		Pause:       im.IsKeyJustPressed(render.KeyEscape),
		Confirm:     im.IsKeyJustPressed(render.KeyEnter),
		Quit:        im.IsKeyJustPressed(render.KeyQ),
	}

	x, _ := im.CursorPosition()
	if m.hasCursor {
		// Moving the mouse right turns right, which is a negative angle.
		in.Turn = -float64(x-m.cursorX) * m.MouseSensitivity
		if m.InvertMouse {
			in.Turn = -in.Turn
		}
	}
	m.cursorX, m.hasCursor = x, true
	return in
}

// Start begins a session on sel. A level that fails to load is replaced by
// the built-in fallback.
func (m *Manager) Start(sel menu.Selection) {
	lvl, err := m.LoadLevel(sel.Path)
	if err != nil {
		m.log.Warn().Err(err).Str("level", sel.Path).Msg("Using fallback level")
		lvl = level.Fallback()
	}

	s := NewSession(lvl, m.assets, m.opts, m.log)
	s.SetSound(m.sound)
	s.SetMetrics(m.metrics)
	if m.metrics != nil {
		if err := m.metrics.ObserveGlobal(s); err != nil {
			m.log.Warn().Err(err).Msg("Entity gauges unavailable")
		}
	}

	m.Session = s
	m.current = sel
	m.saved = false
}

// finish records the current session once. A session still in progress is
// recorded as abandoned.
func (m *Manager) finish() {
	if m.Session == nil || m.saved {
		return
	}
	m.saved = true
	m.Session.Abandon()

	if m.metrics != nil {
		if err := m.metrics.Close(); err != nil {
			m.log.Warn().Err(err).Msg("Failed to unregister gauges")
		}
	}
	if m.store == nil {
		return
	}

	rec, err := m.Session.Record()
	if err != nil {
		m.log.Error().Err(err).Msg("Run not saved")
		return
	}
	if m.current.Name != "" {
		rec.Level = m.current.Name
	}
	if err := m.store.Save(rec); err != nil {
		m.log.Error().Err(err).Msg("Run not saved")
		return
	}
	delete(m.best, rec.Level)
	m.recent = nil
	m.log.Info().Uint("id", rec.ID).Str("level", rec.Level).Msg("Run saved")
}

// Draw draws the current state.
func (m *Manager) Draw(screen render.Screen) {
	start := time.Now()

	var (
		frame []byte
		err   error
	)
	if m.Session == nil {
		frame, err = m.View.DrawMenu("LUCID", m.menuLines())
	} else {
		frame, err = m.View.Draw(m.Session)
	}
	if err != nil {
		m.log.Error().Err(err).Msg("Frame dropped")
		return
	}
	screen.WritePixels(frame)

	if m.metrics != nil {
		m.metrics.RenderDuration(context.Background(), float64(time.Since(start).Microseconds())/1000)
	}
}

func (m *Manager) menuLines() []string {
	lines := m.MainMenu.Lines()
	sel, ok := m.MainMenu.Selected()
	if !ok || m.store == nil {
		return lines
	}
	best, cached := m.best[sel.Name]
	if !cached {
		best = m.bestLine(sel.Name)
		m.best[sel.Name] = best
	}
	if best != "" {
		lines = append(lines, best)
	}
	if m.recent == nil {
		m.recent = m.recentLines()
	}
	return append(lines, m.recent...)
}

// recentLines lists the latest runs under a heading, or returns an empty
// non-nil slice when there are none.
func (m *Manager) recentLines() []string {
	runs, err := m.store.Recent(RecentRuns)
	if err != nil {
		m.log.Warn().Err(err).Msg("Recent runs unavailable")
		return []string{}
	}
	if len(runs) == 0 {
		return []string{}
	}
	lines := []string{"", "Recent runs:"}
	for _, r := range runs {
		secs := int(r.DurationSeconds)
		lines = append(lines, fmt.Sprintf("%s  %s  %d kills  %d:%02d", r.Level, r.Outcome, r.Kills, secs/60, secs%60))
	}
	return lines
}

func (m *Manager) bestLine(name string) string {
	rec, ok, err := m.store.Best(name)
	if err != nil {
		m.log.Warn().Err(err).Str("level", name).Msg("Best run unavailable")
		return ""
	}
	if !ok {
		return ""
	}
	secs := int(rec.DurationSeconds)
	return fmt.Sprintf("Best: %d kills in %d:%02d", rec.Kills, secs/60, secs%60)
}

// Layout handles window resize.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !m.Resizable {
		return m.ScreenWidth, m.ScreenHeight
	}
	if outsideWidth != m.ScreenWidth || outsideHeight != m.ScreenHeight {
		m.ScreenWidth = outsideWidth
		m.ScreenHeight = outsideHeight
		m.View.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
