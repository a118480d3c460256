package app

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/lucid/internal/config"
	"chosenoffset.com/lucid/internal/game"
	"chosenoffset.com/lucid/internal/render"
)

type idleInput struct{}

func (idleInput) IsKeyPressed(render.Key) bool { return false }
func (idleInput) IsKeyJustPressed(render.Key) bool { return false }
func (idleInput) CursorPosition() (int, int) { return 0, 0 }
func (idleInput) IsMouseButtonPressed(render.MouseButton) bool { return false }
func (idleInput) IsMouseButtonJustPressed(render.MouseButton) bool { return false }

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Audio.Enabled = false
	cfg.Stats.Path = ""
	cfg.Telemetry.Enabled = true
	cfg.Level = "../../data/maps/test.toml"
	cfg.TexturesDir = t.TempDir()
	cfg.Display.Width, cfg.Display.Height = 80, 60
	return cfg
}

func TestNewWiresManager(t *testing.T) {
	cfg := testConfig(t)
	cfg.Controls.InvertMouse = true
	a := New(cfg, idleInput{}, zerolog.Nop())
	defer a.Close()

	m := a.Manager
	require.NotNil(t, m)
	assert.True(t, m.InvertMouse)
	assert.Equal(t, game.ScreenMainMenu, m.Screen())
	assert.Equal(t, 80, m.ScreenWidth)
	assert.NotNil(t, a.store)
	assert.NotNil(t, a.metrics)
	assert.Nil(t, a.sound)

	sel, ok := m.MainMenu.Selected()
	require.True(t, ok)
	assert.Equal(t, "test", sel.Name)

	m.Start(sel)
	require.NotNil(t, m.Session)
	assert.Equal(t, "Test Facility", m.Session.Level.Name)
	assert.NotEmpty(t, m.Session.Enemies)
}

func TestScanLevelsFallsBackToConfiguredFile(t *testing.T) {
	entries := scanLevels("/nonexistent/dir/mine.toml", zerolog.Nop())
	require.Len(t, entries, 1)
	assert.Equal(t, "mine", entries[0].Name)
	assert.Equal(t, "/nonexistent/dir/mine.toml", entries[0].Path)
}
