package game

import (
	"fmt"

	"chosenoffset.com/lucid/internal/engine/raycaster"
	"chosenoffset.com/lucid/internal/render/hud"
	"chosenoffset.com/lucid/internal/render/texture"
	"chosenoffset.com/lucid/internal/storage"
)

// View turns a session into RGBA frames: the raycast world, the HUD and any
// banner for the current screen. The frame buffer is reused between calls.
type View struct {
	width    int
	height   int
	textures *texture.Cache
	walls    []texture.ID
	caster   *raycaster.Raycaster
	hud      *hud.HUD
	frame    []byte
	sprites  []raycaster.Sprite
}

// NewView creates a view producing width x height frames.
func NewView(width, height int, textures *texture.Cache, walls []texture.ID, hudConfig *hud.Config) *View {
	v := &View{
		textures: textures,
		walls:    walls,
		hud:      hud.New(hudConfig, width, height, textures),
	}
	v.Resize(width, height)
	return v
}

// Size returns the frame dimensions.
func (v *View) Size() (int, int) {
	return v.width, v.height
}

// Resize changes the frame dimensions.
func (v *View) Resize(width, height int) {
	if width == v.width && height == v.height && v.caster != nil {
		return
	}
	v.width, v.height = width, height
	v.frame = make([]byte, width*height*4)
	v.caster = raycaster.New(width, height, nil, v.textures)
	v.caster.SetWallTextures(v.walls)
	v.hud.SetScreenSize(width, height)
}

// Frame returns the last frame drawn.
func (v *View) Frame() []byte {
	return v.frame
}

// Draw renders s and returns the frame.
func (v *View) Draw(s *Session) ([]byte, error) {
	v.caster.SetMap(s.Grid())
	v.sprites = s.Sprites(v.sprites)
	if err := v.caster.Render(s.Camera, v.sprites, v.frame); err != nil {
		return nil, fmt.Errorf("failed to render world: %w", err)
	}
	if err := v.hud.Draw(v.frame, s.Status()); err != nil {
		return nil, fmt.Errorf("failed to draw hud: %w", err)
	}

	var err error
	switch s.Screen {
	case ScreenPaused:
		err = v.hud.Banner(v.frame, "PAUSED", "Esc to resume", "Q to quit")
	case ScreenGameOver:
		err = v.hud.Banner(v.frame, gameOverTitle(s.Outcome),
			fmt.Sprintf("Kills %d  Shots %d  Damage taken %d", s.Stats.Kills, s.Stats.ShotsFired, s.Stats.DamageTaken),
			"Enter for the menu, Q to quit")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to draw banner: %w", err)
	}
	return v.frame, nil
}

// DrawMenu clears the frame and draws a title screen.
func (v *View) DrawMenu(title string, lines []string) ([]byte, error) {
	for i := 0; i < len(v.frame); i += 4 {
		v.frame[i], v.frame[i+1], v.frame[i+2], v.frame[i+3] = 20, 20, 40, 255
	}
	if err := v.hud.Banner(v.frame, title, lines...); err != nil {
		return nil, fmt.Errorf("failed to draw menu: %w", err)
	}
	return v.frame, nil
}

func gameOverTitle(o storage.Outcome) string {
	switch o {
	case storage.OutcomeVictory:
		return "LEVEL CLEARED"
	case storage.OutcomeDefeat:
		return "YOU DIED"
	default:
		return "GAME OVER"
	}
}
