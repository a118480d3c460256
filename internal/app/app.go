// Package app wires configuration, assets, audio, run history and telemetry
// into a game.Manager that any render backend can drive.
package app

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"chosenoffset.com/lucid/internal/audio"
	"chosenoffset.com/lucid/internal/config"
	"chosenoffset.com/lucid/internal/game"
	"chosenoffset.com/lucid/internal/logging"
	"chosenoffset.com/lucid/internal/render"
	"chosenoffset.com/lucid/internal/render/hud"
	"chosenoffset.com/lucid/internal/render/texture"
	"chosenoffset.com/lucid/internal/storage"
	"chosenoffset.com/lucid/internal/telemetry"
	"chosenoffset.com/lucid/internal/ui/menu"
	"chosenoffset.com/lucid/internal/world/level"
)

// App is a ready-to-run game with the services it opened.
type App struct {
	Manager *game.Manager

	sound   *audio.SoundManager
	store   *storage.Store
	metrics *telemetry.Metrics
	log     zerolog.Logger
}

// New builds the game described by cfg. Optional services that fail to start
// are logged and left out.
func New(cfg *config.Config, input render.InputManager, log zerolog.Logger) *App {
	a := &App{log: log}

	textures := texture.NewCache()
	assets := game.LoadAssets(textures, cfg.TexturesDir, logging.Component(log, "assets"))

	mainMenu := menu.NewMainMenu(scanLevels(cfg.Level, log), input)
	mainMenu.Select(cfg.Level)

	view := game.NewView(cfg.Display.Width, cfg.Display.Height, textures, assets.Walls, hud.DefaultConfig())

	opts := game.Options{
		MoveSpeed:        cfg.Controls.MoveSpeed,
		TurnSpeed:        cfg.Controls.TurnSpeed,
		FootstepInterval: cfg.Controls.FootstepInterval,
		FOV:              cfg.Display.FOV,
	}
	m := game.NewManager(input, view, mainMenu, assets, opts, logging.Component(log, "game"))
	m.MouseSensitivity = cfg.Controls.MouseSensitivity
	m.InvertMouse = cfg.Controls.InvertMouse
	a.Manager = m

	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager(cfg.Audio.SampleRate, cfg.Audio.Volume, logging.Component(log, "audio"))
		if err := sm.Initialize(); err != nil {
			log.Warn().Err(err).Msg("Audio disabled")
		} else {
			a.sound = sm
			m.SetSound(sm)
			if cfg.Audio.SoundsDir != "" {
				sm.LoadEffects(cfg.Audio.SoundsDir)
			}
			if cfg.Audio.Music != "" {
				sm.PlayMusic(cfg.Audio.Music, cfg.Audio.MusicVolume)
			}
		}
	}

	if cfg.Stats.Enabled {
		store, err := storage.Open(cfg.Stats.Path)
		if err != nil {
			log.Warn().Err(err).Msg("Run history disabled")
		} else {
			a.store = store
			m.SetStore(store)
		}
	}

	if cfg.Telemetry.Enabled {
		mt, err := telemetry.New()
		if err != nil {
			log.Warn().Err(err).Msg("Telemetry disabled")
		} else {
			a.metrics = mt
			m.SetMetrics(mt)
		}
	}
	return a
}

// scanLevels lists the levels next to the configured one. When the directory
// cannot be read the configured level is offered on its own.
func scanLevels(path string, log zerolog.Logger) []level.Entry {
	dir := filepath.Dir(path)
	entries, err := level.Scan(dir)
	if err != nil || len(entries) == 0 {
		log.Warn().Err(err).Str("dir", dir).Msg("No level directory, offering the configured level only")
		name := filepath.Base(path)
		return []level.Entry{{Name: name[:len(name)-len(filepath.Ext(name))], Path: path}}
	}
	log.Info().Int("levels", len(entries)).Str("dir", dir).Msg("Levels found")
	return entries
}

// Close releases audio, the run history and telemetry.
func (a *App) Close() {
	if a.sound != nil {
		a.sound.Cleanup()
	}
	if a.metrics != nil {
		if err := a.metrics.Close(); err != nil {
			a.log.Warn().Err(err).Msg("Failed to close telemetry")
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("Failed to close run history")
		}
	}
}
