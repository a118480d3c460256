package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/lucid/internal/app"
	"chosenoffset.com/lucid/internal/config"
	"chosenoffset.com/lucid/internal/logging"
	ebitenrender "chosenoffset.com/lucid/internal/render/ebiten"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel, os.Stderr)

	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	a := app.New(cfg, inputMgr, log)
	defer a.Close()

	engine.SetWindowSize(cfg.Display.Width*cfg.Display.Scale, cfg.Display.Height*cfg.Display.Scale)
	engine.SetWindowTitle(cfg.Display.Title)
	engine.SetWindowResizable(true)
	engine.SetCursorCaptured(true)
	engine.SetFullscreen(cfg.Display.Fullscreen)
	engine.SetVsyncEnabled(cfg.Display.VSync)

	log.Info().
		Int("width", cfg.Display.Width).
		Int("height", cfg.Display.Height).
		Msg("Starting game")
	return engine.RunGame(a.Manager)
}
