// Command lucid-term plays in a terminal using half-block characters.
package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/lucid/internal/app"
	"chosenoffset.com/lucid/internal/config"
	"chosenoffset.com/lucid/internal/logging"
	"chosenoffset.com/lucid/internal/render/term"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	logPath := flag.String("log", "lucid-term.log", "log file; the terminal is used for drawing")
	flag.Parse()

	if err := run(*configPath, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	log := logging.NewFile(cfg.LogLevel, nil, logFile)

	engine, err := term.NewScreenEngine(logging.Component(log, "term"))
	if err != nil {
		return err
	}

	a := app.New(cfg, engine.Input(), log)
	defer a.Close()

	a.Manager.Resizable = true
	a.Manager.SetTPS(term.DefaultTPS)

	log.Info().Msg("Starting game in terminal")
	return engine.RunGame(a.Manager)
}
