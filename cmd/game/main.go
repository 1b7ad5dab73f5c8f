package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/Garsondee/Pitch-Sense/internal/config"
	"github.com/Garsondee/Pitch-Sense/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var cfgPath string
	var mode string
	var difficulty string
	var scriptFile string
	var keepers bool
	var verbose bool

	flag.StringVar(&cfgPath, "config", config.Path(), "TOML config file")
	flag.StringVar(&mode, "mode", "", "mode override: 1-5, 7, 1v1, 1v1-advanced or bot")
	flag.StringVar(&difficulty, "difficulty", "", "bot difficulty override")
	flag.StringVar(&scriptFile, "script", "", "command program to run in level modes (R to rerun)")
	flag.BoolVar(&keepers, "keepers", false, "enable goalkeepers")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if mode != "" {
		cfg.Match.Mode = mode
	}
	if difficulty != "" {
		cfg.Match.Difficulty = difficulty
	}
	if scriptFile != "" {
		cfg.Script.File = scriptFile
	}
	if keepers {
		cfg.Match.Goalkeepers = true
	}

	opts, err := cfg.Options()
	if err != nil {
		log.Fatal(err)
	}
	opts.Logger = logger
	script, err := cfg.LoadScript()
	if err != nil {
		log.Fatal(err)
	}

	g := game.New(opts, script)
	g.SetSpeed(cfg.Sim.Speed)
	w, h := g.Size()
	ebiten.SetWindowTitle("Pitch Sense")
	ebiten.SetWindowSize(w, h)
	logger.Info("starting", "mode", opts.Mode.String(), "difficulty", opts.Difficulty.String(), "config", cfgPath)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
