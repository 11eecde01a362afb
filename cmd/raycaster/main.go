package main

import (
	"flag"

	"chosenoffset.com/raycaster/internal/config"
	"chosenoffset.com/raycaster/internal/game"
	"chosenoffset.com/raycaster/internal/logger"
	ebitenrender "chosenoffset.com/raycaster/internal/render/ebiten"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to the JSON config file")
	mapPath := flag.String("map", "", "Level to start on (.json, .png or .bmp); empty uses the built-in level")
	mapsDir := flag.String("maps-dir", "", "Directory cycled with the N key")
	fullscreen := flag.Bool("fullscreen", false, "Start in fullscreen")
	debug := flag.Bool("debug", false, "Show the TPS/FPS overlay")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.Log
	if err := logger.Setup(*logLevel, nil); err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *mapPath != "" {
		cfg.Maps.Start = *mapPath
	}
	if *mapsDir != "" {
		cfg.Maps.Dir = *mapsDir
	}
	if *fullscreen {
		cfg.Window.Fullscreen = true
	}

	levels, err := game.NewLevels(cfg.Maps.Start, cfg.Maps.Dir)
	if err != nil {
		log.Fatalf("Failed to load levels: %v", err)
	}
	world, err := game.NewWorld(cfg, levels)
	if err != nil {
		log.Fatalf("Failed to create world: %v", err)
	}

	// Initialize the renderer backend (ebiten)
	renderer, err := ebitenrender.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	g := game.New(cfg, world, renderer, inputMgr)

	// Set up the window
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(true)
	engine.SetFullscreen(cfg.Window.Fullscreen)
	engine.SetTPS(cfg.Window.TPS)
	engine.SetDebugOverlay(*debug)

	log.WithField("map", world.Level().Name).Info("Starting game")
	if err := engine.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
