package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/raycaster/internal/config"
	"chosenoffset.com/raycaster/internal/game"
	"chosenoffset.com/raycaster/internal/logger"
	"chosenoffset.com/raycaster/internal/tty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "raycaster-tty: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config.json", "Path to the JSON config file")
	mapPath := flag.String("map", "", "Level to start on (.json, .png or .bmp); empty uses the built-in level")
	mapsDir := flag.String("maps-dir", "", "Directory cycled with the n key")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Write logs to this file; logs are discarded when empty")
	flag.Parse()

	// The terminal owns stdout and stderr while the screen is up.
	var out io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := logger.Setup(*logLevel, out); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if *mapPath != "" {
		cfg.Maps.Start = *mapPath
	}
	if *mapsDir != "" {
		cfg.Maps.Dir = *mapsDir
	}

	levels, err := game.NewLevels(cfg.Maps.Start, cfg.Maps.Dir)
	if err != nil {
		return err
	}
	world, err := game.NewWorld(cfg, levels)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = tty.New(screen, world, cfg).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
