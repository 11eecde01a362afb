package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"chosenoffset.com/raycaster/internal/logger"
	"chosenoffset.com/raycaster/internal/world/mapgen"
	"chosenoffset.com/raycaster/internal/world/maploader"
)

func main() {
	out := flag.String("out", "maps", "Directory to write maps into")
	count := flag.Int("count", 3, "Number of random levels to generate")
	seed := flag.Int64("seed", 0, "Seed of the first level; each further level adds one (0 = random)")
	format := flag.String("format", "json", "Output format: json, png or bmp")
	width := flag.Int("width", 32, "Level width in cells")
	height := flag.Int("height", 32, "Level height in cells")
	withDefault := flag.Bool("with-default", false, "Also export the built-in level")
	flag.Parse()

	fmt.Println("Raycaster Map Generator")
	fmt.Println("=======================")
	fmt.Println()

	if err := run(*out, *format, *count, *seed, *width, *height, *withDefault); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("Done! Start the game with -maps-dir %s and press N to cycle levels.\n", *out)
}

func run(out, format string, count int, seed int64, width, height int, withDefault bool) error {
	if !maploader.Supported("x." + format) {
		return fmt.Errorf("unknown format %q", format)
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if withDefault {
		path := filepath.Join(out, "default."+format)
		if err := maploader.Save(path, maploader.DefaultLevel()); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	}

	cfg := mapgen.DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	for i := 0; i < count; i++ {
		if seed != 0 {
			cfg.Seed = seed + int64(i)
		}
		gen, err := mapgen.NewGenerator(cfg)
		if err != nil {
			return err
		}

		name := fmt.Sprintf("generated-%02d", i+1)
		level, rooms, err := gen.Generate(name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		path := filepath.Join(out, name+"."+format)
		if err := maploader.Save(path, level); err != nil {
			return err
		}
		logger.Component("genmaps").WithField("rooms", len(rooms)).Debug(path)
		fmt.Printf("Wrote %s (%d rooms)\n", path, len(rooms))
	}
	return nil
}
