// Package mapgen builds random levels of rooms joined by corridors.
package mapgen

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/raycaster/internal/logger"
	"chosenoffset.com/raycaster/internal/world/gridmap"
	"chosenoffset.com/raycaster/internal/world/maploader"
)

var (
	// ErrInvalidConfig is returned by NewGenerator for unusable settings.
	ErrInvalidConfig = errors.New("mapgen: invalid config")
	// ErrNoRooms is returned when not a single room fits the level.
	ErrNoRooms = errors.New("mapgen: no room could be placed")
)

// Palette is the material palette of generated levels: stone, brick, tome
// purple, brazier orange and barrel wood.
var Palette = gridmap.Palette{
	maploader.BlankColor,
	{R: 130, G: 125, B: 115, A: 255},
	{R: 110, G: 100, B: 90, A: 255},
	{R: 80, G: 60, B: 140, A: 255},
	{R: 255, G: 120, B: 30, A: 255},
	{R: 140, G: 100, B: 60, A: 255},
}

// Config holds configuration for level generation
type Config struct {
	Width       int     // Level width in cells, border included
	Height      int     // Level height in cells, border included
	MinRooms    int     // Minimum number of rooms to attempt
	MaxRooms    int     // Maximum number of rooms to attempt
	MinRoomSize int     // Smallest room side in cells
	MaxRoomSize int     // Largest room side in cells
	BlockSize   float64 // World size of a cell
	Seed        int64   // Random seed (0 = use current time)
}

// DefaultConfig returns a medium sized level of four to eight rooms.
func DefaultConfig() Config {
	return Config{
		Width:       32,
		Height:      32,
		MinRooms:    4,
		MaxRooms:    8,
		MinRoomSize: 3,
		MaxRoomSize: 7,
		BlockSize:   maploader.DefaultBlockSize,
	}
}

// Validate checks that at least one room of the smallest size fits.
func (c Config) Validate() error {
	switch {
	case c.MinRoomSize < 1 || c.MaxRoomSize < c.MinRoomSize:
		return fmt.Errorf("%w: room size range [%d, %d]", ErrInvalidConfig, c.MinRoomSize, c.MaxRoomSize)
	case c.MinRooms < 1 || c.MaxRooms < c.MinRooms:
		return fmt.Errorf("%w: room count range [%d, %d]", ErrInvalidConfig, c.MinRooms, c.MaxRooms)
	case c.Width < c.MinRoomSize+2 || c.Height < c.MinRoomSize+2:
		return fmt.Errorf("%w: %dx%d cannot hold a room", ErrInvalidConfig, c.Width, c.Height)
	case !(c.BlockSize > 0):
		return fmt.Errorf("%w: block size %g", ErrInvalidConfig, c.BlockSize)
	}
	return nil
}

// Room is an open rectangle of cells.
type Room struct {
	X, Y          int // Top-left cell
	Width, Height int
}

// Center returns the room's middle cell.
func (r Room) Center() (col, row int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// overlaps reports whether r and o are closer than one wall apart.
func (r Room) overlaps(o Room) bool {
	return r.X-1 < o.X+o.Width && o.X-1 < r.X+r.Width &&
		r.Y-1 < o.Y+o.Height && o.Y-1 < r.Y+r.Height
}

// Generator handles procedural level generation
type Generator struct {
	cfg Config
	rng *rand.Rand
	log *logrus.Entry
}

// NewGenerator creates a generator. A zero seed seeds from the clock.
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
		log: logger.Component("mapgen").WithField("seed", seed),
	}, nil
}

// Generate creates a new level. Every open cell is reachable from the spawn,
// which is the centre of the first room.
func (g *Generator) Generate(name string) (*maploader.Level, []Room, error) {
	rooms := g.placeRooms()
	if len(rooms) == 0 {
		return nil, nil, ErrNoRooms
	}

	cells := make([][]gridmap.Material, g.cfg.Height)
	for r := range cells {
		cells[r] = make([]gridmap.Material, g.cfg.Width)
		for c := range cells[r] {
			cells[r][c] = 1
		}
	}

	for _, room := range rooms {
		carveRoom(cells, room)
	}
	for i := 1; i < len(rooms); i++ {
		g.carveCorridor(cells, rooms[i-1], rooms[i])
	}
	g.paintWalls(cells, rooms)

	spawnCol, spawnRow := rooms[0].Center()
	if removed := fillUnreachable(cells, spawnRow, spawnCol); removed > 0 {
		g.log.WithField("cells", removed).Debug("Filled unreachable cells")
	}

	m, err := gridmap.New(cells, Palette, g.cfg.BlockSize, g.cfg.BlockSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build generated map: %w", err)
	}

	level := &maploader.Level{
		Name: name,
		Map:  m,
		Spawn: maploader.Spawn{
			X: (float64(spawnCol) + 0.5) * g.cfg.BlockSize,
			Y: (float64(spawnRow) + 0.5) * g.cfg.BlockSize,
		},
	}

	g.log.WithFields(logrus.Fields{
		"name":  name,
		"rooms": len(rooms),
		"size":  fmt.Sprintf("%dx%d", g.cfg.Width, g.cfg.Height),
	}).Info("Generated level")
	return level, rooms, nil
}

// placeRooms drops random rooms inside the border, rejecting overlaps.
func (g *Generator) placeRooms() []Room {
	target := g.cfg.MinRooms
	if g.cfg.MaxRooms > g.cfg.MinRooms {
		target += g.rng.Intn(g.cfg.MaxRooms - g.cfg.MinRooms + 1)
	}

	var rooms []Room
	for attempt := 0; attempt < target*50 && len(rooms) < target; attempt++ {
		w := g.roomSide(g.cfg.Width - 2)
		h := g.roomSide(g.cfg.Height - 2)
		candidate := Room{
			X:      1 + g.rng.Intn(g.cfg.Width-1-w),
			Y:      1 + g.rng.Intn(g.cfg.Height-1-h),
			Width:  w,
			Height: h,
		}

		ok := true
		for _, r := range rooms {
			if candidate.overlaps(r) {
				ok = false
				break
			}
		}
		if ok {
			rooms = append(rooms, candidate)
		}
	}
	return rooms
}

// roomSide picks a side length that fits within limit cells.
func (g *Generator) roomSide(limit int) int {
	hi := g.cfg.MaxRoomSize
	if hi > limit {
		hi = limit
	}
	lo := g.cfg.MinRoomSize
	if lo > hi {
		lo = hi
	}
	return lo + g.rng.Intn(hi-lo+1)
}

func carveRoom(cells [][]gridmap.Material, room Room) {
	for r := room.Y; r < room.Y+room.Height; r++ {
		for c := room.X; c < room.X+room.Width; c++ {
			cells[r][c] = gridmap.Empty
		}
	}
}

// carveCorridor joins two room centres with an L-shaped corridor, choosing at
// random whether to run horizontally or vertically first.
func (g *Generator) carveCorridor(cells [][]gridmap.Material, from, to Room) {
	x, y := from.Center()
	endX, endY := to.Center()

	step := func(v, end int) int {
		switch {
		case end > v:
			return v + 1
		case end < v:
			return v - 1
		}
		return v
	}

	horizontalFirst := g.rng.Intn(2) == 0
	for x != endX || y != endY {
		cells[y][x] = gridmap.Empty
		if (horizontalFirst && x != endX) || y == endY {
			x = step(x, endX)
		} else {
			y = step(y, endY)
		}
	}
	cells[y][x] = gridmap.Empty
}

// paintWalls gives the walls bordering each room one random material. The
// first room to claim a wall keeps it.
func (g *Generator) paintWalls(cells [][]gridmap.Material, rooms []Room) {
	materials := len(Palette) - 1
	painted := make(map[[2]int]bool)
	for _, room := range rooms {
		id := gridmap.Material(1 + g.rng.Intn(materials))
		for r := room.Y - 1; r <= room.Y+room.Height; r++ {
			for c := room.X - 1; c <= room.X+room.Width; c++ {
				key := [2]int{r, c}
				if cells[r][c] == gridmap.Empty || painted[key] {
					continue
				}
				cells[r][c] = id
				painted[key] = true
			}
		}
	}
}

// fillUnreachable walls off every open cell not connected to (row, col) and
// returns how many were filled.
func fillUnreachable(cells [][]gridmap.Material, row, col int) int {
	type point struct{ r, c int }

	reachable := make(map[point]bool)
	queue := []point{{row, col}}
	dirs := []point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if p.r < 0 || p.r >= len(cells) || p.c < 0 || p.c >= len(cells[p.r]) {
			continue
		}
		if reachable[p] || cells[p.r][p.c] != gridmap.Empty {
			continue
		}
		reachable[p] = true

		for _, d := range dirs {
			queue = append(queue, point{p.r + d.r, p.c + d.c})
		}
	}

	removed := 0
	for r := range cells {
		for c := range cells[r] {
			if cells[r][c] == gridmap.Empty && !reachable[point{r, c}] {
				cells[r][c] = 1
				removed++
			}
		}
	}
	return removed
}
