// Package maploader builds grid maps from level files on disk.
//
// Three formats are understood. JSON levels carry block sizes, a palette and
// a material grid. BMP and PNG images map each pixel to one cell: black pixels
// are empty and every other colour becomes a material, numbered in the order
// it is first met scanning rows top to bottom.
package maploader

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"chosenoffset.com/raycaster/internal/core/trig"
	"chosenoffset.com/raycaster/internal/logger"
	"chosenoffset.com/raycaster/internal/world/gridmap"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/bmp"
)

// DefaultBlockSize is the world size of a cell for image levels.
const DefaultBlockSize = 50

// BlankColor is the background of image levels, drawn for empty cells and for
// rays that find nothing within the depth limit.
var BlankColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}

var (
	// ErrUnsupportedFormat is returned for file extensions Load cannot read.
	ErrUnsupportedFormat = errors.New("unsupported map format")
	// ErrTooManyColors is returned when an image uses more distinct wall
	// colours than there are material ids.
	ErrTooManyColors = errors.New("too many distinct wall colours")
	// ErrSpawnOutOfBounds is returned when a level's spawn lies outside its map.
	ErrSpawnOutOfBounds = errors.New("spawn point outside the map")
)

// Spawn is where the player starts. Heading is in radians.
type Spawn struct {
	X       float64
	Y       float64
	Heading float64
}

// Within reports whether the spawn lies inside the map's world rectangle.
func (s Spawn) Within(m *gridmap.Map) bool {
	return s.X >= 0 && s.X < m.WorldWidth() && s.Y >= 0 && s.Y < m.WorldHeight()
}

// Level is a loaded map with its metadata.
type Level struct {
	Name  string
	Path  string
	Map   *gridmap.Map
	Spawn Spawn
}

// LevelData is the JSON level file layout.
type LevelData struct {
	Name        string     `json:"name"`
	BlockWidth  float64    `json:"block_width"`
	BlockHeight float64    `json:"block_height"`
	Palette     [][]int    `json:"palette"` // [r, g, b] per material, entry 0 is the background
	Cells       [][]int    `json:"cells"`   // material ids [row][col]
	Spawn       *SpawnData `json:"spawn,omitempty"`
}

// SpawnData is the optional spawn point of a JSON level.
type SpawnData struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	HeadingDeg float64 `json:"heading_deg"`
}

// Load reads a level, choosing the decoder from the file extension.
func Load(path string) (*Level, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(path) {
		return nil, fmt.Errorf("%s: %w: %q", path, ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var level *Level
	switch ext {
	case ".json":
		level, err = LoadJSON(f)
	case ".bmp":
		level, err = LoadImage(f, bmp.Decode, name)
	case ".png":
		level, err = LoadImage(f, png.Decode, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load map %s: %w", path, err)
	}

	if level.Name == "" {
		level.Name = name
	}
	level.Path = path

	logger.Component("maploader").WithFields(logrus.Fields{
		"path":      path,
		"name":      level.Name,
		"rows":      level.Map.Rows(),
		"cols":      level.Map.Cols(),
		"materials": level.Map.Materials(),
	}).Info("Loaded map")

	return level, nil
}

// Supported reports whether Load understands the file's extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".bmp", ".png":
		return true
	}
	return false
}

// LoadJSON decodes a JSON level.
func LoadJSON(r io.Reader) (*Level, error) {
	var data LevelData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse level: %w", err)
	}
	return data.Build()
}

// Build validates the level data and constructs its map.
func (d *LevelData) Build() (*Level, error) {
	palette := make(gridmap.Palette, len(d.Palette))
	for i, entry := range d.Palette {
		clr, err := paletteColor(entry)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d: %w", i, err)
		}
		palette[i] = clr
	}

	cells := make([][]gridmap.Material, len(d.Cells))
	for r, row := range d.Cells {
		cells[r] = make([]gridmap.Material, len(row))
		for c, id := range row {
			if id < 0 || id >= gridmap.MaxMaterials {
				return nil, fmt.Errorf("cell (%d, %d): %w: id %d", r, c, gridmap.ErrUnmappedMaterial, id)
			}
			cells[r][c] = gridmap.Material(id)
		}
	}

	m, err := gridmap.New(cells, palette, d.BlockWidth, d.BlockHeight)
	if err != nil {
		return nil, err
	}

	level := &Level{Name: d.Name, Map: m, Spawn: DefaultSpawn(m)}
	if d.Spawn != nil {
		spawn := Spawn{X: d.Spawn.X, Y: d.Spawn.Y, Heading: trig.Radians(d.Spawn.HeadingDeg)}
		if !spawn.Within(m) {
			return nil, fmt.Errorf("%w: (%g, %g) in a %gx%g world",
				ErrSpawnOutOfBounds, spawn.X, spawn.Y, m.WorldWidth(), m.WorldHeight())
		}
		level.Spawn = spawn
	}
	return level, nil
}

func paletteColor(entry []int) (color.RGBA, error) {
	if len(entry) != 3 {
		return color.RGBA{}, fmt.Errorf("expected [r, g, b], got %d values", len(entry))
	}
	for _, v := range entry {
		if v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("channel %d out of range", v)
		}
	}
	return color.RGBA{R: uint8(entry[0]), G: uint8(entry[1]), B: uint8(entry[2]), A: 255}, nil
}

// DecodeFunc decodes an image stream.
type DecodeFunc func(io.Reader) (image.Image, error)

// LoadImage decodes an image level with DefaultBlockSize cells.
func LoadImage(r io.Reader, decode DecodeFunc, name string) (*Level, error) {
	img, err := decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	m, err := FromImage(img, DefaultBlockSize, DefaultBlockSize)
	if err != nil {
		return nil, err
	}
	return &Level{Name: name, Map: m, Spawn: DefaultSpawn(m)}, nil
}

// FromImage converts pixels to cells.
func FromImage(img image.Image, blockWidth, blockHeight float64) (*gridmap.Map, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, gridmap.ErrEmptyGrid
	}

	palette := gridmap.Palette{BlankColor}
	ids := make(map[color.RGBA]gridmap.Material)

	cells := make([][]gridmap.Material, b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := make([]gridmap.Material, b.Dx())
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			clr := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: 255}
			if clr.R == 0 && clr.G == 0 && clr.B == 0 {
				continue
			}

			id, ok := ids[clr]
			if !ok {
				if len(palette) == gridmap.MaxMaterials {
					return nil, fmt.Errorf("%w: more than %d", ErrTooManyColors, gridmap.MaxMaterials-1)
				}
				id = gridmap.Material(len(palette))
				ids[clr] = id
				palette = append(palette, clr)
			}
			row[x-b.Min.X] = id
		}
		cells[y-b.Min.Y] = row
	}

	return gridmap.New(cells, palette, blockWidth, blockHeight)
}

// DefaultSpawn returns the centre of the first empty cell in row-major order,
// facing +X. A map with no empty cell spawns at the origin.
func DefaultSpawn(m *gridmap.Map) Spawn {
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			if !m.IsWallCell(r, c) {
				return Spawn{
					X: (float64(c) + 0.5) * m.BlockWidth(),
					Y: (float64(r) + 0.5) * m.BlockHeight(),
				}
			}
		}
	}
	return Spawn{}
}
