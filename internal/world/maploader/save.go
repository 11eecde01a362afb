package maploader

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/bmp"

	"chosenoffset.com/raycaster/internal/logger"
	"chosenoffset.com/raycaster/internal/world/gridmap"
)

// ErrBlackMaterial is returned when a wall material is pure black, which an
// image level would read back as empty.
var ErrBlackMaterial = errors.New("wall material is black")

// EncodeFunc encodes an image stream.
type EncodeFunc func(io.Writer, image.Image) error

// Save writes level in the format named by the file extension. Image formats
// keep only the grid and its colours.
func Save(path string, level *Level) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create map file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = WriteJSON(f, level)
	case ".png":
		err = WriteImage(f, png.Encode, level.Map)
	case ".bmp":
		err = WriteImage(f, bmp.Encode, level.Map)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return err
	}

	logger.Component("maploader").WithFields(logrus.Fields{
		"path": path,
		"name": level.Name,
	}).Info("Saved map")
	return nil
}

// Data returns the JSON layout of level.
func Data(level *Level) *LevelData {
	m := level.Map

	entries := m.Palette()
	palette := make([][]int, len(entries))
	for i, clr := range entries {
		palette[i] = []int{int(clr.R), int(clr.G), int(clr.B)}
	}

	cells := make([][]int, m.Rows())
	for r := range cells {
		cells[r] = make([]int, m.Cols())
		for c := range cells[r] {
			cells[r][c] = int(m.Cell(r, c))
		}
	}

	return &LevelData{
		Name:        level.Name,
		BlockWidth:  m.BlockWidth(),
		BlockHeight: m.BlockHeight(),
		Palette:     palette,
		Cells:       cells,
		Spawn: &SpawnData{
			X:          level.Spawn.X,
			Y:          level.Spawn.Y,
			HeadingDeg: level.Spawn.Heading * 180 / math.Pi,
		},
	}
}

// WriteJSON encodes level as an indented JSON level.
func WriteJSON(w io.Writer, level *Level) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Data(level)); err != nil {
		return fmt.Errorf("failed to encode level: %w", err)
	}
	return nil
}

// ToImage draws one pixel per cell: empty cells are black and walls take
// their material colour.
func ToImage(m *gridmap.Map) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, m.Cols(), m.Rows()))
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			id := m.Cell(r, c)
			if id == gridmap.Empty {
				img.SetRGBA(c, r, color.RGBA{A: 255})
				continue
			}
			clr := m.Color(id)
			if clr.R == 0 && clr.G == 0 && clr.B == 0 {
				return nil, fmt.Errorf("%w: material %d", ErrBlackMaterial, id)
			}
			clr.A = 255
			img.SetRGBA(c, r, clr)
		}
	}
	return img, nil
}

// WriteImage encodes the map's grid as an image level.
func WriteImage(w io.Writer, encode EncodeFunc, m *gridmap.Map) error {
	img, err := ToImage(m)
	if err != nil {
		return err
	}
	if err := encode(w, img); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}
