// Package gridmap holds the wall grid the ray caster walks, together with the
// derived horizontal and vertical edge arrays used for intersection tests.
package gridmap

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// MaxMaterials is the number of distinct material ids a map can address.
const MaxMaterials = 256

// Material identifies a wall material. Empty (0) means no wall.
type Material uint8

// Empty is the material id of a cell without a wall.
const Empty Material = 0

// Palette maps material ids to colours. Entry 0 is the background colour used
// when a ray finds no wall within its depth of field.
type Palette []color.RGBA

var (
	ErrEmptyGrid        = errors.New("gridmap: grid has no cells")
	ErrRaggedGrid       = errors.New("gridmap: grid rows have different lengths")
	ErrUnmappedMaterial = errors.New("gridmap: material has no palette entry")
	ErrBlockSize        = errors.New("gridmap: block size must be positive")
	ErrPalette          = errors.New("gridmap: palette must have between 1 and 256 entries")
)

// Map is an immutable grid of wall materials. Cell (row, col) covers the world
// rectangle [col*BlockWidth, (col+1)*BlockWidth) x [row*BlockHeight, (row+1)*BlockHeight).
//
// hEdges has (rows+1) x cols entries: hEdges[r][c] is the horizontal grid line
// at y = r*BlockHeight spanning column c. vEdges has rows x (cols+1) entries:
// vEdges[r][c] is the vertical line at x = c*BlockWidth spanning row r.
type Map struct {
	rows, cols  int
	blockWidth  float64
	blockHeight float64

	cells  []Material
	hEdges []Material
	vEdges []Material

	colors     [MaxMaterials]color.RGBA
	paletteLen int
}

// New validates the grid and palette and derives the edge arrays. The cells
// slice is copied. When two different materials claim the same edge the
// smaller nonzero id wins, so the result does not depend on scan order.
func New(cells [][]Material, palette Palette, blockWidth, blockHeight float64) (*Map, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	if !(blockWidth > 0) || !(blockHeight > 0) || math.IsInf(blockWidth, 0) || math.IsInf(blockHeight, 0) {
		return nil, fmt.Errorf("%w: %gx%g", ErrBlockSize, blockWidth, blockHeight)
	}
	if len(palette) == 0 || len(palette) > MaxMaterials {
		return nil, fmt.Errorf("%w: got %d", ErrPalette, len(palette))
	}

	rows, cols := len(cells), len(cells[0])
	m := &Map{
		rows:        rows,
		cols:        cols,
		blockWidth:  blockWidth,
		blockHeight: blockHeight,
		cells:       make([]Material, rows*cols),
		hEdges:      make([]Material, (rows+1)*cols),
		vEdges:      make([]Material, rows*(cols+1)),
	}
	m.paletteLen = copy(m.colors[:], palette)

	for r, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrRaggedGrid, r, len(row), cols)
		}
		for c, id := range row {
			if int(id) >= len(palette) {
				return nil, fmt.Errorf("%w: material %d at (%d, %d)", ErrUnmappedMaterial, id, r, c)
			}
			m.cells[r*cols+c] = id
		}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			id := m.cells[r*cols+c]
			if id == Empty {
				continue
			}
			stamp(m.hEdges, r*cols+c, id)
			stamp(m.hEdges, (r+1)*cols+c, id)
			stamp(m.vEdges, r*(cols+1)+c, id)
			stamp(m.vEdges, r*(cols+1)+c+1, id)
		}
	}

	return m, nil
}

func stamp(edges []Material, i int, id Material) {
	if edges[i] == Empty || id < edges[i] {
		edges[i] = id
	}
}

// Rows returns the number of cell rows.
func (m *Map) Rows() int { return m.rows }

// Cols returns the number of cell columns.
func (m *Map) Cols() int { return m.cols }

// BlockWidth returns the world width of one cell.
func (m *Map) BlockWidth() float64 { return m.blockWidth }

// BlockHeight returns the world height of one cell.
func (m *Map) BlockHeight() float64 { return m.blockHeight }

// WorldWidth returns the world width covered by the grid.
func (m *Map) WorldWidth() float64 { return float64(m.cols) * m.blockWidth }

// WorldHeight returns the world height covered by the grid.
func (m *Map) WorldHeight() float64 { return float64(m.rows) * m.blockHeight }

// Cell returns the material at (row, col), or Empty when out of range.
func (m *Map) Cell(row, col int) Material {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return Empty
	}
	return m.cells[row*m.cols+col]
}

// IsWallCell reports whether (row, col) holds a wall. Out of range is not a wall.
func (m *Map) IsWallCell(row, col int) bool {
	return m.Cell(row, col) != Empty
}

// HorizontalEdge returns the material on the horizontal line at y = row*BlockHeight
// spanning column col, or Empty when out of range.
func (m *Map) HorizontalEdge(row, col int) Material {
	if row < 0 || row > m.rows || col < 0 || col >= m.cols {
		return Empty
	}
	return m.hEdges[row*m.cols+col]
}

// VerticalEdge returns the material on the vertical line at x = col*BlockWidth
// spanning row row, or Empty when out of range.
func (m *Map) VerticalEdge(row, col int) Material {
	if row < 0 || row >= m.rows || col < 0 || col > m.cols {
		return Empty
	}
	return m.vEdges[row*(m.cols+1)+col]
}

// CellAt converts a world position to grid indices. Indices may be out of range.
func (m *Map) CellAt(x, y float64) (row, col int) {
	return int(math.Floor(y / m.blockHeight)), int(math.Floor(x / m.blockWidth))
}

// Color returns the palette colour for a material.
func (m *Map) Color(id Material) color.RGBA {
	return m.colors[id]
}

// Background returns the colour of material 0.
func (m *Map) Background() color.RGBA {
	return m.colors[Empty]
}

// Palette returns a copy of the palette the map was built with. Every material
// id in the grid indexes it.
func (m *Map) Palette() Palette {
	p := make(Palette, m.paletteLen)
	copy(p, m.colors[:m.paletteLen])
	return p
}

// Materials returns the number of distinct non-empty materials used by the grid.
func (m *Map) Materials() int {
	var seen [MaxMaterials]bool
	n := 0
	for _, id := range m.cells {
		if id != Empty && !seen[id] {
			seen[id] = true
			n++
		}
	}
	return n
}
