package outline

import "chosenoffset.com/raycaster/internal/world/gridmap"

// Point represents a 2D point in world space
type Point struct {
	X, Y float64
}

// Coord represents a cell coordinate
type Coord struct {
	Row, Col int
}

// Side names the face of a wall cell a segment lies on
type Side uint8

const (
	Top Side = iota
	Right
	Bottom
	Left
)

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// horizontal reports whether segments on this side run along X
func (s Side) horizontal() bool { return s == Top || s == Bottom }

// Segment is an exposed wall face, possibly spanning several cells
type Segment struct {
	A, B     Point
	Side     Side
	Material gridmap.Material
	Cells    []Coord // All cells this segment covers
}
