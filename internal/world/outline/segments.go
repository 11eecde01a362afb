// Package outline extracts the visible faces of a wall grid as line segments,
// used to draw the overhead map.
package outline

import (
	"math"
	"sort"

	"chosenoffset.com/raycaster/internal/world/gridmap"
)

// Segments returns the exposed faces of every wall cell with collinear
// neighbours of the same material merged. A face is exposed when the cell on
// its other side is empty or outside the grid.
func Segments(m *gridmap.Map) []Segment {
	return mergeColinearSegments(extractPerimeterSegments(m))
}

// extractPerimeterSegments emits one segment per exposed cell face
func extractPerimeterSegments(m *gridmap.Map) []Segment {
	bw, bh := m.BlockWidth(), m.BlockHeight()

	var segments []Segment
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			id := m.Cell(r, c)
			if id == gridmap.Empty {
				continue
			}

			left := float64(c) * bw
			right := left + bw
			top := float64(r) * bh
			bottom := top + bh
			cells := []Coord{{Row: r, Col: c}}

			if !m.IsWallCell(r-1, c) {
				segments = append(segments, Segment{A: Point{left, top}, B: Point{right, top}, Side: Top, Material: id, Cells: cells})
			}
			if !m.IsWallCell(r, c+1) {
				segments = append(segments, Segment{A: Point{right, top}, B: Point{right, bottom}, Side: Right, Material: id, Cells: cells})
			}
			if !m.IsWallCell(r+1, c) {
				segments = append(segments, Segment{A: Point{left, bottom}, B: Point{right, bottom}, Side: Bottom, Material: id, Cells: cells})
			}
			if !m.IsWallCell(r, c-1) {
				segments = append(segments, Segment{A: Point{left, top}, B: Point{left, bottom}, Side: Left, Material: id, Cells: cells})
			}
		}
	}
	return segments
}

// mergeColinearSegments joins segments that share a side, a material and a
// supporting line, and touch end to end. Segments are normalised so A is the
// lower coordinate along the line.
func mergeColinearSegments(segments []Segment) []Segment {
	if len(segments) == 0 {
		return segments
	}

	sort.SliceStable(segments, func(i, j int) bool {
		a, b := segments[i], segments[j]
		if a.Side != b.Side {
			return a.Side < b.Side
		}
		if la, lb := line(a), line(b); la != lb {
			return la < lb
		}
		if a.Material != b.Material {
			return a.Material < b.Material
		}
		return start(a) < start(b)
	})

	result := []Segment{segments[0]}
	for _, seg := range segments[1:] {
		last := &result[len(result)-1]
		if canMergeSegments(*last, seg) {
			last.B = seg.B
			last.Cells = append(append([]Coord(nil), last.Cells...), seg.Cells...)
			continue
		}
		result = append(result, seg)
	}
	return result
}

// epsilon absorbs rounding between c*w+w and (c+1)*w.
const epsilon = 0.001

// canMergeSegments checks if seg2 continues seg1 along the same line
func canMergeSegments(seg1, seg2 Segment) bool {
	return seg1.Side == seg2.Side &&
		seg1.Material == seg2.Material &&
		line(seg1) == line(seg2) &&
		math.Abs(end(seg1)-start(seg2)) < epsilon
}

// line is the fixed coordinate of a segment's supporting line
func line(s Segment) float64 {
	if s.Side.horizontal() {
		return s.A.Y
	}
	return s.A.X
}

func start(s Segment) float64 {
	if s.Side.horizontal() {
		return s.A.X
	}
	return s.A.Y
}

func end(s Segment) float64 {
	if s.Side.horizontal() {
		return s.B.X
	}
	return s.B.Y
}
