package caster

import (
	"math"

	"chosenoffset.com/raycaster/internal/world/gridmap"
)

// maxIndex keeps float to int conversions of far-away ray points well defined.
const maxIndex = 1 << 30

// edgeLookup returns the material of the grid line passing through (x, y).
type edgeLookup func(x, y float64) gridmap.Material

// castHorizontal walks the ray across successive horizontal grid lines. A ray
// pointing exactly left or right is not searched. World Y grows downwards, so a
// negative sine looks towards larger Y. The direction follows the sign of the
// same table sample as tanAng.
func (c *Caster) castHorizontal(x, y, rAng, sinA, tanAng float64, m *gridmap.Map) candidate {
	bw, bh := m.BlockWidth(), m.BlockHeight()

	var rx, ry, xo, yo float64
	switch {
	case rAng == 0 || rAng == math.Pi || tanAng == 0:
		return candidate{x: x, y: y}
	case sinA < 0:
		ry = y - math.Mod(y, bh) + bh
		rx = x - (ry-y)/tanAng
		yo = bh
		xo = -yo / tanAng
	case sinA > 0:
		ry = y - math.Mod(y, bh)
		rx = x + (y-ry)/tanAng
		yo = -bh
		xo = -yo / tanAng
	default:
		return candidate{x: x, y: y}
	}

	at := func(px, py float64) gridmap.Material {
		return m.HorizontalEdge(lineIndex(py/bh), cellIndex(px/bw))
	}
	return c.walk(rx, ry, xo, yo, at)
}

// castVertical walks the ray across successive vertical grid lines. A ray
// pointing exactly up or down is not searched; otherwise the direction follows
// the sign of the same table sample as tanAng.
func (c *Caster) castVertical(x, y, rAng, cosA, tanAng float64, m *gridmap.Map) candidate {
	bw, bh := m.BlockWidth(), m.BlockHeight()

	var rx, ry, xo, yo float64
	switch {
	case rAng == math.Pi/2 || rAng == 3*math.Pi/2:
		return candidate{x: x, y: y}
	case cosA < 0:
		rx = x - math.Mod(x, bw)
		ry = y + (x-rx)*tanAng
		xo = -bw
		yo = -xo * tanAng
	case cosA > 0:
		rx = x - math.Mod(x, bw) + bw
		ry = y - (rx-x)*tanAng
		xo = bw
		yo = -xo * tanAng
	default:
		return candidate{x: x, y: y}
	}

	at := func(px, py float64) gridmap.Material {
		return m.VerticalEdge(cellIndex(py/bh), lineIndex(px/bw))
	}
	return c.walk(rx, ry, xo, yo, at)
}

// walk steps from (rx, ry) by (xo, yo) until a wall edge is found or MaxDepth
// lines have been checked.
func (c *Caster) walk(rx, ry, xo, yo float64, at edgeLookup) candidate {
	for d := 0; d < c.cfg.MaxDepth; d++ {
		if id := at(rx, ry); id != gridmap.Empty {
			return candidate{x: rx, y: ry, material: id, searched: true, found: true}
		}
		rx += xo
		ry += yo
	}
	return candidate{x: rx, y: ry, searched: true}
}

// cellIndex floors a grid coordinate to the cell containing it.
func cellIndex(v float64) int {
	if math.IsNaN(v) || math.Abs(v) > maxIndex {
		return -1
	}
	return int(math.Floor(v))
}

// lineIndex rounds a coordinate that lies on a grid line to that line's index.
func lineIndex(v float64) int {
	if math.IsNaN(v) || math.Abs(v) > maxIndex {
		return -1
	}
	return int(math.Round(v))
}
