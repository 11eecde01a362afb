// Package player integrates the viewer's position and heading from input and
// resolves collisions against the wall grid.
package player

import (
	"math"

	"chosenoffset.com/raycaster/internal/core/trig"
	"chosenoffset.com/raycaster/internal/world/gridmap"
)

// ModifierFactor scales both linear and angular speed while SpeedModifier is held.
const ModifierFactor = 2.0

// Resolution reports how CheckCollision settled a displacement.
type Resolution int

const (
	// Accepted means the full displacement was kept.
	Accepted Resolution = iota
	// SlideY means the X component was retracted and the player slid along Y.
	SlideY
	// SlideX means the Y component was retracted and the player slid along X.
	SlideX
	// Blocked means the whole displacement was reverted.
	Blocked
)

func (r Resolution) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case SlideY:
		return "slide-y"
	case SlideX:
		return "slide-x"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Player is the viewer. Heading is measured anticlockwise from +X with world Y
// pointing down, so moving forward at heading 0 increases X and at heading π/2
// decreases Y.
type Player struct {
	X, Y    float64
	Heading float64
	Radius  float64

	table *trig.Table
}

// New creates a player using table for its movement trigonometry.
func New(x, y, heading, radius float64, table *trig.Table) *Player {
	return &Player{
		X:       x,
		Y:       y,
		Heading: trig.Normalize(heading),
		Radius:  radius,
		table:   table,
	}
}

// Move applies the active actions for a frame of dt seconds and returns the
// net displacement. Turns rotate the heading; translations move along the
// heading and wrap the position modulo the world bounds.
func (p *Player) Move(actions ActionSet, speed, angularSpeed, dt, worldW, worldH float64) (dx, dy float64) {
	startX, startY := p.X, p.Y

	if actions.Has(SpeedModifier) {
		speed *= ModifierFactor
		angularSpeed *= ModifierFactor
	}

	step := speed * dt
	for _, a := range actions.Actions() {
		var mx, my float64
		switch a {
		case TurnLeft:
			p.Heading = trig.Normalize(p.Heading + angularSpeed*dt)
			continue
		case TurnRight:
			p.Heading = trig.Normalize(p.Heading - angularSpeed*dt)
			continue
		case MoveForward:
			mx, my = p.table.Cos(p.Heading), -p.table.Sin(p.Heading)
		case MoveBack:
			mx, my = -p.table.Cos(p.Heading), p.table.Sin(p.Heading)
		case StrafeRight:
			mx, my = p.table.Sin(p.Heading), p.table.Cos(p.Heading)
		case StrafeLeft:
			mx, my = -p.table.Sin(p.Heading), -p.table.Cos(p.Heading)
		default:
			continue
		}

		p.X = wrap(p.X+mx*step, worldW)
		p.Y = wrap(p.Y+my*step, worldH)
	}

	return p.X - startX, p.Y - startY
}

// CheckCollision validates the position reached by a displacement of (dx, dy).
// It keeps the full move if possible, otherwise tries retracting X, then
// retracting Y alone, and finally reverts both.
func (p *Player) CheckCollision(m *gridmap.Map, dx, dy float64) Resolution {
	if !p.Blocked(m) {
		return Accepted
	}

	movedX, movedY := p.X, p.Y

	p.X = movedX - dx
	if !p.Blocked(m) {
		return SlideY
	}

	p.X, p.Y = movedX, movedY-dy
	if !p.Blocked(m) {
		return SlideX
	}

	p.X = movedX - dx
	return Blocked
}

// Blocked reports whether the player's bounding box, radius inclusive,
// overlaps any wall cell.
func (p *Player) Blocked(m *gridmap.Map) bool {
	rowLo, colLo := m.CellAt(p.X-p.Radius, p.Y-p.Radius)
	rowHi, colHi := m.CellAt(p.X+p.Radius, p.Y+p.Radius)

	for r := rowLo; r <= rowHi; r++ {
		for c := colLo; c <= colHi; c++ {
			if m.IsWallCell(r, c) {
				return true
			}
		}
	}
	return false
}

func wrap(v, bound float64) float64 {
	if !(bound > 0) {
		return v
	}
	v = math.Mod(v, bound)
	if v < 0 {
		v += bound
	}
	if v >= bound {
		v = 0
	}
	return v
}
