package player

import (
	"math"
	"testing"

	"chosenoffset.com/raycaster/internal/core/trig"
	"chosenoffset.com/raycaster/internal/world/gridmap"
)

const tolerance = 1e-9

var table = trig.Default()

// newTestMap builds a 10x10 map of 10-unit blocks with walls at the given cells.
func newTestMap(t *testing.T, walls ...[2]int) *gridmap.Map {
	t.Helper()

	cells := make([][]gridmap.Material, 10)
	for r := range cells {
		cells[r] = make([]gridmap.Material, 10)
	}
	for _, w := range walls {
		cells[w[0]][w[1]] = 1
	}

	palette := gridmap.Palette{{A: 255}, {R: 255, A: 255}}
	m, err := gridmap.New(cells, palette, 10, 10)
	if err != nil {
		t.Fatalf("Failed to build map: %v", err)
	}
	return m
}

func near(a, b float64) bool { return math.Abs(a-b) < tolerance }

func TestActionSet(t *testing.T) {
	s := NewActionSet(StrafeRight, TurnLeft, StrafeRight)

	if !s.Has(TurnLeft) || !s.Has(StrafeRight) {
		t.Error("Expected set to hold turn-left and strafe-right")
	}
	if s.Has(MoveForward) {
		t.Error("Expected move-forward to be inactive")
	}

	got := s.Actions()
	if len(got) != 2 || got[0] != TurnLeft || got[1] != StrafeRight {
		t.Errorf("Expected [turn-left strafe-right], got %v", got)
	}

	s = s.Remove(TurnLeft).Remove(StrafeRight)
	if !s.Empty() {
		t.Errorf("Expected empty set after removals, got %08b", s)
	}

	if NewActionSet(Action(99)).Has(Action(99)) {
		t.Error("Expected unknown actions to be ignored")
	}
	if SpeedModifier.String() != "speed-modifier" {
		t.Errorf("Expected name speed-modifier, got %s", SpeedModifier)
	}
}

func TestMoveForwardAndModifier(t *testing.T) {
	p := New(20, 50, 0, 2, table)
	dx, dy := p.Move(NewActionSet(MoveForward), 10, 1, 1, 100, 100)
	if !near(dx, 10) || !near(dy, 0) {
		t.Errorf("Expected displacement (10, 0), got (%f, %f)", dx, dy)
	}

	p = New(20, 50, 0, 2, table)
	dx, _ = p.Move(NewActionSet(MoveForward, SpeedModifier), 10, 1, 1, 100, 100)
	if !near(dx, 20) {
		t.Errorf("Expected modifier to double displacement to 20, got %f", dx)
	}
	if !near(p.X, 40) {
		t.Errorf("Expected X 40, got %f", p.X)
	}
}

func TestMoveDirections(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		wantX  float64
		wantY  float64
	}{
		{"forward", MoveForward, 0, -1},
		{"back", MoveBack, 0, 1},
		{"strafe right", StrafeRight, 1, 0},
		{"strafe left", StrafeLeft, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Heading π/2 looks towards decreasing Y.
			p := New(50, 50, math.Pi/2, 2, table)
			dx, dy := p.Move(NewActionSet(tt.action), 1, 0, 1, 100, 100)
			if math.Abs(dx-tt.wantX) > 1e-3 || math.Abs(dy-tt.wantY) > 1e-3 {
				t.Errorf("Expected (%f, %f), got (%f, %f)", tt.wantX, tt.wantY, dx, dy)
			}
		})
	}
}

func TestTurning(t *testing.T) {
	p := New(50, 50, 0, 2, table)
	dx, dy := p.Move(NewActionSet(TurnLeft), 10, 1, 0.5, 100, 100)
	if dx != 0 || dy != 0 {
		t.Errorf("Expected rotation to contribute no displacement, got (%f, %f)", dx, dy)
	}
	if !near(p.Heading, 0.5) {
		t.Errorf("Expected heading 0.5, got %f", p.Heading)
	}

	p = New(50, 50, 0.1, 2, table)
	p.Move(NewActionSet(TurnRight), 10, 1, 0.5, 100, 100)
	if !near(p.Heading, 2*math.Pi-0.4) {
		t.Errorf("Expected heading to wrap to %f, got %f", 2*math.Pi-0.4, p.Heading)
	}
}

// TestToroidalWrap checks that positions stay inside the world for a spread of
// starting points, headings and step sizes.
func TestToroidalWrap(t *testing.T) {
	const w, h = 140.0, 90.0
	for x := 0.0; x < w; x += 13.7 {
		for heading := 0.0; heading < 2*math.Pi; heading += 0.61 {
			for _, speed := range []float64{1, 55, 333, 1e4} {
				p := New(x, h/2, heading, 1, table)
				p.Move(NewActionSet(MoveForward, StrafeLeft), speed, 0, 1, w, h)
				if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
					t.Fatalf("Position (%f, %f) escaped world %gx%g", p.X, p.Y, w, h)
				}
			}
		}
	}

	p := New(95, 5, 0, 1, table)
	p.Move(NewActionSet(MoveForward), 10, 0, 1, 100, 100)
	if !near(p.X, 5) {
		t.Errorf("Expected X to wrap to 5, got %f", p.X)
	}
}

func TestCollisionAccepted(t *testing.T) {
	m := newTestMap(t)
	p := New(55, 55, 0, 2, table)
	dx, dy := p.Move(NewActionSet(MoveForward), 3, 0, 1, m.WorldWidth(), m.WorldHeight())

	if res := p.CheckCollision(m, dx, dy); res != Accepted {
		t.Errorf("Expected accepted, got %s", res)
	}
	if !near(p.X, 58) {
		t.Errorf("Expected X 58, got %f", p.X)
	}
}

// TestCollisionBlockedCorner moves diagonally into an inner corner where both
// single-axis retractions still overlap a wall.
func TestCollisionBlockedCorner(t *testing.T) {
	m := newTestMap(t, [2]int{5, 6}, [2]int{6, 5}, [2]int{6, 6})
	p := New(55, 55, 7*math.Pi/4, 2, table)
	dx, dy := p.Move(NewActionSet(MoveForward), 5, 0, 1, m.WorldWidth(), m.WorldHeight())

	if res := p.CheckCollision(m, dx, dy); res != Blocked {
		t.Errorf("Expected blocked, got %s", res)
	}
	if !near(p.X, 55) || !near(p.Y, 55) {
		t.Errorf("Expected position reverted to (55, 55), got (%f, %f)", p.X, p.Y)
	}
}

func TestCollisionSlideX(t *testing.T) {
	// Wall row below the player: only the X component survives.
	m := newTestMap(t, [2]int{6, 5}, [2]int{6, 6})
	p := New(55, 55, 7*math.Pi/4, 2, table)
	dx, dy := p.Move(NewActionSet(MoveForward), 5, 0, 1, m.WorldWidth(), m.WorldHeight())

	if res := p.CheckCollision(m, dx, dy); res != SlideX {
		t.Errorf("Expected slide-x, got %s", res)
	}
	if !near(p.Y, 55) {
		t.Errorf("Expected Y retracted to 55, got %f", p.Y)
	}
	if !near(p.X, 55+dx) {
		t.Errorf("Expected X %f, got %f", 55+dx, p.X)
	}
}

func TestCollisionSlideY(t *testing.T) {
	// Wall column to the right: only the Y component survives.
	m := newTestMap(t, [2]int{5, 6}, [2]int{6, 6})
	p := New(55, 55, 7*math.Pi/4, 2, table)
	dx, dy := p.Move(NewActionSet(MoveForward), 5, 0, 1, m.WorldWidth(), m.WorldHeight())

	if res := p.CheckCollision(m, dx, dy); res != SlideY {
		t.Errorf("Expected slide-y, got %s", res)
	}
	if !near(p.X, 55) {
		t.Errorf("Expected X retracted to 55, got %f", p.X)
	}
	if !near(p.Y, 55+dy) {
		t.Errorf("Expected Y %f, got %f", 55+dy, p.Y)
	}
}

func TestBlockedUsesRadius(t *testing.T) {
	m := newTestMap(t, [2]int{5, 6})
	p := New(57, 55, 0, 2, table)
	if p.Blocked(m) {
		t.Error("Expected box ending at x=59 to be clear of the wall at x=60")
	}
	p.X = 58
	if !p.Blocked(m) {
		t.Error("Expected box touching x=60 to overlap the wall")
	}
}
