package outline

import (
	"testing"

	"chosenoffset.com/raycaster/internal/world/gridmap"
)

func buildMap(t *testing.T, cells [][]gridmap.Material) *gridmap.Map {
	t.Helper()
	palette := gridmap.Palette{{A: 255}, {R: 255, A: 255}, {G: 255, A: 255}}
	m, err := gridmap.New(cells, palette, 10, 10)
	if err != nil {
		t.Fatalf("Failed to build map: %v", err)
	}
	return m
}

func countBySide(segs []Segment) map[Side]int {
	out := make(map[Side]int)
	for _, s := range segs {
		out[s.Side]++
	}
	return out
}

func TestSingleCell(t *testing.T) {
	m := buildMap(t, [][]gridmap.Material{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	})

	segs := Segments(m)
	if len(segs) != 4 {
		t.Fatalf("Expected 4 segments, got %d", len(segs))
	}
	for _, s := range segs {
		if s.Material != 1 || len(s.Cells) != 1 || s.Cells[0] != (Coord{Row: 1, Col: 1}) {
			t.Errorf("Unexpected segment %+v", s)
		}
		switch s.Side {
		case Top:
			if s.A != (Point{10, 10}) || s.B != (Point{20, 10}) {
				t.Errorf("Expected top face from (10,10) to (20,10), got %v-%v", s.A, s.B)
			}
		case Left:
			if s.A != (Point{10, 10}) || s.B != (Point{10, 20}) {
				t.Errorf("Expected left face from (10,10) to (10,20), got %v-%v", s.A, s.B)
			}
		}
	}
}

func TestMergesRun(t *testing.T) {
	m := buildMap(t, [][]gridmap.Material{
		{0, 0, 0, 0},
		{0, 1, 1, 1},
		{0, 0, 0, 0},
	})

	segs := Segments(m)
	counts := countBySide(segs)
	if counts[Top] != 1 || counts[Bottom] != 1 || counts[Left] != 1 || counts[Right] != 1 {
		t.Fatalf("Expected one merged segment per side, got %v", counts)
	}
	for _, s := range segs {
		if s.Side == Top {
			if s.A.X != 10 || s.B.X != 40 {
				t.Errorf("Expected top run from x=10 to x=40, got %f to %f", s.A.X, s.B.X)
			}
			if len(s.Cells) != 3 {
				t.Errorf("Expected merged run to cover 3 cells, got %d", len(s.Cells))
			}
		}
	}
}

func TestMaterialsSplitRuns(t *testing.T) {
	m := buildMap(t, [][]gridmap.Material{
		{0, 0, 0},
		{1, 2, 0},
		{0, 0, 0},
	})

	counts := countBySide(Segments(m))
	if counts[Top] != 2 || counts[Bottom] != 2 {
		t.Errorf("Expected separate top and bottom faces per material, got %v", counts)
	}
	// The shared face between the two walls is hidden.
	if counts[Left] != 1 || counts[Right] != 1 {
		t.Errorf("Expected one left and one right face, got %v", counts)
	}
}

func TestEmptyMapHasNoSegments(t *testing.T) {
	m := buildMap(t, [][]gridmap.Material{{0, 0}, {0, 0}})
	if segs := Segments(m); len(segs) != 0 {
		t.Errorf("Expected no segments, got %d", len(segs))
	}
}

func TestSideString(t *testing.T) {
	if Bottom.String() != "bottom" || Side(9).String() != "unknown" {
		t.Errorf("Unexpected side names %s, %s", Bottom, Side(9))
	}
}
