package mapgen

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"chosenoffset.com/raycaster/internal/world/gridmap"
	"chosenoffset.com/raycaster/internal/world/maploader"
)

func generate(t *testing.T, seed int64) (*gridmap.Map, []Room, float64, float64) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = seed
	g, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("Failed to create generator: %v", err)
	}
	level, rooms, err := g.Generate("test")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return level.Map, rooms, level.Spawn.X, level.Spawn.Y
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, _, _, _ := generate(t, 42)
	b, _, _, _ := generate(t, 42)

	for r := 0; r < a.Rows(); r++ {
		for c := 0; c < a.Cols(); c++ {
			if a.Cell(r, c) != b.Cell(r, c) {
				t.Fatalf("Expected identical levels for one seed, differ at (%d, %d)", r, c)
			}
		}
	}
}

func TestGenerateKeepsBorder(t *testing.T) {
	m, _, _, _ := generate(t, 7)
	for c := 0; c < m.Cols(); c++ {
		if !m.IsWallCell(0, c) || !m.IsWallCell(m.Rows()-1, c) {
			t.Fatalf("Expected solid top and bottom border at column %d", c)
		}
	}
	for r := 0; r < m.Rows(); r++ {
		if !m.IsWallCell(r, 0) || !m.IsWallCell(r, m.Cols()-1) {
			t.Fatalf("Expected solid left and right border at row %d", r)
		}
	}
}

func TestGenerateConnectsEverything(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 99, 12345} {
		m, rooms, sx, sy := generate(t, seed)
		if len(rooms) == 0 {
			t.Fatalf("Seed %d: expected rooms", seed)
		}

		row, col := m.CellAt(sx, sy)
		if m.IsWallCell(row, col) {
			t.Fatalf("Seed %d: expected open spawn cell", seed)
		}

		type point struct{ r, c int }
		seen := map[point]bool{{row, col}: true}
		queue := []point{{row, col}}
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			for _, d := range []point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				n := point{p.r + d.r, p.c + d.c}
				if !seen[n] && !m.IsWallCell(n.r, n.c) {
					seen[n] = true
					queue = append(queue, n)
				}
			}
		}

		for r := 0; r < m.Rows(); r++ {
			for c := 0; c < m.Cols(); c++ {
				if !m.IsWallCell(r, c) && !seen[point{r, c}] {
					t.Errorf("Seed %d: open cell (%d, %d) unreachable from spawn", seed, r, c)
				}
			}
		}
		for i, room := range rooms {
			col, row := room.Center()
			if !seen[point{row, col}] {
				t.Errorf("Seed %d: room %d unreachable", seed, i)
			}
		}
	}
}

// TestGeneratedLevelsReloadFromJSON saves generated levels, whose materials
// rarely use every palette id, and loads them back.
func TestGeneratedLevelsReloadFromJSON(t *testing.T) {
	dir := t.TempDir()
	for seed := int64(1); seed <= 10; seed++ {
		cfg := DefaultConfig()
		cfg.Seed = seed
		g, err := NewGenerator(cfg)
		if err != nil {
			t.Fatalf("Failed to create generator: %v", err)
		}
		level, _, err := g.Generate(fmt.Sprintf("level%d", seed))
		if err != nil {
			t.Fatalf("Seed %d: expected no error, got %v", seed, err)
		}

		path := filepath.Join(dir, level.Name+".json")
		if err := maploader.Save(path, level); err != nil {
			t.Fatalf("Seed %d: failed to save: %v", seed, err)
		}
		loaded, err := maploader.Load(path)
		if err != nil {
			t.Fatalf("Seed %d: failed to reload: %v", seed, err)
		}

		if got := len(loaded.Map.Palette()); got != len(Palette) {
			t.Errorf("Seed %d: expected %d palette entries, got %d", seed, len(Palette), got)
		}
		for r := 0; r < level.Map.Rows(); r++ {
			for c := 0; c < level.Map.Cols(); c++ {
				if level.Map.Cell(r, c) != loaded.Map.Cell(r, c) {
					t.Fatalf("Seed %d: expected material %d at (%d, %d), got %d",
						seed, level.Map.Cell(r, c), r, c, loaded.Map.Cell(r, c))
				}
			}
		}
		if loaded.Spawn != level.Spawn {
			t.Errorf("Seed %d: expected spawn %+v, got %+v", seed, level.Spawn, loaded.Spawn)
		}
	}
}

func TestRoomsDoNotTouch(t *testing.T) {
	_, rooms, _, _ := generate(t, 5)
	for i := range rooms {
		for j := i + 1; j < len(rooms); j++ {
			if rooms[i].overlaps(rooms[j]) {
				t.Errorf("Rooms %d and %d overlap: %+v %+v", i, j, rooms[i], rooms[j])
			}
		}
	}
}

func TestFillUnreachable(t *testing.T) {
	cells := [][]gridmap.Material{
		{1, 1, 1, 1, 1},
		{1, 0, 1, 0, 1},
		{1, 0, 1, 0, 1},
		{1, 1, 1, 1, 1},
	}
	if removed := fillUnreachable(cells, 1, 1); removed != 2 {
		t.Errorf("Expected 2 cells filled, got %d", removed)
	}
	if cells[1][3] == gridmap.Empty || cells[2][3] == gridmap.Empty {
		t.Error("Expected the sealed pocket to be filled")
	}
	if cells[1][1] != gridmap.Empty || cells[2][1] != gridmap.Empty {
		t.Error("Expected the reachable pocket to stay open")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"room sizes", func(c *Config) { c.MaxRoomSize = 1; c.MinRoomSize = 2 }},
		{"room counts", func(c *Config) { c.MinRooms = 0 }},
		{"too small", func(c *Config) { c.Width = 4 }},
		{"block size", func(c *Config) { c.BlockSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if _, err := NewGenerator(cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}
