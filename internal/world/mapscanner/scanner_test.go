package mapscanner

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScan(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zeta.json", "alpha.bmp", "mid.PNG", "notes.txt", ".hidden.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("Failed to write fixture: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}

	maps, err := Scan(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{"alpha", "mid", "zeta"}
	if len(maps) != len(want) {
		t.Fatalf("Expected %d maps, got %d: %+v", len(want), len(maps), maps)
	}
	for i, name := range want {
		if maps[i].Name != name {
			t.Errorf("Expected map %d to be %s, got %s", i, name, maps[i].Name)
		}
	}
	if maps[0].Path != filepath.Join(dir, "alpha.bmp") {
		t.Errorf("Expected full path, got %s", maps[0].Path)
	}
}

func TestScanMissingDir(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected an error for a missing directory")
	}
}

func TestCycle(t *testing.T) {
	entries := []MapEntry{{Name: "a", Path: "/m/a.json"}, {Name: "b", Path: "/m/b.json"}, {Name: "c", Path: "/m/c.json"}}

	c := NewCycle(entries, "/m/b.json")
	var got []string
	for i := 0; i < 4; i++ {
		e, ok := c.Next()
		if !ok {
			t.Fatal("Expected an entry")
		}
		got = append(got, e.Name)
	}
	if got[0] != "c" || got[1] != "a" || got[2] != "b" || got[3] != "c" {
		t.Errorf("Expected c a b c, got %v", got)
	}

	c = NewCycle(entries, "")
	if e, _ := c.Next(); e.Name != "a" {
		t.Errorf("Expected to start at a, got %s", e.Name)
	}

	if _, ok := NewCycle(nil, "").Next(); ok {
		t.Error("Expected an empty cycle to report no entry")
	}
}
