package mapscanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chosenoffset.com/raycaster/internal/world/maploader"
)

// MapEntry represents a loadable map found in a maps directory
type MapEntry struct {
	Name string // Display name (file name without extension)
	Path string // Full path, ready for maploader.Load
}

// Scan lists the map files in dir that maploader can read, sorted by name.
// Subdirectories and hidden files are skipped.
func Scan(dir string) ([]MapEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read maps directory: %w", err)
	}

	var maps []MapEntry
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") || !maploader.Supported(name) {
			continue
		}

		maps = append(maps, MapEntry{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(dir, name),
		})
	}

	sort.Slice(maps, func(i, j int) bool { return maps[i].Name < maps[j].Name })
	return maps, nil
}

// Cycle steps through a scanned map list, wrapping at the end.
type Cycle struct {
	entries []MapEntry
	current int
}

// NewCycle starts at the entry whose path is start, or before the first
// entry when start is not in the list.
func NewCycle(entries []MapEntry, start string) *Cycle {
	c := &Cycle{entries: entries, current: -1}
	if start == "" {
		return c
	}
	start = filepath.Clean(start)
	for i, e := range entries {
		if filepath.Clean(e.Path) == start {
			c.current = i
			break
		}
	}
	return c
}

// Len returns the number of maps in the cycle.
func (c *Cycle) Len() int { return len(c.entries) }

// Next advances and returns the next entry. ok is false for an empty cycle.
func (c *Cycle) Next() (MapEntry, bool) {
	if len(c.entries) == 0 {
		return MapEntry{}, false
	}
	c.current = (c.current + 1) % len(c.entries)
	return c.entries[c.current], true
}
