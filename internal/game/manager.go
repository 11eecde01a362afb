package game

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/raycaster/internal/logger"
	"chosenoffset.com/raycaster/internal/world/maploader"
	"chosenoffset.com/raycaster/internal/world/mapscanner"
)

// ErrNoMaps is returned by Levels.Next when the maps directory holds nothing loadable.
var ErrNoMaps = errors.New("no maps available")

// Levels tracks the current level and cycles through a maps directory.
type Levels struct {
	current *maploader.Level
	cycle   *mapscanner.Cycle
	log     *logrus.Entry
}

// NewLevels loads start, or the built-in level when start is empty, and
// scans dir for further maps. A missing or unreadable dir only disables
// cycling.
func NewLevels(start, dir string) (*Levels, error) {
	l := &Levels{log: logger.Component("levels")}

	if start == "" {
		l.current = maploader.DefaultLevel()
	} else {
		level, err := maploader.Load(start)
		if err != nil {
			return nil, fmt.Errorf("failed to load start map: %w", err)
		}
		l.current = level
	}

	if dir != "" {
		entries, err := mapscanner.Scan(dir)
		if err != nil {
			l.log.WithError(err).WithField("dir", dir).Warn("Map cycling disabled")
		} else {
			l.cycle = mapscanner.NewCycle(entries, start)
			l.log.WithFields(logrus.Fields{"dir": dir, "maps": len(entries)}).Info("Scanned maps directory")
		}
	}

	return l, nil
}

// Current returns the active level.
func (l *Levels) Current() *maploader.Level {
	return l.current
}

// Count returns the number of maps available for cycling.
func (l *Levels) Count() int {
	if l.cycle == nil {
		return 0
	}
	return l.cycle.Len()
}

// Next loads the next map in the cycle, skipping files that fail to load.
// The current level is unchanged on error.
func (l *Levels) Next() (*maploader.Level, error) {
	if l.Count() == 0 {
		return nil, ErrNoMaps
	}

	var lastErr error
	for i := 0; i < l.cycle.Len(); i++ {
		entry, _ := l.cycle.Next()
		level, err := maploader.Load(entry.Path)
		if err != nil {
			l.log.WithError(err).WithField("path", entry.Path).Warn("Skipping map")
			lastErr = err
			continue
		}
		l.current = level
		return level, nil
	}
	return nil, lastErr
}
