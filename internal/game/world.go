package game

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/raycaster/internal/config"
	"chosenoffset.com/raycaster/internal/core/caster"
	"chosenoffset.com/raycaster/internal/core/player"
	"chosenoffset.com/raycaster/internal/core/trig"
	"chosenoffset.com/raycaster/internal/logger"
	"chosenoffset.com/raycaster/internal/world/maploader"
	"chosenoffset.com/raycaster/internal/world/outline"
)

// World is the simulation shared by every front end: the active level, the
// player moving through it and the caster that projects it. It is owned by a
// single frame loop and is not safe for concurrent use.
type World struct {
	cfg     *config.Config
	table   *trig.Table
	caster  *caster.Caster
	levels  *Levels
	player  *player.Player
	outline []outline.Segment
	log     *logrus.Entry
}

// NewWorld builds the trig table and caster from cfg and places the player at
// the current level's spawn point.
func NewWorld(cfg *config.Config, levels *Levels) (*World, error) {
	table, err := trig.New(cfg.Trig.Step)
	if err != nil {
		return nil, fmt.Errorf("failed to build trig table: %w", err)
	}

	c, err := caster.New(table, cfg.Caster)
	if err != nil {
		return nil, fmt.Errorf("failed to create caster: %w", err)
	}

	w := &World{
		cfg:    cfg,
		table:  table,
		caster: c,
		levels: levels,
		log:    logger.Component("world"),
	}
	w.enter(levels.Current())
	return w, nil
}

func (w *World) enter(level *maploader.Level) {
	spawn := level.Spawn
	if !spawn.Within(level.Map) {
		w.log.WithFields(logrus.Fields{
			"map": level.Name,
			"x":   spawn.X,
			"y":   spawn.Y,
		}).Warn("Spawn point outside the map, using the default")
		spawn = maploader.DefaultSpawn(level.Map)
	}

	w.player = player.New(spawn.X, spawn.Y, spawn.Heading, w.cfg.Player.Radius, w.table)
	w.outline = outline.Segments(level.Map)

	w.log.WithFields(logrus.Fields{
		"map":      level.Name,
		"x":        spawn.X,
		"y":        spawn.Y,
		"segments": len(w.outline),
	}).Info("Entered level")

	if w.player.Blocked(level.Map) {
		w.log.WithField("map", level.Name).Warn("Spawn point overlaps a wall")
	}
}

// Level returns the active level.
func (w *World) Level() *maploader.Level { return w.levels.Current() }

// Player returns the viewer.
func (w *World) Player() *player.Player { return w.player }

// Outline returns the merged wall faces of the active level.
func (w *World) Outline() []outline.Segment { return w.outline }

// Caster returns the projection in use.
func (w *World) Caster() *caster.Caster { return w.caster }

// View returns the caster view at the player's position.
func (w *World) View() caster.View {
	return caster.View{X: w.player.X, Y: w.player.Y, Heading: w.player.Heading}
}

// Step advances the player by dt seconds of the given actions and resolves
// collisions.
func (w *World) Step(actions player.ActionSet, dt float64) player.Resolution {
	if actions.Empty() {
		return player.Accepted
	}

	m := w.Level().Map
	dx, dy := w.player.Move(actions, w.cfg.Player.Speed, w.cfg.Player.TurnSpeed, dt, m.WorldWidth(), m.WorldHeight())
	res := w.player.CheckCollision(m, dx, dy)
	if res != player.Accepted {
		w.log.WithFields(logrus.Fields{
			"resolution": res,
			"x":          w.player.X,
			"y":          w.player.Y,
		}).Debug("Collision")
	}
	return res
}

// Cast projects the active level into columns slices.
func (w *World) Cast(columns int, vp caster.Viewport) []caster.Column {
	return w.caster.CastRays(w.View(), w.Level().Map, columns, vp)
}

// NextLevel switches to the next map in the maps directory.
func (w *World) NextLevel() error {
	level, err := w.levels.Next()
	if err != nil {
		return err
	}
	w.enter(level)
	return nil
}

// MaxDistance is the farthest a ray can search, used to shade by distance.
func (w *World) MaxDistance() float64 {
	m := w.Level().Map
	block := m.BlockWidth()
	if m.BlockHeight() > block {
		block = m.BlockHeight()
	}
	return float64(w.cfg.Caster.MaxDepth) * block
}
