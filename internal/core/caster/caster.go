// Package caster projects a grid map into screen columns by casting one ray per
// column and finding the nearest wall edge along it.
package caster

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"chosenoffset.com/raycaster/internal/core/trig"
	"chosenoffset.com/raycaster/internal/world/gridmap"
)

// ErrInvalidConfig is wrapped by Config.Validate failures.
var ErrInvalidConfig = errors.New("caster: invalid config")

// Side tells which family of grid lines a ray hit.
type Side uint8

const (
	// SideHorizontal is a wall face lying along the X axis.
	SideHorizontal Side = iota
	// SideVertical is a wall face lying along the Y axis.
	SideVertical
)

func (s Side) String() string {
	if s == SideVertical {
		return "vertical"
	}
	return "horizontal"
}

// Config holds the projection parameters.
type Config struct {
	// SpreadDegrees is half the field of view. Rays span heading±spread.
	SpreadDegrees float64 `json:"spread_degrees"`
	// MaxDepth bounds each axis search, in grid lines crossed.
	MaxDepth int `json:"max_depth"`
	// WallHeight is the world height of a wall.
	WallHeight float64 `json:"wall_height"`
	// ShadeRatio scales the colour of vertical faces.
	ShadeRatio float64 `json:"shade_ratio"`
}

// DefaultConfig returns the classic projection settings.
func DefaultConfig() Config {
	return Config{
		SpreadDegrees: 30,
		MaxDepth:      15,
		WallHeight:    50,
		ShadeRatio:    0.8,
	}
}

// Validate checks that the parameters describe a usable projection.
func (c Config) Validate() error {
	if !(c.SpreadDegrees > 0 && c.SpreadDegrees < 90) {
		return fmt.Errorf("%w: spread %g must be in (0, 90) degrees", ErrInvalidConfig, c.SpreadDegrees)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w: max depth %d must be at least 1", ErrInvalidConfig, c.MaxDepth)
	}
	if !(c.WallHeight > 0) {
		return fmt.Errorf("%w: wall height %g must be positive", ErrInvalidConfig, c.WallHeight)
	}
	if !(c.ShadeRatio >= 0 && c.ShadeRatio <= 1) {
		return fmt.Errorf("%w: shade ratio %g must be in [0, 1]", ErrInvalidConfig, c.ShadeRatio)
	}
	return nil
}

// View is the position and heading rays are cast from.
type View struct {
	X, Y    float64
	Heading float64
}

// Viewport is the size of the projection surface in pixels.
type Viewport struct {
	Width, Height float64
}

// Hit is the result of casting a single ray.
type Hit struct {
	RayAngle    float64
	X, Y        float64
	RawDistance float64
	// Distance is RawDistance projected onto the view direction.
	Distance float64
	Material gridmap.Material
	Side     Side
	// Found is false when no wall was met within MaxDepth.
	Found bool
}

// Column describes one vertical wall slice, centred on X.
type Column struct {
	Index       int
	X           float64
	Width       float64
	Height      float64
	Color       color.RGBA
	Distance    float64
	RawDistance float64
	Side        Side
	Material    gridmap.Material
	HitX, HitY  float64
	Found       bool
}

// Caster casts rays against a grid map. It holds no per-frame state.
type Caster struct {
	table  *trig.Table
	cfg    Config
	spread float64
}

// New creates a caster using table for all trigonometry.
func New(table *trig.Table, cfg Config) (*Caster, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil trig table", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Caster{
		table:  table,
		cfg:    cfg,
		spread: trig.Radians(cfg.SpreadDegrees),
	}, nil
}

// Config returns the caster's configuration.
func (c *Caster) Config() Config { return c.cfg }

// ProjectionDistance returns the distance from the eye to a projection plane
// of the given width that exactly spans the field of view.
func (c *Caster) ProjectionDistance(width float64) float64 {
	return (width / 2) / c.table.Tan(c.spread)
}

// RayAngle returns the angle of ray i of n. Angles run from heading+spread on
// the left of the screen to heading-spread on the right; a single ray is cast
// straight ahead.
func (c *Caster) RayAngle(heading float64, i, n int) float64 {
	if n <= 1 {
		return heading
	}
	return heading + c.spread - 2*c.spread*float64(i)/float64(n-1)
}

// CastRays casts one ray per column and returns the visible slices in column
// order. Columns whose corrected distance is not positive are left out, so
// the result may be shorter than columns.
func (c *Caster) CastRays(view View, m *gridmap.Map, columns int, vp Viewport) []Column {
	if m == nil || columns <= 0 {
		return nil
	}

	projDist := c.ProjectionDistance(vp.Width)
	colWidth := vp.Width / float64(columns)

	out := make([]Column, 0, columns)
	for i := 0; i < columns; i++ {
		hit, ok := c.CastColumn(view, c.RayAngle(view.Heading, i, columns), m)
		if !ok {
			continue
		}
		col, ok := c.Project(hit, m, projDist, vp.Height)
		if !ok {
			continue
		}
		col.Index = i
		col.X = (float64(i) + 0.5) * colWidth
		col.Width = colWidth
		out = append(out, col)
	}
	return out
}

// CastColumn casts a single ray and returns the nearest wall hit. ok is false
// when neither axis could be searched.
func (c *Caster) CastColumn(view View, rayAngle float64, m *gridmap.Map) (Hit, bool) {
	rAng := trig.Normalize(rayAngle)
	cosA, sinA, tanAng := c.table.Cos(rAng), c.table.Sin(rAng), c.table.Tan(rAng)

	h := c.castHorizontal(view.X, view.Y, rAng, sinA, tanAng, m)
	v := c.castVertical(view.X, view.Y, rAng, cosA, tanAng, m)
	if !h.searched && !v.searched {
		return Hit{}, false
	}

	h.dist = rayDistance(view.X, view.Y, h.x, h.y, cosA, sinA)
	v.dist = rayDistance(view.X, view.Y, v.x, v.y, cosA, sinA)

	best, side := nearest(h, v)
	raw := best.dist

	return Hit{
		RayAngle:    rAng,
		X:           best.x,
		Y:           best.y,
		RawDistance: raw,
		Distance:    raw * c.table.Cos(rAng-view.Heading),
		Material:    best.material,
		Side:        side,
		Found:       best.found,
	}, true
}

// Project turns a hit into a shaded column of height clipped to maxHeight.
// ok is false when the hit distance is not positive.
func (c *Caster) Project(hit Hit, m *gridmap.Map, projDist, maxHeight float64) (Column, bool) {
	if !(hit.Distance > 0) {
		return Column{}, false
	}

	height := c.cfg.WallHeight * projDist / hit.Distance
	if height > maxHeight {
		height = maxHeight
	}
	if !(height > 0) {
		return Column{}, false
	}

	clr := m.Color(hit.Material)
	if hit.Side == SideVertical {
		clr = Shade(clr, c.cfg.ShadeRatio)
	}

	return Column{
		Height:      height,
		Color:       clr,
		Distance:    hit.Distance,
		RawDistance: hit.RawDistance,
		Side:        hit.Side,
		Material:    hit.Material,
		HitX:        hit.X,
		HitY:        hit.Y,
		Found:       hit.Found,
	}, true
}

// Shade scales the colour channels by ratio, keeping alpha.
func Shade(clr color.RGBA, ratio float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(clr.R) * ratio),
		G: uint8(float64(clr.G) * ratio),
		B: uint8(float64(clr.B) * ratio),
		A: clr.A,
	}
}

// candidate is the end point of one axis search.
type candidate struct {
	x, y     float64
	dist     float64
	material gridmap.Material
	searched bool
	found    bool
}

// nearest picks between the horizontal and vertical candidates. A hit beats a
// miss; otherwise the shorter distance wins and ties go to the horizontal one.
func nearest(h, v candidate) (candidate, Side) {
	switch {
	case !v.searched:
		return h, SideHorizontal
	case !h.searched:
		return v, SideVertical
	case h.found != v.found:
		if h.found {
			return h, SideHorizontal
		}
		return v, SideVertical
	case v.dist >= h.dist:
		return h, SideHorizontal
	default:
		return v, SideVertical
	}
}

// rayDistance measures how far along the ray (px, py) lies from (x, y) by
// dividing the larger displacement component by the matching direction cosine.
func rayDistance(x, y, px, py, cosA, sinA float64) float64 {
	if math.Abs(cosA) >= math.Abs(sinA) {
		return math.Abs((px - x) / cosA)
	}
	return math.Abs((py - y) / sinA)
}
