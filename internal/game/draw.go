package game

import (
	"fmt"
	"image/color"
	"math"

	"chosenoffset.com/raycaster/internal/core/caster"
	"chosenoffset.com/raycaster/internal/render"
)

var (
	mapBackdrop = color.RGBA{0, 0, 0, 200}
	mapOutline  = color.RGBA{255, 255, 255, 255}
	mapRay      = color.RGBA{255, 220, 0, 120}
	mapPlayer   = color.RGBA{255, 60, 60, 255}
	hudText     = color.RGBA{255, 255, 255, 255}
)

const (
	mapMargin   = 10
	mapFraction = 0.4 // Largest share of the screen the overlay may cover
)

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	w, h := screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	g.drawBackdrop(screen, w, h)

	g.Columns = g.World.Cast(g.Config.Window.Columns, caster.Viewport{Width: float64(w), Height: float64(h)})
	g.drawColumns(screen, h)

	if g.ShowMap {
		g.drawMap(screen, w, h)
	}

	g.drawHUD(screen, h)
	g.drawUI(screen)
}

// drawBackdrop fills the sky and floor halves behind the walls.
func (g *Game) drawBackdrop(screen render.Image, w, h int) {
	half := float32(h) / 2
	g.Renderer.FillRect(screen, 0, 0, float32(w), half, g.Config.Colors.Sky.RGBA())
	g.Renderer.FillRect(screen, 0, half, float32(w), float32(h)-half, g.Config.Colors.Floor.RGBA())
}

func (g *Game) drawColumns(screen render.Image, h int) {
	for _, col := range g.Columns {
		x := col.X - col.Width/2
		y := (float64(h) - col.Height) / 2
		g.Renderer.FillRect(screen, float32(x), float32(y), float32(col.Width), float32(col.Height), col.Color)
	}
}

// mapScale fits the world into the overlay area.
func (g *Game) mapScale(w, h int) float64 {
	m := g.World.Level().Map
	sx := float64(w) * mapFraction / m.WorldWidth()
	sy := float64(h) * mapFraction / m.WorldHeight()
	return math.Min(sx, sy)
}

// drawMap draws the overhead view: wall cells, their outline, the rays of the
// last frame and the player.
func (g *Game) drawMap(screen render.Image, w, h int) {
	m := g.World.Level().Map
	scale := g.mapScale(w, h)
	at := func(x, y float64) (float32, float32) {
		return float32(mapMargin + x*scale), float32(mapMargin + y*scale)
	}

	g.Renderer.FillRect(screen, mapMargin, mapMargin, float32(m.WorldWidth()*scale), float32(m.WorldHeight()*scale), mapBackdrop)

	bw, bh := float32(m.BlockWidth()*scale), float32(m.BlockHeight()*scale)
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			id := m.Cell(r, c)
			if !m.IsWallCell(r, c) {
				continue
			}
			x, y := at(float64(c)*m.BlockWidth(), float64(r)*m.BlockHeight())
			g.Renderer.FillRect(screen, x, y, bw, bh, m.Color(id))
		}
	}

	for _, seg := range g.World.Outline() {
		x0, y0 := at(seg.A.X, seg.A.Y)
		x1, y1 := at(seg.B.X, seg.B.Y)
		g.Renderer.StrokeLine(screen, x0, y0, x1, y1, 1, mapOutline)
	}

	p := g.World.Player()
	px, py := at(p.X, p.Y)
	for _, col := range g.Columns {
		if !col.Found {
			continue
		}
		hx, hy := at(col.HitX, col.HitY)
		g.Renderer.StrokeLine(screen, px, py, hx, hy, 1, mapRay)
	}

	radius := float32(math.Max(p.Radius*scale, 2))
	g.Renderer.FillCircle(screen, px, py, radius, mapPlayer)
	// Heading points up the screen at π/2 since world Y grows downward.
	hx, hy := at(p.X+math.Cos(p.Heading)*p.Radius*2, p.Y-math.Sin(p.Heading)*p.Radius*2)
	g.Renderer.StrokeLine(screen, px, py, hx, hy, 2, mapPlayer)
}

func (g *Game) drawHUD(screen render.Image, h int) {
	p := g.World.Player()
	status := fmt.Sprintf("%s  x=%.0f y=%.0f  heading=%.0f°", g.World.Level().Name, p.X, p.Y, p.Heading*180/math.Pi)
	_, th := g.Renderer.MeasureText(status, 1.0)
	g.Renderer.DrawText(screen, status, mapMargin, h-th-mapMargin, hudText, 1.0)
}

func (g *Game) drawUI(screen render.Image) {
	// Draw on-screen messages
	y := 50.0
	for _, msg := range g.Messages {
		alpha := uint8(255 * (msg.TimeLeft / msg.MaxTime))
		g.Renderer.DrawText(screen, msg.Text, 20, int(y), color.RGBA{255, 255, 255, alpha}, 1.0)
		y += 20
	}
}
