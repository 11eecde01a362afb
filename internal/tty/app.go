// Package tty renders the world as shaded text in a terminal.
package tty

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"chosenoffset.com/raycaster/internal/config"
	"chosenoffset.com/raycaster/internal/core/caster"
	"chosenoffset.com/raycaster/internal/core/player"
	"chosenoffset.com/raycaster/internal/game"
	"chosenoffset.com/raycaster/internal/logger"
)

// cellAspect is the height of a terminal cell over its width.
const cellAspect = 2

// App runs the terminal front end. Terminals report key presses but not
// releases, so every key event queues its action for the next tick only.
type App struct {
	screen  tcell.Screen
	world   *game.World
	cfg     *config.Config
	pending player.ActionSet
	running bool
	log     *logrus.Entry

	skyStyle   tcell.Style
	floorStyle tcell.Style
}

// New creates an app drawing world onto an initialised screen.
func New(screen tcell.Screen, world *game.World, cfg *config.Config) *App {
	sky := cfg.Colors.Sky
	floor := cfg.Colors.Floor
	return &App{
		screen: screen,
		world:  world,
		cfg:    cfg,
		log:    logger.Component("tty"),
		skyStyle: tcell.StyleDefault.
			Background(tcell.NewRGBColor(int32(sky[0]), int32(sky[1]), int32(sky[2]))),
		floorStyle: tcell.StyleDefault.
			Background(tcell.ColorBlack).
			Foreground(tcell.NewRGBColor(int32(floor[0]), int32(floor[1]), int32(floor[2]))),
	}
}

// Run draws at the configured frame rate until the user quits or ctx ends.
// Quitting returns nil; cancellation returns ctx.Err().
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	stop := make(chan struct{})
	done := make(chan struct{})
	go a.pollLoop(events, stop, done)
	defer func() {
		close(stop)
		// Unblock PollEvent so the loop sees stop
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		<-done
	}()

	fps := a.cfg.TTY.FPS
	if fps <= 0 {
		fps = 30
	}
	interval := time.Second / time.Duration(fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.log.WithField("fps", fps).Info("Terminal loop started")
	a.Draw()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if a.HandleKey(ev) {
					a.log.Info("Quit requested")
					return nil
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}
		case <-ticker.C:
			a.Tick(interval.Seconds())
			a.Draw()
		}
	}
}

// pollLoop forwards screen events until stop is closed or the screen ends.
func (a *App) pollLoop(events chan<- tcell.Event, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		default:
		}

		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}

		select {
		case events <- ev:
		case <-stop:
			return
		}
	}
}

// HandleKey queues the key's action and reports whether the user asked to quit.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		return true
	case tcell.KeyUp:
		a.pending = a.pending.Add(player.MoveForward)
	case tcell.KeyDown:
		a.pending = a.pending.Add(player.MoveBack)
	case tcell.KeyLeft:
		a.pending = a.pending.Add(player.StrafeLeft)
	case tcell.KeyRight:
		a.pending = a.pending.Add(player.StrafeRight)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'a', 'A':
			a.pending = a.pending.Add(player.TurnLeft)
		case 's', 'S':
			a.pending = a.pending.Add(player.TurnRight)
		case ' ':
			a.running = !a.running
		case 'n', 'N':
			if err := a.world.NextLevel(); err != nil {
				a.log.WithError(err).Debug("No next level")
			}
		}
	}
	return false
}

// Running reports whether the speed modifier is toggled on.
func (a *App) Running() bool { return a.running }

// Tick applies the queued actions for dt seconds and clears them.
func (a *App) Tick(dt float64) player.Resolution {
	actions := a.pending
	a.pending = 0
	if a.running && !actions.Empty() {
		actions = actions.Add(player.SpeedModifier)
	}
	return a.world.Step(actions, dt)
}

// Draw renders one frame with a status line on the bottom row.
func (a *App) Draw() {
	w, h := a.screen.Size()
	rows := h - 1
	if w <= 0 || rows <= 0 {
		return
	}

	a.screen.Clear()

	// Terminal cells are twice as tall as wide, so project onto a viewport of
	// square cells and halve the heights afterwards.
	vp := caster.Viewport{Width: float64(w), Height: float64(rows * cellAspect)}
	maxDistance := a.world.MaxDistance()

	walls := make([]*caster.Column, w)
	columns := a.world.Cast(w, vp)
	for i := range columns {
		if idx := columns[i].Index; idx >= 0 && idx < w {
			walls[idx] = &columns[i]
		}
	}

	for x := 0; x < w; x++ {
		top, bottom := rows/2, rows/2
		var wallRune rune
		var wallStyle tcell.Style
		if col := walls[x]; col != nil {
			top, bottom = ColumnSpan(*col, rows)
			wallRune = ShadeRune(*col, maxDistance)
			wallStyle = tcell.StyleDefault.
				Background(tcell.ColorBlack).
				Foreground(tcell.NewRGBColor(int32(col.Color.R), int32(col.Color.G), int32(col.Color.B)))
		}

		for y := 0; y < rows; y++ {
			switch {
			case y < top:
				a.screen.SetContent(x, y, ' ', nil, a.skyStyle)
			case y < bottom:
				a.screen.SetContent(x, y, wallRune, nil, wallStyle)
			default:
				a.screen.SetContent(x, y, FloorRune(y, rows), nil, a.floorStyle)
			}
		}
	}

	a.drawStatus(rows, w)
	a.screen.Show()
}

func (a *App) drawStatus(y, w int) {
	p := a.world.Player()
	mode := "walk"
	if a.running {
		mode = "run"
	}
	status := fmt.Sprintf("%s  x=%.0f y=%.0f a=%.0f°  %s", a.world.Level().Name, p.X, p.Y, p.Heading*180/math.Pi, mode)
	x := 0
	for _, r := range status {
		if x >= w {
			break
		}
		a.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		x++
	}
}

// ColumnSpan returns the rows [top, bottom) a wall column covers on a screen
// of rows rows. Every found column covers at least the middle row.
func ColumnSpan(col caster.Column, rows int) (top, bottom int) {
	n := int(math.Ceil(col.Height / cellAspect))
	if n < 1 {
		n = 1
	}
	if n > rows {
		n = rows
	}
	top = (rows - n) / 2
	return top, top + n
}

// ShadeRune picks a block character by distance: nearer walls are denser.
func ShadeRune(col caster.Column, maxDistance float64) rune {
	if !col.Found {
		return ' '
	}
	switch d := col.Distance; {
	case d <= maxDistance/3:
		return '█'
	case d <= maxDistance/2:
		return '▓'
	case d <= maxDistance/1.1:
		return '▒'
	default:
		return '░'
	}
}

// FloorRune shades a floor row, denser towards the bottom of the screen.
func FloorRune(y, rows int) rune {
	half := float64(rows) / 2
	b := 1.0 - (float64(y)-half)/half
	switch {
	case b < 0.25:
		return '#'
	case b < 0.5:
		return 'x'
	case b < 0.75:
		return '.'
	case b < 0.9:
		return '-'
	default:
		return ' '
	}
}
