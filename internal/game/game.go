package game

import (
	"github.com/sirupsen/logrus"

	"chosenoffset.com/raycaster/internal/config"
	"chosenoffset.com/raycaster/internal/core/caster"
	"chosenoffset.com/raycaster/internal/core/player"
	"chosenoffset.com/raycaster/internal/logger"
	"chosenoffset.com/raycaster/internal/render"
)

// binding maps a held key to a player action.
type binding struct {
	key    render.Key
	action player.Action
}

var bindings = []binding{
	{render.KeyUp, player.MoveForward},
	{render.KeyDown, player.MoveBack},
	{render.KeyLeft, player.StrafeLeft},
	{render.KeyRight, player.StrafeRight},
	{render.KeyA, player.TurnLeft},
	{render.KeyS, player.TurnRight},
	{render.KeySpace, player.SpeedModifier},
}

// Game holds the windowed front end state.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	World        *World
	Renderer     render.Renderer
	InputMgr     render.InputManager
	Config       *config.Config

	// UI state
	ShowMap  bool
	Messages []Message

	// Last frame's projection, reused by the map overlay
	Columns []caster.Column

	// Debug
	FrameCount int

	dt  float64
	log *logrus.Entry
}

// New creates a game drawing world through renderer.
func New(cfg *config.Config, world *World, renderer render.Renderer, input render.InputManager) *Game {
	tps := cfg.Window.TPS
	if tps <= 0 {
		tps = 60
	}
	return &Game{
		ScreenWidth:  cfg.Window.Width,
		ScreenHeight: cfg.Window.Height,
		World:        world,
		Renderer:     renderer,
		InputMgr:     input,
		Config:       cfg,
		dt:           1.0 / float64(tps),
		log:          logger.Component("game"),
	}
}

// Update handles game logic updates.
func (g *Game) Update() error {
	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		g.log.Info("Quit requested")
		return render.ErrQuit
	}

	if g.InputMgr.IsKeyJustPressed(render.KeyN) {
		if err := g.World.NextLevel(); err != nil {
			g.ShowMessage("No other maps")
		} else {
			g.ShowMessage(g.World.Level().Name)
		}
	}

	g.ShowMap = g.InputMgr.IsKeyPressed(render.KeyTab)
	g.updateMessages(g.dt)

	g.World.Step(g.heldActions(), g.dt)
	g.FrameCount++
	return nil
}

func (g *Game) heldActions() player.ActionSet {
	var actions player.ActionSet
	for _, b := range bindings {
		if g.InputMgr.IsKeyPressed(b.key) {
			actions = actions.Add(b.action)
		}
	}
	return actions
}

// Layout takes the outside size and returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

// updateMessages decrements message timers and removes expired messages.
func (g *Game) updateMessages(dt float64) {
	active := g.Messages[:0]
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: messageDuration,
		MaxTime:  messageDuration,
	})
	g.log.WithField("text", text).Debug("Message")
}
