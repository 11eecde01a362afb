// Package config provides the runtime settings for the raycaster front ends.
// Settings are loaded from a JSON file over built-in defaults, so a file only
// needs to name the values it changes.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"

	"chosenoffset.com/raycaster/internal/core/caster"
	"chosenoffset.com/raycaster/internal/core/trig"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all runtime settings
type Config struct {
	Window WindowConfig  `json:"window"`
	Caster caster.Config `json:"caster"`
	Player PlayerConfig  `json:"player"`
	Colors ColorConfig   `json:"colors"`
	Trig   TrigConfig    `json:"trig"`
	Maps   MapsConfig    `json:"maps"`
	TTY    TTYConfig     `json:"tty"`
}

// WindowConfig defines the graphical window and frame rate
type WindowConfig struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Title      string `json:"title"`
	Fullscreen bool   `json:"fullscreen"`
	TPS        int    `json:"tps"`     // Updates per second
	Columns    int    `json:"columns"` // Rays cast per frame
}

// PlayerConfig defines movement rates and the collision box
type PlayerConfig struct {
	Speed     float64 `json:"speed"`      // World units per second
	TurnSpeed float64 `json:"turn_speed"` // Radians per second
	Radius    float64 `json:"radius"`     // Half side of the collision box
}

// RGB is a colour written as [r, g, b] in config files
type RGB [3]uint8

// RGBA returns the opaque colour.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

// ColorConfig defines the colours drawn behind the wall columns
type ColorConfig struct {
	Sky   RGB `json:"sky"`
	Floor RGB `json:"floor"`
}

// TrigConfig defines the lookup table resolution
type TrigConfig struct {
	Step float64 `json:"step"` // Radians between samples
}

// MapsConfig defines where levels come from
type MapsConfig struct {
	Dir   string `json:"dir"`   // Directory cycled with the next-map key
	Start string `json:"start"` // Level loaded at startup; empty uses the built-in level
}

// TTYConfig defines the terminal front end
type TTYConfig struct {
	FPS int `json:"fps"`
}

// DefaultConfig returns the classic settings
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:   640,
			Height:  400,
			Title:   "Raycaster",
			TPS:     60,
			Columns: 160,
		},
		Caster: caster.DefaultConfig(),
		Player: PlayerConfig{
			Speed:     120,
			TurnSpeed: 1.7,
			Radius:    10,
		},
		Colors: ColorConfig{
			Sky:   RGB{255, 255, 255},
			Floor: RGB{50, 50, 50},
		},
		Trig: TrigConfig{
			Step: trig.DefaultStep,
		},
		Maps: MapsConfig{
			Dir: "maps",
		},
		TTY: TTYConfig{
			FPS: 30,
		},
	}
}

// LoadConfig loads config from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects settings the front ends cannot run with
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalid, c.Window.TPS)
	}
	if c.Window.Columns <= 0 {
		return fmt.Errorf("%w: columns %d", ErrInvalid, c.Window.Columns)
	}
	if err := c.Caster.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Player.Speed < 0 || c.Player.TurnSpeed < 0 {
		return fmt.Errorf("%w: negative player speed", ErrInvalid)
	}
	if !(c.Player.Radius > 0) {
		return fmt.Errorf("%w: player radius %g", ErrInvalid, c.Player.Radius)
	}
	if !(c.Trig.Step > 0 && c.Trig.Step < trig.FullTurn) {
		return fmt.Errorf("%w: trig step %g", ErrInvalid, c.Trig.Step)
	}
	if c.TTY.FPS <= 0 {
		return fmt.Errorf("%w: tty fps %d", ErrInvalid, c.TTY.FPS)
	}
	return nil
}
