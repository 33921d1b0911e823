// Package config provides YAML-based configuration loading and speed presets
// for the collision simulation.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-collide/internal/core"
	"github.com/vovakirdan/tui-collide/internal/sat"
)

// Config contains every tunable of the simulation.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Collision  CollisionConfig  `yaml:"collision"`
	Loading    LoadingConfig    `yaml:"loading"`
	Render     RenderConfig     `yaml:"render"`
}

// SimulationConfig controls how bodies are generated.
type SimulationConfig struct {
	Bodies      int     `yaml:"bodies"`
	MinVertices int     `yaml:"min_vertices"`
	MaxVertices int     `yaml:"max_vertices"`
	MinRadius   float64 `yaml:"min_radius"`
	MaxRadius   float64 `yaml:"max_radius"`
	MaxSpeed    Vector  `yaml:"max_speed"`
	Aspect      float64 `yaml:"aspect"` // Terminal rows per world unit of height
}

// Vector is a YAML-friendly 2D value.
type Vector struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// CollisionConfig controls the pair test.
type CollisionConfig struct {
	Axes string `yaml:"axes"` // "first" or "both"
}

// LoadingConfig controls the loading scene.
type LoadingConfig struct {
	MinDuration time.Duration `yaml:"min_duration"` // Minimum time the loading scene stays up
}

// RenderConfig controls how bodies are drawn.
type RenderConfig struct {
	Fill    string      `yaml:"fill"`
	Outline string      `yaml:"outline"`
	HUD     bool        `yaml:"hud"`
	Colors  ColorConfig `yaml:"colors"`
}

// ColorConfig names the body colours, see core.ParseColor.
type ColorConfig struct {
	Idle      string `yaml:"idle"`
	Colliding string `yaml:"colliding"`
	Selected  string `yaml:"selected"` // Outline of the selected body
}

// Palette is ColorConfig resolved to screen colours.
type Palette struct {
	Idle      core.Color
	Colliding core.Color
	Selected  core.Color
}

// Palette resolves the configured colour names. Unknown names fall back to
// the default palette; Validate reports them.
func (r RenderConfig) Palette() Palette {
	p := Palette{Idle: core.ColorCyan, Colliding: core.ColorRed, Selected: core.ColorYellow}
	if c, err := core.ParseColor(r.Colors.Idle); err == nil {
		p.Idle = c
	}
	if c, err := core.ParseColor(r.Colors.Colliding); err == nil {
		p.Colliding = c
	}
	if c, err := core.ParseColor(r.Colors.Selected); err == nil {
		p.Selected = c
	}
	return p
}

// AxisMode returns the parsed collision axis mode.
func (c Config) AxisMode() sat.AxisMode {
	mode, _ := sat.ParseAxisMode(c.Collision.Axes)
	return mode
}

// Validate reports the first setting that would make the simulation unusable.
func (c Config) Validate() error {
	s := c.Simulation
	switch {
	case s.Bodies < 0:
		return fmt.Errorf("config: simulation.bodies must not be negative, got %d", s.Bodies)
	case s.MinVertices < 3:
		return fmt.Errorf("config: simulation.min_vertices must be at least 3, got %d", s.MinVertices)
	case s.MaxVertices < s.MinVertices:
		return fmt.Errorf("config: simulation.max_vertices (%d) is below min_vertices (%d)", s.MaxVertices, s.MinVertices)
	case s.MinRadius <= 0:
		return fmt.Errorf("config: simulation.min_radius must be positive, got %v", s.MinRadius)
	case s.MaxRadius < s.MinRadius:
		return fmt.Errorf("config: simulation.max_radius (%v) is below min_radius (%v)", s.MaxRadius, s.MinRadius)
	case s.Aspect <= 0:
		return fmt.Errorf("config: simulation.aspect must be positive, got %v", s.Aspect)
	case c.Loading.MinDuration < 0:
		return fmt.Errorf("config: loading.min_duration must not be negative")
	}
	if _, ok := sat.ParseAxisMode(c.Collision.Axes); !ok {
		return fmt.Errorf("config: collision.axes must be \"first\" or \"both\", got %q", c.Collision.Axes)
	}
	colors := c.Render.Colors
	for _, f := range []struct{ key, name string }{
		{"idle", colors.Idle},
		{"colliding", colors.Colliding},
		{"selected", colors.Selected},
	} {
		if _, err := core.ParseColor(f.name); err != nil {
			return fmt.Errorf("config: render.colors.%s: %w", f.key, err)
		}
	}
	return nil
}

// SpeedPreset represents a named speed level.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedFrozen SpeedPreset = "frozen"
)

// SpeedFactor returns the max speed multiplier for a preset.
// Unknown presets leave the speed unchanged.
func SpeedFactor(preset SpeedPreset) float64 {
	switch preset {
	case SpeedSlow:
		return 0.5
	case SpeedFast:
		return 2.0
	case SpeedFrozen:
		return 0
	default:
		return 1.0
	}
}

// ApplySpeedPreset scales the configured max speed by the preset's factor.
func ApplySpeedPreset(cfg *Config, preset SpeedPreset) {
	f := SpeedFactor(preset)
	cfg.Simulation.MaxSpeed.X *= f
	cfg.Simulation.MaxSpeed.Y *= f
}

// ParseSpeedPreset validates a preset name. Empty means normal.
func ParseSpeedPreset(s string) (SpeedPreset, error) {
	switch p := SpeedPreset(s); p {
	case "":
		return SpeedNormal, nil
	case SpeedSlow, SpeedNormal, SpeedFast, SpeedFrozen:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown speed preset %q (want slow, normal, fast or frozen)", s)
}
