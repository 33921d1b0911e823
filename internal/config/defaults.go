package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/collide.yaml
var defaultCollideYAML []byte

// DefaultConfig returns the hardcoded default configuration.
func DefaultConfig() Config {
	return Config{
		Simulation: SimulationConfig{
			Bodies:      10,
			MinVertices: 3,
			MaxVertices: 7,
			MinRadius:   2.5,
			MaxRadius:   6,
			MaxSpeed:    Vector{X: 0.6, Y: 0.3},
			Aspect:      0.5,
		},
		Collision: CollisionConfig{
			Axes: "first",
		},
		Loading: LoadingConfig{
			MinDuration: 750 * time.Millisecond,
		},
		Render: RenderConfig{
			Fill:    "·",
			Outline: "#",
			HUD:     true,
			Colors: ColorConfig{
				Idle:      "cyan",
				Colliding: "red",
				Selected:  "yellow",
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultCollideYAML
}
