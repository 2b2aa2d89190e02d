package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/skies.yaml
var defaultSkiesYAML []byte

// DefaultSkiesConfig returns the hardcoded default configuration.
// It mirrors defaults/skies.yaml and is used when the embedded file
// cannot be parsed.
func DefaultSkiesConfig() SkiesConfig {
	return SkiesConfig{
		Screen: ScreenConfig{
			Width:  1080,
			Height: 1920,
		},
		Actor: ActorConfig{
			X:      270,
			Width:  108,
			Height: 81,
		},
		Obstacles: ObstacleConfig{
			Count:        2,
			BarrierWidth: 180,
			Spacing:      720,
			EdgePadding:  120,
		},
		Pickup: PickupConfig{
			Width:   72,
			Height:  72,
			Cadence: 5,
			Bonus:   5,
		},
		Physics: PhysicsConfig{
			Gravity:         3,
			ImpulseStrength: 40,
			HorizontalSpeed: 8,
		},
		Difficulty: DifficultyConfig{
			Enabled:       true,
			InitialGap:    640,
			MinGap:        384,
			ShrinkStep:    32,
			ShrinkCadence: 10,
		},
		Countdown: CountdownConfig{
			From:     3,
			Interval: time.Second,
		},
		Timing: TimingConfig{
			TickInterval: 40 * time.Millisecond,
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultSkiesYAML
}
