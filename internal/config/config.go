// Package config provides YAML-based configuration loading and gap
// progression for the simulation engine.
package config

import (
	"errors"
	"fmt"
	"time"
)

// SkiesConfig is the single configuration record the engine is parameterized
// by. All geometry is in world units (pixels of the logical screen).
type SkiesConfig struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Actor      ActorConfig      `yaml:"actor"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Pickup     PickupConfig     `yaml:"pickup"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Countdown  CountdownConfig  `yaml:"countdown"`
	Timing     TimingConfig     `yaml:"timing"`
}

// ScreenConfig is the logical playfield size.
type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ActorConfig defines the player's fixed column and hitbox.
// Zero values are derived from the screen by Resolve.
type ActorConfig struct {
	X      int `yaml:"x"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ObstacleConfig defines the obstacle pair ring.
type ObstacleConfig struct {
	Count        int `yaml:"count"`         // Pairs alive at once; must be 2
	BarrierWidth int `yaml:"barrier_width"` // Horizontal size of both barriers
	Spacing      int `yaml:"spacing"`       // Distance between sibling pairs
	EdgePadding  int `yaml:"edge_padding"`  // Minimum distance between a gap and the screen edges
}

// PickupConfig defines the bonus coin.
type PickupConfig struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Cadence int `yaml:"cadence"` // Spawn after every Nth obstacle passed
	Bonus   int `yaml:"bonus"`   // Score awarded on collection
}

// PhysicsConfig defines per-tick motion constants.
type PhysicsConfig struct {
	Gravity         int `yaml:"gravity"`          // Added to velocity every tick
	ImpulseStrength int `yaml:"impulse_strength"` // Impulse sets velocity to -ImpulseStrength
	HorizontalSpeed int `yaml:"horizontal_speed"` // Obstacle and pickup scroll per tick
}

// DifficultyConfig defines how the gap closes as obstacles are passed.
type DifficultyConfig struct {
	Enabled       bool `yaml:"enabled"`
	InitialGap    int  `yaml:"initial_gap"`
	MinGap        int  `yaml:"min_gap"`
	ShrinkStep    int  `yaml:"shrink_step"`
	ShrinkCadence int  `yaml:"shrink_cadence"` // Shrink after every Nth obstacle passed
}

// CountdownConfig defines the pre-run countdown.
type CountdownConfig struct {
	From     int           `yaml:"from"`
	Interval time.Duration `yaml:"interval"`
}

// TimingConfig defines the fixed simulation step.
type TimingConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
}

// Spacing returns the horizontal distance between the two obstacle pairs.
func (c SkiesConfig) Spacing() int {
	return c.Obstacles.Spacing
}

// TickRate returns the number of ticks per second.
func (c SkiesConfig) TickRate() int {
	if c.Timing.TickInterval <= 0 {
		return 0
	}
	return int(time.Second / c.Timing.TickInterval)
}

// CountdownTicks returns how many ticks make up one countdown step.
func (c SkiesConfig) CountdownTicks() int {
	if c.Timing.TickInterval <= 0 {
		return 1
	}
	n := int(c.Countdown.Interval / c.Timing.TickInterval)
	if n < 1 {
		n = 1
	}
	return n
}

// Resolve fills zero-valued geometry from the screen size using the
// proportions of a portrait phone layout and returns the completed record.
func (c SkiesConfig) Resolve() SkiesConfig {
	w, h := c.Screen.Width, c.Screen.Height

	if c.Actor.Width == 0 {
		c.Actor.Width = w / 10
	}
	if c.Actor.Height == 0 {
		c.Actor.Height = c.Actor.Width * 3 / 4
	}
	if c.Actor.X == 0 {
		c.Actor.X = w / 4
	}
	if c.Obstacles.Count == 0 {
		c.Obstacles.Count = 2
	}
	if c.Obstacles.BarrierWidth == 0 {
		c.Obstacles.BarrierWidth = w / 6
	}
	if c.Obstacles.Spacing == 0 {
		c.Obstacles.Spacing = w/2 + c.Obstacles.BarrierWidth
	}
	if c.Obstacles.EdgePadding == 0 {
		c.Obstacles.EdgePadding = h / 16
	}
	if c.Pickup.Width == 0 {
		c.Pickup.Width = w / 15
	}
	if c.Pickup.Height == 0 {
		c.Pickup.Height = c.Pickup.Width
	}
	if c.Difficulty.InitialGap == 0 {
		c.Difficulty.InitialGap = h / 3
	}
	if c.Difficulty.MinGap == 0 {
		c.Difficulty.MinGap = h / 5
	}
	if c.Countdown.Interval == 0 {
		c.Countdown.Interval = time.Second
	}
	return c
}

// Validate reports every impossible setting, joined into one error.
// Call it on a resolved config.
func (c SkiesConfig) Validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen must be positive, got %dx%d", c.Screen.Width, c.Screen.Height))
	}
	if c.Obstacles.Count != 2 {
		errs = append(errs, fmt.Errorf("obstacles.count must be 2, got %d", c.Obstacles.Count))
	}
	if c.Actor.Width <= 0 || c.Actor.Height <= 0 {
		errs = append(errs, fmt.Errorf("actor size must be positive, got %dx%d", c.Actor.Width, c.Actor.Height))
	}
	if c.Obstacles.BarrierWidth <= 0 || c.Obstacles.Spacing <= 0 {
		errs = append(errs, errors.New("obstacles.barrier_width and obstacles.spacing must be positive"))
	}
	if c.Pickup.Height > c.Screen.Height {
		errs = append(errs, fmt.Errorf("pickup.height %d exceeds screen height %d", c.Pickup.Height, c.Screen.Height))
	}
	if c.Pickup.Cadence <= 0 {
		errs = append(errs, fmt.Errorf("pickup.cadence must be positive, got %d", c.Pickup.Cadence))
	}
	if c.Pickup.Bonus < 0 {
		errs = append(errs, fmt.Errorf("pickup.bonus must not be negative, got %d", c.Pickup.Bonus))
	}
	if c.Physics.Gravity < 0 {
		errs = append(errs, fmt.Errorf("physics.gravity must not be negative, got %d", c.Physics.Gravity))
	}
	if c.Physics.ImpulseStrength <= 0 {
		errs = append(errs, fmt.Errorf("physics.impulse_strength must be positive, got %d", c.Physics.ImpulseStrength))
	}
	if c.Physics.HorizontalSpeed <= 0 {
		errs = append(errs, fmt.Errorf("physics.horizontal_speed must be positive, got %d", c.Physics.HorizontalSpeed))
	}
	if c.Difficulty.MinGap <= 0 || c.Difficulty.MinGap > c.Difficulty.InitialGap {
		errs = append(errs, fmt.Errorf("difficulty gap range invalid: min %d, initial %d", c.Difficulty.MinGap, c.Difficulty.InitialGap))
	}
	if c.Difficulty.InitialGap > c.Screen.Height {
		errs = append(errs, fmt.Errorf("difficulty.initial_gap %d exceeds screen height %d", c.Difficulty.InitialGap, c.Screen.Height))
	}
	if c.Difficulty.ShrinkCadence <= 0 || c.Difficulty.ShrinkStep < 0 {
		errs = append(errs, errors.New("difficulty.shrink_cadence must be positive and shrink_step not negative"))
	}
	if c.Countdown.From < 0 {
		errs = append(errs, fmt.Errorf("countdown.from must not be negative, got %d", c.Countdown.From))
	}
	if c.Timing.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("timing.tick_interval must be positive, got %s", c.Timing.TickInterval))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyPreset modifies a resolved config according to a difficulty preset.
func ApplyPreset(cfg *SkiesConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialGap += cfg.Difficulty.InitialGap / 5
		if cfg.Difficulty.InitialGap > cfg.Screen.Height-2*cfg.Obstacles.EdgePadding {
			cfg.Difficulty.InitialGap = cfg.Screen.Height - 2*cfg.Obstacles.EdgePadding
		}
		cfg.Difficulty.ShrinkStep /= 2
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialGap -= cfg.Difficulty.InitialGap / 6
		if cfg.Difficulty.InitialGap < cfg.Difficulty.MinGap {
			cfg.Difficulty.InitialGap = cfg.Difficulty.MinGap
		}
		cfg.Physics.HorizontalSpeed += cfg.Physics.HorizontalSpeed / 4
		if cfg.Difficulty.ShrinkCadence > 1 {
			cfg.Difficulty.ShrinkCadence /= 2
		}
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	}
}
