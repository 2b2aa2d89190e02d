package session

import (
	"github.com/vovakirdan/knight-skies/internal/config"
	"github.com/vovakirdan/knight-skies/internal/core"
	"github.com/vovakirdan/knight-skies/internal/engine"
)

// Autopilot flaps whenever the actor sinks below a threshold inside the next
// gap, chosen so one flap arc stays between the barriers. It is
// deterministic, so a seeded engine driven by it always plays the same game.
type Autopilot struct {
	rise   int // Height gained by one flap before falling again
	fall   int // Largest drop in a single tick near the threshold
	height int
}

// NewAutopilot tunes the bot to cfg's physics.
func NewAutopilot(cfg config.SkiesConfig) Autopilot {
	cfg = cfg.Resolve()
	g, imp := cfg.Physics.Gravity, cfg.Physics.ImpulseStrength
	rise := 0
	if g > 0 {
		for v := -imp + g; v < 0; v += g {
			rise -= v
		}
	}
	return Autopilot{rise: rise, fall: imp, height: cfg.Actor.Height}
}

// Decide returns the input for the next tick.
func (a Autopilot) Decide(s engine.Snapshot) core.InputFrame {
	in := core.NewInputFrame()
	if s.State != engine.StateRunning {
		return in
	}

	target, ok := nextPair(s)
	if !ok {
		return in
	}
	threshold := target.GapTop + (a.rise+a.height+target.GapHeight-a.fall)/2
	if s.Actor.Bottom() > threshold {
		in.Set(core.ActionFlap)
	}
	return in
}

// nextPair returns the closest pair the actor has not yet cleared.
func nextPair(s engine.Snapshot) (engine.ObstaclePair, bool) {
	var best engine.ObstaclePair
	found := false
	for _, p := range s.Pairs {
		if p.X+s.BarrierWidth < s.Actor.X {
			continue
		}
		if !found || p.X < best.X {
			best, found = p, true
		}
	}
	return best, found
}
