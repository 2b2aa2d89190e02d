package engine

import "github.com/vovakirdan/knight-skies/internal/core"

// Snapshot is a read-only copy of everything a shell needs to draw a frame.
type Snapshot struct {
	State      State
	Countdown  int
	Generation uint64
	Tick       uint64

	ScreenW      int
	ScreenH      int
	BarrierWidth int

	Actor    core.Rect
	Velocity int
	Pairs    [2]ObstaclePair
	Pickup   Pickup

	Score      int
	FinalScore int
	Passed     int
	Gap        int
}

// Snapshot captures the current state of the engine.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:        e.state,
		Countdown:    e.countdown,
		Generation:   e.generation,
		Tick:         e.ticks,
		ScreenW:      e.cfg.Screen.Width,
		ScreenH:      e.cfg.Screen.Height,
		BarrierWidth: e.cfg.Obstacles.BarrierWidth,
		Actor:        e.actorRect(),
		Velocity:     e.velocity,
		Pairs:        e.pairs,
		Pickup:       e.pickup,
		Score:        e.score,
		FinalScore:   e.finalScore,
		Passed:       e.passed,
		Gap:          e.gap,
	}
}

// TopBarrier returns the top barrier rectangle of pair i.
func (s Snapshot) TopBarrier(i int) core.Rect {
	return s.Pairs[i].TopRect(s.BarrierWidth)
}

// BottomBarrier returns the bottom barrier rectangle of pair i.
func (s Snapshot) BottomBarrier(i int) core.Rect {
	return s.Pairs[i].BottomRect(s.BarrierWidth, s.ScreenH)
}

// Frozen reports whether nothing moves in this state.
func (s Snapshot) Frozen() bool {
	return s.State != StateRunning
}
