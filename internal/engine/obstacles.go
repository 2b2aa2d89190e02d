package engine

import (
	"github.com/vovakirdan/knight-skies/internal/core"
)

// ObstaclePair is a top and a bottom barrier sharing one column, with a gap
// window between them the actor must fly through.
type ObstaclePair struct {
	X         int  // Horizontal position (left edge)
	GapTop    int  // Y position where the gap starts
	GapHeight int  // Clearance between the barriers, fixed at placement
	Passed    bool // Whether the actor has overtaken this pair (score awarded)
}

// GapBottom returns the y-coordinate where the bottom barrier starts.
func (p ObstaclePair) GapBottom() int {
	return p.GapTop + p.GapHeight
}

// TopRect returns the collision rectangle of the top barrier.
func (p ObstaclePair) TopRect(barrierW int) core.Rect {
	return core.NewRect(p.X, 0, barrierW, p.GapTop)
}

// BottomRect returns the collision rectangle of the bottom barrier.
func (p ObstaclePair) BottomRect(barrierW, screenH int) core.Rect {
	return core.NewRect(p.X, p.GapBottom(), barrierW, screenH-p.GapBottom())
}

// Column returns the full-height rectangle the pair occupies.
func (p ObstaclePair) Column(barrierW, screenH int) core.Rect {
	return core.NewRect(p.X, 0, barrierW, screenH)
}

// Blocks reports whether the actor's box touches either barrier.
// An actor whose vertical extent lies inside the gap window is safe.
func (p ObstaclePair) Blocks(actor core.Rect, barrierW, screenH int) bool {
	if !actor.OverlapsX(p.Column(barrierW, screenH)) {
		return false
	}
	return !actor.Within(p.GapTop, p.GapBottom())
}

// placeGap draws a new gap window of the given height, uniformly inside the
// band that keeps it edgePadding away from both screen edges.
func placeGap(rng core.RandomSource, screenH, edgePadding, gap int) int {
	low := edgePadding
	high := screenH - edgePadding - gap
	if high < low {
		// Band is empty: center the gap instead of leaving the screen.
		low = core.Max(0, (screenH-gap)/2)
		high = low
	}
	return low + rng.Intn(high-low+1)
}

// layoutObstacles puts both pairs just past the right edge, one spacing apart.
func (e *Engine) layoutObstacles() {
	for i := range e.pairs {
		e.pairs[i] = ObstaclePair{
			X:         e.cfg.Screen.Width + i*e.cfg.Spacing(),
			GapTop:    placeGap(e.rng, e.cfg.Screen.Height, e.cfg.Obstacles.EdgePadding, e.gap),
			GapHeight: e.gap,
		}
	}
}

// advanceObstacles scrolls both pairs and recycles any that left the screen.
// All pairs move before any is recycled so siblings stay exactly one spacing apart.
func (e *Engine) advanceObstacles() {
	speed := e.cfg.Physics.HorizontalSpeed
	for i := range e.pairs {
		e.pairs[i].X -= speed
	}

	bw := e.cfg.Obstacles.BarrierWidth
	for i := range e.pairs {
		if e.pairs[i].X+bw >= 0 {
			continue
		}
		sibling := e.pairs[1-i]
		e.pairs[i] = ObstaclePair{
			X:         sibling.X + e.cfg.Spacing(),
			GapTop:    placeGap(e.rng, e.cfg.Screen.Height, e.cfg.Obstacles.EdgePadding, e.gap),
			GapHeight: e.gap,
		}
	}
}

// awardPasses scores every pair whose trailing edge is now behind the actor.
func (e *Engine) awardPasses() {
	bw := e.cfg.Obstacles.BarrierWidth
	for i := range e.pairs {
		p := &e.pairs[i]
		if p.Passed || p.X+bw >= e.cfg.Actor.X {
			continue
		}
		p.Passed = true
		e.passed++
		e.addScore(1, ScoreFromObstacle)

		if next := e.gaps.AfterPass(e.gap, e.passed); next != e.gap {
			e.gap = next
			e.emit(GapNarrowedEvent{Gap: next, Passed: e.passed})
		}

		if e.passed%e.cfg.Pickup.Cadence == 0 && !e.pickup.Active {
			e.spawnPickup()
		}
	}
}

// rightmostPairX returns the x-coordinate of the pair furthest to the right.
func (e *Engine) rightmostPairX() int {
	return core.Max(e.pairs[0].X, e.pairs[1].X)
}
