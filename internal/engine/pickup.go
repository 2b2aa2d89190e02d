package engine

import "github.com/vovakirdan/knight-skies/internal/core"

// Pickup is the bonus coin. At most one is active at a time.
type Pickup struct {
	X, Y   int
	W, H   int
	Active bool
}

// Rect returns the pickup's bounding box.
func (p Pickup) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// spawnPickup places a coin halfway between the rightmost pair and the slot
// the next recycled pair will occupy, at a random height.
func (e *Engine) spawnPickup() {
	w, h := e.cfg.Pickup.Width, e.cfg.Pickup.Height
	e.pickup = Pickup{
		X:      e.rightmostPairX() + e.cfg.Spacing()/2,
		Y:      e.rng.Intn(e.cfg.Screen.Height - h + 1),
		W:      w,
		H:      h,
		Active: true,
	}
	e.emit(PickupSpawnedEvent{X: e.pickup.X, Y: e.pickup.Y})
}

// advancePickup scrolls the active coin, collects it on contact and drops it
// once it leaves the screen.
func (e *Engine) advancePickup() {
	if !e.pickup.Active {
		return
	}
	e.pickup.X -= e.cfg.Physics.HorizontalSpeed

	if e.pickup.Rect().Intersects(e.actorRect()) {
		e.pickup.Active = false
		e.addScore(e.cfg.Pickup.Bonus, ScoreFromPickup)
		return
	}
	if e.pickup.X+e.pickup.W < 0 {
		e.pickup.Active = false
	}
}
