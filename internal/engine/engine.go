// Package engine implements the Knight Skies simulation: a fixed-step world
// where an actor falls under gravity, flaps upward on demand and must thread
// an endless ring of scrolling obstacle pairs while collecting bonus coins.
//
// The engine is deterministic for a given configuration and random source.
// It never reads the clock, never touches the terminal and never logs;
// shells drive it by calling Start, Impulse, Reset and Tick (or Step) and
// render the Snapshot it returns.
package engine

import (
	"fmt"

	"github.com/vovakirdan/knight-skies/internal/config"
	"github.com/vovakirdan/knight-skies/internal/core"
)

// Engine is a single simulation session plus the state machine that gates it.
type Engine struct {
	cfg  config.SkiesConfig
	gaps *config.GapSchedule
	rng  core.RandomSource

	state          State
	countdown      int // Remaining countdown steps
	countdownTicks int // Ticks spent on the current countdown step

	actorY   int
	velocity int

	pairs  [2]ObstaclePair
	pickup Pickup

	score      int
	passed     int
	gap        int
	finalScore int

	ticks      uint64 // Running ticks in the current session
	generation uint64

	events []Event
}

// StepResult is what one Step returns to the shell.
type StepResult struct {
	Snapshot Snapshot
	Events   []Event
}

// New creates an engine in the Idle state with a fresh layout.
// The configuration is resolved and validated first.
func New(cfg config.SkiesConfig, rng core.RandomSource) (*Engine, error) {
	cfg = cfg.Resolve()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if rng == nil {
		rng = core.NewRandom(0)
	}

	e := &Engine{
		cfg:   cfg,
		gaps:  config.NewGapSchedule(cfg.Difficulty),
		rng:   rng,
		state: StateIdle,
	}
	e.layout()
	return e, nil
}

// Config returns the resolved configuration the engine runs with.
func (e *Engine) Config() config.SkiesConfig {
	return e.cfg
}

// State returns the current state machine position.
func (e *Engine) State() State {
	return e.state
}

// Score returns the live score.
func (e *Engine) Score() int {
	return e.score
}

// FinalScore returns the score captured at the last game over.
func (e *Engine) FinalScore() int {
	return e.finalScore
}

// Generation identifies the current session. It changes on every Start and
// Reset, so results computed for an older session can be recognized.
func (e *Engine) Generation() uint64 {
	return e.generation
}

// Start begins a countdown from Idle or GameOver. The world is laid out
// afresh. Returns false when the engine is already counting down or running.
func (e *Engine) Start() bool {
	if e.state != StateIdle && e.state != StateGameOver {
		return false
	}
	e.generation++
	e.layout()

	e.countdown = e.cfg.Countdown.From
	e.countdownTicks = 0
	e.setState(StateCountdown)
	e.emit(CountdownTickEvent{Remaining: e.countdown})
	if e.countdown <= 0 {
		e.setState(StateRunning)
	}
	return true
}

// Reset abandons the current session and returns to Idle with a fresh layout.
// It is accepted in every state.
func (e *Engine) Reset() {
	e.generation++
	e.layout()
	e.setState(StateIdle)
}

// Impulse sets the actor's vertical velocity to the upward impulse.
// It only has an effect while Running.
func (e *Engine) Impulse() bool {
	if e.state != StateRunning {
		return false
	}
	e.velocity = -e.cfg.Physics.ImpulseStrength
	return true
}

// Tick advances the simulation by one fixed step and drains every pending
// event, including those raised by inputs applied since the last drain.
func (e *Engine) Tick() StepResult {
	switch e.state {
	case StateCountdown:
		e.tickCountdown()
	case StateRunning:
		e.tickRunning()
	}
	return StepResult{
		Snapshot: e.Snapshot(),
		Events:   e.Events(),
	}
}

// Step applies the frame's actions, then ticks.
func (e *Engine) Step(in core.InputFrame) StepResult {
	if in.Has(core.ActionReset) {
		e.Reset()
	}
	if in.Has(core.ActionStart) {
		e.Start()
	}
	if in.Has(core.ActionFlap) {
		e.Impulse()
	}
	return e.Tick()
}

// Events drains and returns pending events in the order they were raised.
func (e *Engine) Events() []Event {
	if len(e.events) == 0 {
		return nil
	}
	out := e.events
	e.events = nil
	return out
}

func (e *Engine) tickCountdown() {
	e.countdownTicks++
	if e.countdownTicks < e.cfg.CountdownTicks() {
		return
	}
	e.countdownTicks = 0
	e.countdown--
	e.emit(CountdownTickEvent{Remaining: e.countdown})
	if e.countdown <= 0 {
		e.countdown = 0
		e.setState(StateRunning)
	}
}

func (e *Engine) tickRunning() {
	e.ticks++

	e.advanceObstacles()
	e.awardPasses()
	e.advancePickup()

	e.velocity += e.cfg.Physics.Gravity
	e.actorY += e.velocity

	if e.collided() {
		e.finalScore = e.score
		e.setState(StateGameOver)
		e.emit(GameOverEvent{FinalScore: e.finalScore, Generation: e.generation})
	}
}

// collided reports whether the actor touches a barrier or left the screen.
func (e *Engine) collided() bool {
	actor := e.actorRect()
	if actor.Y < 0 || actor.Bottom() > e.cfg.Screen.Height {
		return true
	}
	bw, h := e.cfg.Obstacles.BarrierWidth, e.cfg.Screen.Height
	for _, p := range e.pairs {
		if p.Blocks(actor, bw, h) {
			return true
		}
	}
	return false
}

// layout restores the opening positions for a new session.
func (e *Engine) layout() {
	e.actorY = e.cfg.Screen.Height / 2
	e.velocity = 0
	e.score = 0
	e.passed = 0
	e.ticks = 0
	e.countdown = 0
	e.countdownTicks = 0
	e.gap = e.gaps.Initial()
	e.pickup = Pickup{}
	e.layoutObstacles()
}

func (e *Engine) actorRect() core.Rect {
	return core.NewRect(e.cfg.Actor.X, e.actorY, e.cfg.Actor.Width, e.cfg.Actor.Height)
}

func (e *Engine) addScore(delta int, src ScoreSource) {
	e.score += delta
	e.emit(ScoreChangedEvent{Score: e.score, Delta: delta, Source: src})
}

func (e *Engine) setState(to State) {
	if e.state == to {
		return
	}
	from := e.state
	e.state = to
	e.emit(StateChangedEvent{From: from, To: to})
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}
