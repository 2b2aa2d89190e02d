package engine

// Event is something the engine reports to its observers. Events are queued
// in the order they happen and drained with Engine.Events.
type Event interface {
	engineEvent()
}

// StateChangedEvent is raised on every state machine transition.
type StateChangedEvent struct {
	From State
	To   State
}

func (StateChangedEvent) engineEvent() {}

// CountdownTickEvent is raised when a countdown starts and on every decrement.
// Remaining is 0 exactly once per countdown, on the tick the run begins ("GO").
type CountdownTickEvent struct {
	Remaining int
}

func (CountdownTickEvent) engineEvent() {}

// ScoreSource tells why the score changed.
type ScoreSource int

const (
	ScoreFromObstacle ScoreSource = iota // An obstacle pair was passed
	ScoreFromPickup                      // A coin was collected
)

func (s ScoreSource) String() string {
	switch s {
	case ScoreFromObstacle:
		return "obstacle"
	case ScoreFromPickup:
		return "pickup"
	default:
		return "unknown"
	}
}

// ScoreChangedEvent is raised whenever points are awarded.
type ScoreChangedEvent struct {
	Score  int // Score after the change
	Delta  int
	Source ScoreSource
}

func (ScoreChangedEvent) engineEvent() {}

// PickupSpawnedEvent is raised when a coin appears.
type PickupSpawnedEvent struct {
	X, Y int
}

func (PickupSpawnedEvent) engineEvent() {}

// GapNarrowedEvent is raised when the difficulty schedule closes the gap.
type GapNarrowedEvent struct {
	Gap    int
	Passed int
}

func (GapNarrowedEvent) engineEvent() {}

// GameOverEvent is raised exactly once per session, on the tick the actor
// collides. Generation identifies the session it belongs to.
type GameOverEvent struct {
	FinalScore int
	Generation uint64
}

func (GameOverEvent) engineEvent() {}
