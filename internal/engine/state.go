package engine

// State is the session state machine position.
type State int

const (
	StateIdle      State = iota // Waiting for Start
	StateCountdown              // Frozen layout, counting down to Running
	StateRunning                // Physics advancing every tick
	StateGameOver               // Frozen until Start or Reset
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCountdown:
		return "countdown"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
