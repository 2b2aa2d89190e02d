package core

// RuntimeConfig describes the host a session runs in: the terminal viewport the
// shell draws into and the RNG seed handed to the engine.
type RuntimeConfig struct {
	ScreenW int   // Viewport width in characters
	ScreenH int   // Viewport height in characters
	Seed    int64 // RNG seed for deterministic gameplay (0 = pick from clock)
}

// DefaultRuntime returns a RuntimeConfig for a classic 80x24 terminal.
func DefaultRuntime() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0,
	}
}
