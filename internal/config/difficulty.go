package config

// GapSchedule computes the vertical clearance between barriers as obstacles
// are passed. The gap only ever closes, by a fixed step on every
// ShrinkCadence-th pass, and never below MinGap.
type GapSchedule struct {
	cfg DifficultyConfig
}

// NewGapSchedule creates a schedule for the given difficulty settings.
func NewGapSchedule(cfg DifficultyConfig) *GapSchedule {
	return &GapSchedule{cfg: cfg}
}

// IsEnabled returns whether the gap shrinks at all.
func (g *GapSchedule) IsEnabled() bool {
	return g.cfg.Enabled && g.cfg.ShrinkStep > 0 && g.cfg.ShrinkCadence > 0
}

// Initial returns the gap at the start of a session.
func (g *GapSchedule) Initial() int {
	return g.cfg.InitialGap
}

// Floor returns the smallest gap the schedule will produce.
func (g *GapSchedule) Floor() int {
	if !g.IsEnabled() {
		return g.cfg.InitialGap
	}
	return g.cfg.MinGap
}

// AfterPass returns the gap once the passed-th obstacle has been cleared,
// given the gap in effect before it.
func (g *GapSchedule) AfterPass(current, passed int) int {
	if !g.IsEnabled() || passed <= 0 || passed%g.cfg.ShrinkCadence != 0 {
		return current
	}
	next := current - g.cfg.ShrinkStep
	if next < g.cfg.MinGap {
		next = g.cfg.MinGap
	}
	return next
}

// At returns the gap after passed obstacles, starting from Initial.
func (g *GapSchedule) At(passed int) int {
	if !g.IsEnabled() || passed <= 0 {
		return g.cfg.InitialGap
	}
	gap := g.cfg.InitialGap - (passed/g.cfg.ShrinkCadence)*g.cfg.ShrinkStep
	if gap < g.cfg.MinGap {
		gap = g.cfg.MinGap
	}
	return gap
}
