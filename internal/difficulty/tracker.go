package difficulty

import (
	"github.com/ssmythe/tactics-manager/internal/catalog"
	"github.com/ssmythe/tactics-manager/internal/progress"
)

// Config holds the thresholds a level must reach to be passed.
type Config struct {
	// PuzzlesPerLevel is the volume a level needs before it can be passed.
	PuzzlesPerLevel int

	// AccuracyThreshold is the minimum accuracy, in percent, to pass a level.
	AccuracyThreshold float64
}

// DefaultConfig returns the standard ladder: 50 puzzles at 80% per level.
func DefaultConfig() Config {
	return Config{
		PuzzlesPerLevel:   50,
		AccuracyThreshold: 80,
	}
}

// AttemptResult describes the effect of one recorded attempt.
type AttemptResult struct {
	// Level is the level the attempt was counted against.
	Level catalog.Level

	// Completed is set when every level was already passed; nothing was
	// recorded.
	Completed bool

	// Advanced is set when the attempt passed Level, so the theme now sits
	// on a higher rung (or has completed the ladder).
	Advanced bool
}

// Tracker walks themes up the difficulty ladder.
type Tracker struct {
	cfg Config
}

// NewTracker creates a Tracker with the given thresholds.
func NewTracker(cfg Config) *Tracker {
	return &Tracker{cfg: cfg}
}

// Config returns the tracker thresholds.
func (t *Tracker) Config() Config {
	return t.cfg
}

// Passed reports whether counters satisfy both the volume and the accuracy
// threshold.
func (t *Tracker) Passed(c progress.LevelCounts) bool {
	return c.PuzzlesSolved >= t.cfg.PuzzlesPerLevel && c.Accuracy() >= t.cfg.AccuracyThreshold
}

// LevelOf returns the first level, in ascending order, that the theme has
// not yet passed. ok is false once every level is passed.
func (t *Tracker) LevelOf(tp *progress.ThemeProgress) (level catalog.Level, ok bool) {
	for _, l := range catalog.Levels() {
		if !t.Passed(tp.Levels[l]) {
			return l, true
		}
	}
	return 0, false
}

// CurrentLevel resolves a theme's current difficulty level.
func (t *Tracker) CurrentLevel(st *progress.State, theme string) (catalog.Level, bool, error) {
	tp, err := st.Theme(theme)
	if err != nil {
		return 0, false, err
	}
	level, ok := t.LevelOf(tp)
	return level, ok, nil
}

// RecordAttempt counts one puzzle attempt against the theme's current level.
// When every level is passed the state is left untouched and the result is
// marked Completed.
func (t *Tracker) RecordAttempt(st *progress.State, theme string, correct bool) (AttemptResult, error) {
	tp, err := st.Theme(theme)
	if err != nil {
		return AttemptResult{}, err
	}

	level, ok := t.LevelOf(tp)
	if !ok {
		return AttemptResult{Completed: true}, nil
	}

	c := &tp.Levels[level]
	c.PuzzlesSolved++
	if correct {
		c.Correct++
	}

	return AttemptResult{
		Level:    level,
		Advanced: t.Passed(*c),
	}, nil
}
