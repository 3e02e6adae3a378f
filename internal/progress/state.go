package progress

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ssmythe/tactics-manager/internal/catalog"
)

// DateLayout is the persisted calendar-date format of LastAttempted.
const DateLayout = "2006-01-02"

// ErrUnknownTheme is returned when a theme name has no entry in the state.
var ErrUnknownTheme = errors.New("unknown theme")

// LevelCounts holds the counters of one difficulty level.
type LevelCounts struct {
	PuzzlesSolved int
	Correct       int
}

// Accuracy returns the share of correct puzzles as a percentage.
// A level with nothing solved has 0% accuracy.
func (c LevelCounts) Accuracy() float64 {
	if c.PuzzlesSolved <= 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.PuzzlesSolved) * 100
}

// ThemeProgress is the tracked state of one theme.
type ThemeProgress struct {
	Name string

	// LastAttempted is a calendar date at UTC midnight, or nil if the theme
	// was never practiced.
	LastAttempted *time.Time

	// SuccessRate is the latest session score out of 10, or nil if never scored.
	SuccessRate *int

	Levels [catalog.NumLevels]LevelCounts
}

// Attempted reports whether the theme has ever been practiced.
func (tp *ThemeProgress) Attempted() bool {
	return tp.LastAttempted != nil
}

// Counts returns the counters of a level.
func (tp *ThemeProgress) Counts(level catalog.Level) LevelCounts {
	if !level.Valid() {
		return LevelCounts{}
	}
	return tp.Levels[level]
}

// State is the full in-memory snapshot of every tracked theme.
type State struct {
	themes map[string]*ThemeProgress
	order  []string
}

// NewState returns a state with every catalog theme at its defaults:
// never attempted, never scored, all counters zero.
func NewState() *State {
	s := &State{themes: make(map[string]*ThemeProgress)}
	for _, name := range catalog.AllThemes() {
		s.add(&ThemeProgress{Name: name})
	}
	return s
}

func (s *State) add(tp *ThemeProgress) {
	if _, ok := s.themes[tp.Name]; !ok {
		s.order = append(s.order, tp.Name)
	}
	s.themes[tp.Name] = tp
}

// reorder puts catalog themes first in enumeration order, then any themes
// the catalog does not know, sorted by name.
func (s *State) reorder() {
	sort.SliceStable(s.order, func(i, j int) bool {
		pi, oki := catalog.Position(s.order[i])
		pj, okj := catalog.Position(s.order[j])
		switch {
		case oki && okj:
			return pi < pj
		case oki != okj:
			return oki
		default:
			return s.order[i] < s.order[j]
		}
	})
}

// Theme returns the progress record of a theme.
func (s *State) Theme(name string) (*ThemeProgress, error) {
	tp, ok := s.themes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return tp, nil
}

// Themes returns every theme in stable iteration order: the catalog
// enumeration first, then themes unknown to the catalog by name.
func (s *State) Themes() []*ThemeProgress {
	out := make([]*ThemeProgress, len(s.order))
	for i, name := range s.order {
		out[i] = s.themes[name]
	}
	return out
}

// Len returns the number of tracked themes.
func (s *State) Len() int {
	return len(s.order)
}

// MarkSession stamps a theme with the date and score of a practice session.
func (s *State) MarkSession(name string, date time.Time, score int) error {
	tp, err := s.Theme(name)
	if err != nil {
		return err
	}
	d := DateOf(date)
	tp.LastAttempted = &d
	tp.SuccessRate = &score
	return nil
}

// DateOf truncates t to its calendar date, expressed at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysSince returns the whole calendar days between date and now.
// now is first reduced to its local calendar date.
func DaysSince(date, now time.Time) int {
	return int(DateOf(now).Sub(DateOf(date)).Hours() / 24)
}
