package catalog

import "fmt"

// Category is a named group of tactical themes. Categories only drive display
// order and theme enumeration; selection never looks at them.
type Category struct {
	Name   string
	Themes []string
}

// Level is one rung of the per-theme difficulty ladder.
type Level int

const (
	LevelEasiest Level = iota
	LevelEasier
	LevelNormal
	LevelHarder
	LevelHardest
)

// NumLevels is the number of rungs on the difficulty ladder.
const NumLevels = 5

var levelNames = [NumLevels]string{"Easiest", "Easier", "Normal", "Harder", "Hardest"}

// Levels returns every difficulty level in ascending order.
func Levels() []Level {
	return []Level{LevelEasiest, LevelEasier, LevelNormal, LevelHarder, LevelHardest}
}

// String returns the persisted name of the level.
func (l Level) String() string {
	if l < 0 || int(l) >= NumLevels {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// Valid reports whether l is one of the five ladder levels.
func (l Level) Valid() bool {
	return l >= LevelEasiest && l <= LevelHardest
}

// ParseLevel maps a persisted level name back to its Level.
func ParseLevel(name string) (Level, error) {
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty level %q", name)
}
