package app

import (
	"time"

	"github.com/ssmythe/tactics-manager/internal/catalog"
	"github.com/ssmythe/tactics-manager/internal/progress"
)

// CategoryStats summarizes the themes of one category.
type CategoryStats struct {
	Name       string
	Themes     int
	Never      int // never attempted
	Unmastered int // attempted, below the mastery score
	Mastered   int
	Due        int // selectable right now
	Complete   int // every level passed

	// AtLevel counts themes by their current level.
	AtLevel [catalog.NumLevels]int
}

// Stats summarizes the state per category, in catalog order. Themes the
// catalog does not know are grouped under "Other" at the end.
func (a *App) Stats(st *progress.State, now time.Time) []CategoryStats {
	var out []CategoryStats
	pos := make(map[string]int)
	for _, cat := range catalog.Categories() {
		pos[cat.Name] = len(out)
		out = append(out, CategoryStats{Name: cat.Name})
	}

	for _, tp := range st.Themes() {
		name, ok := catalog.CategoryOf(tp.Name)
		if !ok {
			name = "Other"
		}
		i, seen := pos[name]
		if !seen {
			i = len(out)
			pos[name] = i
			out = append(out, CategoryStats{Name: name})
		}
		cs := &out[i]

		cs.Themes++
		switch {
		case !tp.Attempted():
			cs.Never++
		case a.opts.Selector.Mastered(tp):
			cs.Mastered++
		default:
			cs.Unmastered++
		}
		if a.opts.Selector.Classify(tp, now).Due() {
			cs.Due++
		}
		if lvl, ok := a.opts.Tracker.LevelOf(tp); ok {
			cs.AtLevel[lvl]++
		} else {
			cs.Complete++
		}
	}
	return out
}
