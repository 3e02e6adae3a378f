package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/ssmythe/tactics-manager/internal/catalog"
	"github.com/ssmythe/tactics-manager/internal/store"
)

// FromSnapshot builds a state from persisted data. Catalog themes missing
// from the data are back-filled with defaults; themes the catalog does not
// know are kept. Unknown level names and unparseable dates are reported as
// store.ErrMalformedSnapshot.
func FromSnapshot(data *store.SnapshotData) (*State, error) {
	s := NewState()
	if data == nil {
		return s, nil
	}

	for name, td := range data.Themes {
		if td == nil {
			continue
		}
		tp := &ThemeProgress{Name: name}

		if td.LastAttempted != nil {
			d, err := time.Parse(DateLayout, *td.LastAttempted)
			if err != nil {
				return nil, fmt.Errorf("%w: theme %q: last_attempted: %w", store.ErrMalformedSnapshot, name, err)
			}
			tp.LastAttempted = &d
		}
		if td.SuccessRate != nil {
			rate := *td.SuccessRate
			tp.SuccessRate = &rate
		}
		for levelName, counts := range td.DifficultyProgress {
			level, err := catalog.ParseLevel(levelName)
			if err != nil {
				return nil, fmt.Errorf("%w: theme %q: %w", store.ErrMalformedSnapshot, name, err)
			}
			if counts == nil {
				continue
			}
			tp.Levels[level] = LevelCounts{
				PuzzlesSolved: counts.PuzzlesSolved,
				Correct:       counts.Correct,
			}
		}
		s.add(tp)
	}

	s.reorder()
	return s, nil
}

// SnapshotData exports the state in its persisted form. Every level is
// written, including untouched ones.
func (s *State) SnapshotData() store.SnapshotData {
	data := store.SnapshotData{
		Themes: make(map[string]*store.ThemeData, len(s.order)),
	}
	for _, tp := range s.Themes() {
		td := &store.ThemeData{
			DifficultyProgress: make(map[string]*store.LevelCountData, catalog.NumLevels),
		}
		if tp.LastAttempted != nil {
			d := tp.LastAttempted.Format(DateLayout)
			td.LastAttempted = &d
		}
		if tp.SuccessRate != nil {
			rate := *tp.SuccessRate
			td.SuccessRate = &rate
		}
		for _, level := range catalog.Levels() {
			c := tp.Levels[level]
			td.DifficultyProgress[level.String()] = &store.LevelCountData{
				PuzzlesSolved: c.PuzzlesSolved,
				Correct:       c.Correct,
			}
		}
		data.Themes[tp.Name] = td
	}
	return data
}

// Load reads the latest state from repo. When the repo holds no state yet,
// a default state is created, saved, and created is true.
func Load(ctx context.Context, repo store.SnapshotRepo) (st *State, created bool, err error) {
	snap, err := repo.Latest(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("load progress: %w", err)
	}
	if snap != nil {
		st, err := FromSnapshot(&snap.Data)
		if err != nil {
			return nil, false, fmt.Errorf("load progress: %w", err)
		}
		return st, false, nil
	}

	st = NewState()
	if err := Save(ctx, repo, st, time.Now()); err != nil {
		return nil, false, fmt.Errorf("initialize progress: %w", err)
	}
	return st, true, nil
}

// Save persists the whole state as a new snapshot.
func Save(ctx context.Context, repo store.SnapshotRepo, st *State, now time.Time) error {
	return repo.Save(ctx, &store.Snapshot{
		Timestamp: now,
		Data:      st.SnapshotData(),
	})
}
