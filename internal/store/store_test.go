package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func sampleData() SnapshotData {
	return SnapshotData{
		Themes: map[string]*ThemeData{
			"Fork": {
				LastAttempted: strPtr("2024-03-01"),
				SuccessRate:   intPtr(8),
				DifficultyProgress: map[string]*LevelCountData{
					"Easiest": {PuzzlesSolved: 12, Correct: 9},
				},
			},
			"Pin": {
				DifficultyProgress: map[string]*LevelCountData{
					"Easiest": {},
				},
			},
		},
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap, "expected nil snapshot when none exist")

	saved := &Snapshot{Data: sampleData()}
	require.NoError(t, repo.Save(ctx, saved))
	assert.NotZero(t, saved.Sequence)
	assert.NotZero(t, saved.ID)

	snap, err = repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)

	fork := snap.Data.Themes["Fork"]
	require.NotNil(t, fork)
	require.NotNil(t, fork.LastAttempted)
	assert.Equal(t, "2024-03-01", *fork.LastAttempted)
	require.NotNil(t, fork.SuccessRate)
	assert.Equal(t, 8, *fork.SuccessRate)
	assert.Equal(t, 12, fork.DifficultyProgress["Easiest"].PuzzlesSolved)
	assert.Equal(t, 9, fork.DifficultyProgress["Easiest"].Correct)

	pin := snap.Data.Themes["Pin"]
	require.NotNil(t, pin)
	assert.Nil(t, pin.LastAttempted)
	assert.Nil(t, pin.SuccessRate)
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		data := sampleData()
		data.Themes["Fork"].SuccessRate = intPtr(i)
		require.NoError(t, repo.Save(ctx, &Snapshot{Data: data}))
	}

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, *snap.Data.Themes["Fork"].SuccessRate)
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		require.NoError(t, repo.Save(ctx, &Snapshot{Data: sampleData()}))
	}

	require.NoError(t, repo.Prune(ctx, 5))

	var count int
	require.NoError(t, s.DB().Get(&count, `SELECT COUNT(*) FROM snapshots`))
	assert.Equal(t, 5, count)

	// keep <= 0 disables pruning.
	require.NoError(t, repo.Prune(ctx, 0))
	require.NoError(t, s.DB().Get(&count, `SELECT COUNT(*) FROM snapshots`))
	assert.Equal(t, 5, count)

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
}

func TestSnapshotLatest_MalformedRow(t *testing.T) {
	s := openTestStore(t)
	_, err := s.DB().Exec(
		`INSERT INTO snapshots (sequence, timestamp, data) VALUES (1, ?, ?)`,
		formatTime(time.Now()), `{"themes": {"Fork": {"success_rate": "high"}}}`)
	require.NoError(t, err)

	_, err = s.SnapshotRepo().Latest(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedSnapshot))
}

func TestSequenceIsSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	snap := &Snapshot{Data: sampleData()}
	require.NoError(t, s.SnapshotRepo().Save(ctx, snap))
	require.NoError(t, s.EventRepo().AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s1", Theme: "Fork", Score: 7,
	}))

	events, err := s.EventRepo().QuerySessionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Greater(t, events[0].Sequence, snap.Sequence)
}

func TestSessionEvents_QueryFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, theme := range []string{"Fork", "Pin", "Fork"} {
		require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID:   "s" + theme,
			Theme:       theme,
			Score:       i + 5,
			LevelBefore: "Easiest",
			LevelAfter:  "Easiest",
			Attempts:    10,
			Correct:     i + 5,
		}))
	}

	all, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 7, all[0].Score, "newest first")

	forks, err := repo.QuerySessionEvents(ctx, QueryOpts{Theme: "Fork"})
	require.NoError(t, err)
	assert.Len(t, forks, 2)

	limited, err := repo.QuerySessionEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	future, err := repo.QuerySessionEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, future)
}

func TestFormatTime_TextOrderMatchesTimeOrder(t *testing.T) {
	whole := time.Date(2025, 6, 1, 12, 0, 5, 0, time.UTC)
	frac := whole.Add(100 * time.Millisecond)
	assert.Less(t, formatTime(whole), formatTime(frac))
	assert.Len(t, formatTime(frac), len(formatTime(whole)))

	parsed, err := parseTime(formatTime(frac))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(frac))

	legacy, err := parseTime(whole.Format(time.RFC3339Nano))
	require.NoError(t, err)
	assert.True(t, legacy.Equal(whole))
}

func TestSessionEvents_FromFilter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 5, 0, time.UTC)

	for i, ts := range []time.Time{base, base.Add(100 * time.Millisecond), base.Add(-time.Second)} {
		_, err := s.DB().Exec(
			`INSERT INTO session_events (sequence, timestamp, session_id, theme, score)
			VALUES (?, ?, ?, 'Fork', ?)`,
			i+1, formatTime(ts), fmt.Sprintf("s%d", i), i)
		require.NoError(t, err)
	}

	events, err := s.EventRepo().QuerySessionEvents(ctx, QueryOpts{From: base})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 1, events[0].Score)
	assert.Equal(t, 0, events[1].Score)

	events, err = s.EventRepo().QuerySessionEvents(ctx, QueryOpts{From: base.Add(time.Millisecond)})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 1, events[0].Score)
}

func TestThemeAttemptStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	attempts, correct, err := repo.ThemeAttemptStats(ctx, "Fork")
	require.NoError(t, err)
	assert.Zero(t, attempts)
	assert.Zero(t, correct)

	for _, ok := range []bool{true, true, false} {
		require.NoError(t, repo.AppendAttemptEvent(ctx, AttemptEventData{
			SessionID: "s1", Theme: "Fork", Level: "Easiest", Correct: ok,
		}))
	}
	require.NoError(t, repo.AppendAttemptEvent(ctx, AttemptEventData{
		SessionID: "s1", Theme: "Pin", Level: "Easiest", Correct: true,
	}))

	attempts, correct, err = repo.ThemeAttemptStats(ctx, "Fork")
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 2, correct)
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "custom.db")
	t.Setenv("TACTICS_DB", p)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)

	info, err := os.Stat(filepath.Dir(p))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TACTICS_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tactics", "tactics.db"), got)
}
