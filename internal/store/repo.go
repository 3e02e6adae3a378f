package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	Theme string    // exact theme name ("" = all)
	From  time.Time // timestamp >= From (zero = no lower bound)
}

// SnapshotData is the whole persisted tracker state. Its JSON form is the
// on-disk document format shared by every backend.
type SnapshotData struct {
	Themes map[string]*ThemeData `json:"themes"`
}

// ThemeData is the persisted state of a single theme.
type ThemeData struct {
	LastAttempted      *string                    `json:"last_attempted"`
	SuccessRate        *int                       `json:"success_rate"`
	DifficultyProgress map[string]*LevelCountData `json:"difficulty_progress"`
}

// LevelCountData holds the counters of one difficulty level.
type LevelCountData struct {
	PuzzlesSolved int `json:"puzzles_solved"`
	Correct       int `json:"correct"`
}

// Snapshot represents a point-in-time capture of the tracker state.
type Snapshot struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo persists whole-state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot, replacing the current state as a whole.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots. keep <= 0 is a no-op.
	Prune(ctx context.Context, keep int) error
}

// SessionEventData captures one reported practice session.
type SessionEventData struct {
	SessionID   string
	Theme       string
	Score       int
	LevelBefore string // "" when every level was already complete
	LevelAfter  string // "" when every level is complete
	Attempts    int
	Correct     int
}

// SessionEventRecord is a stored session event.
type SessionEventRecord struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// AttemptEventData captures a single simulated puzzle attempt.
type AttemptEventData struct {
	SessionID string
	Theme     string
	Level     string
	Correct   bool
}

// EventRepo provides append and query access to practice events.
type EventRepo interface {
	// AppendSessionEvent records a completed practice session.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAttemptEvent records one puzzle attempt counted by the ladder.
	AppendAttemptEvent(ctx context.Context, data AttemptEventData) error

	// QuerySessionEvents returns session events, newest first.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error)

	// ThemeAttemptStats returns the recorded attempts and correct attempts
	// for a theme across all sessions.
	ThemeAttemptStats(ctx context.Context, theme string) (attempts, correct int, err error)
}
