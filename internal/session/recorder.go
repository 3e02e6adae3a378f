package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ssmythe/tactics-manager/internal/catalog"
	"github.com/ssmythe/tactics-manager/internal/difficulty"
	"github.com/ssmythe/tactics-manager/internal/progress"
	"github.com/ssmythe/tactics-manager/internal/store"
)

// ErrInvalidScore is returned for session scores outside 0..MaxScore.
var ErrInvalidScore = errors.New("invalid session score")

// DefaultPuzzlesPerSession is the number of puzzles a reported session stands for.
const DefaultPuzzlesPerSession = 10

// Report is a practice session as reported by the learner.
type Report struct {
	Theme string
	Score int
	Date  time.Time
}

// Attempt is one simulated puzzle outcome and the level it counted against.
type Attempt struct {
	Level     catalog.Level
	Correct   bool
	Completed bool // the ladder was already complete; nothing was counted
	Advanced  bool
}

// Summary describes what a recorded session changed.
type Summary struct {
	SessionID   string
	Theme       string
	Score       int
	LevelBefore *catalog.Level // nil when the ladder was already complete
	LevelAfter  *catalog.Level // nil when the ladder is now complete
	Attempts    []Attempt
}

// Counted returns the number of attempts the ladder counted and how many of
// those were correct.
func (s *Summary) Counted() (attempts, correct int) {
	for _, a := range s.Attempts {
		if a.Completed {
			continue
		}
		attempts++
		if a.Correct {
			correct++
		}
	}
	return attempts, correct
}

// LadderCompleted reports whether any attempt found every level passed.
func (s *Summary) LadderCompleted() bool {
	for _, a := range s.Attempts {
		if a.Completed {
			return true
		}
	}
	return false
}

// Advancements returns the levels passed during the session, in order.
func (s *Summary) Advancements() []catalog.Level {
	var out []catalog.Level
	for _, a := range s.Attempts {
		if a.Advanced {
			out = append(out, a.Level)
		}
	}
	return out
}

// Recorder applies reported sessions to the tracker state.
type Recorder struct {
	tracker   *difficulty.Tracker
	eventRepo store.EventRepo
	puzzles   int
}

// NewRecorder creates a Recorder. eventRepo may be nil, in which case no
// events are logged. puzzles <= 0 selects DefaultPuzzlesPerSession.
func NewRecorder(tracker *difficulty.Tracker, eventRepo store.EventRepo, puzzles int) *Recorder {
	if puzzles <= 0 {
		puzzles = DefaultPuzzlesPerSession
	}
	return &Recorder{tracker: tracker, eventRepo: eventRepo, puzzles: puzzles}
}

// PuzzlesPerSession returns how many attempts one session records.
func (r *Recorder) PuzzlesPerSession() int {
	return r.puzzles
}

// Apply validates the report, stamps the theme with its date and score, and
// records one ladder attempt per simulated puzzle. Nothing is mutated when
// validation fails.
func (r *Recorder) Apply(st *progress.State, rep Report) (*Summary, error) {
	if rep.Score < 0 || rep.Score > MaxScore {
		return nil, fmt.Errorf("%w: %d (want 0-%d)", ErrInvalidScore, rep.Score, MaxScore)
	}
	tp, err := st.Theme(rep.Theme)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		SessionID: uuid.New().String(),
		Theme:     rep.Theme,
		Score:     rep.Score,
	}
	if lvl, ok := r.tracker.LevelOf(tp); ok {
		sum.LevelBefore = &lvl
	}

	if err := st.MarkSession(rep.Theme, rep.Date, rep.Score); err != nil {
		return nil, err
	}

	for _, correct := range SimulatedOutcomes(rep.Score, r.puzzles) {
		res, err := r.tracker.RecordAttempt(st, rep.Theme, correct)
		if err != nil {
			return nil, fmt.Errorf("record attempt: %w", err)
		}
		sum.Attempts = append(sum.Attempts, Attempt{
			Level:     res.Level,
			Correct:   correct,
			Completed: res.Completed,
			Advanced:  res.Advanced,
		})
	}

	if lvl, ok := r.tracker.LevelOf(tp); ok {
		sum.LevelAfter = &lvl
	}
	return sum, nil
}

// Log writes the session and its counted attempts to the event log.
// It is a no-op without an event repo.
func (r *Recorder) Log(ctx context.Context, sum *Summary) error {
	if r.eventRepo == nil || sum == nil {
		return nil
	}

	for _, a := range sum.Attempts {
		if a.Completed {
			continue
		}
		if err := r.eventRepo.AppendAttemptEvent(ctx, store.AttemptEventData{
			SessionID: sum.SessionID,
			Theme:     sum.Theme,
			Level:     a.Level.String(),
			Correct:   a.Correct,
		}); err != nil {
			return fmt.Errorf("log attempt: %w", err)
		}
	}

	attempts, correct := sum.Counted()
	if err := r.eventRepo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:   sum.SessionID,
		Theme:       sum.Theme,
		Score:       sum.Score,
		LevelBefore: levelName(sum.LevelBefore),
		LevelAfter:  levelName(sum.LevelAfter),
		Attempts:    attempts,
		Correct:     correct,
	}); err != nil {
		return fmt.Errorf("log session: %w", err)
	}
	return nil
}

func levelName(l *catalog.Level) string {
	if l == nil {
		return ""
	}
	return l.String()
}
