package selector

import (
	"math"
	"sort"
	"time"

	"github.com/ssmythe/tactics-manager/internal/progress"
)

// Candidate is a theme that is due for study.
type Candidate struct {
	Theme  string
	Bucket Bucket
	// Days since the last attempt; +Inf for never-attempted themes.
	Days float64
}

// Never reports whether the theme has never been attempted.
func (c Candidate) Never() bool {
	return math.IsInf(c.Days, 1)
}

// Selector picks the next theme to study.
type Selector struct {
	cfg Config
}

// New creates a Selector with the given schedule.
func New(cfg Config) *Selector {
	return &Selector{cfg: cfg}
}

// Config returns the selector schedule.
func (s *Selector) Config() Config {
	return s.cfg
}

// daysSince returns the days since the theme was last attempted, or +Inf.
func daysSince(tp *progress.ThemeProgress, now time.Time) float64 {
	if tp.LastAttempted == nil {
		return math.Inf(1)
	}
	return float64(progress.DaysSince(*tp.LastAttempted, now))
}

// Mastered reports whether the theme's latest score reaches the mastery cut-off.
func (s *Selector) Mastered(tp *progress.ThemeProgress) bool {
	return tp.SuccessRate != nil && *tp.SuccessRate >= s.cfg.MasteryScore
}

// Classify sorts a theme into its review bucket.
func (s *Selector) Classify(tp *progress.ThemeProgress, now time.Time) Bucket {
	if !s.Mastered(tp) {
		return BucketUnmastered
	}
	days := daysSince(tp, now)
	switch {
	case days >= float64(s.cfg.LongDays):
		return BucketLongRecall
	case days >= float64(s.cfg.MediumDays):
		return BucketMediumRecall
	case days >= float64(s.cfg.ShortDays):
		return BucketShortRecall
	default:
		return BucketNotDue
	}
}

// Next returns the theme to study now. Within the highest-precedence
// non-empty bucket the theme with the most days since its last attempt wins;
// ties go to the theme listed first. ok is false when nothing is due.
func (s *Selector) Next(st *progress.State, now time.Time) (theme string, ok bool) {
	best := make(map[Bucket]Candidate, len(precedence))
	for _, tp := range st.Themes() {
		b := s.Classify(tp, now)
		if !b.Due() {
			continue
		}
		days := daysSince(tp, now)
		if cur, seen := best[b]; !seen || days > cur.Days {
			best[b] = Candidate{Theme: tp.Name, Bucket: b, Days: days}
		}
	}

	for _, b := range precedence {
		if c, found := best[b]; found {
			return c.Theme, true
		}
	}
	return "", false
}

// Queue returns every due theme in selection order: by bucket precedence,
// then most days since the last attempt, then listing order. The first
// entry, if any, is the theme Next returns.
func (s *Selector) Queue(st *progress.State, now time.Time) []Candidate {
	var due []Candidate
	for _, tp := range st.Themes() {
		b := s.Classify(tp, now)
		if !b.Due() {
			continue
		}
		due = append(due, Candidate{Theme: tp.Name, Bucket: b, Days: daysSince(tp, now)})
	}

	sort.SliceStable(due, func(i, j int) bool {
		ri, rj := rank(due[i].Bucket), rank(due[j].Bucket)
		if ri != rj {
			return ri < rj
		}
		return due[i].Days > due[j].Days
	})
	return due
}
