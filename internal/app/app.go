package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ssmythe/tactics-manager/internal/catalog"
	"github.com/ssmythe/tactics-manager/internal/console"
	"github.com/ssmythe/tactics-manager/internal/difficulty"
	"github.com/ssmythe/tactics-manager/internal/progress"
	"github.com/ssmythe/tactics-manager/internal/selector"
	"github.com/ssmythe/tactics-manager/internal/session"
	"github.com/ssmythe/tactics-manager/internal/store"
)

// Options holds the dependencies of the tracker application.
type Options struct {
	Snapshots store.SnapshotRepo
	Events    store.EventRepo // nil when the backend keeps no event log

	Selector *selector.Selector
	Tracker  *difficulty.Tracker
	Recorder *session.Recorder
	Console  *console.Console
	Logger   *log.Logger

	// Now returns the current time; defaults to time.Now.
	Now func() time.Time

	// SnapshotKeep is how many snapshots survive a save; 0 keeps all.
	SnapshotKeep int
}

// App runs tracker operations against a store.
type App struct {
	opts Options
}

// New creates an App, filling in defaults for optional dependencies.
func New(opts Options) *App {
	if opts.Selector == nil {
		opts.Selector = selector.New(selector.DefaultConfig())
	}
	if opts.Tracker == nil {
		opts.Tracker = difficulty.NewTracker(difficulty.DefaultConfig())
	}
	if opts.Recorder == nil {
		opts.Recorder = session.NewRecorder(opts.Tracker, opts.Events, 0)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &App{opts: opts}
}

// Selector returns the theme selector.
func (a *App) Selector() *selector.Selector { return a.opts.Selector }

// Tracker returns the difficulty tracker.
func (a *App) Tracker() *difficulty.Tracker { return a.opts.Tracker }

// Now returns the current time.
func (a *App) Now() time.Time { return a.opts.Now() }

// Load reads the tracker state, initializing the store on first use.
func (a *App) Load(ctx context.Context) (*progress.State, error) {
	st, created, err := progress.Load(ctx, a.opts.Snapshots)
	if err != nil {
		return nil, err
	}
	if created {
		a.opts.Logger.Info("initialized store", "themes", st.Len())
		if a.opts.Console != nil {
			a.opts.Console.Printf("Initialized data file with %d themes and difficulty levels.\n", catalog.Count())
		}
	} else {
		a.opts.Logger.Debug("loaded state", "themes", st.Len())
	}
	return st, nil
}

// Save persists the state and prunes old snapshots.
func (a *App) Save(ctx context.Context, st *progress.State) error {
	if err := progress.Save(ctx, a.opts.Snapshots, st, a.opts.Now()); err != nil {
		return err
	}
	a.opts.Logger.Debug("saved state", "themes", st.Len())

	if a.opts.SnapshotKeep > 0 {
		if err := a.opts.Snapshots.Prune(ctx, a.opts.SnapshotKeep); err != nil {
			a.opts.Logger.Warn("prune snapshots", "keep", a.opts.SnapshotKeep, "err", err)
		}
	}
	return nil
}

// Record applies a practice session, saves the state and logs the session
// events. The state is left untouched when the report is invalid.
func (a *App) Record(ctx context.Context, st *progress.State, rep session.Report) (*session.Summary, error) {
	sum, err := a.opts.Recorder.Apply(st, rep)
	if err != nil {
		return nil, err
	}
	if err := a.Save(ctx, st); err != nil {
		return nil, err
	}

	for _, lvl := range sum.Advancements() {
		a.opts.Logger.Info("level passed", "theme", sum.Theme, "level", lvl)
	}
	if sum.LadderCompleted() {
		a.opts.Logger.Warn("all difficulty levels already completed", "theme", sum.Theme)
	}

	if err := a.opts.Recorder.Log(ctx, sum); err != nil {
		a.opts.Logger.Warn("event log", "session", sum.SessionID, "err", err)
	}
	return sum, nil
}

// ReportNext prints the next theme to work on and its current level.
func (a *App) ReportNext(st *progress.State) {
	con := a.opts.Console
	pal := con.Palette()
	now := a.opts.Now()

	theme, ok := a.opts.Selector.Next(st, now)
	if !ok {
		con.Println(pal.Complete("All themes are up-to-date. Great job!"))
		return
	}
	con.Printf("Next theme to work on: %s\n", pal.Title(theme))

	level, ok, err := a.opts.Tracker.CurrentLevel(st, theme)
	if err != nil {
		a.opts.Logger.Error("current level", "theme", theme, "err", err)
		return
	}
	if ok {
		con.Printf("Current difficulty level for %s: %s\n", theme, level)
	} else {
		con.Printf("All difficulty levels completed for theme: %s.\n", theme)
	}
}

// Run is the interactive flow: report the next theme, then optionally
// record a session the learner just finished. Invalid answers are reported
// and end the run without changing anything.
func (a *App) Run(ctx context.Context) error {
	con := a.opts.Console
	pal := con.Palette()

	st, err := a.Load(ctx)
	if err != nil {
		return err
	}
	a.ReportNext(st)

	done, err := con.Confirm("Did you complete a theme or puzzle session? (y/n): ")
	if err != nil || !done {
		return err
	}

	con.Println("Select a theme:")
	con.ShowThemes(st, a.opts.Tracker, a.opts.Now())

	index, err := con.ReadInt("Enter the number of the theme you practiced: ")
	if err != nil {
		return a.inputError(err)
	}
	theme, err := catalog.ThemeAt(index)
	if err != nil {
		con.Println(pal.Incorrect("Invalid theme number."))
		return nil
	}

	score, err := con.ReadInt("Enter your success rate out of 10: ")
	if err != nil {
		return a.inputError(err)
	}

	sum, err := a.Record(ctx, st, session.Report{Theme: theme, Score: score, Date: a.opts.Now()})
	if errors.Is(err, session.ErrInvalidScore) {
		con.Println(pal.Incorrect(fmt.Sprintf("Success rate must be between 0 and %d.", session.MaxScore)))
		return nil
	}
	if err != nil {
		return err
	}

	con.Printf("Updated theme: %s and its difficulty progress.\n", theme)
	for _, lvl := range sum.Advancements() {
		con.Println(pal.Correct(fmt.Sprintf("Passed %s on %s.", lvl, theme)))
	}
	if sum.LevelAfter == nil {
		con.Printf("All difficulty levels completed for theme: %s.\n", theme)
	}
	return nil
}

// inputError reports a bad answer to the learner. Only read failures other
// than bad or missing input are returned.
func (a *App) inputError(err error) error {
	if errors.Is(err, console.ErrNotNumber) || errors.Is(err, io.EOF) {
		a.opts.Console.Println(a.opts.Console.Palette().Incorrect("Please enter a valid number."))
		return nil
	}
	return err
}
