package console

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ssmythe/tactics-manager/internal/catalog"
	"github.com/ssmythe/tactics-manager/internal/difficulty"
	"github.com/ssmythe/tactics-manager/internal/progress"
	"github.com/ssmythe/tactics-manager/internal/ui/theme"
)

// LevelLabel returns the theme's current level, or "Complete" once every
// level is passed.
func LevelLabel(tr *difficulty.Tracker, tp *progress.ThemeProgress) string {
	if lvl, ok := tr.LevelOf(tp); ok {
		return lvl.String()
	}
	return "Complete"
}

// LastAttemptedLabel formats the last-attempted date with a relative hint,
// e.g. "2025-05-20 (3 weeks ago)", or "never".
func LastAttemptedLabel(tp *progress.ThemeProgress, now time.Time) string {
	if tp.LastAttempted == nil {
		return "never"
	}
	date := tp.LastAttempted.Format(progress.DateLayout)
	return fmt.Sprintf("%s (%s)", date, Ago(*tp.LastAttempted, now))
}

// Ago describes the distance between a calendar date and today.
func Ago(date, now time.Time) string {
	if progress.DaysSince(date, now) == 0 {
		return "today"
	}
	return humanize.RelTime(progress.DateOf(date), progress.DateOf(now), "ago", "from now")
}

// SuccessRateLabel formats the latest score as "7/10", or "-/10".
func SuccessRateLabel(tp *progress.ThemeProgress) string {
	if tp.SuccessRate == nil {
		return "-/10"
	}
	return strconv.Itoa(*tp.SuccessRate) + "/10"
}

// RenderThemes writes every catalog theme, numbered from 1 and grouped
// under its category, with its level, last attempt and latest score.
// The numbers are the indexes catalog.ThemeAt accepts.
func RenderThemes(w io.Writer, pal theme.Palette, st *progress.State, tr *difficulty.Tracker, now time.Time) {
	index := 1
	for _, cat := range catalog.Categories() {
		fmt.Fprintf(w, "\n%s\n", pal.Category(cat.Name+":"))
		for _, name := range cat.Themes {
			n := index
			index++
			tp, err := st.Theme(name)
			if err != nil {
				// NewState and FromSnapshot back-fill every catalog theme.
				continue
			}
			level := LevelLabel(tr, tp)
			if level == "Complete" {
				level = pal.Complete(level)
			}
			fmt.Fprintf(w, "%s %s [%s %s %s]\n",
				pal.Index(fmt.Sprintf("%-3d", n)),
				fmt.Sprintf("%-25s", name),
				level,
				pal.Hint(LastAttemptedLabel(tp, now)),
				SuccessRateLabel(tp),
			)
		}
	}
}

// ShowThemes renders the theme list to the console.
func (c *Console) ShowThemes(st *progress.State, tr *difficulty.Tracker, now time.Time) {
	RenderThemes(c.out, c.pal, st, tr, now)
}
