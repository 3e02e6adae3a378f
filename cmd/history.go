package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ssmythe/tactics-manager/internal/progress"
	"github.com/ssmythe/tactics-manager/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently recorded practice sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		themeName, _ := cmd.Flags().GetString("theme")
		sinceArg, _ := cmd.Flags().GetString("since")

		var since time.Time
		if sinceArg != "" {
			d, err := time.ParseInLocation(progress.DateLayout, sinceArg, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --since %q: want YYYY-MM-DD", sinceArg)
			}
			since = d
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if rt.events == nil {
			return errors.New("history needs the sqlite backend; the json backend keeps no session log")
		}

		ctx := cmd.Context()
		events, err := rt.events.QuerySessionEvents(ctx, store.QueryOpts{Limit: limit, Theme: themeName, From: since})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(events) == 0 {
			rt.console.Println("No sessions recorded yet.")
			return nil
		}

		pal := rt.console.Palette()
		rt.console.Printf("%-16s  %-25s  %5s  %-19s  %s\n", "When", "Theme", "Score", "Level", "Correct")
		for _, ev := range events {
			rt.console.Printf("%-16s  %-25s  %5s  %-19s  %d/%d  %s\n",
				ev.Timestamp.Local().Format("2006-01-02 15:04"),
				ev.Theme,
				fmt.Sprintf("%d/10", ev.Score),
				levelChange(ev.LevelBefore, ev.LevelAfter),
				ev.Correct, ev.Attempts,
				pal.Hint(humanize.Time(ev.Timestamp)),
			)
		}

		if themeName != "" {
			attempts, correct, err := rt.events.ThemeAttemptStats(ctx, themeName)
			if err != nil {
				return fmt.Errorf("attempt stats: %w", err)
			}
			if attempts > 0 {
				rt.console.Printf("\n%s: %s attempts logged, %.0f%% correct\n",
					themeName, humanize.Comma(int64(attempts)), float64(correct)/float64(attempts)*100)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum sessions to show (0 for all)")
	historyCmd.Flags().String("theme", "", "Only show sessions for this theme")
	historyCmd.Flags().String("since", "", "Only show sessions recorded on or after this date (YYYY-MM-DD)")
}

// levelChange renders a ladder move, e.g. "Easiest -> Easier".
func levelChange(before, after string) string {
	if before == "" {
		before = "Complete"
	}
	if after == "" {
		after = "Complete"
	}
	if before == after {
		return before
	}
	return before + " -> " + after
}
