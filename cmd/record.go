package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssmythe/tactics-manager/internal/catalog"
	"github.com/ssmythe/tactics-manager/internal/progress"
	"github.com/ssmythe/tactics-manager/internal/session"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a practice session without prompting",
	Example: `  tactics record --theme 3 --score 7
  tactics record --theme "Smothered mate" --score 9 --date 2025-06-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		themeArg, _ := cmd.Flags().GetString("theme")
		score, _ := cmd.Flags().GetInt("score")
		dateArg, _ := cmd.Flags().GetString("date")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		st, err := rt.app.Load(cmd.Context())
		if err != nil {
			return err
		}

		name, err := resolveTheme(st, themeArg)
		if err != nil {
			return err
		}

		date := rt.app.Now()
		if dateArg != "" {
			d, err := time.ParseInLocation(progress.DateLayout, dateArg, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", dateArg)
			}
			date = d
		}

		sum, err := rt.app.Record(cmd.Context(), st, session.Report{Theme: name, Score: score, Date: date})
		if err != nil {
			return err
		}

		pal := rt.console.Palette()
		rt.console.Printf("Updated theme: %s and its difficulty progress.\n", name)
		for _, lvl := range sum.Advancements() {
			rt.console.Println(pal.Correct(fmt.Sprintf("Passed %s on %s.", lvl, name)))
		}
		if sum.LevelAfter == nil {
			rt.console.Printf("All difficulty levels completed for theme: %s.\n", name)
		} else {
			rt.console.Printf("Current difficulty level for %s: %s\n", name, *sum.LevelAfter)
		}
		return nil
	},
}

func init() {
	recordCmd.Flags().String("theme", "", "Theme number (as listed by 'tactics themes') or exact name")
	recordCmd.Flags().Int("score", -1, "Session score out of 10")
	recordCmd.Flags().String("date", "", "Session date as YYYY-MM-DD (default today)")
	_ = recordCmd.MarkFlagRequired("theme")
	_ = recordCmd.MarkFlagRequired("score")
}

// resolveTheme accepts a 1-based theme number or an exact theme name.
func resolveTheme(st *progress.State, arg string) (string, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		return catalog.ThemeAt(n)
	}
	if _, err := st.Theme(arg); err != nil {
		return "", err
	}
	return arg, nil
}
