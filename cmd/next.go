package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssmythe/tactics-manager/internal/console"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next theme to practice",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		st, err := rt.app.Load(cmd.Context())
		if err != nil {
			return err
		}

		all, _ := cmd.Flags().GetBool("all")
		if !all {
			rt.app.ReportNext(st)
			return nil
		}

		now := rt.app.Now()
		queue := rt.app.Selector().Queue(st, now)
		if len(queue) == 0 {
			rt.console.Println("All themes are up-to-date. Great job!")
			return nil
		}

		pal := rt.console.Palette()
		rt.console.Printf("%-3s  %-25s  %-13s  %-8s  %s\n", "#", "Theme", "Bucket", "Level", "Last attempted")
		for i, c := range queue {
			tp, err := st.Theme(c.Theme)
			if err != nil {
				return err
			}
			rt.console.Printf("%s  %-25s  %-13s  %-8s  %s\n",
				pal.Index(fmt.Sprintf("%-3d", i+1)),
				c.Theme,
				c.Bucket,
				console.LevelLabel(rt.app.Tracker(), tp),
				pal.Hint(console.LastAttemptedLabel(tp, now)),
			)
		}
		rt.console.Printf("\n%d themes due\n", len(queue))
		return nil
	},
}

func init() {
	nextCmd.Flags().Bool("all", false, "List every due theme in selection order")
}
