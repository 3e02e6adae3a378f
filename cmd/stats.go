package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssmythe/tactics-manager/internal/app"
	"github.com/ssmythe/tactics-manager/internal/catalog"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics per category",
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

		stats := rt.app.Stats(st, rt.app.Now())
		var total app.CategoryStats
		total.Name = "Total"

		pal := rt.console.Palette()
		rt.console.Printf("%-32s  %6s  %5s  %10s  %8s  %3s  %8s\n",
			"Category", "Themes", "Never", "Unmastered", "Mastered", "Due", "Complete")
		for _, cs := range stats {
			printStatsRow(rt, cs)
			total.Themes += cs.Themes
			total.Never += cs.Never
			total.Unmastered += cs.Unmastered
			total.Mastered += cs.Mastered
			total.Due += cs.Due
			total.Complete += cs.Complete
			for i := range cs.AtLevel {
				total.AtLevel[i] += cs.AtLevel[i]
			}
		}
		rt.console.Println()
		printStatsRow(rt, total)

		rt.console.Println()
		rt.console.Println(pal.Title("Themes by current level"))
		for _, lvl := range catalog.Levels() {
			rt.console.Printf("  %-8s  %d\n", lvl, total.AtLevel[lvl])
		}
		rt.console.Printf("  %-8s  %d\n", "Complete", total.Complete)
		return nil
	},
}

func printStatsRow(rt *runtime, cs app.CategoryStats) {
	rt.console.Printf("%-32s  %6d  %5d  %10d  %8d  %3d  %8d\n",
		cs.Name, cs.Themes, cs.Never, cs.Unmastered, cs.Mastered, cs.Due, cs.Complete)
}
