package cmd

import (
	"github.com/spf13/cobra"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List all themes with their level, last attempt and score",
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
		rt.console.ShowThemes(st, rt.app.Tracker(), rt.app.Now())
		return nil
	},
}
