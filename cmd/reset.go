package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ssmythe/tactics-manager/internal/progress"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset every theme to its initial state",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("reset discards all progress; rerun with --yes to confirm")
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		st := progress.NewState()
		if err := rt.app.Save(cmd.Context(), st); err != nil {
			return err
		}
		rt.console.Printf("Reset %d themes to their initial state.\n", st.Len())
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
