package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssmythe/tactics-manager/internal/progress"
	"github.com/ssmythe/tactics-manager/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the current progress to a JSON file",
	Args:  cobra.ExactArgs(1),
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

		if err := progress.Save(cmd.Context(), store.NewFileRepo(args[0]), st, rt.app.Now()); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		rt.console.Printf("Exported %d themes to %s\n", st.Len(), args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the current progress with a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		snap, err := store.NewFileRepo(args[0]).Latest(ctx)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		if snap == nil {
			return fmt.Errorf("import: %s does not exist", args[0])
		}
		st, err := progress.FromSnapshot(&snap.Data)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.app.Save(ctx, st); err != nil {
			return fmt.Errorf("import: %w", err)
		}
		rt.console.Printf("Imported %d themes from %s\n", st.Len(), args[0])
		return nil
	},
}
