package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssmythe/tactics-manager/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "tactics",
	Short: "Spaced-repetition tracker for chess tactics themes",
	Long: "tactics picks the chess tactics theme to practice next and walks each theme " +
		"up a five-level difficulty ladder as practice sessions are recorded.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()
		return rt.app.Run(cmd.Context())
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to YAML config file (overrides TACTICS_CONFIG env var)")
	pf.String("backend", "", "Storage backend: sqlite or json (overrides TACTICS_BACKEND env var)")
	pf.String("db", "", "Path to SQLite database file (overrides TACTICS_DB env var)")
	pf.String("file", "", "Path to JSON data file for the json backend (overrides TACTICS_FILE env var)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("color", "", "Color output: auto, always, never")

	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig loads the config file and environment, then applies any
// flags given on the command line.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{"backend", &cfg.Backend},
		{"db", &cfg.DBPath},
		{"file", &cfg.FilePath},
		{"log-level", &cfg.LogLevel},
		{"color", &cfg.Color},
	}
	for _, o := range overrides {
		if v, _ := cmd.Flags().GetString(o.flag); v != "" {
			*o.dst = v
		}
	}
	return cfg, cfg.Validate()
}
