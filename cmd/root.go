package cmd

import (
	"github.com/abhisek/sqlcoach/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sqlcoach",
	Short: "AI SQL interview coach",
	Long:  "Sqlcoach — AI-native web app that generates SQL interview questions and grades your answers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SQLCOACH_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SQLCOACH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, fromConfig string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if fromConfig != "" {
		return fromConfig, store.EnsureDir(fromConfig)
	}
	return store.DefaultDBPath()
}
