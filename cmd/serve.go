package cmd

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/sqlcoach/internal/config"
	"github.com/abhisek/sqlcoach/internal/grader"
	"github.com/abhisek/sqlcoach/internal/llm"
	"github.com/abhisek/sqlcoach/internal/question"
	"github.com/abhisek/sqlcoach/internal/store"
	"github.com/abhisek/sqlcoach/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

// runServe loads configuration, opens the store, builds the LLM-backed
// services and blocks serving HTTP.
func runServe(cmd *cobra.Command) error {
	ctx := cmd.Context()

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(ctx, st.Telemetry())
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w", err)
	}

	gen := question.New(provider, question.DefaultConfig())
	grd := grader.New(provider, grader.DefaultConfig())

	srv, err := web.New(cfg, gen, grd)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	return srv.Run(cfg.Port)
}
