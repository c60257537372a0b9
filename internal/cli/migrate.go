package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/exahelper/exam-quiz-bot/internal/config"
	"github.com/exahelper/exam-quiz-bot/internal/infra/postgres"
)

func newMigrateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			dsn := os.Getenv("DATABASE_URL")
			if dsn == "" {
				return config.ErrMissingEnvironmentVariables
			}

			return postgres.RunMigrations(dsn, dir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "migrations", "path to migration files")
	return cmd
}
