package cli

import (
	"github.com/spf13/cobra"
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exam-quiz-bot",
		Short: "Telegram bot that quizzes users on exam subjects and tracks their scores",
	}

	cmd.AddCommand(newStartCmd())
	cmd.AddCommand(newMigrateCmd())
	return cmd
}
