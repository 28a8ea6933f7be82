package cli

import (
	"github.com/spf13/cobra"
)

var portFlag string

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quizservice",
		Short: "Quiz authoring and quiz taking service",
	}

	cmd.PersistentFlags().StringVar(&portFlag, "port", "", "port to listen on (overrides PORT)")
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	return cmd
}
