package cli

import (
	"github.com/spf13/cobra"

	"github.com/quizdesk/quiz-service/internal/config"
	"github.com/quizdesk/quiz-service/pkg"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			db, err := pkg.InitDatabase(cfg)
			if err != nil {
				return err
			}

			return pkg.Migrate(db)
		},
	}
}
