package cli

import (
	"quiz_backend/internal/config"
	"quiz_backend/pkg/database"
	"quiz_backend/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewMigrateCmd builds the subcommand that migrates the schema, seeds defaults and exits.
func NewMigrateCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations and seed default data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configDir)
			if err != nil {
				return err
			}
			cfg.ForceMigrate = true

			logger.InitLogger(cfg)
			defer logger.Log.Sync()

			db, err := database.InitDB(cfg)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			logger.Log.Info("数据库迁移完成", zap.String("driver", cfg.Database.Driver))
			return nil
		},
	}
}
