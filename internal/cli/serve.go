package cli

import (
	"quiz_backend/internal/app"
	"quiz_backend/internal/config"

	"github.com/spf13/cobra"
)

// NewServeCmd builds the subcommand that starts the HTTP server.
func NewServeCmd(configDir *string) *cobra.Command {
	var (
		port    string
		migrate bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configDir)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}
			// 即使是 release 模式也执行数据库迁移
			cfg.ForceMigrate = migrate

			application, err := app.NewApp(cfg)
			if err != nil {
				return err
			}
			return application.Run()
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides config)")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run AutoMigrate on startup even in release mode")
	return cmd
}
