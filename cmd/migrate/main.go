package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-gin-product-api/internal/core/config"
	"go-gin-product-api/internal/core/database"
	"go-gin-product-api/internal/core/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Manage the product API database schema",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// gooseCmd 每个子命令对应一个 goose 命令
func gooseCmd(use, short string, args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cfg.DB.Driver == "memory" {
				return fmt.Errorf("db.driver=memory has no schema to migrate")
			}
			l, cleanup := logger.FromConfig(cfg.Log)
			defer cleanup()

			db, err := database.NewGorm(database.OptsFromConfig(cfg.DB), l)
			if err != nil {
				return fmt.Errorf("db open: %w", err)
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			command := cmd.Name()
			if err := database.Migrate(cmd.Context(), db, cfg.DB.Driver, l, command, args...); err != nil {
				return err
			}
			l.Info("migrate done", zap.String("command", command))
			return nil
		},
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")
	rootCmd.AddCommand(
		gooseCmd("up", "Apply all pending migrations", cobra.NoArgs),
		gooseCmd("up-to VERSION", "Apply migrations up to VERSION", cobra.ExactArgs(1)),
		gooseCmd("down", "Roll back the latest migration", cobra.NoArgs),
		gooseCmd("down-to VERSION", "Roll back to VERSION", cobra.ExactArgs(1)),
		gooseCmd("redo", "Re-run the latest migration", cobra.NoArgs),
		gooseCmd("reset", "Roll back all migrations", cobra.NoArgs),
		gooseCmd("status", "Print migration status", cobra.NoArgs),
		gooseCmd("version", "Print the current schema version", cobra.NoArgs),
	)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
