package cmd

import (
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/ougirez/carbon4c/internal/pkg/logger"
	"github.com/ougirez/carbon4c/internal/pkg/store/migrations"
	"github.com/ougirez/carbon4c/internal/pkg/store/xpgx"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra commands are typically global
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending warehouse migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	pool, err := xpgx.NewPool(cmd.Context(), xpgx.Config{DSN: cfg.Postgres.DSN, MaxConns: 2})
	if err != nil {
		return fmt.Errorf("xpgx.NewPool: %w", err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	return migrations.Run(db, logger.L())
}
