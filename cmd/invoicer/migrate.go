package main

import (
	"fmt"

	"Invoice-Processing-System/cmd/config"
	migration "Invoice-Processing-System/cmd/database/migrate"
	"Invoice-Processing-System/internal/utils"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the postgres record store schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		if cfg.StoreDriver != utils.StorePostgres {
			return fmt.Errorf("migrate only applies to STORE_DRIVER=%s, got %q", utils.StorePostgres, cfg.StoreDriver)
		}

		db, err := config.ConnectDB(cfg)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		if err := migration.Migrate(db); err != nil {
			utils.LogError(logger, "main", "migrate", nil, err)
			return err
		}
		logger.Info("database migration complete")
		return nil
	},
}
