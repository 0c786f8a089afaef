package cmd

import (
	"fmt"

	"stock-manager/core/config"
	"stock-manager/core/database"
	"stock-manager/core/logger"
	"stock-manager/feature/stock/models"

	"github.com/spf13/cobra"
)

// migrateCmd creates or updates the ledger schema.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the ledger database schema",
	Long:  `Runs the schema migration for the stock ledger and transaction log tables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		if err := db.AutoMigrate(&models.StockEntry{}, &models.TransactionRecord{}); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}

		l.Info("Schema migration complete")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
