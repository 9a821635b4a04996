package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pocket-ledger/backend/internal/config"
	"github.com/pocket-ledger/backend/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// databaseFile is the name of the SQLite database in the data directory.
const databaseFile = "pocket-ledger.db"

func newMigrateCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or migrate the database and exit",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			if err := connect(cfg); err != nil {
				return err
			}

			log.Info().Str("path", filepath.Join(cfg.DataDir, databaseFile)).Msg("database migrated")
			return closeDB()
		},
	}
}

// connect creates the data directory and opens the database. Opening the
// database migrates it.
func connect(cfg config.Config) error {
	err := os.MkdirAll(cfg.DataDir, 0o750)
	if err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	return models.Connect(filepath.Join(cfg.DataDir, databaseFile))
}

func closeDB() error {
	sqlDB, err := models.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
