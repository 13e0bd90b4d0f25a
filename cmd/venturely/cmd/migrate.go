package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/venturely/venturely/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long:  `Auto-migrates every table the API uses and exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := db.ConnectDatabase(cfg.DatabaseURL, db.Options{Log: log, Debug: cfg.Debug})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close(conn)

		if err := db.MigrateDatabase(conn); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		log.WithField("database", db.DetectDatabaseType(cfg.DatabaseURL)).Info("Database migrated")
		return nil
	},
}
