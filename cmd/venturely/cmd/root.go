package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/venturely/venturely/internal/config"
	"github.com/venturely/venturely/internal/logs"
)

var (
	cfg *config.Config
	log *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "venturely",
	Short: "Venturely API server",
	Long: `Venturely connects startup founders with investors.
It serves the REST API for accounts, profiles, startups, pitches and uploads.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if cmd.Flags().Changed("port") {
			port, _ := cmd.Flags().GetString("port")
			cfg.SetPort(port)
		}
		if cmd.Flags().Changed("db-url") {
			cfg.DatabaseURL, _ = cmd.Flags().GetString("db-url")
		}
		if cmd.Flags().Changed("debug") {
			cfg.Debug, _ = cmd.Flags().GetBool("debug")
		}

		log = logs.New(cfg.LogLevel, cfg.Debug)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("port", "", "Listen port (env: PORT)")
	rootCmd.PersistentFlags().String("db-url", "", "Database connection URL (env: DATABASE_URL)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging (env: DEBUG)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
