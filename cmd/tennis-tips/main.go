// Package main provides the tennis-tips CLI: archive ingestion,
// dataset construction, model training and tip generation.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/tennis-tips/internal/config"
	"github.com/yourusername/tennis-tips/internal/database"
	"github.com/yourusername/tennis-tips/internal/logger"
)

// Build information - set via ldflags
var (
	Version = "dev"
)

var (
	configFile string
	cfg        *config.Config
	appLog     *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tennis-tips",
	Short: "Tennis match outcome prediction and value-bet tipping",
	Long: `tennis-tips ingests open results and odds archives, maintains
surface-aware Elo ratings, trains a calibrated win-probability model
and flags value bets against bookmaker odds.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
			region := os.Getenv("AWS_REGION")
			secretName := os.Getenv("AWS_SECRET_NAME")
			if region == "" || secretName == "" {
				return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
			}
			if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
				return fmt.Errorf("failed to load secrets: %w", err)
			}
		}

		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		appLog = logger.NewLogger(cfg.App.LogLevel)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(buildDatasetCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(tipsCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// openDatabase connects when the database is enabled, nil otherwise
func openDatabase(ctx context.Context) (*database.DB, error) {
	if !cfg.Database.Enabled {
		return nil, nil
	}
	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	appLog.Info("Database connection established")
	return db, nil
}
