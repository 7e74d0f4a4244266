package main

import (
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download and ingest the configured archives",
	Long: `Downloads the yearly results and odds files from every enabled
source into the raw directory, parses and validates them, and stores
the records when the database is enabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		if db != nil {
			defer db.Close()
		}

		p, err := buildPipeline(db)
		if err != nil {
			return err
		}

		metrics, err := p.ingestion.IngestHistoricalData(ctx)
		if err != nil {
			return err
		}
		appLog.WithField("metrics", metrics.String()).Info("Fetch complete")
		return nil
	},
}
