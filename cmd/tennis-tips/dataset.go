package main

import (
	"github.com/spf13/cobra"
)

var datasetOut string

func init() {
	buildDatasetCmd.Flags().StringVarP(&datasetOut, "out", "o", "data/dataset.csv", "Output path for the training dataset")
}

var buildDatasetCmd = &cobra.Command{
	Use:   "build-dataset",
	Short: "Merge results with odds and derive training features",
	Long: `Loads the previously fetched raw files, fuzzy-joins odds onto
results, replays ratings chronologically and writes the feature
dataset CSV.`,
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

		results, err := p.ingestion.LoadResults()
		if err != nil {
			return err
		}
		odds, err := p.ingestion.LoadOdds()
		if err != nil {
			return err
		}

		ds, err := p.dataset.Build(ctx, results, odds)
		if err != nil {
			return err
		}
		return p.dataset.ExportCSV(datasetOut, ds)
	},
}
