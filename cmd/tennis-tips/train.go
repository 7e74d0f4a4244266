package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yourusername/tennis-tips/internal/models"
	"github.com/yourusername/tennis-tips/internal/service"
)

var trainDataset string

func init() {
	trainCmd.Flags().StringVarP(&trainDataset, "dataset", "d", "", "Train from an exported dataset CSV instead of rebuilding from raw files")
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train and calibrate the win-probability model",
	Long: `Fits the logistic classifier plus calibration on the feature
dataset and writes the model artifact to the configured path. By
default the dataset is rebuilt from the raw files; --dataset trains
from a previously exported CSV.`,
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

		vectors, labels, err := loadTrainingData(ctx, p)
		if err != nil {
			return err
		}

		tm, artifact, err := p.trainer.Train(ctx, vectors, labels, cfg.Model.Path)
		if err != nil {
			return err
		}

		appLog.WithFields(logrus.Fields{
			"artifact_id": artifact.ID,
			"log_loss":    tm.Metrics.LogLoss,
			"brier":       tm.Metrics.Brier,
			"auc":         tm.Metrics.AUC,
		}).Info("Training complete")
		return nil
	},
}

func loadTrainingData(ctx context.Context, p *pipeline) ([]*models.FeatureVector, []float64, error) {
	if trainDataset != "" {
		return service.LoadCSV(trainDataset, p.builder.Schema())
	}

	results, err := p.ingestion.LoadResults()
	if err != nil {
		return nil, nil, err
	}
	odds, err := p.ingestion.LoadOdds()
	if err != nil {
		return nil, nil, err
	}
	ds, err := p.dataset.Build(ctx, results, odds)
	if err != nil {
		return nil, nil, err
	}
	return ds.Vectors, ds.Labels, nil
}
