package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yourusername/tennis-tips/internal/model"
	"github.com/yourusername/tennis-tips/internal/service"
)

var (
	evalModelPath string
	evalDataset   string
)

func init() {
	evalCmd.Flags().StringVarP(&evalModelPath, "model", "m", "", "Model artifact path (defaults to the configured path)")
	evalCmd.Flags().StringVarP(&evalDataset, "dataset", "d", "data/dataset.csv", "Labeled dataset CSV to evaluate against")
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a trained model against a labeled dataset",
	Long: `Scores an existing model artifact on a labeled dataset and
prints log loss, Brier score, AUC and the reliability curve.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := evalModelPath
		if path == "" {
			path = cfg.Model.Path
		}

		tm, err := model.Load(path)
		if err != nil {
			return err
		}

		p, err := buildPipeline(nil)
		if err != nil {
			return err
		}

		vectors, labels, err := service.LoadCSV(evalDataset, tm.Schema)
		if err != nil {
			return err
		}

		metrics, curve, err := p.trainer.Evaluate(tm, vectors, labels)
		if err != nil {
			return err
		}

		fmt.Printf("Model:      %s\n", path)
		fmt.Printf("Samples:    %d\n", metrics.SamplesVal)
		fmt.Printf("Log loss:   %.4f\n", metrics.LogLoss)
		fmt.Printf("Brier:      %.4f\n", metrics.Brier)
		fmt.Printf("AUC:        %.4f\n", metrics.AUC)

		probs := make([]float64, len(vectors))
		for i, fv := range vectors {
			p, err := tm.Predict(fv)
			if err != nil {
				return err
			}
			probs[i] = p
		}
		fmt.Printf("ECE:        %.4f\n\n", model.ExpectedCalibrationError(probs, labels, 10))

		fmt.Println("Reliability curve:")
		fmt.Println("  predicted  empirical  count")
		for _, b := range curve {
			fmt.Printf("  %9.3f  %9.3f  %5d\n", b.MeanPredicted, b.EmpiricalRate, b.Count)
		}
		return nil
	},
}
