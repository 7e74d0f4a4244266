package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/tennis-tips/internal/features"
	"github.com/yourusername/tennis-tips/internal/metrics"
	"github.com/yourusername/tennis-tips/internal/model"
	"github.com/yourusername/tennis-tips/internal/models"
	"github.com/yourusername/tennis-tips/internal/repository"
)

// TrainerService fits a model on a built dataset, persists the artifact
// and optionally registers it as the active model
type TrainerService struct {
	cfg       model.Config
	modelRepo repository.ModelRepository
	logger    *logrus.Logger
}

// NewTrainerService creates a trainer. The model repository may be nil
// for a file-only run.
func NewTrainerService(cfg model.Config, modelRepo repository.ModelRepository, logger *logrus.Logger) *TrainerService {
	if logger == nil {
		logger = logrus.New()
	}
	return &TrainerService{cfg: cfg, modelRepo: modelRepo, logger: logger}
}

// Train fits and calibrates a model, writes it to path and registers
// the artifact when a repository is wired
func (s *TrainerService) Train(ctx context.Context, vectors []*models.FeatureVector, labels []float64, path string) (*model.TrainedModel, *models.ModelArtifact, error) {
	start := time.Now()

	tm, err := model.Fit(vectors, labels, features.SchemaVersion, s.cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := model.Save(tm, path); err != nil {
		return nil, nil, fmt.Errorf("failed to persist model: %w", err)
	}

	metrics.RecordTraining(time.Since(start).Seconds(), tm.Metrics.LogLoss, tm.Metrics.AUC)
	s.logger.WithFields(logrus.Fields{
		"samples_train": tm.Metrics.SamplesTrain,
		"samples_val":   tm.Metrics.SamplesVal,
		"log_loss":      tm.Metrics.LogLoss,
		"brier":         tm.Metrics.Brier,
		"auc":           tm.Metrics.AUC,
		"duration":      time.Since(start),
		"path":          path,
	}).Info("Model trained")

	metricsJSON, err := json.Marshal(map[string]float64{
		"log_loss": tm.Metrics.LogLoss,
		"brier":    tm.Metrics.Brier,
		"auc":      tm.Metrics.AUC,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode metrics: %w", err)
	}

	artifact := &models.ModelArtifact{
		ID:            uuid.New(),
		Name:          "tennis-tips-logistic",
		Version:       features.SchemaVersion,
		FeatureSchema: tm.Schema,
		Path:          path,
		Metrics:       metricsJSON,
		TrainedAt:     time.Now().UTC(),
		Active:        true,
	}

	if s.modelRepo != nil {
		if err := s.modelRepo.Insert(ctx, artifact); err != nil {
			return nil, nil, fmt.Errorf("failed to register model artifact: %w", err)
		}
		if err := s.modelRepo.SetActive(ctx, artifact.ID); err != nil {
			return nil, nil, fmt.Errorf("failed to activate model artifact: %w", err)
		}
	}

	return tm, artifact, nil
}

// Evaluate scores an existing model against a labeled dataset and
// returns validation metrics plus the reliability curve
func (s *TrainerService) Evaluate(tm *model.TrainedModel, vectors []*models.FeatureVector, labels []float64) (model.TrainingMetrics, []model.CalibrationBucket, error) {
	if len(vectors) != len(labels) {
		return model.TrainingMetrics{}, nil, models.NewDataError("got %d vectors for %d labels", len(vectors), len(labels))
	}
	if len(vectors) == 0 {
		return model.TrainingMetrics{}, nil, models.NewDataError("empty evaluation dataset")
	}

	probs := make([]float64, len(vectors))
	for i, fv := range vectors {
		p, err := tm.Predict(fv)
		if err != nil {
			return model.TrainingMetrics{}, nil, err
		}
		probs[i] = p
	}

	metrics := model.TrainingMetrics{
		LogLoss:    model.LogLoss(probs, labels),
		Brier:      model.BrierScore(probs, labels),
		AUC:        model.AUC(probs, labels),
		SamplesVal: len(vectors),
	}
	curve := model.CalibrationCurve(probs, labels, 10)
	return metrics, curve, nil
}
