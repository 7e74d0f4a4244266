package model

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/yourusername/tennis-tips/internal/models"
)

// Config holds training parameters
type Config struct {
	// MinSamples is the smallest labeled dataset Fit accepts
	MinSamples int
	// ValidationSize is the fraction held out for calibration and
	// validation metrics
	ValidationSize float64
	// MaxIter bounds classifier optimization
	MaxIter int
	// Calibration selects "sigmoid" (Platt) or "isotonic"
	Calibration string
	// Seed drives the train/validation shuffle
	Seed int64
}

// DefaultConfig returns standard training parameters
func DefaultConfig() Config {
	return Config{
		MinSamples:     200,
		ValidationSize: 0.2,
		MaxIter:        1000,
		Calibration:    CalibrationSigmoid,
		Seed:           42,
	}
}

// TrainedModel is an immutable fitted classifier plus calibration,
// versioned by the feature schema it was trained against
type TrainedModel struct {
	SchemaVersion string              `json:"schema_version"`
	Schema        []string            `json:"schema"`
	Classifier    *LogisticRegression `json:"classifier"`
	Calibration   string              `json:"calibration"`
	Platt         *PlattCalibrator    `json:"platt,omitempty"`
	Isotonic      *IsotonicCalibrator `json:"isotonic,omitempty"`
	Metrics       TrainingMetrics     `json:"metrics"`
}

// Fit trains and calibrates a model on labeled feature vectors.
// Returns a DataError when there are fewer than MinSamples samples or
// the labels are all identical.
func Fit(vectors []*models.FeatureVector, labels []float64, schemaVersion string, cfg Config) (*TrainedModel, error) {
	if len(vectors) != len(labels) {
		return nil, models.NewDataError("got %d vectors for %d labels", len(vectors), len(labels))
	}
	if len(vectors) < cfg.MinSamples {
		return nil, models.NewDataError("%d labeled matches, need at least %d", len(vectors), cfg.MinSamples)
	}
	if !hasBothClasses(labels) {
		return nil, models.NewDataError("all labels identical, nothing to separate")
	}

	schema := vectors[0].Schema
	X := make([][]float64, len(vectors))
	for i, fv := range vectors {
		if !fv.MatchesSchema(schema) {
			return nil, &models.SchemaError{Expected: schema, Got: fv.Schema}
		}
		X[i] = fv.Values
	}

	trainX, trainY, valX, valY := split(X, labels, cfg.ValidationSize, cfg.Seed)

	clf := NewLogisticRegression(cfg.MaxIter)
	if err := clf.Fit(trainX, trainY); err != nil {
		return nil, fmt.Errorf("classifier fit: %w", err)
	}

	raw := make([]float64, len(valX))
	for i, x := range valX {
		raw[i] = clf.PredictProba(x)
	}

	tm := &TrainedModel{
		SchemaVersion: schemaVersion,
		Schema:        append([]string(nil), schema...),
		Classifier:    clf,
		Calibration:   cfg.Calibration,
	}

	var cal Calibrator
	switch cfg.Calibration {
	case CalibrationIsotonic:
		tm.Isotonic = &IsotonicCalibrator{}
		cal = tm.Isotonic
	case CalibrationSigmoid, "":
		tm.Platt = &PlattCalibrator{}
		cal = tm.Platt
	default:
		return nil, models.NewDataError("unknown calibration method %q", cfg.Calibration)
	}
	if err := cal.Fit(raw, valY); err != nil {
		return nil, fmt.Errorf("calibration fit: %w", err)
	}

	calibrated := make([]float64, len(raw))
	for i, s := range raw {
		calibrated[i] = cal.Apply(s)
	}
	tm.Metrics = TrainingMetrics{
		LogLoss:      LogLoss(calibrated, valY),
		Brier:        BrierScore(calibrated, valY),
		AUC:          AUC(calibrated, valY),
		SamplesTrain: len(trainX),
		SamplesVal:   len(valX),
	}

	return tm, nil
}

// Predict returns the calibrated win probability for player A. A
// vector whose schema differs from the training schema is a
// SchemaError.
func (tm *TrainedModel) Predict(fv *models.FeatureVector) (float64, error) {
	if !fv.MatchesSchema(tm.Schema) {
		return 0, &models.SchemaError{Expected: tm.Schema, Got: fv.Schema}
	}
	raw := tm.Classifier.PredictProba(fv.Values)
	return tm.calibrator().Apply(raw), nil
}

// Marshal serializes the model to its persisted JSON form
func (tm *TrainedModel) Marshal() ([]byte, error) {
	return json.MarshalIndent(tm, "", "  ")
}

// Unmarshal restores a model from its persisted form. A round trip
// reproduces identical predictions.
func Unmarshal(data []byte) (*TrainedModel, error) {
	var tm TrainedModel
	if err := json.Unmarshal(data, &tm); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}
	if tm.Classifier == nil || len(tm.Schema) == 0 {
		return nil, models.NewDataError("model artifact incomplete")
	}
	return &tm, nil
}

func (tm *TrainedModel) calibrator() Calibrator {
	if tm.Isotonic != nil {
		return tm.Isotonic
	}
	if tm.Platt != nil {
		return tm.Platt
	}
	// uncalibrated fallback
	return identityCalibrator{}
}

type identityCalibrator struct{}

func (identityCalibrator) Fit(_, _ []float64) error    { return nil }
func (identityCalibrator) Apply(score float64) float64 { return score }

func hasBothClasses(labels []float64) bool {
	var pos, neg bool
	for _, y := range labels {
		if y > 0.5 {
			pos = true
		} else {
			neg = true
		}
		if pos && neg {
			return true
		}
	}
	return false
}

// split shuffles deterministically by seed and carves off the
// validation fraction
func split(X [][]float64, y []float64, valSize float64, seed int64) ([][]float64, []float64, [][]float64, []float64) {
	n := len(X)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	nVal := int(float64(n) * valSize)
	if nVal < 1 {
		nVal = 1
	}
	if nVal >= n {
		nVal = n / 2
	}

	valX := make([][]float64, 0, nVal)
	valY := make([]float64, 0, nVal)
	trainX := make([][]float64, 0, n-nVal)
	trainY := make([]float64, 0, n-nVal)
	for i, id := range idx {
		if i < nVal {
			valX = append(valX, X[id])
			valY = append(valY, y[id])
		} else {
			trainX = append(trainX, X[id])
			trainY = append(trainY, y[id])
		}
	}
	return trainX, trainY, valX, valY
}
