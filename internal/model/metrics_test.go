package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLossKnownValues(t *testing.T) {
	probs := []float64{0.8, 0.2}
	labels := []float64{1, 0}
	assert.InDelta(t, -math.Log(0.8), LogLoss(probs, labels), 1e-12)
	assert.Equal(t, 0.0, LogLoss(nil, nil))
}

func TestBrierScoreKnownValues(t *testing.T) {
	probs := []float64{0.8, 0.2}
	labels := []float64{1, 0}
	assert.InDelta(t, 0.04, BrierScore(probs, labels), 1e-12)

	// a perfect forecast scores zero
	assert.Equal(t, 0.0, BrierScore([]float64{1, 0}, []float64{1, 0}))
}

func TestAUCPerfectRanking(t *testing.T) {
	probs := []float64{0.1, 0.2, 0.8, 0.9}
	labels := []float64{0, 0, 1, 1}
	assert.InDelta(t, 1.0, AUC(probs, labels), 1e-9)
}

func TestAUCInvertedRanking(t *testing.T) {
	probs := []float64{0.9, 0.8, 0.2, 0.1}
	labels := []float64{0, 0, 1, 1}
	assert.InDelta(t, 0.0, AUC(probs, labels), 1e-9)
}

func TestCalibrationCurveBuckets(t *testing.T) {
	probs := []float64{0.05, 0.15, 0.85, 0.95}
	labels := []float64{0, 0, 1, 1}

	curve := CalibrationCurve(probs, labels, 10)
	require.Len(t, curve, 4)
	assert.Equal(t, 1, curve[0].Count)
	assert.InDelta(t, 0.05, curve[0].MeanPredicted, 1e-12)
	assert.Equal(t, 0.0, curve[0].EmpiricalRate)
	assert.InDelta(t, 0.95, curve[3].MeanPredicted, 1e-12)
	assert.Equal(t, 1.0, curve[3].EmpiricalRate)
}

func TestExpectedCalibrationError(t *testing.T) {
	// each bucket is off by exactly its predicted probability gap
	probs := []float64{0.3, 0.3, 0.7, 0.7}
	labels := []float64{0, 0, 1, 1}
	assert.InDelta(t, 0.3, ExpectedCalibrationError(probs, labels, 10), 1e-12)

	assert.Equal(t, 0.0, ExpectedCalibrationError(nil, nil, 10))
}
