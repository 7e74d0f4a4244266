package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlattIdentityOnCalibratedScores(t *testing.T) {
	// empirical rates match the scores exactly, so the optimum is the
	// identity mapping and gradient descent must not move off it
	scores := []float64{0.25, 0.25, 0.25, 0.25, 0.75, 0.75, 0.75, 0.75}
	labels := []float64{1, 0, 0, 0, 1, 1, 1, 0}

	c := &PlattCalibrator{}
	require.NoError(t, c.Fit(scores, labels))
	assert.InDelta(t, 1.0, c.A, 1e-9)
	assert.InDelta(t, 0.0, c.B, 1e-9)
	assert.InDelta(t, 0.25, c.Apply(0.25), 1e-9)
	assert.InDelta(t, 0.75, c.Apply(0.75), 1e-9)
}

func TestPlattShiftsOverconfidentScores(t *testing.T) {
	// the classifier says 0.9 but only wins 60% of the time
	scores := make([]float64, 10)
	labels := make([]float64, 10)
	for i := range scores {
		scores[i] = 0.9
		if i < 6 {
			labels[i] = 1
		}
	}

	c := &PlattCalibrator{}
	require.NoError(t, c.Fit(scores, labels))
	assert.Less(t, c.Apply(0.9), 0.9)
}

func TestPlattApplyMonotone(t *testing.T) {
	c := &PlattCalibrator{A: 1.3, B: -0.2}
	prev := c.Apply(0.01)
	for p := 0.05; p < 1.0; p += 0.05 {
		cur := c.Apply(p)
		assert.Greater(t, cur, prev)
		prev = cur
	}
}

func TestIsotonicPoolAdjacentViolators(t *testing.T) {
	// the violating middle pair pools into a single 0.5 block
	scores := []float64{0.1, 0.2, 0.3, 0.4}
	labels := []float64{0, 1, 0, 1}

	c := &IsotonicCalibrator{}
	require.NoError(t, c.Fit(scores, labels))

	require.Equal(t, []float64{0.1, 0.25, 0.4}, c.Thresholds)
	require.Equal(t, []float64{0, 0.5, 1}, c.Outputs)

	assert.Equal(t, 0.0, c.Apply(0.05))
	assert.InDelta(t, 0.5, c.Apply(0.25), 1e-9)
	assert.Equal(t, 1.0, c.Apply(0.9))
}

func TestIsotonicApplyMonotone(t *testing.T) {
	scores := []float64{0.1, 0.2, 0.3, 0.5, 0.6, 0.8, 0.9}
	labels := []float64{0, 1, 0, 0, 1, 1, 1}

	c := &IsotonicCalibrator{}
	require.NoError(t, c.Fit(scores, labels))

	prev := c.Apply(0.0)
	for s := 0.05; s <= 1.0; s += 0.05 {
		cur := c.Apply(s)
		assert.GreaterOrEqual(t, cur, prev-1e-12)
		prev = cur
	}
}

func TestIsotonicEmptyIsIdentity(t *testing.T) {
	c := &IsotonicCalibrator{}
	assert.Equal(t, 0.42, c.Apply(0.42))
}
