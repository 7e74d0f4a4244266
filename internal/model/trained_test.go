package model

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/tennis-tips/internal/models"
)

var testSchema = []string{"x1", "x2"}

func vec(t *testing.T, values ...float64) *models.FeatureVector {
	t.Helper()
	fv, err := models.NewFeatureVector(testSchema, values)
	require.NoError(t, err)
	return fv
}

// separableData builds a set where the first feature determines the
// label and the second is noise
func separableData(t *testing.T, n int) ([]*models.FeatureVector, []float64) {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	vectors := make([]*models.FeatureVector, n)
	labels := make([]float64, n)
	for i := 0; i < n; i++ {
		x1 := rng.Float64()*4 - 2
		x2 := rng.NormFloat64()
		vectors[i] = vec(t, x1, x2)
		if x1 > 0 {
			labels[i] = 1
		}
	}
	return vectors, labels
}

func testFitConfig() Config {
	cfg := DefaultConfig()
	cfg.MinSamples = 50
	return cfg
}

func TestFitRejectsCountMismatch(t *testing.T) {
	vectors, labels := separableData(t, 100)
	_, err := Fit(vectors, labels[:99], "v2", testFitConfig())
	require.Error(t, err)
	assert.True(t, models.IsDataError(err))
}

func TestFitRejectsTooFewSamples(t *testing.T) {
	vectors, labels := separableData(t, 20)
	_, err := Fit(vectors, labels, "v2", testFitConfig())
	require.Error(t, err)
	assert.True(t, models.IsDataError(err))
}

func TestFitRejectsSingleClass(t *testing.T) {
	vectors, _ := separableData(t, 100)
	labels := make([]float64, 100)
	for i := range labels {
		labels[i] = 1
	}
	_, err := Fit(vectors, labels, "v2", testFitConfig())
	require.Error(t, err)
	assert.True(t, models.IsDataError(err))
}

func TestFitRejectsUnknownCalibration(t *testing.T) {
	vectors, labels := separableData(t, 100)
	cfg := testFitConfig()
	cfg.Calibration = "temperature"
	_, err := Fit(vectors, labels, "v2", cfg)
	require.Error(t, err)
	assert.True(t, models.IsDataError(err))
}

func TestFitSeparatesClasses(t *testing.T) {
	vectors, labels := separableData(t, 400)
	tm, err := Fit(vectors, labels, "v2", testFitConfig())
	require.NoError(t, err)
	require.Equal(t, "v2", tm.SchemaVersion)
	assert.Equal(t, 400, tm.Metrics.SamplesTrain+tm.Metrics.SamplesVal)
	assert.Greater(t, tm.Metrics.AUC, 0.9)

	strong, err := tm.Predict(vec(t, 1.8, 0))
	require.NoError(t, err)
	weak, err := tm.Predict(vec(t, -1.8, 0))
	require.NoError(t, err)
	assert.Greater(t, strong, 0.7)
	assert.Less(t, weak, 0.3)
}

func TestFitDeterministic(t *testing.T) {
	vectors, labels := separableData(t, 400)
	tm1, err := Fit(vectors, labels, "v2", testFitConfig())
	require.NoError(t, err)
	tm2, err := Fit(vectors, labels, "v2", testFitConfig())
	require.NoError(t, err)

	assert.Equal(t, tm1.Classifier.Weights, tm2.Classifier.Weights)
	assert.Equal(t, tm1.Classifier.Bias, tm2.Classifier.Bias)
	assert.Equal(t, tm1.Metrics, tm2.Metrics)
}

// TestFitTracksKnownProbabilities checks the full fit-then-predict path
// against data whose true win probability is known by construction: the
// first feature is a rating gap and labels are drawn from the Elo
// expectation curve, so calibrated predictions must track that curve.
func TestFitTracksKnownProbabilities(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const n = 4000

	vectors := make([]*models.FeatureVector, n)
	labels := make([]float64, n)
	truth := make([]float64, n)
	for i := 0; i < n; i++ {
		gap := rng.Float64()*800 - 400
		truth[i] = 1.0 / (1.0 + math.Pow(10, -gap/400))
		vectors[i] = vec(t, gap, rng.NormFloat64())
		if rng.Float64() < truth[i] {
			labels[i] = 1
		}
	}

	tm, err := Fit(vectors, labels, "v2", testFitConfig())
	require.NoError(t, err)

	preds := make([]float64, n)
	sumAbs := 0.0
	for i := range vectors {
		p, err := tm.Predict(vectors[i])
		require.NoError(t, err)
		preds[i] = p
		sumAbs += math.Abs(p - truth[i])
	}
	assert.Less(t, sumAbs/float64(n), 0.05)

	// bucketed by true probability, the mean prediction has to track
	// the mean truth in every band
	const buckets = 5
	var sumP, sumT [buckets]float64
	var count [buckets]int
	for i := range preds {
		b := int(truth[i] * buckets)
		if b == buckets {
			b--
		}
		sumP[b] += preds[i]
		sumT[b] += truth[i]
		count[b]++
	}
	for b := 0; b < buckets; b++ {
		require.NotZero(t, count[b])
		assert.InDelta(t, sumT[b]/float64(count[b]), sumP[b]/float64(count[b]), 0.07)
	}

	// reliability against the drawn labels
	assert.Less(t, ExpectedCalibrationError(preds, labels, 10), 0.06)
}

func TestPredictRejectsSchemaMismatch(t *testing.T) {
	vectors, labels := separableData(t, 100)
	tm, err := Fit(vectors, labels, "v2", testFitConfig())
	require.NoError(t, err)

	other, err := models.NewFeatureVector([]string{"x1", "x2", "x3"}, []float64{1, 0, 0})
	require.NoError(t, err)
	_, err = tm.Predict(other)
	require.Error(t, err)
	assert.True(t, models.IsSchemaError(err))
}

func TestMarshalUnmarshalIdenticalPredictions(t *testing.T) {
	vectors, labels := separableData(t, 200)
	tm, err := Fit(vectors, labels, "v2", testFitConfig())
	require.NoError(t, err)

	data, err := tm.Marshal()
	require.NoError(t, err)
	restored, err := Unmarshal(data)
	require.NoError(t, err)

	for _, x1 := range []float64{-1.5, -0.3, 0, 0.3, 1.5} {
		fv := vec(t, x1, 0.2)
		want, err := tm.Predict(fv)
		require.NoError(t, err)
		got, err := restored.Predict(fv)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestUnmarshalRejectsIncompleteArtifact(t *testing.T) {
	_, err := Unmarshal([]byte("{not json"))
	assert.Error(t, err)

	_, err = Unmarshal([]byte(`{"schema_version":"v2"}`))
	require.Error(t, err)
	assert.True(t, models.IsDataError(err))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	vectors, labels := separableData(t, 200)
	tm, err := Fit(vectors, labels, "v2", testFitConfig())
	require.NoError(t, err)

	path := t.TempDir() + "/nested/model.json"
	require.NoError(t, Save(tm, path))

	restored, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, tm.Schema, restored.Schema)
	assert.Equal(t, tm.Classifier.Weights, restored.Classifier.Weights)
}

func TestIsotonicFitProducesCalibratedModel(t *testing.T) {
	vectors, labels := separableData(t, 400)
	cfg := testFitConfig()
	cfg.Calibration = CalibrationIsotonic
	tm, err := Fit(vectors, labels, "v2", cfg)
	require.NoError(t, err)
	require.NotNil(t, tm.Isotonic)
	assert.Nil(t, tm.Platt)

	p, err := tm.Predict(vec(t, 1.8, 0))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, p, 0.0)
	assert.LessOrEqual(t, p, 1.0)
}
