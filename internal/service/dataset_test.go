package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/tennis-tips/internal/features"
	"github.com/yourusername/tennis-tips/internal/match"
	"github.com/yourusername/tennis-tips/internal/models"
	"github.com/yourusername/tennis-tips/internal/rating"
)

func newTestDatasetService() *DatasetService {
	return NewDatasetService(
		match.NewGreedyMatcher(match.DefaultConfig(), nil, nil),
		rating.NewEngine(rating.DefaultConfig(), nil, nil),
		features.NewBuilder(features.DefaultConfig()),
		nil,
		nil,
	)
}

// sampleResults lists every winner first, the way the archives do
func sampleResults(n int) []models.MatchResult {
	names := []string{
		"Alice Smith", "Bena Jones", "Cara Lopez", "Dana Kim",
		"Eve North", "Fay Ouma", "Gia Patel", "Hana Quinn",
	}
	out := make([]models.MatchResult, 0, n)
	for i := 0; i < n; i++ {
		a := names[i%len(names)]
		b := names[(i+3)%len(names)]
		out = append(out, models.MatchResult{
			Date:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			PlayerA: a,
			PlayerB: b,
			Winner:  models.WinnerA,
			Surface: models.SurfaceHard,
		})
	}
	return out
}

func TestBuildRejectsEmptyResults(t *testing.T) {
	_, err := newTestDatasetService().Build(context.Background(), nil, nil)
	require.Error(t, err)
	assert.True(t, models.IsDataError(err))
}

func TestBuildBalancesLabels(t *testing.T) {
	ds, err := newTestDatasetService().Build(context.Background(), sampleResults(40), nil)
	require.NoError(t, err)
	require.Len(t, ds.Labels, 40)

	// winner-first input would be all ones without the orientation flip
	var pos, neg int
	for _, y := range ds.Labels {
		if y > 0.5 {
			pos++
		} else {
			neg++
		}
	}
	assert.Greater(t, pos, 0)
	assert.Greater(t, neg, 0)
}

func TestBuildDeterministic(t *testing.T) {
	results := sampleResults(20)

	ds1, err := newTestDatasetService().Build(context.Background(), results, nil)
	require.NoError(t, err)
	ds2, err := newTestDatasetService().Build(context.Background(), results, nil)
	require.NoError(t, err)

	require.Equal(t, len(ds1.Vectors), len(ds2.Vectors))
	assert.Equal(t, ds1.Labels, ds2.Labels)
	for i := range ds1.Vectors {
		assert.Equal(t, ds1.Vectors[i].Values, ds2.Vectors[i].Values)
	}
	for i := range ds1.Merged {
		assert.Equal(t, ds1.Merged[i].Result.PlayerA, ds2.Merged[i].Result.PlayerA)
	}
}

func TestFlipOrientationIsAnInvolution(t *testing.T) {
	oddsA := decimal.NewFromFloat(1.5)
	oddsB := decimal.NewFromFloat(2.6)
	m := models.MergedMatch{
		Result: models.MatchResult{
			Date:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			PlayerA: "Alice Smith",
			PlayerB: "Bena Jones",
			Winner:  models.WinnerA,
		},
		OddsA: &oddsA,
		OddsB: &oddsB,
	}
	orig := m

	flipOrientation(&m)
	assert.Equal(t, "Bena Jones", m.Result.PlayerA)
	assert.Equal(t, models.WinnerB, m.Result.Winner)
	assert.True(t, m.OddsA.Equal(*orig.OddsB))

	flipOrientation(&m)
	assert.Equal(t, orig.Result.PlayerA, m.Result.PlayerA)
	assert.Equal(t, orig.Result.Winner, m.Result.Winner)
	assert.True(t, m.OddsA.Equal(*orig.OddsA))
}

func TestShouldFlipOrientationIgnoresInputOrder(t *testing.T) {
	m := models.MergedMatch{Result: models.MatchResult{
		Date:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PlayerA: "Alice Smith",
		PlayerB: "Bena Jones",
	}}
	first := shouldFlipOrientation(&m)
	second := shouldFlipOrientation(&m)
	assert.Equal(t, first, second)
}

func TestExportLoadCSVRoundTrip(t *testing.T) {
	svc := newTestDatasetService()
	ds, err := svc.Build(context.Background(), sampleResults(10), nil)
	require.NoError(t, err)
	require.NotEmpty(t, ds.Vectors)

	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, svc.ExportCSV(path, ds))

	vectors, labels, err := LoadCSV(path, ds.Schema)
	require.NoError(t, err)
	require.Len(t, vectors, len(ds.Vectors))
	assert.Equal(t, ds.Labels, labels)
	for i := range vectors {
		assert.Equal(t, ds.Vectors[i].Values, vectors[i].Values)
	}
}

func TestLoadCSVRejectsForeignSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte("foo,bar,label\n1,2,1\n"), 0o644))

	_, _, err := LoadCSV(path, []string{"elo_diff", "form_diff"})
	require.Error(t, err)
	assert.True(t, models.IsSchemaError(err))
}

func TestLoadCSVSkipsUnparseableRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	data := "x1,x2,label\n1,2,1\nbad,2,1\n3,4,0\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	vectors, labels, err := LoadCSV(path, []string{"x1", "x2"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float64{1, 0}, labels)
}
