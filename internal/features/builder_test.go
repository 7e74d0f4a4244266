package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/tennis-tips/internal/models"
	"github.com/yourusername/tennis-tips/internal/rating"
)

func snap(ratingOverall, surface, form, h2h float64, daysSince, m7, m14, m30 int) rating.Snapshot {
	return rating.Snapshot{
		Rating:        ratingOverall,
		SurfaceRating: surface,
		Form:          form,
		H2HScore:      h2h,
		DaysSinceLast: daysSince,
		Matches7d:     m7,
		Matches14d:    m14,
		Matches30d:    m30,
	}
}

func TestBuildPairDiffs(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	a := snap(1600, 1620, 0.7, 0.5, 3, 1, 2, 4)
	p := snap(1500, 1480, 0.5, -0.5, 5, 0, 1, 2)

	fv := b.BuildPair(a, p, models.SurfaceClay)
	require.NotNil(t, fv)
	require.Equal(t, b.Schema(), fv.Schema)

	get := func(name string) float64 {
		v, ok := fv.Get(name)
		require.True(t, ok, name)
		return v
	}

	assert.InDelta(t, 100, get(FeatEloDiff), 1e-9)
	assert.InDelta(t, 140, get(FeatEloSurfDiff), 1e-9)
	assert.InDelta(t, 0.2, get(FeatFormDiff), 1e-9)
	assert.InDelta(t, 1.0, get(FeatH2HDiff), 1e-9)
	assert.InDelta(t, -2, get(FeatRestDiff), 1e-9)
	assert.Equal(t, 0.0, get(FeatSurfHard))
	assert.Equal(t, 1.0, get(FeatSurfClay))
	assert.Equal(t, 0.0, get(FeatSurfGrass))
}

func TestBuildPairAntisymmetric(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	a := snap(1600, 1620, 0.7, 0.5, 3, 1, 2, 4)
	p := snap(1500, 1480, 0.5, -0.5, 5, 0, 1, 2)

	ab := b.BuildPair(a, p, models.SurfaceHard)
	ba := b.BuildPair(p, a, models.SurfaceHard)

	for _, name := range []string{FeatEloDiff, FeatEloSurfDiff, FeatFormDiff, FeatH2HDiff, FeatFatigueDiff, FeatRestDiff} {
		va, _ := ab.Get(name)
		vb, _ := ba.Get(name)
		assert.InDelta(t, -va, vb, 1e-9, name)
	}
}

func TestRestDiffCapped(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	// no-history sentinel must not dominate the feature
	a := snap(1500, 1500, 0.5, 0, 9999, 0, 0, 0)
	p := snap(1500, 1500, 0.5, 0, 2, 0, 0, 0)

	fv := b.BuildPair(a, p, models.SurfaceHard)
	v, _ := fv.Get(FeatRestDiff)
	assert.InDelta(t, 58, v, 1e-9)
}

func TestLabel(t *testing.T) {
	mk := func(w models.WinnerSide) rating.MatchSnapshot {
		return rating.MatchSnapshot{Match: models.MergedMatch{Result: models.MatchResult{Winner: w}}}
	}

	y, ok := Label(mk(models.WinnerA))
	assert.True(t, ok)
	assert.Equal(t, 1.0, y)

	y, ok = Label(mk(models.WinnerB))
	assert.True(t, ok)
	assert.Equal(t, 0.0, y)

	_, ok = Label(mk(models.WinnerUnknown))
	assert.False(t, ok)
}

func TestFatiguePenaltyIncrementalWindows(t *testing.T) {
	p := DefaultFatigueParams()

	// 2 in 7d, 3 in 14d, 5 in 30d, well rested
	s := snap(1500, 1500, 0.5, 0, 4, 2, 3, 5)
	want := 0.015*2 + 0.010*1 + 0.005*2
	assert.InDelta(t, want, p.Penalty(s), 1e-9)

	// back to back adds the flat penalty
	s.DaysSinceLast = 1
	assert.InDelta(t, want+0.030, p.Penalty(s), 1e-9)

	// short rest is the milder flat penalty
	s.DaysSinceLast = 2
	assert.InDelta(t, want+0.015, p.Penalty(s), 1e-9)
}

func TestAdjustProbabilitiesRenormalizes(t *testing.T) {
	p := DefaultFatigueParams()
	tired := snap(1500, 1500, 0.5, 0, 1, 4, 6, 8)
	fresh := snap(1500, 1500, 0.5, 0, 10, 0, 0, 0)

	a, b := p.AdjustProbabilities(0.6, 0.4, tired, fresh)
	assert.InDelta(t, 1.0, a+b, 1e-9)
	// the tired side loses probability mass
	assert.Less(t, a, 0.6)
	assert.Greater(t, b, 0.4)
}

func TestAdjustProbabilitiesClamped(t *testing.T) {
	p := DefaultFatigueParams()
	tired := snap(1500, 1500, 0.5, 0, 1, 10, 15, 20)
	fresh := snap(1500, 1500, 0.5, 0, 10, 0, 0, 0)

	a, b := p.AdjustProbabilities(0.1, 0.9, tired, fresh)
	assert.InDelta(t, 1.0, a+b, 1e-9)
	assert.GreaterOrEqual(t, a, 0.0)
	// clamp floor keeps the weaker side above zero before renormalizing
	assert.Greater(t, a, 0.01)
}
