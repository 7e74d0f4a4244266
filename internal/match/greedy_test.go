package match

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/tennis-tips/internal/models"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func result(date time.Time, a, b string) models.MatchResult {
	return models.MatchResult{Date: date, PlayerA: a, PlayerB: b, Winner: models.WinnerA, Surface: models.SurfaceHard}
}

func oddsRec(date time.Time, a, b string, oa, ob float64) models.OddsRecord {
	return models.OddsRecord{
		Date:    date,
		PlayerA: a,
		PlayerB: b,
		OddsA:   decimal.NewFromFloat(oa),
		OddsB:   decimal.NewFromFloat(ob),
	}
}

func newTestMatcher() *GreedyMatcher {
	return NewGreedyMatcher(DefaultConfig(), nil, nil)
}

func TestMatchExactNames(t *testing.T) {
	m := newTestMatcher()
	results := []models.MatchResult{result(day(2024, 1, 15), "Roger Federer", "Rafael Nadal")}
	odds := []models.OddsRecord{oddsRec(day(2024, 1, 15), "Federer R.", "Nadal R.", 1.50, 2.60)}

	merged, stats := m.Match(results, odds)
	require.Len(t, merged, 1)
	assert.Equal(t, 1, stats.Matched)
	require.True(t, merged[0].HasOdds())
	assert.InDelta(t, 1.50, merged[0].OddsAFloat(), 1e-9)
	assert.Greater(t, merged[0].Confidence, 0.9)
}

func TestMatchWithinDateTolerance(t *testing.T) {
	m := newTestMatcher()
	results := []models.MatchResult{result(day(2024, 1, 15), "Roger Federer", "Rafael Nadal")}
	odds := []models.OddsRecord{oddsRec(day(2024, 1, 16), "Roger Federer", "Rafael Nadal", 1.50, 2.60)}

	merged, stats := m.Match(results, odds)
	assert.Equal(t, 1, stats.Matched)
	assert.True(t, merged[0].HasOdds())
}

func TestMatchOutsideDateTolerance(t *testing.T) {
	m := newTestMatcher()
	results := []models.MatchResult{result(day(2024, 1, 15), "Roger Federer", "Rafael Nadal")}
	odds := []models.OddsRecord{oddsRec(day(2024, 1, 18), "Roger Federer", "Rafael Nadal", 1.50, 2.60)}

	merged, stats := m.Match(results, odds)
	assert.Equal(t, 0, stats.Matched)
	assert.Equal(t, 1, stats.Unmatched)
	assert.False(t, merged[0].HasOdds())
	assert.Equal(t, 0.0, merged[0].Confidence)
	assert.Equal(t, 1, stats.OddsLeftOver)
}

func TestMatchCrossedPlayerOrder(t *testing.T) {
	m := newTestMatcher()
	results := []models.MatchResult{result(day(2024, 1, 15), "Roger Federer", "Rafael Nadal")}
	odds := []models.OddsRecord{oddsRec(day(2024, 1, 15), "Rafael Nadal", "Roger Federer", 2.60, 1.50)}

	merged, _ := m.Match(results, odds)
	require.True(t, merged[0].HasOdds())
	// odds swap with the crossed assignment so sides stay aligned
	assert.InDelta(t, 1.50, merged[0].OddsAFloat(), 1e-9)
	assert.InDelta(t, 2.60, merged[0].OddsBFloat(), 1e-9)
}

func TestMatchDissimilarNamesRejected(t *testing.T) {
	m := newTestMatcher()
	results := []models.MatchResult{result(day(2024, 1, 15), "Roger Federer", "Rafael Nadal")}
	odds := []models.OddsRecord{oddsRec(day(2024, 1, 15), "Novak Djokovic", "Andy Murray", 1.50, 2.60)}

	_, stats := m.Match(results, odds)
	assert.Equal(t, 0, stats.Matched)
	assert.Equal(t, 1, stats.Unmatched)
}

func TestMatchConsumesCandidates(t *testing.T) {
	m := newTestMatcher()
	results := []models.MatchResult{
		result(day(2024, 1, 15), "Roger Federer", "Rafael Nadal"),
		result(day(2024, 1, 15), "Roger Federer", "Rafael Nadal"),
	}
	odds := []models.OddsRecord{oddsRec(day(2024, 1, 15), "Roger Federer", "Rafael Nadal", 1.50, 2.60)}

	_, stats := m.Match(results, odds)
	// one record cannot serve two results
	assert.Equal(t, 1, stats.Matched)
	assert.Equal(t, 1, stats.Unmatched)
	assert.Equal(t, 0, stats.OddsLeftOver)
}

func TestMatchAmbiguousTieLeftUnmatched(t *testing.T) {
	m := newTestMatcher()
	results := []models.MatchResult{result(day(2024, 1, 15), "Roger Federer", "Rafael Nadal")}
	// two identical candidates on the same day: equal score, equal delta
	odds := []models.OddsRecord{
		oddsRec(day(2024, 1, 15), "Roger Federer", "Rafael Nadal", 1.50, 2.60),
		oddsRec(day(2024, 1, 15), "Roger Federer", "Rafael Nadal", 1.55, 2.50),
	}

	merged, stats := m.Match(results, odds)
	assert.Equal(t, 0, stats.Matched)
	assert.Equal(t, 1, stats.Ambiguous)
	assert.False(t, merged[0].HasOdds())
}

func TestMatchTieBrokenByDateDelta(t *testing.T) {
	m := newTestMatcher()
	results := []models.MatchResult{result(day(2024, 1, 15), "Roger Federer", "Rafael Nadal")}
	odds := []models.OddsRecord{
		oddsRec(day(2024, 1, 16), "Roger Federer", "Rafael Nadal", 1.40, 2.90),
		oddsRec(day(2024, 1, 15), "Roger Federer", "Rafael Nadal", 1.50, 2.60),
	}

	merged, stats := m.Match(results, odds)
	require.Equal(t, 1, stats.Matched)
	assert.InDelta(t, 1.50, merged[0].OddsAFloat(), 1e-9)
}

func TestMatchDeterministic(t *testing.T) {
	m := newTestMatcher()
	results := []models.MatchResult{
		result(day(2024, 1, 15), "Roger Federer", "Rafael Nadal"),
		result(day(2024, 1, 16), "Novak Djokovic", "Andy Murray"),
	}
	odds := []models.OddsRecord{
		oddsRec(day(2024, 1, 16), "Djokovic N.", "Murray A.", 1.30, 3.40),
		oddsRec(day(2024, 1, 15), "Federer R.", "Nadal R.", 1.50, 2.60),
	}

	first, _ := m.Match(results, odds)
	second, _ := newTestMatcher().Match(results, odds)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Confidence, second[i].Confidence)
		assert.Equal(t, first[i].HasOdds(), second[i].HasOdds())
	}
}

func TestPairScore(t *testing.T) {
	score, swapped := pairScore("federer roger", "nadal rafael", "federer roger", "nadal rafael")
	assert.Equal(t, 1.0, score)
	assert.False(t, swapped)

	score, swapped = pairScore("federer roger", "nadal rafael", "nadal rafael", "federer roger")
	assert.Equal(t, 1.0, score)
	assert.True(t, swapped)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("federer", "federer"))
	assert.Equal(t, 0.0, similarity("", "federer"))
	assert.InDelta(t, 1.0-1.0/7.0, similarity("federer", "fedarer"), 1e-9)
}
