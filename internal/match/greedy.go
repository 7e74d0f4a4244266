package match

import (
	"math"
	"sort"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/tennis-tips/internal/models"
	"github.com/yourusername/tennis-tips/internal/normalize"
)

// GreedyMatcher consumes odds candidates greedily in result-chronological
// order. Each accepted odds record leaves the pool, so an earlier result
// can claim a record a later result would have scored higher on. This is
// a deliberate determinism-over-optimality trade; a minimum-cost
// assignment strategy can be swapped in behind Strategy.
type GreedyMatcher struct {
	cfg        Config
	normalizer *normalize.Normalizer
	logger     *logrus.Logger
}

// NewGreedyMatcher creates the default matching strategy
func NewGreedyMatcher(cfg Config, normalizer *normalize.Normalizer, logger *logrus.Logger) *GreedyMatcher {
	if logger == nil {
		logger = logrus.New()
	}
	if normalizer == nil {
		normalizer = normalize.New()
	}
	return &GreedyMatcher{cfg: cfg, normalizer: normalizer, logger: logger}
}

// Name returns the strategy name
func (g *GreedyMatcher) Name() string {
	return "greedy_by_date"
}

// candidate is an odds record with its normalized name pair
type candidate struct {
	index    int
	record   *models.OddsRecord
	keyA     string
	keyB     string
	consumed bool
}

// Match joins results with odds. Output preserves result order
// (chronological). Results without an acceptable candidate come back
// with no odds and confidence zero.
func (g *GreedyMatcher) Match(results []models.MatchResult, odds []models.OddsRecord) ([]models.MergedMatch, Stats) {
	stats := Stats{
		Results:     len(results),
		OddsRecords: len(odds),
		StartedAt:   time.Now(),
	}

	byDay := g.indexByDay(odds)

	merged := make([]models.MergedMatch, 0, len(results))
	for i := range results {
		res := &results[i]
		m := models.MergedMatch{Result: *res}

		best, score, swapped, ok := g.bestCandidate(res, byDay, &stats)
		if ok && score >= g.cfg.SimilarityThreshold {
			best.consumed = true
			oddsA, oddsB := best.record.OddsA, best.record.OddsB
			if swapped {
				oddsA, oddsB = oddsB, oddsA
			}
			m.OddsA = &oddsA
			m.OddsB = &oddsB
			m.Confidence = score
			stats.Matched++
		} else {
			stats.Unmatched++
		}
		merged = append(merged, m)
	}

	for day := range byDay {
		for _, c := range byDay[day] {
			if !c.consumed {
				stats.OddsLeftOver++
			}
		}
	}
	stats.Duration = time.Since(stats.StartedAt)

	g.logger.WithFields(logrus.Fields{
		"strategy":  g.Name(),
		"results":   stats.Results,
		"matched":   stats.Matched,
		"unmatched": stats.Unmatched,
		"ambiguous": stats.Ambiguous,
	}).Info("Fuzzy match complete")

	return merged, stats
}

// bestCandidate scans the tolerance window for the highest-scoring
// unconsumed odds record. Ties within TieEpsilon fall back to the
// smallest date delta; a tie on that too leaves the result unmatched
// rather than guessing.
func (g *GreedyMatcher) bestCandidate(res *models.MatchResult, byDay map[string][]*candidate, stats *Stats) (*candidate, float64, bool, bool) {
	keyA := g.normalizer.Normalize(res.PlayerA)
	keyB := g.normalizer.Normalize(res.PlayerB)

	type scored struct {
		cand    *candidate
		score   float64
		swapped bool
		delta   time.Duration
	}

	var contenders []scored
	bestScore := -1.0

	for offset := -g.cfg.DateToleranceDays; offset <= g.cfg.DateToleranceDays; offset++ {
		day := res.Date.AddDate(0, 0, offset).Format("2006-01-02")
		for _, c := range byDay[day] {
			if c.consumed {
				continue
			}
			score, swapped := pairScore(keyA, keyB, c.keyA, c.keyB)
			if score < g.cfg.SimilarityThreshold {
				continue
			}
			delta := res.Date.Sub(c.record.Date)
			if delta < 0 {
				delta = -delta
			}
			contenders = append(contenders, scored{cand: c, score: score, swapped: swapped, delta: delta})
			if score > bestScore {
				bestScore = score
			}
		}
	}

	if len(contenders) == 0 {
		return nil, 0, false, false
	}

	// keep only candidates tied with the best, then order by date delta
	tied := contenders[:0]
	for _, s := range contenders {
		if bestScore-s.score <= g.cfg.TieEpsilon {
			tied = append(tied, s)
		}
	}
	sort.SliceStable(tied, func(i, j int) bool {
		if tied[i].delta != tied[j].delta {
			return tied[i].delta < tied[j].delta
		}
		return tied[i].cand.index < tied[j].cand.index
	})

	if len(tied) > 1 && tied[0].delta == tied[1].delta {
		stats.Ambiguous++
		g.logger.WithFields(logrus.Fields{
			"player_a": res.PlayerA,
			"player_b": res.PlayerB,
			"date":     res.Date.Format("2006-01-02"),
		}).Debug("Ambiguous odds candidates, leaving unmatched")
		return nil, 0, false, false
	}

	return tied[0].cand, tied[0].score, tied[0].swapped, true
}

func (g *GreedyMatcher) indexByDay(odds []models.OddsRecord) map[string][]*candidate {
	byDay := make(map[string][]*candidate)
	for i := range odds {
		o := &odds[i]
		day := o.Date.Format("2006-01-02")
		byDay[day] = append(byDay[day], &candidate{
			index:  i,
			record: o,
			keyA:   g.normalizer.Normalize(o.PlayerA),
			keyB:   g.normalizer.Normalize(o.PlayerB),
		})
	}
	return byDay
}

// pairScore scores a result/odds name pairing in both player-order
// assignments and keeps the better one, so source labeling order does
// not matter. A pairing is only as good as its weaker name.
func pairScore(resA, resB, oddsA, oddsB string) (float64, bool) {
	straight := math.Min(similarity(resA, oddsA), similarity(resB, oddsB))
	crossed := math.Min(similarity(resA, oddsB), similarity(resB, oddsA))
	if crossed > straight {
		return crossed, true
	}
	return straight, false
}

// similarity is a normalized Levenshtein ratio in [0,1]
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}
