// Package tips combines calibrated win probabilities with market odds
// to flag positive-expected-value bets.
package tips

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/tennis-tips/internal/features"
	"github.com/yourusername/tennis-tips/internal/model"
	"github.com/yourusername/tennis-tips/internal/models"
	"github.com/yourusername/tennis-tips/internal/rating"
)

// Config holds the value-bet selection parameters
type Config struct {
	// EdgeThreshold is the minimum edge for a positive decision
	EdgeThreshold float64
	// MinProbability and MaxProbability reject degenerate predictions
	MinProbability float64
	MaxProbability float64
	// KellyFraction scales the full Kelly stake; KellyCap bounds it
	KellyFraction float64
	KellyCap      float64
	// FatigueAdjust applies the workload penalty before computing
	// edges
	FatigueAdjust bool
}

// DefaultConfig returns the standard selection parameters
func DefaultConfig() Config {
	return Config{
		EdgeThreshold:  0.05,
		MinProbability: 0.05,
		MaxProbability: 0.95,
		KellyFraction:  0.25,
		KellyCap:       0.05,
		FatigueAdjust:  true,
	}
}

// Generator produces tips for fixtures using a trained model and the
// current rating state
type Generator struct {
	cfg     Config
	model   *model.TrainedModel
	builder *features.Builder
	engine  *rating.Engine
	fatigue features.FatigueParams
	logger  *logrus.Logger
}

// NewGenerator creates a tip generator
func NewGenerator(cfg Config, tm *model.TrainedModel, builder *features.Builder, engine *rating.Engine, fatigue features.FatigueParams, logger *logrus.Logger) *Generator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Generator{
		cfg:     cfg,
		model:   tm,
		builder: builder,
		engine:  engine,
		fatigue: fatigue,
		logger:  logger,
	}
}

// Generate emits one tip per fixture side. Fixtures without usable
// odds are an error; prediction failures surface to the caller.
func (g *Generator) Generate(fixture models.Fixture) ([]models.Tip, error) {
	if !fixture.HasOdds() {
		return nil, models.NewValidationError("fixture_missing_odds",
			fmt.Sprintf("%s vs %s has no usable odds", fixture.PlayerA, fixture.PlayerB))
	}

	snapA, snapB := g.engine.SnapshotPair(fixture.PlayerA, fixture.PlayerB, fixture.Surface, fixture.Date)
	fv := g.builder.BuildPair(snapA, snapB, fixture.Surface)

	probA, err := g.model.Predict(fv)
	if err != nil {
		return nil, fmt.Errorf("prediction for %s vs %s: %w", fixture.PlayerA, fixture.PlayerB, err)
	}
	probB := 1 - probA

	if g.cfg.FatigueAdjust {
		probA, probB = g.fatigue.AdjustProbabilities(probA, probB, snapA, snapB)
	}

	oddsA, _ := fixture.OddsA.Float64()
	oddsB, _ := fixture.OddsB.Float64()
	now := time.Now()

	tipsOut := []models.Tip{
		g.buildTip(fixture, models.TipSideA, probA, oddsA, now),
		g.buildTip(fixture, models.TipSideB, probB, oddsB, now),
	}
	tipsOut[0].Odds = fixture.OddsA
	tipsOut[1].Odds = fixture.OddsB
	return tipsOut, nil
}

// GenerateAll produces tips for a batch of fixtures, ordered by edge
// descending. Individual fixture failures are logged and skipped so a
// bad row cannot abort the batch.
func (g *Generator) GenerateAll(fixtures []models.Fixture) []models.Tip {
	var out []models.Tip
	failed := 0
	for i := range fixtures {
		tips, err := g.Generate(fixtures[i])
		if err != nil {
			failed++
			g.logger.WithFields(logrus.Fields{
				"player_a": fixtures[i].PlayerA,
				"player_b": fixtures[i].PlayerB,
				"error":    err,
			}).Warn("Skipping fixture")
			continue
		}
		out = append(out, tips...)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Edge > out[j].Edge })

	g.logger.WithFields(logrus.Fields{
		"fixtures": len(fixtures),
		"tips":     len(out),
		"failed":   failed,
	}).Info("Tip generation complete")
	return out
}

func (g *Generator) buildTip(fixture models.Fixture, side models.TipSide, prob, odds float64, at time.Time) models.Tip {
	edge := Edge(prob, odds)
	return models.Tip{
		ID:           uuid.New(),
		FixtureDate:  fixture.Date,
		PlayerA:      fixture.PlayerA,
		PlayerB:      fixture.PlayerB,
		Surface:      fixture.Surface,
		Side:         side,
		Probability:  prob,
		Edge:         edge,
		StakeSuggest: g.stake(prob, odds),
		Decision:     g.decide(prob, edge),
		GeneratedAt:  at,
	}
}

func (g *Generator) decide(prob, edge float64) bool {
	if prob < g.cfg.MinProbability || prob > g.cfg.MaxProbability {
		return false
	}
	return edge >= g.cfg.EdgeThreshold
}

func (g *Generator) stake(prob, odds float64) float64 {
	k := g.cfg.KellyFraction * KellyFraction(prob, odds)
	if k > g.cfg.KellyCap {
		k = g.cfg.KellyCap
	}
	return k
}

// Edge is the expected value of a unit stake: probability*odds - 1
func Edge(prob, odds float64) float64 {
	return prob*odds - 1
}

// KellyFraction is the full-Kelly bankroll fraction for a positive-
// edge bet, zero otherwise
func KellyFraction(prob, odds float64) float64 {
	b := odds - 1
	if b <= 0 {
		return 0
	}
	f := Edge(prob, odds) / b
	if f < 0 {
		return 0
	}
	return f
}
