package features

import (
	"github.com/yourusername/tennis-tips/internal/rating"
)

// FatigueParams weights recent workload into a probability penalty
type FatigueParams struct {
	PerMatch7d  float64
	PerMatch14d float64
	PerMatch30d float64
	BackToBack  float64
	ShortRest   float64
	MinProb     float64
	MaxProb     float64
}

// DefaultFatigueParams returns the tuned linear weights
func DefaultFatigueParams() FatigueParams {
	return FatigueParams{
		PerMatch7d:  0.015,
		PerMatch14d: 0.010,
		PerMatch30d: 0.005,
		BackToBack:  0.030,
		ShortRest:   0.015,
		MinProb:     0.05,
		MaxProb:     0.95,
	}
}

// Penalty converts a player's recent workload into a linear
// probability penalty. Each trailing window only charges for the
// matches not already counted by a tighter window.
func (p FatigueParams) Penalty(s rating.Snapshot) float64 {
	pen := p.PerMatch7d * float64(s.Matches7d)
	if extra := s.Matches14d - s.Matches7d; extra > 0 {
		pen += p.PerMatch14d * float64(extra)
	}
	if extra := s.Matches30d - s.Matches14d; extra > 0 {
		pen += p.PerMatch30d * float64(extra)
	}
	switch {
	case s.DaysSinceLast <= 1:
		pen += p.BackToBack
	case s.DaysSinceLast <= 2:
		pen += p.ShortRest
	}
	return pen
}

// AdjustProbabilities penalizes the more fatigued side, clamps to the
// configured bounds and renormalizes so the pair still sums to one
func (p FatigueParams) AdjustProbabilities(probA, probB float64, snapA, snapB rating.Snapshot) (float64, float64) {
	a := clamp(probA-p.Penalty(snapA), p.MinProb, p.MaxProb)
	b := clamp(probB-p.Penalty(snapB), p.MinProb, p.MaxProb)
	if sum := a + b; sum > 0 {
		a, b = a/sum, b/sum
	}
	return a, b
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
