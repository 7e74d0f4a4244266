// Package rating maintains per-player Elo skill state and replays
// match history chronologically to produce leak-free pre-match
// snapshots.
package rating

import (
	"time"

	"github.com/yourusername/tennis-tips/internal/models"
)

// Config holds the Elo parameters
type Config struct {
	// BaseRating is the rating every player starts from
	BaseRating float64
	// KFactor is the base update step
	KFactor float64
	// ScaleConstant is the Elo expectation curve denominator
	// (400 in standard chess Elo)
	ScaleConstant float64
	// SurfaceKBoost multiplies K on surface-specific tracks
	SurfaceKBoost float64
	// RookieMatches is the experience threshold below which K is
	// multiplied by RookieKMultiplier
	RookieMatches int
	// RookieKMultiplier inflates K while a player's rating is still
	// settling
	RookieKMultiplier float64
	// FormWindow is the trailing result count used for the form
	// indicator
	FormWindow int
	// H2HDecay discounts older head-to-head meetings
	H2HDecay float64
}

// DefaultConfig returns the parameters the dataset was tuned with
func DefaultConfig() Config {
	return Config{
		BaseRating:        1500,
		KFactor:           32,
		ScaleConstant:     400,
		SurfaceKBoost:     1.0,
		RookieMatches:     30,
		RookieKMultiplier: 1.10,
		FormWindow:        10,
		H2HDecay:          0.95,
	}
}

// H2HRecord tracks decayed head-to-head history against one opponent
type H2HRecord struct {
	Wins   int
	Losses int
	Weight float64
}

// PlayerState is the mutable per-player rating state. Owned exclusively
// by the Engine and mutated only through chronological replay.
type PlayerState struct {
	Name          string
	Overall       float64
	Surface       map[models.Surface]float64
	MatchesPlayed int
	RecentResults []int
	MatchDates    []time.Time
	LastMatchDate time.Time
	HeadToHead    map[string]H2HRecord
}

func newPlayerState(name string, base float64) *PlayerState {
	return &PlayerState{
		Name:       name,
		Overall:    base,
		Surface:    make(map[models.Surface]float64),
		HeadToHead: make(map[string]H2HRecord),
	}
}

// SurfaceRating returns the player's rating on a surface, falling back
// to the base rating before the first match there
func (p *PlayerState) SurfaceRating(surface models.Surface, base float64) float64 {
	if r, ok := p.Surface[surface]; ok {
		return r
	}
	return base
}

// Form is the win rate over the trailing window, 0.5 with no history
func (p *PlayerState) Form(window int) float64 {
	if len(p.RecentResults) == 0 {
		return 0.5
	}
	start := len(p.RecentResults) - window
	if start < 0 {
		start = 0
	}
	wins := 0
	for _, r := range p.RecentResults[start:] {
		wins += r
	}
	return float64(wins) / float64(len(p.RecentResults)-start)
}

// H2HScore is the decay-weighted head-to-head balance against an
// opponent, 0 with no meetings
func (p *PlayerState) H2HScore(opponentKey string) float64 {
	rec, ok := p.HeadToHead[opponentKey]
	if !ok || rec.Wins+rec.Losses == 0 {
		return 0
	}
	w := rec.Weight
	if w < 1.0 {
		w = 1.0
	}
	return float64(rec.Wins-rec.Losses) / w
}

// MatchesWithin counts matches in the trailing window ending at ref
func (p *PlayerState) MatchesWithin(ref time.Time, days int) int {
	cutoff := ref.AddDate(0, 0, -days)
	n := 0
	for i := len(p.MatchDates) - 1; i >= 0; i-- {
		if p.MatchDates[i].Before(cutoff) {
			break
		}
		n++
	}
	return n
}

// DaysSinceLast returns whole days between the last match and ref, or
// a large sentinel when the player has no history
func (p *PlayerState) DaysSinceLast(ref time.Time) int {
	if p.LastMatchDate.IsZero() {
		return 9999
	}
	return int(ref.Sub(p.LastMatchDate).Hours() / 24)
}
