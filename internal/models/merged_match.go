package models

import (
	"github.com/shopspring/decimal"
)

// MergedMatch is a MatchResult joined with at most one OddsRecord.
// Odds are optional: training proceeds without them, tip generation
// requires them. Confidence is the join score, zero when no odds
// record was accepted.
type MergedMatch struct {
	Result     MatchResult      `json:"result"`
	OddsA      *decimal.Decimal `json:"odds_a,omitempty"`
	OddsB      *decimal.Decimal `json:"odds_b,omitempty"`
	Confidence float64          `json:"confidence"`
}

// HasOdds reports whether the join produced odds for both sides
func (m *MergedMatch) HasOdds() bool {
	return m.OddsA != nil && m.OddsB != nil
}

// OddsAFloat returns the player-A odds as float64, 0 when absent
func (m *MergedMatch) OddsAFloat() float64 {
	if m.OddsA == nil {
		return 0
	}
	v, _ := m.OddsA.Float64()
	return v
}

// OddsBFloat returns the player-B odds as float64, 0 when absent
func (m *MergedMatch) OddsBFloat() float64 {
	if m.OddsB == nil {
		return 0
	}
	v, _ := m.OddsB.Float64()
	return v
}
