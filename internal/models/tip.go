package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TipSide identifies which player a tip backs
type TipSide string

const (
	TipSideA TipSide = "A"
	TipSideB TipSide = "B"
)

// Tip is a value-bet decision for one side of one fixture. Generated at
// prediction time and never mutated.
type Tip struct {
	ID           uuid.UUID       `db:"id" json:"id" validate:"required,uuid4"`
	FixtureDate  time.Time       `db:"fixture_date" json:"fixture_date"`
	PlayerA      string          `db:"player_a" json:"player_a" validate:"required"`
	PlayerB      string          `db:"player_b" json:"player_b" validate:"required"`
	Surface      Surface         `db:"surface" json:"surface"`
	Side         TipSide         `db:"side" json:"side" validate:"required,oneof=A B"`
	Probability  float64         `db:"probability" json:"probability" validate:"gte=0,lte=1"`
	Odds         decimal.Decimal `db:"odds" json:"odds"`
	Edge         float64         `db:"edge" json:"edge"`
	StakeSuggest float64         `db:"stake_suggest" json:"stake_suggest"`
	Decision     bool            `db:"decision" json:"decision"`
	GeneratedAt  time.Time       `db:"generated_at" json:"generated_at"`
}

// Pick returns the backed player's name
func (t *Tip) Pick() string {
	if t.Side == TipSideA {
		return t.PlayerA
	}
	return t.PlayerB
}
