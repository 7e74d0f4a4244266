package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fixture is an upcoming match with market odds for both players,
// the input to tip generation.
type Fixture struct {
	Date    time.Time       `db:"fixture_date" json:"date" validate:"required"`
	PlayerA string          `db:"player_a" json:"player_a" validate:"required"`
	PlayerB string          `db:"player_b" json:"player_b" validate:"required"`
	Surface Surface         `db:"surface" json:"surface"`
	Level   string          `db:"level" json:"level"`
	OddsA   decimal.Decimal `db:"odds_a" json:"odds_a"`
	OddsB   decimal.Decimal `db:"odds_b" json:"odds_b"`
}

// HasOdds reports whether both sides carry a usable price
func (f *Fixture) HasOdds() bool {
	one := decimal.NewFromInt(1)
	return f.OddsA.GreaterThan(one) && f.OddsB.GreaterThan(one)
}
