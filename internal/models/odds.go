package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OddsRecord represents pre-match bookmaker odds for one match from an
// odds source. The date may be imprecise relative to the results source.
// Immutable once ingested.
type OddsRecord struct {
	Date      time.Time       `db:"match_date" json:"date" validate:"required"`
	PlayerA   string          `db:"player_a" json:"player_a" validate:"required"`
	PlayerB   string          `db:"player_b" json:"player_b" validate:"required"`
	OddsA     decimal.Decimal `db:"odds_a" json:"odds_a"`
	OddsB     decimal.Decimal `db:"odds_b" json:"odds_b"`
	Bookmaker string          `db:"bookmaker" json:"bookmaker"`
}

// HasOdds reports whether both sides carry a usable price
func (o *OddsRecord) HasOdds() bool {
	return o.OddsA.GreaterThan(decimal.NewFromInt(1)) && o.OddsB.GreaterThan(decimal.NewFromInt(1))
}

// Overround returns the bookmaker margin: 1/oddsA + 1/oddsB - 1
func (o *OddsRecord) Overround() float64 {
	if !o.HasOdds() {
		return 0
	}
	a, _ := o.OddsA.Float64()
	b, _ := o.OddsB.Float64()
	return 1.0/a + 1.0/b - 1.0
}
