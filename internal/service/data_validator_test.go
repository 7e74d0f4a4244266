package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/yourusername/tennis-tips/internal/models"
)

func validResult() models.MatchResult {
	return models.MatchResult{
		Date:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PlayerA: "Alice Smith",
		PlayerB: "Bena Jones",
		Winner:  models.WinnerA,
		Surface: models.SurfaceHard,
	}
}

func validOdds() models.OddsRecord {
	return models.OddsRecord{
		Date:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PlayerA: "Alice Smith",
		PlayerB: "Bena Jones",
		OddsA:   decimal.NewFromFloat(1.50),
		OddsB:   decimal.NewFromFloat(2.60),
	}
}

func TestValidateResult(t *testing.T) {
	v := NewDataValidator(nil)

	tests := []struct {
		name   string
		mutate func(*models.MatchResult)
		errors int
	}{
		{"valid", func(m *models.MatchResult) {}, 0},
		{"missing player a", func(m *models.MatchResult) { m.PlayerA = "" }, 1},
		{"missing both players", func(m *models.MatchResult) { m.PlayerA = ""; m.PlayerB = "" }, 2},
		{"identical players", func(m *models.MatchResult) { m.PlayerB = m.PlayerA }, 1},
		{"zero date", func(m *models.MatchResult) { m.Date = time.Time{} }, 1},
		{"before open era", func(m *models.MatchResult) {
			m.Date = time.Date(1950, 6, 1, 0, 0, 0, 0, time.UTC)
		}, 1},
		{"future date", func(m *models.MatchResult) { m.Date = time.Now().Add(72 * time.Hour) }, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validResult()
			tt.mutate(&m)
			assert.Len(t, v.ValidateResult(&m), tt.errors)
		})
	}
}

func TestValidateOdds(t *testing.T) {
	v := NewDataValidator(nil)

	tests := []struct {
		name   string
		mutate func(*models.OddsRecord)
		errors int
	}{
		{"valid", func(o *models.OddsRecord) {}, 0},
		{"missing player", func(o *models.OddsRecord) { o.PlayerB = "" }, 1},
		{"zero date", func(o *models.OddsRecord) { o.Date = time.Time{} }, 1},
		{"odds at even money floor", func(o *models.OddsRecord) { o.OddsA = decimal.NewFromInt(1) }, 1},
		{"zero odds both sides", func(o *models.OddsRecord) {
			o.OddsA = decimal.Zero
			o.OddsB = decimal.Zero
		}, 2},
		{"implausibly negative margin", func(o *models.OddsRecord) {
			o.OddsA = decimal.NewFromFloat(3.0)
			o.OddsB = decimal.NewFromFloat(3.5)
		}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOdds()
			tt.mutate(&o)
			assert.Len(t, v.ValidateOdds(&o), tt.errors)
		})
	}
}
