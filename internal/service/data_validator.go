package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/tennis-tips/internal/models"
)

// earliest season the open-era archives cover
var archiveFloor = time.Date(1968, 1, 1, 0, 0, 0, 0, time.UTC)

// DataValidator validates parsed result and odds records before they
// enter storage or the merge
type DataValidator struct {
	logger *logrus.Logger
}

// NewDataValidator creates a new data validator
func NewDataValidator(logger *logrus.Logger) *DataValidator {
	if logger == nil {
		logger = logrus.New()
	}
	return &DataValidator{logger: logger}
}

// ValidateResult validates a match result for required fields and
// plausible values
func (v *DataValidator) ValidateResult(m *models.MatchResult) []string {
	var errors []string

	if m.PlayerA == "" {
		errors = append(errors, "player_a is required")
	}
	if m.PlayerB == "" {
		errors = append(errors, "player_b is required")
	}
	if m.PlayerA != "" && m.PlayerA == m.PlayerB {
		errors = append(errors, "player_a and player_b are identical")
	}

	if m.Date.IsZero() {
		errors = append(errors, "date is required")
	} else {
		if m.Date.Before(archiveFloor) {
			errors = append(errors, fmt.Sprintf("date %s predates the open era", m.Date.Format("2006-01-02")))
		}
		if m.Date.After(time.Now().Add(24 * time.Hour)) {
			errors = append(errors, fmt.Sprintf("date %s is in the future", m.Date.Format("2006-01-02")))
		}
	}

	return errors
}

// ValidateOdds validates an odds record. Decimal odds below 1.0 imply a
// negative margin and are always provider errors.
func (v *DataValidator) ValidateOdds(o *models.OddsRecord) []string {
	var errors []string

	if o.PlayerA == "" {
		errors = append(errors, "player_a is required")
	}
	if o.PlayerB == "" {
		errors = append(errors, "player_b is required")
	}
	if o.Date.IsZero() {
		errors = append(errors, "date is required")
	}

	one := decimal.NewFromInt(1)
	if o.OddsA.LessThanOrEqual(one) {
		errors = append(errors, fmt.Sprintf("odds_a %s is not a valid decimal price", o.OddsA))
	}
	if o.OddsB.LessThanOrEqual(one) {
		errors = append(errors, fmt.Sprintf("odds_b %s is not a valid decimal price", o.OddsB))
	}

	// A strongly negative margin means both prices are long, which no
	// bookmaker offers on a two-way market
	if o.OddsA.GreaterThan(one) && o.OddsB.GreaterThan(one) {
		if margin := o.Overround(); margin < -0.2 {
			errors = append(errors, fmt.Sprintf("bookmaker margin %.3f is implausibly negative", margin))
		}
	}

	return errors
}
