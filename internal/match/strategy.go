// Package match pairs result records with odds records that refer to
// the same real-world match, using normalized names, a date tolerance
// window and string similarity. There is no shared unique key between
// the sources.
package match

import (
	"time"

	"github.com/yourusername/tennis-tips/internal/models"
)

// Config holds the fuzzy-join parameters
type Config struct {
	// DateToleranceDays bounds the candidate window around the
	// result's match date
	DateToleranceDays int
	// SimilarityThreshold is the minimum accepted pair score in [0,1]
	SimilarityThreshold float64
	// TieEpsilon treats candidate scores within this distance of the
	// best as tied
	TieEpsilon float64
}

// DefaultConfig returns the thresholds used by the original archives
func DefaultConfig() Config {
	return Config{
		DateToleranceDays:   1,
		SimilarityThreshold: 0.92,
		TieEpsilon:          0.005,
	}
}

// Stats summarizes one matching run
type Stats struct {
	Results      int
	OddsRecords  int
	Matched      int
	Unmatched    int
	OddsLeftOver int
	Ambiguous    int
	StartedAt    time.Time
	Duration     time.Duration
}

// Strategy assigns odds records to result records. Implementations
// must be deterministic: the same input yields the same output.
//
// The greedy default is a deliberate heuristic, not optimal bipartite
// matching; see GreedyMatcher.
type Strategy interface {
	Name() string
	Match(results []models.MatchResult, odds []models.OddsRecord) ([]models.MergedMatch, Stats)
}
