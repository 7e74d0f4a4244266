// Package datasource fetches and parses raw match-result and odds
// archives from external providers. Each provider publishes yearly CSV
// files; clients download them into a raw directory and parse them
// into typed records, skipping malformed rows with a count.
package datasource

import (
	"context"
	"fmt"

	"github.com/yourusername/tennis-tips/internal/models"
)

// ResultsSource provides historical match results
type ResultsSource interface {
	// Name returns the provider name
	Name() string
	// IsEnabled returns whether this source is currently enabled
	IsEnabled() bool
	// Download fetches the provider's yearly files into the raw
	// directory and returns the local paths
	Download(ctx context.Context) ([]string, error)
	// Load parses previously downloaded files into result records
	Load() ([]models.MatchResult, *LoadReport, error)
}

// OddsSource provides historical bookmaker odds
type OddsSource interface {
	Name() string
	IsEnabled() bool
	Download(ctx context.Context) ([]string, error)
	// Load parses previously downloaded files into odds records
	Load() ([]models.OddsRecord, *LoadReport, error)
}

// LoadReport accounts for every row in the parsed files. Malformed
// rows are skipped, never fatal; the report keeps the run auditable.
type LoadReport struct {
	Source      string
	Files       int
	Rows        int
	Parsed      int
	Skipped     int
	SkipReasons map[string]int
}

// NewLoadReport creates an empty report for a source
func NewLoadReport(source string) *LoadReport {
	return &LoadReport{Source: source, SkipReasons: make(map[string]int)}
}

// Skip records one skipped row with its reason
func (r *LoadReport) Skip(reason string) {
	r.Skipped++
	r.SkipReasons[reason]++
}

// String summarizes the report for logs
func (r *LoadReport) String() string {
	return fmt.Sprintf("%s: %d files, %d rows, %d parsed, %d skipped",
		r.Source, r.Files, r.Rows, r.Parsed, r.Skipped)
}
