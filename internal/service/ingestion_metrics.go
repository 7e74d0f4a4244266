package service

import (
	"fmt"
	"sync"
	"time"
)

// IngestionMetrics tracks statistics about one ingestion run
type IngestionMetrics struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	SourcesTotal     int
	SourcesSucceeded int
	ResultsParsed    int
	ResultsStored    int
	OddsParsed       int
	OddsStored       int
	RowsSkipped      int
	ValidationErrors int
	Errors           int
}

// NewIngestionMetrics creates a new metrics tracker
func NewIngestionMetrics() *IngestionMetrics {
	return &IngestionMetrics{StartTime: time.Now()}
}

// Reset resets all metrics
func (m *IngestionMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartTime = time.Now()
	m.Duration = 0
	m.SourcesTotal = 0
	m.SourcesSucceeded = 0
	m.ResultsParsed = 0
	m.ResultsStored = 0
	m.OddsParsed = 0
	m.OddsStored = 0
	m.RowsSkipped = 0
	m.ValidationErrors = 0
	m.Errors = 0
}

// RecordError increments error count
func (m *IngestionMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// RecordValidationError increments validation error count
func (m *IngestionMetrics) RecordValidationError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidationErrors++
}

// String returns a formatted string representation of metrics
func (m *IngestionMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fmt.Sprintf(
		"IngestionMetrics{Sources=%d/%d, Results=%d parsed/%d stored, Odds=%d parsed/%d stored, Skipped=%d, ValidationErrors=%d, Errors=%d, Duration=%v}",
		m.SourcesSucceeded,
		m.SourcesTotal,
		m.ResultsParsed,
		m.ResultsStored,
		m.OddsParsed,
		m.OddsStored,
		m.RowsSkipped,
		m.ValidationErrors,
		m.Errors,
		m.Duration,
	)
}
