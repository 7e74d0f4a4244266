// Package service orchestrates the pipeline stages: ingestion of raw
// archives, dataset construction, training and tip generation.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/tennis-tips/internal/datasource"
	"github.com/yourusername/tennis-tips/internal/metrics"
	"github.com/yourusername/tennis-tips/internal/models"
	"github.com/yourusername/tennis-tips/internal/repository"
)

// IngestionService downloads, parses, validates and optionally stores
// raw archive data. One failing source does not abort the run; the
// pipeline works with whatever sources delivered.
type IngestionService struct {
	resultsSources []datasource.ResultsSource
	oddsSources    []datasource.OddsSource
	resultRepo     repository.MatchResultRepository
	oddsRepo       repository.OddsRepository
	validator      *DataValidator
	metrics        *IngestionMetrics
	logger         *logrus.Logger
}

// NewIngestionService creates a new ingestion service. Repositories may
// be nil for a file-only run.
func NewIngestionService(
	resultsSources []datasource.ResultsSource,
	oddsSources []datasource.OddsSource,
	resultRepo repository.MatchResultRepository,
	oddsRepo repository.OddsRepository,
	validator *DataValidator,
	logger *logrus.Logger,
) *IngestionService {
	if logger == nil {
		logger = logrus.New()
	}
	return &IngestionService{
		resultsSources: resultsSources,
		oddsSources:    oddsSources,
		resultRepo:     resultRepo,
		oddsRepo:       oddsRepo,
		validator:      validator,
		metrics:        NewIngestionMetrics(),
		logger:         logger,
	}
}

// Fetch downloads the archives from every enabled source
func (s *IngestionService) Fetch(ctx context.Context) error {
	var failed int
	total := 0

	for _, src := range s.resultsSources {
		if !src.IsEnabled() {
			continue
		}
		total++
		paths, err := src.Download(ctx)
		if err != nil {
			failed++
			s.logger.WithFields(logrus.Fields{"source": src.Name(), "error": err}).Error("Results download failed")
			continue
		}
		s.logger.WithFields(logrus.Fields{"source": src.Name(), "files": len(paths)}).Info("Results downloaded")
	}

	for _, src := range s.oddsSources {
		if !src.IsEnabled() {
			continue
		}
		total++
		paths, err := src.Download(ctx)
		if err != nil {
			failed++
			s.logger.WithFields(logrus.Fields{"source": src.Name(), "error": err}).Error("Odds download failed")
			continue
		}
		s.logger.WithFields(logrus.Fields{"source": src.Name(), "files": len(paths)}).Info("Odds downloaded")
	}

	s.metrics.mu.Lock()
	s.metrics.SourcesTotal = total
	s.metrics.SourcesSucceeded = total - failed
	s.metrics.mu.Unlock()

	if total == 0 {
		return fmt.Errorf("no enabled sources configured")
	}
	if failed == total {
		return fmt.Errorf("all %d sources failed to download", total)
	}
	return nil
}

// LoadResults parses and validates results from every enabled source
func (s *IngestionService) LoadResults() ([]models.MatchResult, error) {
	var all []models.MatchResult
	var failed, enabled int

	for _, src := range s.resultsSources {
		if !src.IsEnabled() {
			continue
		}
		enabled++
		records, report, err := src.Load()
		if err != nil {
			failed++
			s.metrics.RecordError()
			s.logger.WithFields(logrus.Fields{"source": src.Name(), "error": err}).Error("Results load failed")
			continue
		}
		s.logger.WithField("report", report.String()).Info("Results loaded")
		metrics.ResultsIngestedTotal.WithLabelValues(src.Name()).Add(float64(report.Parsed))
		for reason, n := range report.SkipReasons {
			metrics.RowsSkippedTotal.WithLabelValues(src.Name(), reason).Add(float64(n))
		}
		s.metrics.mu.Lock()
		s.metrics.ResultsParsed += report.Parsed
		s.metrics.RowsSkipped += report.Skipped
		s.metrics.mu.Unlock()

		for i := range records {
			if errs := s.validator.ValidateResult(&records[i]); len(errs) > 0 {
				s.metrics.RecordValidationError()
				continue
			}
			all = append(all, records[i])
		}
	}

	if enabled == 0 {
		return nil, fmt.Errorf("no enabled results sources configured")
	}
	if failed == enabled {
		return nil, fmt.Errorf("all results sources failed to load")
	}
	return all, nil
}

// LoadOdds parses and validates odds from every enabled source
func (s *IngestionService) LoadOdds() ([]models.OddsRecord, error) {
	var all []models.OddsRecord
	var failed, enabled int

	for _, src := range s.oddsSources {
		if !src.IsEnabled() {
			continue
		}
		enabled++
		records, report, err := src.Load()
		if err != nil {
			failed++
			s.metrics.RecordError()
			s.logger.WithFields(logrus.Fields{"source": src.Name(), "error": err}).Error("Odds load failed")
			continue
		}
		s.logger.WithField("report", report.String()).Info("Odds loaded")
		metrics.OddsIngestedTotal.WithLabelValues(src.Name()).Add(float64(report.Parsed))
		for reason, n := range report.SkipReasons {
			metrics.RowsSkippedTotal.WithLabelValues(src.Name(), reason).Add(float64(n))
		}
		s.metrics.mu.Lock()
		s.metrics.OddsParsed += report.Parsed
		s.metrics.RowsSkipped += report.Skipped
		s.metrics.mu.Unlock()

		for i := range records {
			if errs := s.validator.ValidateOdds(&records[i]); len(errs) > 0 {
				s.metrics.RecordValidationError()
				continue
			}
			all = append(all, records[i])
		}
	}

	if enabled == 0 {
		return nil, fmt.Errorf("no enabled odds sources configured")
	}
	if failed == enabled {
		return nil, fmt.Errorf("all odds sources failed to load")
	}
	return all, nil
}

// IngestHistoricalData runs the full ingestion workflow: download,
// parse, validate and, when repositories are wired, persist
func (s *IngestionService) IngestHistoricalData(ctx context.Context) (*IngestionMetrics, error) {
	s.metrics.Reset()
	startTime := time.Now()

	if err := s.Fetch(ctx); err != nil {
		s.metrics.RecordError()
		return s.metrics, err
	}

	results, err := s.LoadResults()
	if err != nil {
		return s.metrics, err
	}
	odds, err := s.LoadOdds()
	if err != nil {
		return s.metrics, err
	}

	if s.resultRepo != nil {
		stored, err := s.resultRepo.InsertBatch(ctx, results)
		if err != nil {
			s.metrics.RecordError()
			return s.metrics, fmt.Errorf("failed to store results: %w", err)
		}
		s.metrics.mu.Lock()
		s.metrics.ResultsStored = int(stored)
		s.metrics.mu.Unlock()
	}
	if s.oddsRepo != nil {
		stored, err := s.oddsRepo.InsertBatch(ctx, odds)
		if err != nil {
			s.metrics.RecordError()
			return s.metrics, fmt.Errorf("failed to store odds: %w", err)
		}
		s.metrics.mu.Lock()
		s.metrics.OddsStored = int(stored)
		s.metrics.mu.Unlock()
	}

	s.metrics.mu.Lock()
	s.metrics.Duration = time.Since(startTime)
	s.metrics.mu.Unlock()
	metrics.IngestionDuration.Observe(time.Since(startTime).Seconds())
	s.logger.WithField("metrics", s.metrics.String()).Info("Historical ingestion complete")

	return s.metrics, nil
}

// GetMetrics returns current ingestion metrics
func (s *IngestionService) GetMetrics() *IngestionMetrics {
	return s.metrics
}
