package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/tennis-tips/internal/features"
	"github.com/yourusername/tennis-tips/internal/match"
	"github.com/yourusername/tennis-tips/internal/metrics"
	"github.com/yourusername/tennis-tips/internal/models"
	"github.com/yourusername/tennis-tips/internal/rating"
	"github.com/yourusername/tennis-tips/internal/repository"
)

// Dataset is the training-ready output of one build: aligned feature
// vectors and labels plus the replayed snapshots they came from
type Dataset struct {
	Schema    []string
	Vectors   []*models.FeatureVector
	Labels    []float64
	Snapshots []rating.MatchSnapshot
	Merged    []models.MergedMatch
	Stats     match.Stats
}

// DatasetService builds the training dataset: merge results with odds,
// replay ratings chronologically, then derive features per match
type DatasetService struct {
	matcher    match.Strategy
	engine     *rating.Engine
	builder    *features.Builder
	mergedRepo repository.MergedMatchRepository
	logger     *logrus.Logger
}

// NewDatasetService creates a dataset service. The merged repository
// may be nil for a file-only run.
func NewDatasetService(
	matcher match.Strategy,
	engine *rating.Engine,
	builder *features.Builder,
	mergedRepo repository.MergedMatchRepository,
	logger *logrus.Logger,
) *DatasetService {
	if logger == nil {
		logger = logrus.New()
	}
	return &DatasetService{
		matcher:    matcher,
		engine:     engine,
		builder:    builder,
		mergedRepo: mergedRepo,
		logger:     logger,
	}
}

// Build merges, replays and derives features in one pass. Replay is
// sequential; feature derivation over the resulting snapshots is pure
// and fans out across workers.
func (s *DatasetService) Build(ctx context.Context, results []models.MatchResult, odds []models.OddsRecord) (*Dataset, error) {
	if len(results) == 0 {
		return nil, models.NewDataError("no results to build dataset from")
	}

	merged, stats := s.matcher.Match(results, odds)
	metrics.RecordMergeStats(stats.Matched, stats.Unmatched)
	s.logger.WithFields(logrus.Fields{
		"matched":   stats.Matched,
		"unmatched": stats.Unmatched,
		"ambiguous": stats.Ambiguous,
	}).Info("Odds merge complete")

	// The results archives list the winner first, which would make
	// every label positive. A deterministic orientation flip on roughly
	// half the matches balances the classes without breaking replay
	// determinism.
	for i := range merged {
		if shouldFlipOrientation(&merged[i]) {
			flipOrientation(&merged[i])
		}
	}

	if s.mergedRepo != nil {
		if _, err := s.mergedRepo.ReplaceAll(ctx, merged); err != nil {
			return nil, fmt.Errorf("failed to store merged dataset: %w", err)
		}
	}

	replayStart := time.Now()
	s.engine.Reset()
	snapshots := s.engine.Replay(merged)
	metrics.ReplayDuration.Observe(time.Since(replayStart).Seconds())
	metrics.RatedPlayers.Set(float64(s.engine.Players()))

	vectors, labels := s.buildFeatures(snapshots)

	return &Dataset{
		Schema:    s.builder.Schema(),
		Vectors:   vectors,
		Labels:    labels,
		Snapshots: snapshots,
		Merged:    merged,
		Stats:     stats,
	}, nil
}

// buildFeatures derives one vector per labeled snapshot, preserving
// replay order
func (s *DatasetService) buildFeatures(snapshots []rating.MatchSnapshot) ([]*models.FeatureVector, []float64) {
	type slot struct {
		vector *models.FeatureVector
		label  float64
		ok     bool
	}
	slots := make([]slot, len(snapshots))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(snapshots) {
		workers = len(snapshots)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	chunk := (len(snapshots) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(snapshots) {
			end = len(snapshots)
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				label, ok := features.Label(snapshots[i])
				if !ok {
					continue
				}
				slots[i] = slot{vector: s.builder.Build(snapshots[i]), label: label, ok: true}
			}
		}(start, end)
	}
	wg.Wait()

	var vectors []*models.FeatureVector
	var labels []float64
	for i := range slots {
		if slots[i].ok {
			vectors = append(vectors, slots[i].vector)
			labels = append(labels, slots[i].label)
		}
	}
	return vectors, labels
}

// shouldFlipOrientation decides deterministically from the match
// identity, independent of input order
func shouldFlipOrientation(m *models.MergedMatch) bool {
	h := fnv.New32a()
	h.Write([]byte(m.Result.Date.Format("2006-01-02")))
	h.Write([]byte(m.Result.PlayerA))
	h.Write([]byte(m.Result.PlayerB))
	return h.Sum32()%2 == 1
}

// flipOrientation swaps the A and B sides of a merged match
func flipOrientation(m *models.MergedMatch) {
	m.Result.PlayerA, m.Result.PlayerB = m.Result.PlayerB, m.Result.PlayerA
	m.OddsA, m.OddsB = m.OddsB, m.OddsA
	switch m.Result.Winner {
	case models.WinnerA:
		m.Result.Winner = models.WinnerB
	case models.WinnerB:
		m.Result.Winner = models.WinnerA
	}
}

// ExportCSV writes the dataset to a training CSV: schema columns, then
// label, then the identity columns useful for audits
func (s *DatasetService) ExportCSV(path string, ds *Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append(append([]string{}, ds.Schema...), "label", "match_date", "player_a", "player_b", "confidence")
	if err := w.Write(header); err != nil {
		return err
	}

	li := 0
	for _, snap := range ds.Snapshots {
		label, ok := features.Label(snap)
		if !ok {
			continue
		}
		row := make([]string, 0, len(header))
		for _, v := range ds.Vectors[li].Values {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		row = append(row,
			strconv.FormatFloat(label, 'g', -1, 64),
			snap.Match.Result.Date.Format("2006-01-02"),
			snap.Match.Result.PlayerA,
			snap.Match.Result.PlayerB,
			strconv.FormatFloat(snap.Match.Confidence, 'g', -1, 64),
		)
		if err := w.Write(row); err != nil {
			return err
		}
		li++
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"path": path, "rows": li}).Info("Dataset exported")
	return nil
}

// LoadCSV reads a dataset written by ExportCSV back into vectors and
// labels, verifying the schema columns
func LoadCSV(path string, schema []string) ([]*models.FeatureVector, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read dataset header: %w", err)
	}
	if len(header) < len(schema)+1 {
		return nil, nil, models.NewDataError("dataset has %d columns, need at least %d", len(header), len(schema)+1)
	}
	for i, name := range schema {
		if header[i] != name {
			return nil, nil, &models.SchemaError{Expected: schema, Got: header[:len(schema)]}
		}
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read dataset rows: %w", err)
	}

	var vectors []*models.FeatureVector
	var labels []float64
	for _, row := range rows {
		values := make([]float64, len(schema))
		bad := false
		for i := range schema {
			v, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				bad = true
				break
			}
			values[i] = v
		}
		if bad {
			continue
		}
		label, err := strconv.ParseFloat(row[len(schema)], 64)
		if err != nil {
			continue
		}
		fv, err := models.NewFeatureVector(schema, values)
		if err != nil {
			continue
		}
		vectors = append(vectors, fv)
		labels = append(labels, label)
	}
	return vectors, labels, nil
}
