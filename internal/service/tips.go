package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/tennis-tips/internal/metrics"
	"github.com/yourusername/tennis-tips/internal/models"
	"github.com/yourusername/tennis-tips/internal/repository"
	"github.com/yourusername/tennis-tips/internal/tips"
)

// TipService runs tip generation over a fixtures file and fans the
// output to the configured sinks
type TipService struct {
	generator *tips.Generator
	tipRepo   repository.TipRepository
	logger    *logrus.Logger
}

// NewTipService creates a tip service. The tip repository may be nil
// for a file-only run.
func NewTipService(generator *tips.Generator, tipRepo repository.TipRepository, logger *logrus.Logger) *TipService {
	if logger == nil {
		logger = logrus.New()
	}
	return &TipService{generator: generator, tipRepo: tipRepo, logger: logger}
}

// GenerateFromFile loads fixtures from a CSV, generates tips and stores
// them when a repository is wired
func (s *TipService) GenerateFromFile(ctx context.Context, fixturesPath string) ([]models.Tip, error) {
	fixtures, err := LoadFixturesCSV(fixturesPath)
	if err != nil {
		return nil, err
	}
	if len(fixtures) == 0 {
		return nil, models.NewDataError("no fixtures in %s", fixturesPath)
	}

	generated := s.generator.GenerateAll(fixtures)
	for i := range generated {
		metrics.RecordTip(generated[i].Decision)
	}

	if s.tipRepo != nil && len(generated) > 0 {
		stored := make([]*models.Tip, len(generated))
		for i := range generated {
			stored[i] = &generated[i]
		}
		if err := s.tipRepo.InsertBatch(ctx, stored); err != nil {
			return nil, fmt.Errorf("failed to store tips: %w", err)
		}
	}
	return generated, nil
}

// WriteCSV writes tips to a CSV report
func (s *TipService) WriteCSV(path string, generated []models.Tip) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create tips file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"fixture_date", "player_a", "player_b", "surface", "pick", "probability", "odds", "edge", "stake_suggest", "decision"}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range generated {
		t := &generated[i]
		row := []string{
			t.FixtureDate.Format("2006-01-02"),
			t.PlayerA,
			t.PlayerB,
			string(t.Surface),
			t.Pick(),
			strconv.FormatFloat(t.Probability, 'f', 4, 64),
			t.Odds.String(),
			strconv.FormatFloat(t.Edge, 'f', 4, 64),
			strconv.FormatFloat(t.StakeSuggest, 'f', 4, 64),
			strconv.FormatBool(t.Decision),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write tips: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"path": path, "tips": len(generated)}).Info("Tips written")
	return nil
}

// LoadFixturesCSV parses an upcoming-fixtures file. Expected columns:
// date, player_a, player_b, surface, odds_a, odds_b, optional level.
func LoadFixturesCSV(path string) ([]models.Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range []string{"date", "player_a", "player_b", "odds_a", "odds_b"} {
		if _, ok := col[name]; !ok {
			return nil, models.NewDataError("fixtures file missing column %q", name)
		}
	}

	get := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var fixtures []models.Fixture
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		date, err := time.Parse("2006-01-02", get(row, "date"))
		if err != nil {
			continue
		}
		oddsA, errA := decimal.NewFromString(get(row, "odds_a"))
		oddsB, errB := decimal.NewFromString(get(row, "odds_b"))
		if errA != nil || errB != nil {
			oddsA, oddsB = decimal.Zero, decimal.Zero
		}

		fixtures = append(fixtures, models.Fixture{
			Date:    date,
			PlayerA: get(row, "player_a"),
			PlayerB: get(row, "player_b"),
			Surface: models.ParseSurface(get(row, "surface")),
			Level:   get(row, "level"),
			OddsA:   oddsA,
			OddsB:   oddsB,
		})
	}
	return fixtures, nil
}
