package datasource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/tennis-tips/internal/models"
)

// SackmannClient fetches the open results archive published as one CSV
// per tour year (atp_matches_<year>.csv)
type SackmannClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	pattern    string
	yearFrom   int
	yearTo     int
	rawDir     string
	enabled    bool
	logger     *logrus.Logger
}

// NewSackmannClient creates a results archive client
func NewSackmannClient(httpClient *RateLimitedHTTPClient, baseURL, pattern string, yearFrom, yearTo int, rawDir string, enabled bool, logger *logrus.Logger) *SackmannClient {
	if logger == nil {
		logger = logrus.New()
	}
	return &SackmannClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		pattern:    pattern,
		yearFrom:   yearFrom,
		yearTo:     yearTo,
		rawDir:     rawDir,
		enabled:    enabled,
		logger:     logger,
	}
}

// Name returns the provider name
func (c *SackmannClient) Name() string {
	return "sackmann"
}

// IsEnabled returns whether this source is currently enabled
func (c *SackmannClient) IsEnabled() bool {
	return c.enabled
}

// Download fetches each year's file. A missing year is logged and
// skipped; the archive is sparse at its edges.
func (c *SackmannClient) Download(ctx context.Context) ([]string, error) {
	var paths []string
	for year := c.yearFrom; year <= c.yearTo; year++ {
		url := fmt.Sprintf("%s/%s", c.baseURL, fmt.Sprintf(c.pattern, year))
		dest := filepath.Join(c.rawDir, fmt.Sprintf("sackmann_matches_%d.csv", year))
		if err := downloadFile(ctx, c.httpClient, url, dest); err != nil {
			c.logger.WithFields(logrus.Fields{"year": year, "error": err}).Warn("Results year unavailable")
			continue
		}
		paths = append(paths, dest)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no results files downloaded from %s", c.baseURL)
	}
	return paths, nil
}

// Load parses all downloaded yearly files into result records
func (c *SackmannClient) Load() ([]models.MatchResult, *LoadReport, error) {
	report := NewLoadReport(c.Name())
	paths, err := filepath.Glob(filepath.Join(c.rawDir, "sackmann_matches_*.csv"))
	if err != nil {
		return nil, report, err
	}
	if len(paths) == 0 {
		return nil, report, fmt.Errorf("no results files in %s, run fetch first", c.rawDir)
	}

	var results []models.MatchResult
	for _, path := range paths {
		if err := c.loadFile(path, &results, report); err != nil {
			c.logger.WithFields(logrus.Fields{"file": path, "error": err}).Warn("Skipping unreadable results file")
			continue
		}
		report.Files++
	}
	return results, report, nil
}

func (c *SackmannClient) loadFile(path string, results *[]models.MatchResult, report *LoadReport) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	col := indexColumns(header)
	required := []string{"tourney_date", "surface", "winner_name", "loser_name"}
	for _, name := range required {
		if _, ok := col[name]; !ok {
			return fmt.Errorf("missing column %q", name)
		}
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Skip("unparseable_row")
			continue
		}
		report.Rows++

		date, err := time.Parse("20060102", field(row, col, "tourney_date"))
		if err != nil {
			report.Skip("bad_date")
			continue
		}
		winner := strings.TrimSpace(field(row, col, "winner_name"))
		loser := strings.TrimSpace(field(row, col, "loser_name"))
		if winner == "" || loser == "" {
			report.Skip("missing_player")
			continue
		}

		*results = append(*results, models.MatchResult{
			Date:       date,
			Tournament: field(row, col, "tourney_name"),
			Level:      field(row, col, "tourney_level"),
			Round:      field(row, col, "round"),
			Surface:    models.ParseSurface(field(row, col, "surface")),
			PlayerA:    winner,
			PlayerB:    loser,
			Winner:     models.WinnerA,
			Score:      field(row, col, "score"),
		})
		report.Parsed++
	}
	return nil
}

// indexColumns maps header names to positions
func indexColumns(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	return col
}

// field reads a named column from a row, "" when absent
func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
