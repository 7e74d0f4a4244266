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

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/tennis-tips/internal/models"
)

// odds column preference, primary bookmaker first
var oddsColumnPairs = [][2]string{
	{"B365W", "B365L"},
	{"PSW", "PSL"},
	{"AvgW", "AvgL"},
}

// TennisDataClient fetches the historical odds archive published as one
// CSV per season, with winner/loser names and closing prices from
// several bookmakers
type TennisDataClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	pattern    string
	yearFrom   int
	yearTo     int
	rawDir     string
	enabled    bool
	logger     *logrus.Logger
}

// NewTennisDataClient creates an odds archive client
func NewTennisDataClient(httpClient *RateLimitedHTTPClient, baseURL, pattern string, yearFrom, yearTo int, rawDir string, enabled bool, logger *logrus.Logger) *TennisDataClient {
	if logger == nil {
		logger = logrus.New()
	}
	return &TennisDataClient{
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
func (c *TennisDataClient) Name() string {
	return "tennisdata"
}

// IsEnabled returns whether this source is currently enabled
func (c *TennisDataClient) IsEnabled() bool {
	return c.enabled
}

// Download fetches each season's file, skipping missing years
func (c *TennisDataClient) Download(ctx context.Context) ([]string, error) {
	var paths []string
	for year := c.yearFrom; year <= c.yearTo; year++ {
		url := fmt.Sprintf("%s/%s", c.baseURL, fmt.Sprintf(c.pattern, year))
		dest := filepath.Join(c.rawDir, fmt.Sprintf("tennisdata_odds_%d.csv", year))
		if err := downloadFile(ctx, c.httpClient, url, dest); err != nil {
			c.logger.WithFields(logrus.Fields{"year": year, "error": err}).Warn("Odds year unavailable")
			continue
		}
		paths = append(paths, dest)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no odds files downloaded from %s", c.baseURL)
	}
	return paths, nil
}

// Load parses all downloaded seasonal files into odds records
func (c *TennisDataClient) Load() ([]models.OddsRecord, *LoadReport, error) {
	report := NewLoadReport(c.Name())
	paths, err := filepath.Glob(filepath.Join(c.rawDir, "tennisdata_odds_*.csv"))
	if err != nil {
		return nil, report, err
	}
	if len(paths) == 0 {
		return nil, report, fmt.Errorf("no odds files in %s, run fetch first", c.rawDir)
	}

	var records []models.OddsRecord
	for _, path := range paths {
		if err := c.loadFile(path, &records, report); err != nil {
			c.logger.WithFields(logrus.Fields{"file": path, "error": err}).Warn("Skipping unreadable odds file")
			continue
		}
		report.Files++
	}
	return records, report, nil
}

func (c *TennisDataClient) loadFile(path string, records *[]models.OddsRecord, report *LoadReport) error {
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
	for _, name := range []string{"Date", "Winner", "Loser"} {
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

		date, err := parseDayFirstDate(field(row, col, "Date"))
		if err != nil {
			report.Skip("bad_date")
			continue
		}
		winner := strings.TrimSpace(field(row, col, "Winner"))
		loser := strings.TrimSpace(field(row, col, "Loser"))
		if winner == "" || loser == "" {
			report.Skip("missing_player")
			continue
		}

		oddsW, oddsL, bookmaker, ok := pickOdds(row, col)
		if !ok {
			report.Skip("missing_odds")
			continue
		}

		*records = append(*records, models.OddsRecord{
			Date:      date,
			PlayerA:   winner,
			PlayerB:   loser,
			OddsA:     oddsW,
			OddsB:     oddsL,
			Bookmaker: bookmaker,
		})
		report.Parsed++
	}
	return nil
}

// pickOdds returns the first bookmaker pair present on the row with
// both prices above 1.0
func pickOdds(row []string, col map[string]int) (decimal.Decimal, decimal.Decimal, string, bool) {
	one := decimal.NewFromInt(1)
	for _, pair := range oddsColumnPairs {
		w, errW := decimal.NewFromString(strings.TrimSpace(field(row, col, pair[0])))
		l, errL := decimal.NewFromString(strings.TrimSpace(field(row, col, pair[1])))
		if errW != nil || errL != nil {
			continue
		}
		if w.LessThanOrEqual(one) || l.LessThanOrEqual(one) {
			continue
		}
		return w, l, strings.TrimSuffix(pair[0], "W"), true
	}
	return decimal.Zero, decimal.Zero, "", false
}

// parseDayFirstDate handles the archive's two date layouts, four-digit
// and two-digit years
func parseDayFirstDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"02/01/2006", "2/1/2006", "02/01/06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
