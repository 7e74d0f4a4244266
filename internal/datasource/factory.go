package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/tennis-tips/internal/config"
)

// BuildResultsSources constructs a client per configured results
// archive. Unknown source names are an error so a typo in the config
// fails fast instead of silently ingesting nothing.
func BuildResultsSources(cfg *config.Config, logger *logrus.Logger) ([]ResultsSource, error) {
	var sources []ResultsSource
	for _, sc := range cfg.Sources.Results {
		switch sc.Name {
		case "sackmann":
			sources = append(sources, NewSackmannClient(
				newSourceHTTPClient(sc, logger),
				sc.BaseURL, sc.Pattern, sc.YearFrom, sc.YearTo,
				cfg.Sources.RawDir, sc.Enabled, logger,
			))
		default:
			return nil, fmt.Errorf("unknown results source %q", sc.Name)
		}
	}
	return sources, nil
}

// BuildOddsSources constructs a client per configured odds archive
func BuildOddsSources(cfg *config.Config, logger *logrus.Logger) ([]OddsSource, error) {
	var sources []OddsSource
	for _, sc := range cfg.Sources.Odds {
		switch sc.Name {
		case "tennisdata":
			sources = append(sources, NewTennisDataClient(
				newSourceHTTPClient(sc, logger),
				sc.BaseURL, sc.Pattern, sc.YearFrom, sc.YearTo,
				cfg.Sources.RawDir, sc.Enabled, logger,
			))
		default:
			return nil, fmt.Errorf("unknown odds source %q", sc.Name)
		}
	}
	return sources, nil
}

func newSourceHTTPClient(sc config.SourceConfig, logger *logrus.Logger) *RateLimitedHTTPClient {
	httpCfg := DefaultHTTPClientConfig()
	if sc.RateLimit > 0 {
		httpCfg.RateLimit = sc.RateLimit
	}
	return NewRateLimitedHTTPClient(httpCfg, logger)
}
