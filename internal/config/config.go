// Package config provides configuration management for the tennis
// tips pipeline.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Sources   SourcesConfig   `mapstructure:"sources" validate:"required"`
	Matcher   MatcherConfig   `mapstructure:"matcher" validate:"required"`
	Elo       EloConfig       `mapstructure:"elo" validate:"required"`
	Features  FeaturesConfig  `mapstructure:"features" validate:"required"`
	Model     ModelConfig     `mapstructure:"model" validate:"required"`
	Selection SelectionConfig `mapstructure:"selection" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Schedule  ScheduleConfig  `mapstructure:"schedule"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents the optional Postgres connection used for
// ingestion and tip storage; the file-to-file pipeline runs without it
type DatabaseConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host" validate:"required_if=Enabled true"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required_if=Enabled true"`
	User           string `mapstructure:"user" validate:"required_if=Enabled true"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
}

// SourcesConfig represents the raw data sources
type SourcesConfig struct {
	RawDir  string         `mapstructure:"raw_dir" validate:"required"`
	Results []SourceConfig `mapstructure:"results" validate:"required,min=1,dive"`
	Odds    []SourceConfig `mapstructure:"odds" validate:"required,min=1,dive"`
}

// SourceConfig represents one external archive of yearly CSV files
type SourceConfig struct {
	Name      string  `mapstructure:"name" validate:"required"`
	Enabled   bool    `mapstructure:"enabled"`
	BaseURL   string  `mapstructure:"base_url" validate:"required,url"`
	Pattern   string  `mapstructure:"pattern" validate:"required"`
	YearFrom  int     `mapstructure:"year_from" validate:"required,min=1968"`
	YearTo    int     `mapstructure:"year_to" validate:"required,min=1968"`
	RateLimit float64 `mapstructure:"rate_limit" validate:"omitempty,gt=0"`
	APIKey    string  `mapstructure:"api_key"`
}

// MatcherConfig represents the fuzzy-join parameters
type MatcherConfig struct {
	Strategy            string  `mapstructure:"strategy" validate:"required,oneof=greedy_by_date"`
	DateToleranceDays   int     `mapstructure:"date_tolerance_days" validate:"gte=0"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" validate:"required,gt=0,lte=1"`
	TieEpsilon          float64 `mapstructure:"tie_epsilon" validate:"gte=0"`
}

// EloConfig represents the rating engine parameters
type EloConfig struct {
	BaseRating        float64 `mapstructure:"base_rating" validate:"required,gt=0"`
	KFactor           float64 `mapstructure:"k_factor" validate:"required,gt=0"`
	ScaleConstant     float64 `mapstructure:"scale_constant" validate:"required,gt=0"`
	SurfaceKBoost     float64 `mapstructure:"surface_k_boost" validate:"required,gt=0"`
	RookieMatches     int     `mapstructure:"rookie_matches" validate:"gte=0"`
	RookieKMultiplier float64 `mapstructure:"rookie_k_multiplier" validate:"required,gte=1"`
	FormWindow        int     `mapstructure:"form_window" validate:"required,gt=0"`
	H2HDecay          float64 `mapstructure:"h2h_decay" validate:"required,gt=0,lte=1"`
}

// FeaturesConfig represents feature derivation parameters
type FeaturesConfig struct {
	RestCapDays int     `mapstructure:"rest_cap_days" validate:"required,gt=0"`
	Fatigue7d   float64 `mapstructure:"fatigue_7d" validate:"gte=0"`
	Fatigue14d  float64 `mapstructure:"fatigue_14d" validate:"gte=0"`
	Fatigue30d  float64 `mapstructure:"fatigue_30d" validate:"gte=0"`
	BackToBack  float64 `mapstructure:"back_to_back" validate:"gte=0"`
	ShortRest   float64 `mapstructure:"short_rest" validate:"gte=0"`
	MinProb     float64 `mapstructure:"min_prob" validate:"gte=0,lte=1"`
	MaxProb     float64 `mapstructure:"max_prob" validate:"gte=0,lte=1"`
}

// ModelConfig represents training parameters
type ModelConfig struct {
	MinSamples     int     `mapstructure:"min_samples" validate:"required,gt=0"`
	ValidationSize float64 `mapstructure:"validation_size" validate:"required,gt=0,lt=1"`
	MaxIter        int     `mapstructure:"max_iter" validate:"required,gt=0"`
	Calibration    string  `mapstructure:"calibration" validate:"required,oneof=sigmoid isotonic"`
	Seed           int64   `mapstructure:"seed"`
	Path           string  `mapstructure:"path" validate:"required"`
}

// SelectionConfig represents value-bet selection parameters
type SelectionConfig struct {
	EdgeThreshold  float64 `mapstructure:"edge_threshold" validate:"gte=0"`
	MinProbability float64 `mapstructure:"min_probability" validate:"gte=0,lte=1"`
	MaxProbability float64 `mapstructure:"max_probability" validate:"gte=0,lte=1"`
	KellyFraction  float64 `mapstructure:"kelly_fraction" validate:"gte=0,lte=1"`
	KellyCap       float64 `mapstructure:"kelly_cap" validate:"gte=0,lte=1"`
	FatigueAdjust  bool    `mapstructure:"fatigue_adjust"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// ScheduleConfig represents periodic ingestion scheduling
type ScheduleConfig struct {
	HistoricalSync string `mapstructure:"historical_sync"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
