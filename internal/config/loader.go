// Package config provides configuration management for the tennis
// tips pipeline.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment
// variables. Environment variable placeholders in the YAML file
// (${VAR_NAME}) are expanded before parsing.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	v.SetEnvPrefix("TENNIS_TIPS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults fills in values the YAML may omit
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.log_level", "info")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)

	v.SetDefault("matcher.strategy", "greedy_by_date")
	v.SetDefault("matcher.date_tolerance_days", 1)
	v.SetDefault("matcher.similarity_threshold", 0.92)
	v.SetDefault("matcher.tie_epsilon", 0.005)

	v.SetDefault("elo.base_rating", 1500)
	v.SetDefault("elo.k_factor", 32)
	v.SetDefault("elo.scale_constant", 400)
	v.SetDefault("elo.surface_k_boost", 1.0)
	v.SetDefault("elo.rookie_matches", 30)
	v.SetDefault("elo.rookie_k_multiplier", 1.10)
	v.SetDefault("elo.form_window", 10)
	v.SetDefault("elo.h2h_decay", 0.95)

	v.SetDefault("features.rest_cap_days", 60)
	v.SetDefault("features.fatigue_7d", 0.015)
	v.SetDefault("features.fatigue_14d", 0.010)
	v.SetDefault("features.fatigue_30d", 0.005)
	v.SetDefault("features.back_to_back", 0.030)
	v.SetDefault("features.short_rest", 0.015)
	v.SetDefault("features.min_prob", 0.05)
	v.SetDefault("features.max_prob", 0.95)

	v.SetDefault("model.min_samples", 200)
	v.SetDefault("model.validation_size", 0.2)
	v.SetDefault("model.max_iter", 1000)
	v.SetDefault("model.calibration", "sigmoid")
	v.SetDefault("model.seed", 42)
	v.SetDefault("model.path", "models/model.json")

	v.SetDefault("selection.edge_threshold", 0.05)
	v.SetDefault("selection.min_probability", 0.05)
	v.SetDefault("selection.max_probability", 0.95)
	v.SetDefault("selection.kelly_fraction", 0.25)
	v.SetDefault("selection.kelly_cap", 0.05)
	v.SetDefault("selection.fatigue_adjust", true)

	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}
