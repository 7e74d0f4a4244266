// Package config provides configuration management for the tennis
// tips pipeline.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	v.RegisterValidation("environment", validateEnvironment)
	v.RegisterValidation("loglevel", validateLogLevel)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCrossField performs validations spanning multiple fields
func validateCrossField(cfg *Config) error {
	for _, src := range append(append([]SourceConfig{}, cfg.Sources.Results...), cfg.Sources.Odds...) {
		if src.YearFrom > src.YearTo {
			return fmt.Errorf("source %s: year_from %d is after year_to %d", src.Name, src.YearFrom, src.YearTo)
		}
	}

	if cfg.Selection.MinProbability >= cfg.Selection.MaxProbability {
		return fmt.Errorf("selection: min_probability %.2f must be below max_probability %.2f",
			cfg.Selection.MinProbability, cfg.Selection.MaxProbability)
	}

	if cfg.Features.MinProb >= cfg.Features.MaxProb {
		return fmt.Errorf("features: min_prob %.2f must be below max_prob %.2f",
			cfg.Features.MinProb, cfg.Features.MaxProb)
	}

	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	msg := "configuration validation failed:"
	for _, err := range errs {
		msg += fmt.Sprintf("\n  - field '%s' failed validation '%s'", err.Namespace(), err.Tag())
	}
	return fmt.Errorf("%s", msg)
}
