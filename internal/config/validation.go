package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// fieldSize is the number of seeds an override may refer to.
const fieldSize = 10

// CustomValidator wraps the validator with custom validation rules.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration.
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// Validate validates the configuration using registered validation rules.
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return validateCrossField(cfg)
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}

// validateCrossField checks that the seed overrides still give every rank a
// distinct seed.
func validateCrossField(cfg *Config) error {
	var table [fieldSize + 1]int
	for rank := 1; rank <= fieldSize; rank++ {
		table[rank] = rank
	}
	for rank, seed := range cfg.SeedOverrides {
		table[rank] = seed
	}
	var used [fieldSize + 1]bool
	for rank := 1; rank <= fieldSize; rank++ {
		if used[table[rank]] {
			return fmt.Errorf("%w: seed_overrides: seed %d assigned twice", ErrInvalidConfig, table[rank])
		}
		used[table[rank]] = true
	}
	return nil
}

// formatValidationErrors formats validation errors into a readable error.
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var b strings.Builder
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		switch tag := fieldError.Tag(); tag {
		case "required":
			fmt.Fprintf(&b, "- Field '%s' is required\n", field)
		case "gte", "lte", "gt", "lt":
			fmt.Fprintf(&b, "- Field '%s' validation failed: numeric constraint %s=%s violated\n", field, tag, fieldError.Param())
		case "loglevel":
			fmt.Fprintf(&b, "- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "oneof":
			fmt.Fprintf(&b, "- Field '%s' has invalid value '%v'\n", field, fieldError.Value())
		default:
			fmt.Fprintf(&b, "- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("%w: configuration validation failed:\n%s", ErrInvalidConfig, b.String())
}
