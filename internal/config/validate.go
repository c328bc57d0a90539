package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ariel-frischer/relmate/internal/tool"
)

// ValidationError represents a configuration validation error with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config: field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config: %s", e.Message)
}

// ValidateConfigValues validates configuration values against expected types
// and constraints. Returns nil if valid, or a ValidationError with field
// information if invalid.
//
// A misconfigured release_cmd or changelog_cmd is rejected here, before any
// task runs, so a bad config can never discard changelog edits first and
// fail afterwards.
func ValidateConfigValues(cfg *Configuration) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, fieldErr := range validationErrors {
				return &ValidationError{
					Field:   toSnakeCase(fieldErr.Field()),
					Message: formatValidationError(fieldErr),
				}
			}
		}
		return &ValidationError{Message: err.Error()}
	}

	// The changelog path is anchored at the working tree root; an absolute
	// path would silently escape the repository.
	if filepath.IsAbs(cfg.ChangelogPath) {
		return &ValidationError{
			Field:   "changelog_path",
			Message: "must be relative to the repository root",
		}
	}

	// Without these placeholders the generator would never learn the version
	// tag or the output path, breaking the hook contract silently.
	if !strings.Contains(cfg.ChangelogCmd, tool.VersionPlaceholder) {
		return &ValidationError{
			Field:   "changelog_cmd",
			Message: fmt.Sprintf("must contain %s placeholder", tool.VersionPlaceholder),
		}
	}
	if !strings.Contains(cfg.ChangelogCmd, tool.ChangelogPlaceholder) {
		return &ValidationError{
			Field:   "changelog_cmd",
			Message: fmt.Sprintf("must contain %s placeholder", tool.ChangelogPlaceholder),
		}
	}

	return nil
}

// formatValidationError formats a validation error for a specific field.
func formatValidationError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	default:
		return fmt.Sprintf("failed validation: %s", fieldErr.Tag())
	}
}

// toSnakeCase converts a CamelCase field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
