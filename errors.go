package vetter

import (
	"fmt"
	"strings"
)

// Error codes for per-field validation failures.
const (
	ErrCodePresence     = "presence"
	ErrCodeAcceptance   = "acceptance"
	ErrCodeFormat       = "format"
	ErrCodeCoerce       = "coerce"
	ErrCodeInclusion    = "inclusion"
	ErrCodeExclusion    = "exclusion"
	ErrCodeSize         = "size"
	ErrCodeConfirmation = "confirmation"
)

// Error codes for fatal declaration defects.
const (
	ErrCodeUnknownRule     = "unknown_rule"
	ErrCodeUnknownCoercion = "unknown_coercion"
	ErrCodeBadConverter    = "bad_converter"
	ErrCodeBadSize         = "bad_size"
	ErrCodeBadArgument     = "bad_argument"
)

// FieldError represents a single per-field validation failure.
type FieldError struct {
	Attribute string // Attribute under validation (e.g., "email")
	Code      string // Failed rule (e.g., "presence", "size")
	Expected  any    // The declared rule argument
	Actual    any    // The attribute's current (possibly coerced) value
	Message   string // Human-readable description
}

// ValidationError aggregates field-level validation failures.
type ValidationError struct {
	FieldErrors []FieldError
}

// Error formats validation errors as a multi-line message.
func (e *ValidationError) Error() string {
	if len(e.FieldErrors) == 0 {
		return "validation failed: no errors"
	}

	var b strings.Builder
	if len(e.FieldErrors) == 1 {
		b.WriteString("validation failed: 1 error\n")
	} else {
		fmt.Fprintf(&b, "validation failed: %d errors\n", len(e.FieldErrors))
	}

	for _, fe := range e.FieldErrors {
		fmt.Fprintf(&b, "  - %s: %s (%s)\n", fe.Attribute, fe.Code, fe.Message)
	}

	return strings.TrimRight(b.String(), "\n")
}

// ConfigError reports a malformed rule declaration: a defect in the schema,
// not in the validated data. It aborts the validation run that hits it.
type ConfigError struct {
	Attribute string   // Attribute whose declaration is malformed
	Rule      RuleName // Rule carrying the bad declaration
	Code      string   // Defect code (e.g., "bad_size", "unknown_coercion")
	Message   string   // Human-readable description
}

func (e *ConfigError) Error() string {
	if e.Attribute == "" {
		return fmt.Sprintf("vetter: invalid %s declaration: %s", e.Rule, e.Message)
	}
	return fmt.Sprintf("vetter: invalid %s declaration for attribute %q: %s", e.Rule, e.Attribute, e.Message)
}
