package vetter

import (
	"strings"
	"testing"
)

func TestValidationError_Error_SingleError(t *testing.T) {
	ve := &ValidationError{
		FieldErrors: []FieldError{
			{
				Attribute: "email",
				Code:      ErrCodePresence,
				Message:   "value is required but blank",
			},
		},
	}

	got := ve.Error()
	want := "validation failed: 1 error\n  - email: presence (value is required but blank)"

	if got != want {
		t.Errorf("ValidationError.Error() with single error\ngot:  %q\nwant: %q", got, want)
	}
}

func TestValidationError_Error_MultipleErrors(t *testing.T) {
	ve := &ValidationError{
		FieldErrors: []FieldError{
			{Attribute: "email", Code: ErrCodePresence, Message: "value is required but blank"},
			{Attribute: "age", Code: ErrCodeSize, Message: "size must be between 0 and 120"},
			{Attribute: "role", Code: ErrCodeInclusion, Message: "value is not in the allowed collection"},
		},
	}

	got := ve.Error()

	if !strings.HasPrefix(got, "validation failed: 3 errors\n") {
		t.Errorf("ValidationError.Error() header incorrect\ngot: %q", got)
	}

	expectedLines := []string{
		"  - email: presence (value is required but blank)",
		"  - age: size (size must be between 0 and 120)",
		"  - role: inclusion (value is not in the allowed collection)",
	}
	for _, line := range expectedLines {
		if !strings.Contains(got, line) {
			t.Errorf("ValidationError.Error() missing line %q\ngot: %q", line, got)
		}
	}
}

func TestValidationError_Error_Empty(t *testing.T) {
	ve := &ValidationError{}
	if got := ve.Error(); got != "validation failed: no errors" {
		t.Errorf("ValidationError.Error() = %q", got)
	}
}

func TestConfigError_Error(t *testing.T) {
	ce := &ConfigError{
		Attribute: "age",
		Rule:      Size,
		Code:      ErrCodeBadSize,
		Message:   "quantity must be an int or Range, got string",
	}

	got := ce.Error()
	want := `vetter: invalid size declaration for attribute "age": quantity must be an int or Range, got string`
	if got != want {
		t.Errorf("ConfigError.Error()\ngot:  %q\nwant: %q", got, want)
	}
}

func TestConfigError_Error_NoAttribute(t *testing.T) {
	ce := &ConfigError{
		Rule:    Coerce,
		Code:    ErrCodeBadConverter,
		Message: "converter name is empty",
	}

	got := ce.Error()
	want := "vetter: invalid coerce declaration: converter name is empty"
	if got != want {
		t.Errorf("ConfigError.Error()\ngot:  %q\nwant: %q", got, want)
	}
}

func TestErrors_Collector(t *testing.T) {
	var e Errors

	if !e.Empty() {
		t.Fatalf("zero collector must be empty")
	}
	if e.AsError() != nil {
		t.Fatalf("empty collector must convert to nil error")
	}

	e.Add(FieldError{Attribute: "a", Code: ErrCodePresence})
	e.Add(FieldError{Attribute: "b", Code: ErrCodeSize})
	e.Add(FieldError{Attribute: "a", Code: ErrCodeFormat})

	if e.Empty() {
		t.Errorf("collector with entries must not be empty")
	}
	if len(e.All()) != 3 {
		t.Errorf("All() = %d entries, want 3", len(e.All()))
	}
	if !e.Has("a") || !e.Has("b") || e.Has("c") {
		t.Errorf("Has() results wrong: a=%v b=%v c=%v", e.Has("a"), e.Has("b"), e.Has("c"))
	}
	if got := e.On("a"); len(got) != 2 || got[0].Code != ErrCodePresence || got[1].Code != ErrCodeFormat {
		t.Errorf("On(a) = %v, want presence then format", got)
	}

	attrs := e.Attributes()
	if len(attrs) != 2 || attrs[0] != "a" || attrs[1] != "b" {
		t.Errorf("Attributes() = %v, want [a b] in first-seen order", attrs)
	}

	err := e.AsError()
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("AsError() = %T, want *ValidationError", err)
	}
	if len(ve.FieldErrors) != 3 {
		t.Errorf("AsError() carries %d failures, want 3", len(ve.FieldErrors))
	}
}
