package vetter

import (
	"errors"
	"testing"
)

func TestValidator_Validate(t *testing.T) {
	schema := Schema{
		{Name: "email", Rules: Rules{Presence: true, Format: `^[^@]+@[^@]+$`}},
		{Name: "age", Rules: Rules{Coerce: "int", Size: Between(0, 120)}},
		{Name: "role", Rules: Rules{Inclusion: []string{"admin", "user"}}},
	}

	t.Run("valid record", func(t *testing.T) {
		rec := NewMapRecord(map[string]any{
			"email": "user@example.com",
			"age":   "42",
			"role":  "admin",
		})

		if err := New(schema).Validate(rec); err != nil {
			t.Fatalf("Validate() returned %v", err)
		}

		age, _ := rec.Value("age")
		if age != 42 {
			t.Errorf("age = %v (%T), want coerced int 42", age, age)
		}
	})

	t.Run("failures across attributes", func(t *testing.T) {
		rec := NewMapRecord(map[string]any{
			"email": "not-an-email",
			"age":   "200",
			"role":  "guest",
		})

		err := New(schema).Validate(rec)

		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected *ValidationError, got %v", err)
		}
		if len(ve.FieldErrors) != 3 {
			t.Fatalf("expected 3 failures, got %d: %v", len(ve.FieldErrors), ve.FieldErrors)
		}

		// Attributes run in declaration order.
		wantAttrs := []string{"email", "age", "role"}
		for i, want := range wantAttrs {
			if ve.FieldErrors[i].Attribute != want {
				t.Errorf("failure %d attribute = %q, want %q", i, ve.FieldErrors[i].Attribute, want)
			}
		}
	})

	t.Run("missing attributes skip everything but presence", func(t *testing.T) {
		rec := NewMapRecord(map[string]any{})

		err := New(schema).Validate(rec)

		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected *ValidationError, got %v", err)
		}
		if len(ve.FieldErrors) != 1 {
			t.Fatalf("expected only the email presence failure, got %v", ve.FieldErrors)
		}
		if ve.FieldErrors[0].Attribute != "email" || ve.FieldErrors[0].Code != ErrCodePresence {
			t.Errorf("failure = %+v, want email/presence", ve.FieldErrors[0])
		}
	})
}

func TestValidator_StrictRejectsUnknownRules(t *testing.T) {
	schema := Schema{
		{Name: "email", Rules: Rules{RuleName("frmat"): "^.+$"}},
	}
	rec := NewMapRecord(map[string]any{"email": "a@b"})

	err := New(schema).Validate(rec)

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
	if cfgErr.Code != ErrCodeUnknownRule {
		t.Errorf("expected code %q, got %q", ErrCodeUnknownRule, cfgErr.Code)
	}
	if cfgErr.Attribute != "email" {
		t.Errorf("expected attribute email, got %q", cfgErr.Attribute)
	}
}

func TestValidator_NonStrictIgnoresUnknownRules(t *testing.T) {
	schema := Schema{
		{Name: "email", Rules: Rules{RuleName("frmat"): "^.+$", Presence: true}},
	}
	rec := NewMapRecord(map[string]any{"email": "a@b"})

	if err := New(schema).Strict(false).Validate(rec); err != nil {
		t.Fatalf("Validate() returned %v", err)
	}
}

func TestValidator_ConfigErrorAbortsRun(t *testing.T) {
	schema := Schema{
		{Name: "age", Rules: Rules{Size: "not-a-quantity"}},
		{Name: "role", Rules: Rules{Inclusion: []string{"admin"}}},
	}
	rec := NewMapRecord(map[string]any{"age": "42", "role": "guest"})

	err := New(schema).Validate(rec)

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
	if rec.Failures().Has("role") {
		t.Errorf("attributes after the aborting declaration must not run")
	}
}

func TestValidator_CustomRegistry(t *testing.T) {
	reg := DefaultRegistry()
	if err := reg.Register("trimmed", func(v any) (any, error) {
		s, _ := v.(string)
		return s[:3], nil
	}); err != nil {
		t.Fatalf("Register() returned %v", err)
	}

	schema := Schema{
		{Name: "code", Rules: Rules{Coerce: "trimmed", Size: 3}},
	}
	rec := NewMapRecord(map[string]any{"code": "abcdef"})

	if err := New(schema).WithRegistry(reg).Validate(rec); err != nil {
		t.Fatalf("Validate() returned %v", err)
	}

	code, _ := rec.Value("code")
	if code != "abc" {
		t.Errorf("code = %v, want %q", code, "abc")
	}
}
